package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wrongnotebook/notebook-backend/internal/knowledge"
)

func newCatalogCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Browse the curriculum catalog",
	}
	cmd.AddCommand(newCatalogListCommand(ctx))
	cmd.AddCommand(newCatalogInfoCommand(ctx))
	return cmd
}

func newCatalogListCommand(ctx *commandContext) *cobra.Command {
	var (
		subject  string
		grade    int
		semester int
		chapter  string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List canonical tags",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := ctx.ensureCatalog()
			if err != nil {
				return err
			}

			var tags []string
			switch {
			case strings.TrimSpace(chapter) != "":
				tags = cat.MathTagsByChapter(strings.TrimSpace(chapter))
			case grade > 0:
				tags = cat.MathTagsByGrade(grade, semester)
			case subject != "":
				s, ok := knowledge.ParseSubject(subject)
				if !ok {
					return fmt.Errorf("unknown subject %q", subject)
				}
				tags = cat.SubjectTags(s)
			default:
				tags = cat.AllStandardTags()
			}

			rows := make([][]string, 0, len(tags))
			for i, tag := range tags {
				rows = append(rows, []string{strconv.Itoa(i + 1), tag})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"#", "Tag"}, rows, []columnAlignment{alignRight, alignLeft}))
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "", "Subject code (math, physics, chemistry, english)")
	cmd.Flags().IntVar(&grade, "grade", 0, "Math grade (7-12)")
	cmd.Flags().IntVar(&semester, "semester", 0, "Semester (1 or 2); 0 matches both")
	cmd.Flags().StringVar(&chapter, "chapter", "", "Math chapter title")
	return cmd
}

func newCatalogInfoCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "info <tag>",
		Short: "Show where a math tag sits in the curriculum",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := ctx.ensureCatalog()
			if err != nil {
				return err
			}
			info, ok := cat.MathTagInfo(cat.NormalizeTag(args[0]))
			if !ok {
				return fmt.Errorf("tag %q not found", args[0])
			}
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			}
			rows := [][]string{
				{"Name", info.Name},
				{"Grade", knowledge.GradeLabel(info.Grade, info.Semester)},
				{"Chapter", info.Chapter},
				{"Aliases", strings.Join(info.Aliases, ", ")},
			}
			fmt.Fprintln(out, renderTable([]string{"Field", "Value"}, rows, nil))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON")
	return cmd
}

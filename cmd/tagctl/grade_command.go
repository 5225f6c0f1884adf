package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/wrongnotebook/notebook-backend/internal/knowledge"
)

func newGradeCommand(ctx *commandContext) *cobra.Command {
	var (
		stage string
		year  int
		at    string
	)
	cmd := &cobra.Command{
		Use:   "grade",
		Short: "Compute the current grade for an enrollment year",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := ctx.ensureCatalog()
			if err != nil {
				return err
			}
			now := time.Now()
			if strings.TrimSpace(at) != "" {
				now, err = time.Parse(time.DateOnly, strings.TrimSpace(at))
				if err != nil {
					return fmt.Errorf("invalid --at %q: %w", at, err)
				}
			}

			out := cmd.OutOrStdout()
			grade, ok := knowledge.CalculateGrade(stage, year, now)
			if !ok {
				fmt.Fprintln(out, "no current grade (unknown stage, graduated, or not yet enrolled)")
				return nil
			}
			semester := knowledge.CurrentSemester(now)
			tags := cat.MathTagsByGrade(grade, semester)
			rows := [][]string{
				{"Grade", strconv.Itoa(grade)},
				{"Semester", strconv.Itoa(semester)},
				{"Label", knowledge.GradeLabel(grade, semester)},
				{"Math tags", strconv.Itoa(len(tags))},
			}
			fmt.Fprintln(out, renderTable([]string{"Field", "Value"}, rows, nil))
			return nil
		},
	}
	cmd.Flags().StringVar(&stage, "stage", knowledge.StageJuniorHigh, "junior_high or senior_high")
	cmd.Flags().IntVar(&year, "year", 0, "Enrollment year")
	cmd.Flags().StringVar(&at, "at", "", "Evaluate at this date (YYYY-MM-DD) instead of today")
	_ = cmd.MarkFlagRequired("year")
	return cmd
}

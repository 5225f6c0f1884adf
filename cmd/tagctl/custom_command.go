package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newCustomCommand(ctx *commandContext) *cobra.Command {
	var user string
	cmd := &cobra.Command{
		Use:   "custom",
		Short: "Manage a user's custom tags",
	}
	cmd.PersistentFlags().StringVar(&user, "user", "", "User ID (required)")
	_ = cmd.MarkPersistentFlagRequired("user")

	userID := func() (uuid.UUID, error) {
		id, err := parseUser(user)
		if err != nil {
			return uuid.Nil, err
		}
		if id == uuid.Nil {
			return uuid.Nil, fmt.Errorf("--user is required")
		}
		return id, nil
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "export",
		Short: "Print the user's custom tags as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := userID()
			if err != nil {
				return err
			}
			svc, err := ctx.customTagService()
			if err != nil {
				return err
			}
			text, err := svc.Export(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "import [file]",
		Short: "Replace the user's custom tags from a JSON file or stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := userID()
			if err != nil {
				return err
			}
			var raw []byte
			if len(args) == 1 && args[0] != "-" {
				raw, err = os.ReadFile(args[0])
			} else {
				raw, err = io.ReadAll(cmd.InOrStdin())
			}
			if err != nil {
				return fmt.Errorf("read import: %w", err)
			}
			svc, err := ctx.customTagService()
			if err != nil {
				return err
			}
			ok, err := svc.Import(cmd.Context(), id, string(raw))
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("import rejected: input is not a custom-tag JSON object")
			}
			fmt.Fprintln(cmd.OutOrStdout(), "imported")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Count the user's custom tags per subject",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := userID()
			if err != nil {
				return err
			}
			svc, err := ctx.customTagService()
			if err != nil {
				return err
			}
			st, err := svc.Stats(cmd.Context(), id)
			if err != nil {
				return err
			}
			rows := [][]string{
				{"math", strconv.Itoa(st.Math)},
				{"english", strconv.Itoa(st.English)},
				{"physics", strconv.Itoa(st.Physics)},
				{"chemistry", strconv.Itoa(st.Chemistry)},
				{"other", strconv.Itoa(st.Other)},
				{"total", strconv.Itoa(st.Total)},
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Subject", "Tags"}, rows, []columnAlignment{alignLeft, alignRight}))
			return nil
		},
	})
	return cmd
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newNormalizeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "normalize <tag>...",
		Short: "Resolve tags to their canonical names",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := ctx.ensureCatalog()
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(args))
			for _, in := range args {
				out := cat.NormalizeTag(in)
				rows = append(rows, []string{in, out, yesNo(cat.IsStandardTag(in))})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Input", "Canonical", "Known"}, rows, nil))
			return nil
		},
	}
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

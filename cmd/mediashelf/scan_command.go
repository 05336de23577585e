package main

import (
	"github.com/spf13/cobra"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "Preview the move plan without touching any files",
		RunE: func(cmd *cobra.Command, args []string) error {
			pipeline, err := ctx.pipeline()
			if err != nil {
				return err
			}
			built, err := pipeline.Scan(cmd.Context())
			if err != nil {
				return err
			}

			rows := planRows(built)
			if ctx.jsonOutput() {
				return writeJSON(cmd, rows)
			}
			renderRows(cmd.OutOrStdout(), "Planned operations", rows)
			return nil
		},
	}
}

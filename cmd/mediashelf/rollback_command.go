package main

import (
	"github.com/spf13/cobra"
)

func newRollbackCommand(ctx *commandContext) *cobra.Command {
	var journalFlag string

	cmd := &cobra.Command{
		Use:   "rollback",
		Short: "Undo the moves recorded in a journal",
		RunE: func(cmd *cobra.Command, args []string) error {
			pipeline, err := ctx.pipeline()
			if err != nil {
				return err
			}
			summary, err := pipeline.Rollback(cmd.Context(), journalFlag)
			if err != nil {
				return err
			}

			if ctx.jsonOutput() {
				if err := writeJSON(cmd, summary); err != nil {
					return err
				}
			} else {
				renderRollbackSummary(cmd.OutOrStdout(), summary)
			}

			if summary.Failed > 0 {
				return errPartialFailure
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&journalFlag, "journal", "", "Journal file to roll back")
	_ = cmd.MarkFlagRequired("journal")
	return cmd
}

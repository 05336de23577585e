package main

import (
	"errors"

	"github.com/spf13/cobra"
)

// errPartialFailure marks a run that completed with some entries failed. The
// process exits with status 2 so scripts can tell partial from fatal.
var errPartialFailure = errors.New("completed with failures")

func newApplyCommand(ctx *commandContext) *cobra.Command {
	var journalFlag string
	var statusFlag string
	var noCleanup bool

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Execute the move plan against the library",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if noCleanup {
				cfg.Rules.CleanupEmptyDirs = false
			}

			pipeline, err := ctx.pipeline()
			if err != nil {
				return err
			}
			summary, err := pipeline.Apply(cmd.Context(), journalFlag)
			if err != nil {
				return err
			}

			if statusFlag != "" {
				if err := writeStatusFiles(statusFlag, summary); err != nil {
					return err
				}
			}

			if ctx.jsonOutput() {
				if err := writeJSON(cmd, summary); err != nil {
					return err
				}
			} else {
				out := cmd.OutOrStdout()
				renderRows(out, "Applied operations", summary.Rows)
				renderSummaryCounts(out, summary)
			}

			if summary.PartialFailure() {
				return errPartialFailure
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&journalFlag, "journal", "", "Journal file path (defaults to the configured log directory)")
	cmd.Flags().StringVar(&statusFlag, "status", "", "Write BASE.json and BASE.csv status files")
	cmd.Flags().BoolVar(&noCleanup, "no-cleanup", false, "Leave emptied source directories in place")
	return cmd
}

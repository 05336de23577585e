package main

import (
	"fmt"
	"io"
	"path/filepath"

	"mediashelf/internal/plan"
	"mediashelf/internal/report"
	"mediashelf/internal/rollback"
)

const (
	ansiBlue  = "\x1b[34m"
	ansiReset = "\x1b[0m"
)

// planRows converts plan entries into status rows so scan output matches the
// shape of apply output.
func planRows(p *plan.Plan) []report.Row {
	rows := make([]report.Row, 0, len(p.Entries))
	for _, entry := range p.Entries {
		rows = append(rows, report.Row{
			Source:      entry.Source.Path,
			Destination: entry.Dest,
			Action:      string(entry.Action),
			Reason:      string(entry.Reason),
			Status:      report.StatusPlanned,
		})
	}
	return rows
}

func renderRows(out io.Writer, title string, rows []report.Row) {
	if title != "" {
		line := title
		if isTerminal(out) {
			line = ansiBlue + line + ansiReset
		}
		fmt.Fprintln(out, line)
	}
	if len(rows) == 0 {
		fmt.Fprintln(out, "Nothing to do.")
		return
	}

	headers := []string{"Source", "Destination", "Action", "Status", "Reason"}
	body := make([][]string, 0, len(rows))
	for _, row := range rows {
		body = append(body, []string{
			filepath.Base(row.Source),
			row.Destination,
			row.Action,
			string(row.Status),
			row.Reason,
		})
	}
	fmt.Fprintln(out, renderTable(headers, body, nil))
}

func renderSummaryCounts(out io.Writer, summary *report.Summary) {
	fmt.Fprintf(out, "%d total, %d committed, %d skipped, %d quarantined, %d failed\n",
		summary.Total, summary.Committed, summary.Skipped, summary.Quarantined, summary.Failed)
	if summary.JournalPath != "" {
		fmt.Fprintf(out, "Journal: %s\n", summary.JournalPath)
	}
}

func renderRollbackSummary(out io.Writer, summary *rollback.Summary) {
	headers := []string{"Source", "Destination", "Outcome", "Error"}
	body := make([][]string, 0, len(summary.Ops))
	for _, op := range summary.Ops {
		outcome := string(op.Outcome)
		if outcome == "" {
			outcome = "failed"
		}
		body = append(body, []string{op.Src, op.Dst, outcome, op.Error})
	}
	if len(body) > 0 {
		fmt.Fprintln(out, renderTable(headers, body, nil))
	}
	fmt.Fprintf(out, "%d total, %d reverted, %d already absent, %d conflicts, %d failed\n",
		summary.Total, summary.Reverted, summary.AlreadyAbsent, summary.Conflicts, summary.Failed)
}

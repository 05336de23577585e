package executor

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"

	"mediashelf/internal/config"
	"mediashelf/internal/fsgate"
	"mediashelf/internal/journal"
	"mediashelf/internal/logging"
	"mediashelf/internal/plan"
	"mediashelf/internal/report"
)

// Executor applies plans. Callers must hold the run lock for the journal and
// destination tree before invoking Execute.
type Executor struct {
	cfg     *config.Config
	gateway fsgate.Gateway
	logger  *slog.Logger
}

// New constructs an Executor.
func New(cfg *config.Config, gateway fsgate.Gateway, logger *slog.Logger) *Executor {
	return &Executor{
		cfg:     cfg,
		gateway: gateway,
		logger:  logging.NewComponentLogger(logger, "executor"),
	}
}

// Execute applies the plan, journaling through writer. Cancellation is
// cooperative and checked once per entry boundary; entries already processed
// keep their logged terminal state. The summary is returned even when some
// entries fail.
func (e *Executor) Execute(ctx context.Context, p *plan.Plan, writer *journal.Writer) (*report.Summary, error) {
	summary := &report.Summary{
		Total:       len(p.Entries),
		JournalPath: writer.Path(),
		Rows:        make([]report.Row, 0, len(p.Entries)),
	}
	var touchedDirs []string

	for _, entry := range p.Entries {
		if err := ctx.Err(); err != nil {
			// Remaining entries stay unprocessed; everything before this
			// boundary already has its terminal journal state.
			return summary, err
		}

		row := e.executeEntry(entry, writer)
		summary.Rows = append(summary.Rows, row)
		switch row.Status {
		case report.StatusCommitted:
			summary.Committed++
			touchedDirs = append(touchedDirs, entry.Source.Dir())
		case report.StatusQuarantine:
			summary.Quarantined++
			touchedDirs = append(touchedDirs, entry.Source.Dir())
		case report.StatusFailed:
			summary.Failed++
		case report.StatusSkipped:
			summary.Skipped++
		}
	}

	if e.cfg.Rules.CleanupEmptyDirs {
		e.cleanupSourceDirs(touchedDirs)
	}

	e.logger.Info("apply finished",
		logging.Args(
			logging.Int("total", summary.Total),
			logging.Int("committed", summary.Committed),
			logging.Int("failed", summary.Failed),
			logging.Int("skipped", summary.Skipped),
			logging.Int("quarantined", summary.Quarantined),
		)...)
	return summary, nil
}

func (e *Executor) executeEntry(entry plan.Entry, writer *journal.Writer) report.Row {
	row := report.Row{
		Source:      entry.Source.Path,
		Destination: entry.Dest,
		Action:      string(entry.Action),
		Reason:      string(entry.Reason),
	}

	if entry.Action == plan.ActionSkipDuplicate {
		// No move is attempted, so nothing is journaled.
		row.Status = report.StatusSkipped
		return row
	}

	// The destination may have appeared between planning and execution.
	// Overwriting is never an option, so this is an expected skip.
	if e.gateway.Exists(entry.Dest) {
		row.Status = report.StatusSkipped
		row.Reason = string(plan.ReasonDestinationOccupied)
		e.logger.Debug("destination occupied, skipping",
			logging.Args(logging.String("dest", entry.Dest))...)
		return row
	}

	opID := uuid.NewString()
	if _, err := writer.Append(opID, journal.PhaseBegun, entry.Source.Path, entry.Dest, ""); err != nil {
		// Without a durable begun record the move must not run.
		row.Status = report.StatusFailed
		row.Error = err.Error()
		return row
	}

	if err := e.gateway.Move(entry.Source.Path, entry.Dest); err != nil {
		row.Status = report.StatusFailed
		row.Error = err.Error()
		if errors.Is(err, fsgate.ErrDestinationExists) {
			row.Status = report.StatusSkipped
			row.Reason = string(plan.ReasonDestinationOccupied)
			row.Error = ""
		}
		if _, appendErr := writer.Append(opID, journal.PhaseFailed, entry.Source.Path, entry.Dest, err.Error()); appendErr != nil {
			e.logger.Error("failed to journal terminal record",
				logging.Args(logging.String("op_id", opID), logging.Error(appendErr))...)
		}
		if row.Status == report.StatusFailed {
			e.logger.Warn("move failed",
				logging.Args(
					logging.String("source", entry.Source.Path),
					logging.String("dest", entry.Dest),
					logging.Error(err),
				)...)
		}
		return row
	}

	if _, err := writer.Append(opID, journal.PhaseCommitted, entry.Source.Path, entry.Dest, ""); err != nil {
		e.logger.Error("failed to journal commit record",
			logging.Args(logging.String("op_id", opID), logging.Error(err))...)
	}

	if entry.Action == plan.ActionQuarantine {
		row.Status = report.StatusQuarantine
	} else {
		row.Status = report.StatusCommitted
	}
	return row
}

// cleanupSourceDirs removes source directories emptied by the run,
// innermost-first so children disappear before their parents are checked.
func (e *Executor) cleanupSourceDirs(dirs []string) {
	unique := make(map[string]struct{}, len(dirs))
	for _, dir := range dirs {
		unique[dir] = struct{}{}
	}
	ordered := make([]string, 0, len(unique))
	for dir := range unique {
		ordered = append(ordered, dir)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return depth(ordered[i]) > depth(ordered[j])
	})

	inbox := e.cfg.Paths.InboxDir
	for _, dir := range ordered {
		for insideInbox(dir, inbox) {
			err := e.gateway.RemoveEmptyDir(dir)
			if err != nil {
				if !errors.Is(err, fsgate.ErrNotEmpty) {
					e.logger.Debug("cleanup skipped",
						logging.Args(logging.String("dir", dir), logging.Error(err))...)
				}
				break
			}
			e.logger.Debug("removed empty source directory",
				logging.Args(logging.String("dir", dir))...)
			dir = filepath.Dir(dir)
		}
	}
}

// insideInbox reports whether dir is a strict descendant of inbox; the inbox
// root itself is never removed.
func insideInbox(dir, inbox string) bool {
	rel, err := filepath.Rel(inbox, dir)
	if err != nil {
		return false
	}
	return rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func depth(path string) int {
	return strings.Count(path, string(filepath.Separator))
}

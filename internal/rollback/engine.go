package rollback

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"mediashelf/internal/config"
	"mediashelf/internal/fsgate"
	"mediashelf/internal/journal"
	"mediashelf/internal/logging"
)

// Outcome is the terminal state of one reversed operation.
type Outcome string

const (
	// OutcomeReverted means the destination was moved back to the source.
	OutcomeReverted Outcome = "reverted"
	// OutcomeAlreadyAbsent means the destination no longer exists, so there
	// is nothing to undo. Second rollbacks land here.
	OutcomeAlreadyAbsent Outcome = "already-absent"
	// OutcomeConflictSkipped means the original source path is occupied, so
	// moving back would overwrite something.
	OutcomeConflictSkipped Outcome = "conflict-skipped"
)

// Op is one reversible operation reconstructed from the journal.
type Op struct {
	Seq     uint64
	OpID    string
	Src     string
	Dst     string
	Outcome Outcome
	Error   string
}

// Summary aggregates a rollback run.
type Summary struct {
	JournalPath   string `json:"journal"`
	Total         int    `json:"total"`
	Reverted      int    `json:"reverted"`
	AlreadyAbsent int    `json:"already_absent"`
	Conflicts     int    `json:"conflicts"`
	Failed        int    `json:"failed"`
	Ops           []Op   `json:"ops"`
}

// Engine replays a journal in reverse. It never writes to the journal file,
// so rollback can be run any number of times against the same journal.
type Engine struct {
	cfg     *config.Config
	gateway fsgate.Gateway
	logger  *slog.Logger
}

func New(cfg *config.Config, gateway fsgate.Gateway, logger *slog.Logger) *Engine {
	return &Engine{
		cfg:     cfg,
		gateway: gateway,
		logger:  logging.NewComponentLogger(logger, "rollback"),
	}
}

// Rollback reads the journal at path and undoes its operations newest-first.
// Callers must hold the run lock. A journal that cannot be parsed (beyond a
// trailing partial line) fails the whole run; individual move failures do
// not.
func (e *Engine) Rollback(ctx context.Context, path string) (*Summary, error) {
	records, err := journal.Read(path)
	if err != nil {
		return nil, err
	}

	ops := e.collect(records)
	summary := &Summary{
		JournalPath: path,
		Total:       len(ops),
		Ops:         make([]Op, 0, len(ops)),
	}

	var touchedDirs []string
	for _, op := range ops {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		e.revert(&op)
		summary.Ops = append(summary.Ops, op)
		switch op.Outcome {
		case OutcomeReverted:
			summary.Reverted++
			touchedDirs = append(touchedDirs, filepath.Dir(op.Dst))
		case OutcomeAlreadyAbsent:
			summary.AlreadyAbsent++
		case OutcomeConflictSkipped:
			summary.Conflicts++
		default:
			summary.Failed++
		}
	}

	e.cleanupDestinationDirs(touchedDirs)

	e.logger.Info("rollback finished",
		logging.Args(
			logging.Int("total", summary.Total),
			logging.Int("reverted", summary.Reverted),
			logging.Int("already_absent", summary.AlreadyAbsent),
			logging.Int("conflicts", summary.Conflicts),
			logging.Int("failed", summary.Failed),
		)...)
	return summary, nil
}

// collect folds records into per-operation final states and returns the ops
// worth reversing, newest-first.
func (e *Engine) collect(records []journal.Record) []Op {
	type opState struct {
		op    Op
		phase journal.Phase
	}
	states := make(map[string]*opState)
	order := make([]string, 0)

	for _, record := range records {
		state, ok := states[record.OpID]
		if !ok {
			state = &opState{op: Op{
				OpID: record.OpID,
				Src:  record.Src,
				Dst:  record.Dst,
			}}
			states[record.OpID] = state
			order = append(order, record.OpID)
		}
		state.op.Seq = record.Seq
		state.phase = record.Phase
	}

	ops := make([]Op, 0, len(states))
	for _, id := range order {
		state := states[id]
		switch state.phase {
		case journal.PhaseCommitted:
			ops = append(ops, state.op)
		case journal.PhaseBegun:
			// A begun record with no terminal phase means the run died
			// mid-move. Only treat it as completed when the filesystem
			// confirms the move actually happened.
			if e.gateway.Exists(state.op.Dst) && !e.gateway.Exists(state.op.Src) {
				ops = append(ops, state.op)
			} else {
				e.logger.Debug("skipping interrupted operation",
					logging.Args(logging.String("op_id", id))...)
			}
		case journal.PhaseFailed:
			// Nothing moved.
		}
	}

	sort.Slice(ops, func(i, j int) bool { return ops[i].Seq > ops[j].Seq })
	return ops
}

func (e *Engine) revert(op *Op) {
	if !e.gateway.Exists(op.Dst) {
		op.Outcome = OutcomeAlreadyAbsent
		return
	}
	if e.gateway.Exists(op.Src) {
		op.Outcome = OutcomeConflictSkipped
		e.logger.Warn("source occupied, leaving destination in place",
			logging.Args(
				logging.String("source", op.Src),
				logging.String("dest", op.Dst),
			)...)
		return
	}
	if err := e.gateway.Move(op.Dst, op.Src); err != nil {
		op.Error = err.Error()
		e.logger.Warn("revert move failed",
			logging.Args(
				logging.String("source", op.Src),
				logging.String("dest", op.Dst),
				logging.Error(err),
			)...)
		return
	}
	op.Outcome = OutcomeReverted
	e.logger.Info("reverted",
		logging.Args(
			logging.String("source", op.Src),
			logging.String("dest", op.Dst),
		)...)
}

// cleanupDestinationDirs prunes destination directories emptied by reverts so
// a full rollback leaves no trace in the library or quarantine trees. The
// roots themselves are kept.
func (e *Engine) cleanupDestinationDirs(dirs []string) {
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

	roots := []string{e.cfg.Paths.LibraryDir, e.cfg.Paths.QuarantineDir}
	for _, dir := range ordered {
		for insideAny(dir, roots) {
			if err := e.gateway.RemoveEmptyDir(dir); err != nil {
				if !errors.Is(err, fsgate.ErrNotEmpty) {
					e.logger.Debug("cleanup skipped",
						logging.Args(logging.String("dir", dir), logging.Error(err))...)
				}
				break
			}
			dir = filepath.Dir(dir)
		}
	}
}

func insideAny(dir string, roots []string) bool {
	for _, root := range roots {
		rel, err := filepath.Rel(root, dir)
		if err != nil {
			continue
		}
		if rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

func depth(path string) int {
	return strings.Count(path, string(filepath.Separator))
}

package organize

import (
	"context"
	"log/slog"
	"time"

	"mediashelf/internal/classify"
	"mediashelf/internal/config"
	"mediashelf/internal/executor"
	"mediashelf/internal/fsgate"
	"mediashelf/internal/history"
	"mediashelf/internal/journal"
	"mediashelf/internal/logging"
	"mediashelf/internal/media"
	"mediashelf/internal/plan"
	"mediashelf/internal/report"
	"mediashelf/internal/rollback"
	"mediashelf/internal/runlock"
)

// Pipeline ties scanning, classification, planning, execution and rollback
// together behind one facade for the CLI.
type Pipeline struct {
	cfg        *config.Config
	gateway    fsgate.Gateway
	classifier *classify.Classifier
	builder    *plan.Builder
	executor   *executor.Executor
	logger     *slog.Logger
}

// New assembles a pipeline. strategy may be nil, in which case ambiguous
// filenames go straight to quarantine.
func New(cfg *config.Config, gateway fsgate.Gateway, strategy classify.Strategy, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		cfg:        cfg,
		gateway:    gateway,
		classifier: classify.New(cfg, strategy, logger),
		builder:    plan.NewBuilder(cfg, gateway, logger),
		executor:   executor.New(cfg, gateway, logger),
		logger:     logging.NewComponentLogger(logger, "organize"),
	}
}

// Scan walks the inbox, classifies every eligible file and builds the move
// plan. No filesystem mutation and no locking happens here, so scans can run
// alongside anything.
func (p *Pipeline) Scan(ctx context.Context) (*plan.Plan, error) {
	files, err := media.Scan(p.cfg.Paths.InboxDir, p.cfg.Rules.AllowedExtensions)
	if err != nil {
		return nil, err
	}

	classified := make([]plan.Classified, 0, len(files))
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		classified = append(classified, plan.Classified{
			File:     file,
			Identity: p.classifier.Classify(ctx, file),
		})
	}

	built := p.builder.Build(classified)
	p.logger.Info("scan finished",
		logging.Args(
			logging.Int("files", len(files)),
			logging.Int("moves", built.MoveCount()),
		)...)
	return built, nil
}

// Apply scans and then executes the resulting plan under the run lock,
// journaling to journalPath. The run is recorded in history when the store
// is enabled. Partial failures are reported in the summary, not as an error.
func (p *Pipeline) Apply(ctx context.Context, journalPath string) (*report.Summary, error) {
	lock := runlock.New(p.cfg.LockPath())
	if err := lock.Acquire(); err != nil {
		return nil, err
	}
	defer func() { _ = lock.Release() }()

	built, err := p.Scan(ctx)
	if err != nil {
		return nil, err
	}

	if journalPath == "" {
		journalPath = p.cfg.JournalPath()
	}
	writer, err := journal.OpenWriter(journalPath)
	if err != nil {
		return nil, err
	}
	defer func() { _ = writer.Close() }()

	started := time.Now().UTC()
	summary, execErr := p.executor.Execute(ctx, built, writer)
	p.recordRun(history.KindApply, journalPath, summary, started, execErr)
	return summary, execErr
}

// Rollback undoes the journal at journalPath under the run lock.
func (p *Pipeline) Rollback(ctx context.Context, journalPath string) (*rollback.Summary, error) {
	lock := runlock.New(p.cfg.LockPath())
	if err := lock.Acquire(); err != nil {
		return nil, err
	}
	defer func() { _ = lock.Release() }()

	engine := rollback.New(p.cfg, p.gateway, p.logger)
	started := time.Now().UTC()
	summary, err := engine.Rollback(ctx, journalPath)
	if summary != nil {
		run := history.Run{
			Kind:        history.KindRollback,
			JournalPath: journalPath,
			Total:       summary.Total,
			Committed:   summary.Reverted,
			Failed:      summary.Failed,
			Skipped:     summary.AlreadyAbsent + summary.Conflicts,
			Status:      rollbackStatus(summary, err),
			StartedAt:   started,
			FinishedAt:  time.Now().UTC(),
		}
		p.storeRun(run)
	}
	return summary, err
}

func (p *Pipeline) recordRun(kind history.Kind, journalPath string, summary *report.Summary, started time.Time, execErr error) {
	if summary == nil {
		return
	}
	status := "ok"
	switch {
	case execErr != nil:
		status = "aborted"
	case summary.PartialFailure():
		status = "partial"
	}
	p.storeRun(history.Run{
		Kind:        kind,
		JournalPath: journalPath,
		Total:       summary.Total,
		Committed:   summary.Committed,
		Failed:      summary.Failed,
		Skipped:     summary.Skipped,
		Quarantined: summary.Quarantined,
		Status:      status,
		StartedAt:   started,
		FinishedAt:  time.Now().UTC(),
	})
}

// storeRun best-effort records a run. History is bookkeeping; its failures
// never fail the run itself.
func (p *Pipeline) storeRun(run history.Run) {
	if !p.cfg.History.Enabled {
		return
	}
	store, err := history.Open(p.cfg)
	if err != nil {
		p.logger.Warn("history unavailable", logging.Args(logging.Error(err))...)
		return
	}
	defer func() { _ = store.Close() }()
	if _, err := store.RecordRun(context.Background(), run); err != nil {
		p.logger.Warn("history record failed", logging.Args(logging.Error(err))...)
	}
}

func rollbackStatus(summary *rollback.Summary, err error) string {
	switch {
	case err != nil:
		return "aborted"
	case summary.Failed > 0:
		return "partial"
	default:
		return "ok"
	}
}

package organize_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"mediashelf/internal/fsgate"
	"mediashelf/internal/history"
	"mediashelf/internal/logging"
	"mediashelf/internal/organize"
	"mediashelf/internal/plan"
	"mediashelf/internal/runlock"
	"mediashelf/internal/services"
	"mediashelf/internal/testsupport"
)

func TestScanPlansEpisodeMove(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	pipeline := organize.New(cfg, fsgate.NewOS(), nil, logging.NewNop())
	testsupport.WriteFile(t, filepath.Join(cfg.Paths.InboxDir, "Show.S01E02.mkv"), 64)

	built, err := pipeline.Scan(context.Background())
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(built.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(built.Entries))
	}
	entry := built.Entries[0]
	want := filepath.Join(cfg.Paths.LibraryDir, "Show", "Season01", "Show - S01E02.mkv")
	if entry.Dest != want {
		t.Fatalf("unexpected destination %q, want %q", entry.Dest, want)
	}
	if entry.Action != plan.ActionMove {
		t.Fatalf("unexpected action %s", entry.Action)
	}

	// Scan never touches storage.
	if _, err := os.Stat(filepath.Join(cfg.Paths.InboxDir, "Show.S01E02.mkv")); err != nil {
		t.Fatalf("source must be untouched after scan: %v", err)
	}
	if _, err := os.Stat(cfg.Paths.LibraryDir); !os.IsNotExist(err) {
		t.Fatalf("library must not exist after scan, got %v", err)
	}
}

func TestApplyThenRollbackRestoresInbox(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithCleanupDisabled())
	pipeline := organize.New(cfg, fsgate.NewOS(), nil, logging.NewNop())
	sources := []string{
		filepath.Join(cfg.Paths.InboxDir, "Show.S01E01.mkv"),
		filepath.Join(cfg.Paths.InboxDir, "Show.S01E02.mkv"),
		filepath.Join(cfg.Paths.InboxDir, "Other.1x05.mkv"),
	}
	for _, src := range sources {
		testsupport.WriteFile(t, src, 64)
	}

	summary, err := pipeline.Apply(context.Background(), "")
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if summary.Committed != 3 || summary.Failed != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	for _, src := range sources {
		if _, err := os.Stat(src); !os.IsNotExist(err) {
			t.Fatalf("source %s should be moved, got %v", src, err)
		}
	}

	rbSummary, err := pipeline.Rollback(context.Background(), summary.JournalPath)
	if err != nil {
		t.Fatalf("rollback: %v", err)
	}
	if rbSummary.Reverted != 3 {
		t.Fatalf("unexpected rollback summary: %+v", rbSummary)
	}
	for _, src := range sources {
		if _, err := os.Stat(src); err != nil {
			t.Fatalf("source %s not restored: %v", src, err)
		}
	}
}

func TestSecondApplySkipsEverything(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithCleanupDisabled())
	pipeline := organize.New(cfg, fsgate.NewOS(), nil, logging.NewNop())
	testsupport.WriteFile(t, filepath.Join(cfg.Paths.InboxDir, "Show.S01E01.mkv"), 64)

	if _, err := pipeline.Apply(context.Background(), ""); err != nil {
		t.Fatalf("first apply: %v", err)
	}

	// The same file lands in the inbox again with identical content.
	testsupport.WriteFile(t, filepath.Join(cfg.Paths.InboxDir, "Show.S01E01.mkv"), 64)

	summary, err := pipeline.Apply(context.Background(), "")
	if err != nil {
		t.Fatalf("second apply: %v", err)
	}
	if summary.Committed != 0 || summary.Skipped != 1 {
		t.Fatalf("expected pure skip run, got %+v", summary)
	}
	if summary.Rows[0].Reason != string(plan.ReasonDuplicateOnDisk) {
		t.Fatalf("unexpected reason %q", summary.Rows[0].Reason)
	}
}

func TestUnresolvedGoesToQuarantine(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	pipeline := organize.New(cfg, fsgate.NewOS(), nil, logging.NewNop())
	testsupport.WriteFile(t, filepath.Join(cfg.Paths.InboxDir, "completely opaque name.mkv"), 64)

	summary, err := pipeline.Apply(context.Background(), "")
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if summary.Quarantined != 1 {
		t.Fatalf("expected quarantine, got %+v", summary)
	}
	if _, err := os.Stat(filepath.Join(cfg.Paths.QuarantineDir, "completely opaque name.mkv")); err != nil {
		t.Fatalf("quarantined file missing: %v", err)
	}
}

func TestApplyRefusesConcurrentRun(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	pipeline := organize.New(cfg, fsgate.NewOS(), nil, logging.NewNop())

	other := runlock.New(cfg.LockPath())
	if err := other.Acquire(); err != nil {
		t.Fatalf("acquire: %v", err)
	}
	defer func() { _ = other.Release() }()

	_, err := pipeline.Apply(context.Background(), "")
	if !errors.Is(err, services.ErrConcurrentRun) {
		t.Fatalf("expected ErrConcurrentRun, got %v", err)
	}
}

func TestApplyRecordsHistory(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	pipeline := organize.New(cfg, fsgate.NewOS(), nil, logging.NewNop())
	testsupport.WriteFile(t, filepath.Join(cfg.Paths.InboxDir, "Show.S01E01.mkv"), 64)

	if _, err := pipeline.Apply(context.Background(), ""); err != nil {
		t.Fatalf("apply: %v", err)
	}

	store, err := history.Open(cfg)
	if err != nil {
		t.Fatalf("open history: %v", err)
	}
	defer store.Close()
	runs, err := store.List(context.Background(), 0)
	if err != nil {
		t.Fatalf("list history: %v", err)
	}
	if len(runs) != 1 || runs[0].Kind != history.KindApply || runs[0].Committed != 1 {
		t.Fatalf("unexpected history: %+v", runs)
	}
}

package rollback_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"mediashelf/internal/executor"
	"mediashelf/internal/fsgate"
	"mediashelf/internal/journal"
	"mediashelf/internal/logging"
	"mediashelf/internal/media"
	"mediashelf/internal/plan"
	"mediashelf/internal/rollback"
	"mediashelf/internal/testsupport"
)

func sourceFile(t *testing.T, path string, size int64) media.File {
	t.Helper()
	testsupport.WriteFile(t, path, size)
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat %s: %v", path, err)
	}
	return media.File{Path: path, Size: info.Size(), ModTime: info.ModTime()}
}

func TestRollbackRestoresSourceTree(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithCleanupDisabled())
	first := sourceFile(t, filepath.Join(cfg.Paths.InboxDir, "Show.S01E01.mkv"), 64)
	second := sourceFile(t, filepath.Join(cfg.Paths.InboxDir, "Show.S01E02.mkv"), 64)

	p := &plan.Plan{Entries: []plan.Entry{
		{Source: first, Dest: filepath.Join(cfg.Paths.LibraryDir, "Show", "Season01", "Show - S01E01.mkv"), Action: plan.ActionMove},
		{Source: second, Dest: filepath.Join(cfg.Paths.LibraryDir, "Show", "Season01", "Show - S01E02.mkv"), Action: plan.ActionMove},
	}}

	writer, err := journal.OpenWriter(cfg.JournalPath())
	if err != nil {
		t.Fatalf("open journal: %v", err)
	}
	exec := executor.New(cfg, fsgate.NewOS(), logging.NewNop())
	if _, err := exec.Execute(context.Background(), p, writer); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close journal: %v", err)
	}

	engine := rollback.New(cfg, fsgate.NewOS(), logging.NewNop())
	summary, err := engine.Rollback(context.Background(), cfg.JournalPath())
	if err != nil {
		t.Fatalf("rollback: %v", err)
	}
	if summary.Reverted != 2 || summary.Conflicts != 0 || summary.Failed != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	for _, src := range []string{first.Path, second.Path} {
		if _, err := os.Stat(src); err != nil {
			t.Fatalf("source not restored: %v", err)
		}
	}
	if _, err := os.Stat(p.Entries[0].Dest); !os.IsNotExist(err) {
		t.Fatalf("destination should be gone, got %v", err)
	}
	// Emptied destination directories are pruned; the library root survives.
	if _, err := os.Stat(filepath.Join(cfg.Paths.LibraryDir, "Show")); !os.IsNotExist(err) {
		t.Fatalf("emptied series dir should be pruned, got %v", err)
	}
	if _, err := os.Stat(cfg.Paths.LibraryDir); err != nil {
		t.Fatalf("library root must survive: %v", err)
	}

	// Newest operation is reversed first.
	if len(summary.Ops) != 2 || summary.Ops[0].Seq <= summary.Ops[1].Seq {
		t.Fatalf("expected descending sequence order, got %+v", summary.Ops)
	}
}

func TestRollbackTwiceIsIdempotent(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithCleanupDisabled())
	src := sourceFile(t, filepath.Join(cfg.Paths.InboxDir, "Show.S01E01.mkv"), 64)

	p := &plan.Plan{Entries: []plan.Entry{
		{Source: src, Dest: filepath.Join(cfg.Paths.LibraryDir, "Show", "Season01", "Show - S01E01.mkv"), Action: plan.ActionMove},
	}}

	writer, err := journal.OpenWriter(cfg.JournalPath())
	if err != nil {
		t.Fatalf("open journal: %v", err)
	}
	exec := executor.New(cfg, fsgate.NewOS(), logging.NewNop())
	if _, err := exec.Execute(context.Background(), p, writer); err != nil {
		t.Fatalf("execute: %v", err)
	}
	writer.Close()

	engine := rollback.New(cfg, fsgate.NewOS(), logging.NewNop())
	if _, err := engine.Rollback(context.Background(), cfg.JournalPath()); err != nil {
		t.Fatalf("first rollback: %v", err)
	}

	before, err := journal.Read(cfg.JournalPath())
	if err != nil {
		t.Fatalf("read journal: %v", err)
	}

	summary, err := engine.Rollback(context.Background(), cfg.JournalPath())
	if err != nil {
		t.Fatalf("second rollback: %v", err)
	}
	if summary.Reverted != 0 || summary.Conflicts != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	// The first rollback left the source in place, so the second run sees
	// the source occupied with the destination absent. Absence wins.
	if summary.AlreadyAbsent != 1 {
		t.Fatalf("expected already-absent, got %+v", summary)
	}
	if _, err := os.Stat(src.Path); err != nil {
		t.Fatalf("source must survive second rollback: %v", err)
	}

	after, err := journal.Read(cfg.JournalPath())
	if err != nil {
		t.Fatalf("re-read journal: %v", err)
	}
	if len(after) != len(before) {
		t.Fatalf("rollback must not mutate the journal: %d vs %d records", len(before), len(after))
	}
}

func TestRollbackConflictLeavesBothFiles(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithCleanupDisabled())
	src := sourceFile(t, filepath.Join(cfg.Paths.InboxDir, "Show.S01E01.mkv"), 64)
	dest := filepath.Join(cfg.Paths.LibraryDir, "Show", "Season01", "Show - S01E01.mkv")

	p := &plan.Plan{Entries: []plan.Entry{
		{Source: src, Dest: dest, Action: plan.ActionMove},
	}}

	writer, err := journal.OpenWriter(cfg.JournalPath())
	if err != nil {
		t.Fatalf("open journal: %v", err)
	}
	exec := executor.New(cfg, fsgate.NewOS(), logging.NewNop())
	if _, err := exec.Execute(context.Background(), p, writer); err != nil {
		t.Fatalf("execute: %v", err)
	}
	writer.Close()

	// A new file reappears at the original source path.
	testsupport.WriteFile(t, src.Path, 8)

	engine := rollback.New(cfg, fsgate.NewOS(), logging.NewNop())
	summary, err := engine.Rollback(context.Background(), cfg.JournalPath())
	if err != nil {
		t.Fatalf("rollback: %v", err)
	}
	if summary.Conflicts != 1 || summary.Reverted != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	info, err := os.Stat(src.Path)
	if err != nil || info.Size() != 8 {
		t.Fatalf("occupying file must be untouched, got %v %v", info, err)
	}
	if _, err := os.Stat(dest); err != nil {
		t.Fatalf("destination must remain on conflict: %v", err)
	}
}

func TestRollbackSkipsFailedOperations(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	writer, err := journal.OpenWriter(cfg.JournalPath())
	if err != nil {
		t.Fatalf("open journal: %v", err)
	}
	src := filepath.Join(cfg.Paths.InboxDir, "Show.S01E01.mkv")
	dest := filepath.Join(cfg.Paths.LibraryDir, "Show", "Season01", "Show - S01E01.mkv")
	if _, err := writer.Append("op-1", journal.PhaseBegun, src, dest, ""); err != nil {
		t.Fatalf("append: %v", err)
	}
	if _, err := writer.Append("op-1", journal.PhaseFailed, src, dest, "device unplugged"); err != nil {
		t.Fatalf("append: %v", err)
	}
	writer.Close()

	engine := rollback.New(cfg, fsgate.NewOS(), logging.NewNop())
	summary, err := engine.Rollback(context.Background(), cfg.JournalPath())
	if err != nil {
		t.Fatalf("rollback: %v", err)
	}
	if summary.Total != 0 {
		t.Fatalf("failed operations must not be reversed, got %+v", summary)
	}
}

func TestRollbackRevertsBegunOnlyWhenMoveConfirmed(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	src := filepath.Join(cfg.Paths.InboxDir, "Show.S01E01.mkv")
	dest := filepath.Join(cfg.Paths.LibraryDir, "Show", "Season01", "Show - S01E01.mkv")
	// The move happened but the process died before the committed record.
	testsupport.WriteFile(t, dest, 64)

	writer, err := journal.OpenWriter(cfg.JournalPath())
	if err != nil {
		t.Fatalf("open journal: %v", err)
	}
	if _, err := writer.Append("op-1", journal.PhaseBegun, src, dest, ""); err != nil {
		t.Fatalf("append: %v", err)
	}
	writer.Close()

	engine := rollback.New(cfg, fsgate.NewOS(), logging.NewNop())
	summary, err := engine.Rollback(context.Background(), cfg.JournalPath())
	if err != nil {
		t.Fatalf("rollback: %v", err)
	}
	if summary.Reverted != 1 {
		t.Fatalf("expected confirmed begun op reverted, got %+v", summary)
	}
	if _, err := os.Stat(src); err != nil {
		t.Fatalf("source not restored: %v", err)
	}
}

func TestRollbackIgnoresBegunWhenSourceStillPresent(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	src := filepath.Join(cfg.Paths.InboxDir, "Show.S01E01.mkv")
	dest := filepath.Join(cfg.Paths.LibraryDir, "Show", "Season01", "Show - S01E01.mkv")
	// Crash before the rename: the source never moved.
	testsupport.WriteFile(t, src, 64)

	writer, err := journal.OpenWriter(cfg.JournalPath())
	if err != nil {
		t.Fatalf("open journal: %v", err)
	}
	if _, err := writer.Append("op-1", journal.PhaseBegun, src, dest, ""); err != nil {
		t.Fatalf("append: %v", err)
	}
	writer.Close()

	engine := rollback.New(cfg, fsgate.NewOS(), logging.NewNop())
	summary, err := engine.Rollback(context.Background(), cfg.JournalPath())
	if err != nil {
		t.Fatalf("rollback: %v", err)
	}
	if summary.Total != 0 {
		t.Fatalf("unconfirmed begun op must be ignored, got %+v", summary)
	}
	if _, err := os.Stat(src); err != nil {
		t.Fatalf("source must be untouched: %v", err)
	}
}

func TestRollbackCorruptJournalIsFatal(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	if err := os.MkdirAll(cfg.Paths.LogDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	content := `{"seq":1,"ts":"2026-02-11T09:41:02Z","op_id":"op-1","phase":"begun","src":"/a","dst":"/b"}
garbage line
{"seq":3,"ts":"2026-02-11T09:41:03Z","op_id":"op-1","phase":"committed","src":"/a","dst":"/b"}
`
	if err := os.WriteFile(cfg.JournalPath(), []byte(content), 0o644); err != nil {
		t.Fatalf("write journal: %v", err)
	}

	engine := rollback.New(cfg, fsgate.NewOS(), logging.NewNop())
	if _, err := engine.Rollback(context.Background(), cfg.JournalPath()); err == nil {
		t.Fatal("expected corrupt journal error")
	}
}

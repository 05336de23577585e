package services_test

import (
	"errors"
	"strings"
	"testing"

	"mediashelf/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrIO, "executor", "move", "failed", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrIO) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"executor", "move", "failed"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapDefaultsMarker(t *testing.T) {
	err := services.Wrap(nil, "gateway", "rename", "", errors.New("eperm"))
	if !errors.Is(err, services.ErrIO) {
		t.Fatalf("expected default marker ErrIO, got %v", err)
	}
}

func TestIsFatal(t *testing.T) {
	if !services.IsFatal(services.Wrap(services.ErrConcurrentRun, "runlock", "acquire", "", nil)) {
		t.Fatal("lock contention must be fatal")
	}
	if !services.IsFatal(services.Wrap(services.ErrCorruptJournal, "journal", "parse", "line 3", nil)) {
		t.Fatal("corrupt journal must be fatal")
	}
	if services.IsFatal(services.Wrap(services.ErrIO, "executor", "move", "", errors.New("enospc"))) {
		t.Fatal("per-entry io failures must not be fatal")
	}
	if services.IsFatal(nil) {
		t.Fatal("nil error must not be fatal")
	}
}

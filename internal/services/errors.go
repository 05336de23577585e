package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConcurrentRun indicates another apply or rollback holds the run lock.
	// Fatal: the run aborts before any mutation.
	ErrConcurrentRun = errors.New("concurrent run detected")
	// ErrCorruptJournal indicates the journal cannot be trusted for replay.
	ErrCorruptJournal = errors.New("corrupt journal")
	// ErrIO marks per-entry filesystem failures that are recorded and skipped.
	ErrIO            = errors.New("io failure")
	ErrConfiguration = errors.New("configuration error")
	ErrValidation    = errors.New("validation error")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrIO
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// IsFatal reports whether an error must abort the whole run rather than be
// recorded per entry. Only conditions that compromise the journal's
// trustworthiness qualify.
func IsFatal(err error) bool {
	return errors.Is(err, ErrConcurrentRun) || errors.Is(err, ErrCorruptJournal)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}

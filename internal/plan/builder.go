package plan

import (
	"log/slog"

	"mediashelf/internal/classify"
	"mediashelf/internal/config"
	"mediashelf/internal/fsgate"
	"mediashelf/internal/logging"
	"mediashelf/internal/media"
)

// Classified pairs a scanned file with its resolved identity.
type Classified struct {
	File     media.File
	Identity classify.Identity
}

// Builder turns classified files into a move plan. It reads destination
// existence and sizes through the gateway but never mutates storage.
type Builder struct {
	cfg     *config.Config
	gateway fsgate.Gateway
	logger  *slog.Logger
}

// NewBuilder constructs a Builder.
func NewBuilder(cfg *config.Config, gateway fsgate.Gateway, logger *slog.Logger) *Builder {
	return &Builder{
		cfg:     cfg,
		gateway: gateway,
		logger:  logging.NewComponentLogger(logger, "plan"),
	}
}

// Build produces the plan for the given classified files, in input order.
// Destination claims are first-come: a later source mapping to a claimed
// destination is demoted to skip-duplicate.
func (b *Builder) Build(items []Classified) *Plan {
	claimed := make(map[string]string, len(items))
	entries := make([]Entry, 0, len(items))

	for _, item := range items {
		entries = append(entries, b.buildEntry(item, claimed))
	}

	plan := &Plan{Entries: entries}
	b.logger.Debug("plan built",
		logging.Args(
			logging.Int("entries", len(entries)),
			logging.Int("moves", plan.MoveCount()),
		)...)
	return plan
}

func (b *Builder) buildEntry(item Classified, claimed map[string]string) Entry {
	entry := Entry{Source: item.File, Identity: item.Identity}

	if !item.Identity.Resolved() {
		entry.Action = ActionQuarantine
		entry.Reason = ReasonUnresolved
		entry.Dest = b.quarantinePath(item.File)
	} else {
		entry.Action = ActionMove
		entry.Dest = b.destination(item.File, item.Identity)
	}

	switch {
	case entry.Dest == item.File.Path:
		entry.Action = ActionSkipDuplicate
		entry.Reason = ReasonAlreadyInPlace
	case claimed[entry.Dest] != "":
		entry.Action = ActionSkipDuplicate
		entry.Reason = ReasonDuplicateInPlan
		b.logger.Debug("destination collision",
			logging.Args(
				logging.String("source", item.File.Path),
				logging.String("winner", claimed[entry.Dest]),
				logging.String("dest", entry.Dest),
			)...)
	case b.existsWithSameSize(entry.Dest, item.File.Size):
		entry.Action = ActionSkipDuplicate
		entry.Reason = ReasonDuplicateOnDisk
	default:
		claimed[entry.Dest] = item.File.Path
	}

	return entry
}

// existsWithSameSize reports whether dst is already occupied by a file of
// identical size, the signal for an already-imported duplicate.
func (b *Builder) existsWithSameSize(dst string, size int64) bool {
	if !b.gateway.Exists(dst) {
		return false
	}
	existing, err := b.gateway.FileSize(dst)
	if err != nil {
		return false
	}
	return existing == size
}

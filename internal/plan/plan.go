package plan

import (
	"mediashelf/internal/classify"
	"mediashelf/internal/media"
)

// Action is the closed set of things the executor can do with an entry.
type Action string

const (
	ActionMove          Action = "move"
	ActionSkipDuplicate Action = "skip-duplicate"
	ActionQuarantine    Action = "quarantine"
)

// Reason is the closed set of explanations attached to an entry, pairing
// with Action so status consumers can assert on structure instead of text.
type Reason string

const (
	// ReasonNone marks a plain planned move.
	ReasonNone Reason = ""
	// ReasonDuplicateInPlan marks an entry demoted because an earlier entry
	// in scan order already claimed the destination.
	ReasonDuplicateInPlan Reason = "duplicate-in-plan"
	// ReasonDuplicateOnDisk marks an entry whose destination already exists
	// with identical size.
	ReasonDuplicateOnDisk Reason = "duplicate-on-disk"
	// ReasonAlreadyInPlace marks an entry whose destination equals its source.
	ReasonAlreadyInPlace Reason = "already-in-place"
	// ReasonUnresolved marks an entry routed to quarantine because its
	// identity could not be resolved.
	ReasonUnresolved Reason = "unresolved"
	// ReasonDestinationOccupied marks an entry skipped at execution time
	// because the destination appeared after planning.
	ReasonDestinationOccupied Reason = "destination-occupied"
)

// Entry is one proposed operation. Destinations across all entries of a plan
// are pairwise distinct and never equal their source.
type Entry struct {
	Source   media.File
	Identity classify.Identity
	Dest     string
	Action   Action
	Reason   Reason
}

// Plan is an ordered sequence of entries, processed in the order produced.
type Plan struct {
	Entries []Entry
}

// MoveCount returns the number of entries that will attempt a move
// (including quarantine routing).
func (p *Plan) MoveCount() int {
	count := 0
	for _, entry := range p.Entries {
		if entry.Action != ActionSkipDuplicate {
			count++
		}
	}
	return count
}

package journal

import "time"

// Phase distinguishes the lifecycle states of one journaled operation.
type Phase string

const (
	PhaseBegun     Phase = "begun"
	PhaseCommitted Phase = "committed"
	PhaseFailed    Phase = "failed"
)

// Record is one journal line. Sequence numbers increase monotonically
// within a journal file; OpID ties the begun record to its terminal record.
type Record struct {
	Seq   uint64    `json:"seq"`
	TS    time.Time `json:"ts"`
	OpID  string    `json:"op_id"`
	Phase Phase     `json:"phase"`
	Src   string    `json:"src"`
	Dst   string    `json:"dst"`
	Error string    `json:"error,omitempty"`
}

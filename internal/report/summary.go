package report

// Status is the terminal state of one entry after an apply run.
type Status string

const (
	StatusPlanned    Status = "planned"
	StatusCommitted  Status = "committed"
	StatusFailed     Status = "failed"
	StatusSkipped    Status = "skipped"
	StatusQuarantine Status = "quarantined"
)

// Row describes one plan entry for status rendering.
type Row struct {
	Source      string `json:"src"`
	Destination string `json:"dst"`
	Action      string `json:"action"`
	Reason      string `json:"reason,omitempty"`
	Status      Status `json:"status"`
	Error       string `json:"error,omitempty"`
}

// Summary aggregates an apply (or scan) run for the external reporter.
type Summary struct {
	Total       int    `json:"total"`
	Committed   int    `json:"committed"`
	Failed      int    `json:"failed"`
	Skipped     int    `json:"skipped"`
	Quarantined int    `json:"quarantined"`
	JournalPath string `json:"journal,omitempty"`
	Rows        []Row  `json:"rows"`
}

// PartialFailure reports whether the run completed but recorded failures.
func (s *Summary) PartialFailure() bool {
	return s.Failed > 0
}

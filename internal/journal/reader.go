package journal

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"mediashelf/internal/services"
)

// Read parses the journal at path into its ordered records. A malformed
// final line is treated as a crash mid-append and ignored; malformed content
// anywhere else fails with services.ErrCorruptJournal, as does a sequence
// number that does not increase.
func Read(path string) ([]Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open journal %s: %w", path, err)
	}
	defer file.Close()

	var (
		records []Record
		lastSeq uint64
		badLine int
	)

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if badLine != 0 {
			// A parse failure followed by more content is corruption, not a
			// truncated tail.
			return nil, services.Wrap(services.ErrCorruptJournal, "journal", "parse",
				fmt.Sprintf("%s: malformed record at line %d", path, badLine), nil)
		}

		var record Record
		if err := json.Unmarshal([]byte(line), &record); err != nil {
			badLine = lineNo
			continue
		}
		if record.Seq <= lastSeq {
			return nil, services.Wrap(services.ErrCorruptJournal, "journal", "parse",
				fmt.Sprintf("%s: non-increasing sequence %d at line %d", path, record.Seq, lineNo), nil)
		}
		if err := validateRecord(record); err != nil {
			badLine = lineNo
			continue
		}
		lastSeq = record.Seq
		records = append(records, record)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read journal %s: %w", path, err)
	}

	return records, nil
}

func validateRecord(record Record) error {
	if record.OpID == "" {
		return fmt.Errorf("missing op_id")
	}
	switch record.Phase {
	case PhaseBegun, PhaseCommitted, PhaseFailed:
	default:
		return fmt.Errorf("unknown phase %q", record.Phase)
	}
	if record.Src == "" || record.Dst == "" {
		return fmt.Errorf("missing src or dst")
	}
	return nil
}

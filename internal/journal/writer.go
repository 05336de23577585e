package journal

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Writer appends records to a journal file. Appends are durable: the file is
// synced after every record so the journal is always consistent with the
// moves that have actually been attempted.
type Writer struct {
	path string
	file *os.File
	seq  uint64
}

// OpenWriter opens (or creates) the journal at path for appending. When the
// file already holds records, sequence numbering resumes after the highest
// existing value.
func OpenWriter(path string) (*Writer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create journal directory: %w", err)
	}

	seq := uint64(0)
	records, err := Read(path)
	switch {
	case err == nil:
		for _, record := range records {
			if record.Seq > seq {
				seq = record.Seq
			}
		}
		if err := recoverTornTail(path); err != nil {
			return nil, err
		}
	case os.IsNotExist(err) || errors.Is(err, fs.ErrNotExist):
		// Fresh journal.
	default:
		// Appending to a journal that cannot be parsed would bury the
		// corruption; refuse instead.
		return nil, err
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open journal %s: %w", path, err)
	}
	return &Writer{path: path, file: file, seq: seq}, nil
}

// recoverTornTail truncates a record that a crash left half-written at the
// end of the journal. Read tolerates such a tail, but appending after it
// would glue the next record onto the unterminated line and turn a survivable
// crash into mid-file corruption. Only bytes past the last complete record
// are ever removed.
func recoverTornTail(path string) error {
	file, err := os.OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		return fmt.Errorf("open journal %s: %w", path, err)
	}
	defer file.Close()

	reader := bufio.NewReader(file)
	var keep, offset int64
	for {
		line, readErr := reader.ReadString('\n')
		offset += int64(len(line))

		trimmed := strings.TrimSpace(line)
		valid := trimmed == ""
		if !valid {
			var record Record
			if json.Unmarshal([]byte(trimmed), &record) == nil && validateRecord(record) == nil {
				valid = true
			}
		}
		if readErr == nil && valid {
			keep = offset
		}
		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				break
			}
			return fmt.Errorf("read journal %s: %w", path, readErr)
		}
	}
	if keep == offset {
		return nil
	}
	if err := os.Truncate(path, keep); err != nil {
		return fmt.Errorf("truncate torn journal tail %s: %w", path, err)
	}
	return nil
}

// Append writes one record and syncs it to disk before returning. The
// record's Seq and TS fields are assigned by the writer.
func (w *Writer) Append(opID string, phase Phase, src, dst, errText string) (Record, error) {
	w.seq++
	record := Record{
		Seq:   w.seq,
		TS:    time.Now().UTC(),
		OpID:  opID,
		Phase: phase,
		Src:   src,
		Dst:   dst,
		Error: errText,
	}

	line, err := json.Marshal(record)
	if err != nil {
		return Record{}, fmt.Errorf("marshal journal record: %w", err)
	}
	line = append(line, '\n')

	if _, err := w.file.Write(line); err != nil {
		return Record{}, fmt.Errorf("append journal record: %w", err)
	}
	if err := w.file.Sync(); err != nil {
		return Record{}, fmt.Errorf("sync journal: %w", err)
	}
	return record, nil
}

// Path returns the journal file location.
func (w *Writer) Path() string { return w.path }

// Close releases the journal file handle.
func (w *Writer) Close() error {
	if w.file == nil {
		return nil
	}
	err := w.file.Close()
	w.file = nil
	return err
}

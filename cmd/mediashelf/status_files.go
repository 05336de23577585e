package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"mediashelf/internal/report"
)

// writeStatusFiles persists the run summary next to the given base path as
// BASE.json and BASE.csv for external tooling.
func writeStatusFiles(base string, summary *report.Summary) error {
	if err := os.MkdirAll(filepath.Dir(base), 0o755); err != nil {
		return fmt.Errorf("create status directory: %w", err)
	}
	if err := writeStatusJSON(base+".json", summary); err != nil {
		return err
	}
	return writeStatusCSV(base+".csv", summary)
}

func writeStatusJSON(path string, summary *report.Summary) error {
	encoded, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("encode status: %w", err)
	}
	encoded = append(encoded, '\n')
	if err := os.WriteFile(path, encoded, 0o644); err != nil {
		return fmt.Errorf("write status json: %w", err)
	}
	return nil
}

func writeStatusCSV(path string, summary *report.Summary) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create status csv: %w", err)
	}
	if err := writeCSVRows(file, summary); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

func writeCSVRows(file *os.File, summary *report.Summary) error {
	writer := csv.NewWriter(file)
	if err := writer.Write([]string{"src", "dst", "action", "reason", "status", "error"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range summary.Rows {
		record := []string{
			row.Source,
			row.Destination,
			row.Action,
			row.Reason,
			string(row.Status),
			row.Error,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush status csv: %w", err)
	}
	return nil
}

package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// WriteCSV encodes the table with a header row. Nil cells encode as empty
// fields.
func (t Table) WriteCSV(w io.Writer) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(t.Columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for i, row := range t.Rows {
		record := make([]string, len(row))
		for j, cell := range row {
			record[j] = formatCell(cell)
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write csv row %d: %w", i, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func formatCell(cell any) string {
	if cell == nil {
		return ""
	}
	return fmt.Sprintf("%v", cell)
}

// WriteTableFile persists a table as indented JSON.
func WriteTableFile(path string, table Table) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("table file path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(table, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}

// ReadTableFile loads a table persisted by WriteTableFile.
func ReadTableFile(path string) (Table, error) {
	if strings.TrimSpace(path) == "" {
		return Table{}, fmt.Errorf("table file path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Table{}, err
	}
	var table Table
	if err := json.Unmarshal(data, &table); err != nil {
		return Table{}, err
	}
	return table, nil
}

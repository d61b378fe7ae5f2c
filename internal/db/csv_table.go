package db

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// CSVTable is a flat file with a header row held fully in memory. Every
// append rewrites the whole file; there is no locking, so a single writer
// is assumed.
type CSVTable struct {
	path   string
	header []string
	rows   [][]string
}

// OpenCSVTable loads path, creating it with the given header and no rows
// when it does not exist. An existing file keeps its own column order;
// canonical columns missing from it are added on the next flush.
func OpenCSVTable(path string, header []string) (*CSVTable, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create table directory: %w", err)
	}

	table := &CSVTable{path: path}
	file, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		table.header = append([]string(nil), header...)
		if err := table.Flush(); err != nil {
			return nil, err
		}
		return table, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open table %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	fileHeader, err := reader.Read()
	if errors.Is(err, io.EOF) {
		table.header = append([]string(nil), header...)
		return table, table.Flush()
	}
	if err != nil {
		return nil, fmt.Errorf("read table header %s: %w", path, err)
	}
	table.header = normalizeHeader(fileHeader)

	for _, column := range header {
		if table.columnIndex(column) < 0 {
			table.header = append(table.header, column)
		}
	}

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read table %s: %w", path, err)
		}
		table.rows = append(table.rows, padRow(row, len(table.header)))
	}

	return table, nil
}

func (table *CSVTable) Path() string {
	return table.path
}

func (table *CSVTable) Len() int {
	return len(table.rows)
}

// Rows returns every row keyed by column name, in file order.
func (table *CSVTable) Rows() ([]map[string]string, error) {
	records := make([]map[string]string, 0, len(table.rows))
	for _, row := range table.rows {
		record := make(map[string]string, len(table.header))
		for index, column := range table.header {
			record[column] = row[index]
		}
		records = append(records, record)
	}
	return records, nil
}

// Append adds the row in memory and flushes. When the flush fails the row
// stays in memory and the error is returned; a later flush retries it.
func (table *CSVTable) Append(record map[string]string) error {
	row := make([]string, len(table.header))
	for index, column := range table.header {
		row[index] = record[column]
	}
	table.rows = append(table.rows, row)
	return table.Flush()
}

// Flush rewrites the file through a temporary sibling and a rename.
func (table *CSVTable) Flush() error {
	directory := filepath.Dir(table.path)
	temporary, err := os.CreateTemp(directory, "."+filepath.Base(table.path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("flush table %s: %w", table.path, err)
	}
	temporaryPath := temporary.Name()
	cleanup := func() {
		_ = temporary.Close()
		_ = os.Remove(temporaryPath)
	}

	writer := csv.NewWriter(temporary)
	if err := writer.Write(table.header); err != nil {
		cleanup()
		return fmt.Errorf("flush table %s: %w", table.path, err)
	}
	if err := writer.WriteAll(table.rows); err != nil {
		cleanup()
		return fmt.Errorf("flush table %s: %w", table.path, err)
	}
	if err := temporary.Close(); err != nil {
		_ = os.Remove(temporaryPath)
		return fmt.Errorf("flush table %s: %w", table.path, err)
	}
	if err := os.Rename(temporaryPath, table.path); err != nil {
		_ = os.Remove(temporaryPath)
		return fmt.Errorf("flush table %s: %w", table.path, err)
	}
	return nil
}

func (table *CSVTable) columnIndex(column string) int {
	for index, existing := range table.header {
		if existing == column {
			return index
		}
	}
	return -1
}

func normalizeHeader(header []string) []string {
	normalized := make([]string, len(header))
	for index, column := range header {
		column = strings.TrimSpace(column)
		if index == 0 {
			column = strings.TrimPrefix(column, "\ufeff")
		}
		normalized[index] = column
	}
	return normalized
}

func padRow(row []string, width int) []string {
	if len(row) >= width {
		return row[:width]
	}
	padded := make([]string, width)
	copy(padded, row)
	return padded
}

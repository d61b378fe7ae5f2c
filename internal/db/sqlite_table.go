package db

import (
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"
)

// SQLiteTable stores rows in a SQLite table whose columns mirror the flat
// file layout. Rows come back in insertion order.
type SQLiteTable struct {
	database *gorm.DB
	name     string
	columns  []string
}

func NewSQLiteTable(database *gorm.DB, name string, columns []string) *SQLiteTable {
	return &SQLiteTable{
		database: database,
		name:     name,
		columns:  append([]string(nil), columns...),
	}
}

func (table *SQLiteTable) Rows() ([]map[string]string, error) {
	rows := make([]map[string]any, 0)
	if err := table.database.Table(table.name).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list %s: %w", table.name, err)
	}

	records := make([]map[string]string, 0, len(rows))
	for _, row := range rows {
		record := make(map[string]string, len(table.columns))
		for _, column := range table.columns {
			record[column] = stringifyColumnValue(row[column])
		}
		records = append(records, record)
	}
	return records, nil
}

func (table *SQLiteTable) Append(record map[string]string) error {
	values := make(map[string]any, len(table.columns))
	for _, column := range table.columns {
		values[column] = record[column]
	}
	if err := table.database.Table(table.name).Create(values).Error; err != nil {
		return fmt.Errorf("insert into %s: %w", table.name, err)
	}
	return nil
}

// Flush is a no-op: every Append is already committed.
func (table *SQLiteTable) Flush() error {
	return nil
}

func stringifyColumnValue(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	case []byte:
		return string(typed)
	case int64:
		return strconv.FormatInt(typed, 10)
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case time.Time:
		return typed.Format(time.RFC3339)
	default:
		return fmt.Sprint(typed)
	}
}

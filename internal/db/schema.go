package db

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

//go:embed schema.sql
var schemaSQL string

// ensureSchema creates the journal tables when missing. It is idempotent
// and does not alter existing tables.
func ensureSchema(database *gorm.DB) error {
	statements := splitSQLStatements(schemaSQL)
	if len(statements) == 0 {
		return errors.New("schema has no SQL statements")
	}

	return database.Transaction(func(tx *gorm.DB) error {
		for _, statement := range statements {
			if err := tx.Exec(statement).Error; err != nil {
				return fmt.Errorf("execute schema statement %q: %w", statement, err)
			}
		}
		return nil
	})
}

func splitSQLStatements(sqlText string) []string {
	rawParts := strings.Split(sqlText, ";")
	statements := make([]string, 0, len(rawParts))
	for _, rawPart := range rawParts {
		statement := strings.TrimSpace(rawPart)
		if statement == "" {
			continue
		}
		statements = append(statements, statement)
	}
	return statements
}

package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// ColumnType represents expected column schema
type ColumnType struct {
	Name     string
	DataType string
}

// TableSchema represents expected table structure
type TableSchema struct {
	Name    string
	Columns []ColumnType
}

// SchemaGuard validates that the question/answer tables the service depends
// on exist with the expected column types before traffic is served.
type SchemaGuard struct {
	db *sql.DB
}

// NewSchemaGuard creates a new schema guard
func NewSchemaGuard(db *sql.DB) *SchemaGuard {
	return &SchemaGuard{db: db}
}

// QATables describes the schema this service owns: questions, answers and
// the answer photo table, linked by cascading foreign keys.
func QATables() []TableSchema {
	return []TableSchema{
		{
			Name: "questions",
			Columns: []ColumnType{
				{Name: "id", DataType: "int"},
				{Name: "product_id", DataType: "int"},
				{Name: "body", DataType: "text"},
				{Name: "date_written", DataType: "bigint"},
				{Name: "asker_name", DataType: "varchar"},
				{Name: "asker_email", DataType: "varchar"},
				{Name: "reported", DataType: "int"},
				{Name: "helpful", DataType: "int"},
			},
		},
		{
			Name: "answers",
			Columns: []ColumnType{
				{Name: "id", DataType: "int"},
				{Name: "question_id", DataType: "int"},
				{Name: "body", DataType: "text"},
				{Name: "date_written", DataType: "bigint"},
				{Name: "answerer_name", DataType: "varchar"},
				{Name: "answerer_email", DataType: "varchar"},
				{Name: "reported", DataType: "int"},
				{Name: "helpful", DataType: "int"},
			},
		},
		{
			Name: "answers_photos",
			Columns: []ColumnType{
				{Name: "id", DataType: "int"},
				{Name: "answer_id", DataType: "int"},
				{Name: "url", DataType: "text"},
			},
		},
	}
}

// ValidateTable validates a table's schema
func (sg *SchemaGuard) ValidateTable(schema TableSchema) error {
	query := `
		SELECT COLUMN_NAME, DATA_TYPE
		FROM INFORMATION_SCHEMA.COLUMNS
		WHERE TABLE_SCHEMA = DATABASE()
		AND TABLE_NAME = ?
		ORDER BY ORDINAL_POSITION
	`

	rows, err := sg.db.Query(query, schema.Name)
	if err != nil {
		return fmt.Errorf("failed to query table schema for %s: %w", schema.Name, err)
	}
	defer rows.Close()

	actual := make(map[string]string)
	for rows.Next() {
		var colName, dataType string
		if err := rows.Scan(&colName, &dataType); err != nil {
			return fmt.Errorf("failed to scan column info: %w", err)
		}
		actual[colName] = dataType
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating columns of %s: %w", schema.Name, err)
	}

	if len(actual) == 0 {
		return fmt.Errorf("table %s does not exist or has no columns", schema.Name)
	}

	for _, col := range schema.Columns {
		dataType, exists := actual[col.Name]
		if !exists {
			return fmt.Errorf("table %s missing expected column: %s", schema.Name, col.Name)
		}
		// Base type match so varchar(255) satisfies varchar
		if !strings.HasPrefix(strings.ToLower(dataType), col.DataType) {
			return fmt.Errorf("table %s column %s has type %s, expected %s",
				schema.Name, col.Name, dataType, col.DataType)
		}
	}

	return nil
}

// ValidateTables validates multiple tables
func (sg *SchemaGuard) ValidateTables(schemas []TableSchema) error {
	for _, schema := range schemas {
		if err := sg.ValidateTable(schema); err != nil {
			return err
		}
	}
	return nil
}

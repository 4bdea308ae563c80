package builder

import (
	"fmt"
	"strings"

	"github.com/quarrydb/quarry/internal/dialect"
	"github.com/quarrydb/quarry/internal/validate"
	"github.com/quarrydb/quarry/internal/value"
)

// InsertBuilder assembles an INSERT statement. Every value row consumes one
// placeholder per column, rows in order, one shared advancing index.
type InsertBuilder struct {
	dialect   dialect.Dialect
	table     string
	columns   []string
	rows      [][]value.Value
	returning []string
}

// NewInsert creates an INSERT builder for the given table.
// Panics if the table name is not a valid SQL identifier.
func NewInsert(d dialect.Dialect, table string) *InsertBuilder {
	validate.MustIdentifier(table, "table")
	return &InsertBuilder{dialect: d, table: table}
}

// PostgresInsert creates an INSERT builder for the Postgres dialect.
func PostgresInsert(table string) *InsertBuilder {
	return NewInsert(dialect.Postgres{}, table)
}

// SQLiteInsert creates an INSERT builder for the SQLite dialect.
func SQLiteInsert(table string) *InsertBuilder {
	return NewInsert(dialect.SQLite{}, table)
}

// Columns sets the insertion columns.
// Panics if any column is not a valid SQL identifier.
func (b *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	for _, col := range columns {
		validate.MustIdentifier(col, "column")
	}
	b.columns = columns
	return b
}

// Values adds one row, in column order.
func (b *InsertBuilder) Values(row ...value.Value) *InsertBuilder {
	b.rows = append(b.rows, row)
	return b
}

// Rows adds multiple rows.
func (b *InsertBuilder) Rows(rows [][]value.Value) *InsertBuilder {
	b.rows = append(b.rows, rows...)
	return b
}

// Returning adds a RETURNING clause.
// Panics if any column is not a valid SQL identifier.
func (b *InsertBuilder) Returning(columns ...string) *InsertBuilder {
	for _, col := range columns {
		validate.MustIdentifier(col, "returning column")
	}
	b.returning = columns
	return b
}

// Build assembles the statement.
func (b *InsertBuilder) Build() QueryResult {
	var sql strings.Builder
	var params []value.Value
	paramIdx := 1

	fmt.Fprintf(&sql, "INSERT INTO %s (%s)", b.table, strings.Join(b.columns, ", "))

	rowGroups := make([]string, 0, len(b.rows))
	for _, row := range b.rows {
		placeholders := make([]string, len(row))
		for i, v := range row {
			placeholders[i] = b.dialect.Param(paramIdx)
			params = append(params, v)
			paramIdx++
		}
		rowGroups = append(rowGroups, "("+strings.Join(placeholders, ", ")+")")
	}
	fmt.Fprintf(&sql, " VALUES %s", strings.Join(rowGroups, ", "))

	if len(b.returning) > 0 {
		fmt.Fprintf(&sql, " RETURNING %s", strings.Join(b.returning, ", "))
	}

	return QueryResult{SQL: sql.String(), Params: params}
}

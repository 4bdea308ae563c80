package builder

import (
	"fmt"
	"strings"

	"github.com/quarrydb/quarry/internal/dialect"
	"github.com/quarrydb/quarry/internal/filter"
	"github.com/quarrydb/quarry/internal/validate"
	"github.com/quarrydb/quarry/internal/value"
)

// Assignment is one SET column/value pair.
type Assignment struct {
	Column string
	Value  value.Value
}

// UpdateBuilder assembles an UPDATE statement. SET assignments parameterize
// in declared order before WHERE compilation continues the index.
type UpdateBuilder struct {
	dialect    dialect.Dialect
	table      string
	sets       []Assignment
	filters    []filter.Filter
	filterExpr filter.Expr
	returning  []string
}

// NewUpdate creates an UPDATE builder for the given table.
// Panics if the table name is not a valid SQL identifier.
func NewUpdate(d dialect.Dialect, table string) *UpdateBuilder {
	validate.MustIdentifier(table, "table")
	return &UpdateBuilder{dialect: d, table: table}
}

// PostgresUpdate creates an UPDATE builder for the Postgres dialect.
func PostgresUpdate(table string) *UpdateBuilder {
	return NewUpdate(dialect.Postgres{}, table)
}

// SQLiteUpdate creates an UPDATE builder for the SQLite dialect.
func SQLiteUpdate(table string) *UpdateBuilder {
	return NewUpdate(dialect.SQLite{}, table)
}

// Set assigns a value to a column.
// Panics if the column is not a valid SQL identifier.
func (b *UpdateBuilder) Set(column string, val value.Value) *UpdateBuilder {
	validate.MustIdentifier(column, "column")
	b.sets = append(b.sets, Assignment{Column: column, Value: val})
	return b
}

// SetAll appends multiple assignments in order.
// Panics if any column is not a valid SQL identifier.
func (b *UpdateBuilder) SetAll(assignments []Assignment) *UpdateBuilder {
	for _, a := range assignments {
		validate.MustIdentifier(a.Column, "column")
	}
	b.sets = append(b.sets, assignments...)
	return b
}

// Filter adds a simple WHERE condition.
// Panics if the field is not a valid SQL identifier.
func (b *UpdateBuilder) Filter(field string, op value.Operator, val value.Value) *UpdateBuilder {
	validate.MustIdentifier(field, "filter field")
	b.filters = append(b.filters, filter.Filter{Field: field, Op: op, Value: val})
	return b
}

// FilterExpr sets the compound WHERE expression. Use the filter package's
// Simple, And, Or, Not helpers.
func (b *UpdateBuilder) FilterExpr(expr filter.Expr) *UpdateBuilder {
	b.filterExpr = expr
	return b
}

// Returning adds a RETURNING clause.
// Panics if any column is not a valid SQL identifier.
func (b *UpdateBuilder) Returning(columns ...string) *UpdateBuilder {
	for _, col := range columns {
		validate.MustIdentifier(col, "returning column")
	}
	b.returning = columns
	return b
}

// Build assembles the statement.
func (b *UpdateBuilder) Build() QueryResult {
	var sql strings.Builder
	var params []value.Value
	paramIdx := 1

	fmt.Fprintf(&sql, "UPDATE %s SET ", b.table)

	setParts := make([]string, len(b.sets))
	for i, a := range b.sets {
		setParts[i] = fmt.Sprintf("%s = %s", a.Column, b.dialect.Param(paramIdx))
		params = append(params, a.Value)
		paramIdx++
	}
	sql.WriteString(strings.Join(setParts, ", "))

	where := newWhereState(b.dialect, paramIdx)
	if b.filterExpr != nil {
		where.addExpr(b.filterExpr)
	}
	where.addFilters(b.filters)
	sql.WriteString(where.clause())
	params = append(params, where.params...)

	if len(b.returning) > 0 {
		fmt.Fprintf(&sql, " RETURNING %s", strings.Join(b.returning, ", "))
	}

	return QueryResult{SQL: sql.String(), Params: params}
}

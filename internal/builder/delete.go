package builder

import (
	"fmt"
	"strings"

	"github.com/quarrydb/quarry/internal/dialect"
	"github.com/quarrydb/quarry/internal/filter"
	"github.com/quarrydb/quarry/internal/validate"
	"github.com/quarrydb/quarry/internal/value"
)

// DeleteBuilder assembles a DELETE statement.
type DeleteBuilder struct {
	dialect    dialect.Dialect
	table      string
	filters    []filter.Filter
	filterExpr filter.Expr
	returning  []string
}

// NewDelete creates a DELETE builder for the given table.
// Panics if the table name is not a valid SQL identifier.
func NewDelete(d dialect.Dialect, table string) *DeleteBuilder {
	validate.MustIdentifier(table, "table")
	return &DeleteBuilder{dialect: d, table: table}
}

// PostgresDelete creates a DELETE builder for the Postgres dialect.
func PostgresDelete(table string) *DeleteBuilder {
	return NewDelete(dialect.Postgres{}, table)
}

// SQLiteDelete creates a DELETE builder for the SQLite dialect.
func SQLiteDelete(table string) *DeleteBuilder {
	return NewDelete(dialect.SQLite{}, table)
}

// Filter adds a simple WHERE condition.
// Panics if the field is not a valid SQL identifier.
func (b *DeleteBuilder) Filter(field string, op value.Operator, val value.Value) *DeleteBuilder {
	validate.MustIdentifier(field, "filter field")
	b.filters = append(b.filters, filter.Filter{Field: field, Op: op, Value: val})
	return b
}

// FilterExpr sets the compound WHERE expression.
func (b *DeleteBuilder) FilterExpr(expr filter.Expr) *DeleteBuilder {
	b.filterExpr = expr
	return b
}

// Returning adds a RETURNING clause.
// Panics if any column is not a valid SQL identifier.
func (b *DeleteBuilder) Returning(columns ...string) *DeleteBuilder {
	for _, col := range columns {
		validate.MustIdentifier(col, "returning column")
	}
	b.returning = columns
	return b
}

// Build assembles the statement.
func (b *DeleteBuilder) Build() QueryResult {
	var sql strings.Builder

	fmt.Fprintf(&sql, "DELETE FROM %s", b.table)

	where := newWhereState(b.dialect, 1)
	if b.filterExpr != nil {
		where.addExpr(b.filterExpr)
	}
	where.addFilters(b.filters)
	sql.WriteString(where.clause())

	if len(b.returning) > 0 {
		fmt.Fprintf(&sql, " RETURNING %s", strings.Join(b.returning, ", "))
	}

	return QueryResult{SQL: sql.String(), Params: where.params}
}

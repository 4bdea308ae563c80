package builder

import (
	"fmt"
	"strings"

	"github.com/quarrydb/quarry/internal/cursor"
	"github.com/quarrydb/quarry/internal/dialect"
	"github.com/quarrydb/quarry/internal/filter"
	"github.com/quarrydb/quarry/internal/validate"
	"github.com/quarrydb/quarry/internal/value"
)

type cursorDirection int

const (
	cursorAfter cursorDirection = iota + 1
	cursorBefore
)

// SelectBuilder assembles a SELECT statement. Builders are consumed by a
// single Build call and must not be reused afterwards.
type SelectBuilder struct {
	dialect    dialect.Dialect
	table      string
	fields     []string
	computed   []ComputedField
	aggregates []Aggregate
	filters    []filter.Filter
	filterExpr filter.Expr
	groupBy    []string
	having     filter.Expr
	sorts      []value.SortField
	limit      *int
	offset     *int
	cursor     *cursor.Cursor
	cursorDir  cursorDirection
}

// NewSelect creates a SELECT builder for the given table.
// Panics if the table name is not a valid SQL identifier.
func NewSelect(d dialect.Dialect, table string) *SelectBuilder {
	validate.MustIdentifier(table, "table")
	return &SelectBuilder{dialect: d, table: table}
}

// Postgres creates a SELECT builder for the Postgres dialect.
func Postgres(table string) *SelectBuilder {
	return NewSelect(dialect.Postgres{}, table)
}

// SQLite creates a SELECT builder for the SQLite dialect.
func SQLite(table string) *SelectBuilder {
	return NewSelect(dialect.SQLite{}, table)
}

// Fields sets the columns to select. With no fields, computed fields, or
// aggregates, the statement selects *.
// Panics if any field is not a valid SQL identifier.
func (b *SelectBuilder) Fields(fields ...string) *SelectBuilder {
	for _, f := range fields {
		validate.MustIdentifier(f, "field")
	}
	b.fields = fields
	return b
}

// Computed adds a computed field, e.g.
//
//	Computed("full_name", "first_name || ' ' || last_name")
//
// Panics if the alias is invalid or the expression contains dangerous
// patterns. Only use trusted expressions from code.
func (b *SelectBuilder) Computed(alias, expression string) *SelectBuilder {
	b.computed = append(b.computed, NewComputed(alias, expression))
	return b
}

// Aggregate adds an aggregate term to the SELECT list.
func (b *SelectBuilder) Aggregate(agg Aggregate) *SelectBuilder {
	b.aggregates = append(b.aggregates, agg)
	return b
}

// Count adds a COUNT(*) aggregation.
func (b *SelectBuilder) Count() *SelectBuilder {
	return b.Aggregate(Count())
}

// Sum adds a SUM(field) aggregation.
func (b *SelectBuilder) Sum(field string) *SelectBuilder {
	return b.Aggregate(Sum(field))
}

// Avg adds an AVG(field) aggregation.
func (b *SelectBuilder) Avg(field string) *SelectBuilder {
	return b.Aggregate(Avg(field))
}

// Min adds a MIN(field) aggregation.
func (b *SelectBuilder) Min(field string) *SelectBuilder {
	return b.Aggregate(Min(field))
}

// Max adds a MAX(field) aggregation.
func (b *SelectBuilder) Max(field string) *SelectBuilder {
	return b.Aggregate(Max(field))
}

// Filter adds a simple WHERE condition. Use with filter.MergeFilters output
// for trusted+user filter lists.
// Panics if the field is not a valid SQL identifier.
func (b *SelectBuilder) Filter(field string, op value.Operator, val value.Value) *SelectBuilder {
	validate.MustIdentifier(field, "filter field")
	b.filters = append(b.filters, filter.Filter{Field: field, Op: op, Value: val})
	return b
}

// Filters adds pre-built simple filters in order.
func (b *SelectBuilder) Filters(filters []filter.Filter) *SelectBuilder {
	b.filters = append(b.filters, filters...)
	return b
}

// FilterExpr sets the compound filter expression. It compiles before any
// simple filters in the WHERE clause.
func (b *SelectBuilder) FilterExpr(expr filter.Expr) *SelectBuilder {
	b.filterExpr = expr
	return b
}

// And sets the filter expression to an AND of the given expressions.
func (b *SelectBuilder) And(exprs ...filter.Expr) *SelectBuilder {
	return b.FilterExpr(filter.And(exprs...))
}

// Or sets the filter expression to an OR of the given expressions.
func (b *SelectBuilder) Or(exprs ...filter.Expr) *SelectBuilder {
	return b.FilterExpr(filter.Or(exprs...))
}

// GroupBy sets the grouping fields.
// Panics if any field is not a valid SQL identifier.
func (b *SelectBuilder) GroupBy(fields ...string) *SelectBuilder {
	for _, f := range fields {
		validate.MustIdentifier(f, "group by field")
	}
	b.groupBy = fields
	return b
}

// Having sets the HAVING filter expression for aggregated results.
func (b *SelectBuilder) Having(expr filter.Expr) *SelectBuilder {
	b.having = expr
	return b
}

// Sort adds one ORDER BY field.
// Panics if the field is not a valid SQL identifier.
func (b *SelectBuilder) Sort(field string, dir value.SortDir) *SelectBuilder {
	validate.MustIdentifier(field, "sort field")
	b.sorts = append(b.sorts, value.SortField{Field: field, Dir: dir})
	return b
}

// Sorts adds pre-parsed sort fields (see ParseSortString).
func (b *SelectBuilder) Sorts(sorts []value.SortField) *SelectBuilder {
	b.sorts = append(b.sorts, sorts...)
	return b
}

// Page sets pagination from a 1-indexed page number and limit. Page numbers
// below 1 saturate to offset 0.
func (b *SelectBuilder) Page(page, limit int) *SelectBuilder {
	offset := 0
	if page > 1 {
		offset = (page - 1) * limit
	}
	return b.LimitOffset(limit, offset)
}

// LimitOffset sets both LIMIT and OFFSET.
func (b *SelectBuilder) LimitOffset(limit, offset int) *SelectBuilder {
	b.limit = &limit
	b.offset = &offset
	return b
}

// Limit sets LIMIT without OFFSET.
func (b *SelectBuilder) Limit(limit int) *SelectBuilder {
	b.limit = &limit
	return b
}

// Offset sets OFFSET without LIMIT.
func (b *SelectBuilder) Offset(offset int) *SelectBuilder {
	b.offset = &offset
	return b
}

// AfterCursor paginates forward from a cursor position. It accepts a
// *cursor.Cursor, a cursor.Cursor, a token string, or a *string (an absent
// or invalid cursor is silently ignored, so request query parameters can be
// passed straight through).
func (b *SelectBuilder) AfterCursor(v any) *SelectBuilder {
	if c, ok := cursor.From(v); ok {
		b.cursor = c
		b.cursorDir = cursorAfter
	}
	return b
}

// BeforeCursor paginates backward from a cursor position, with the same
// input flexibility as AfterCursor.
func (b *SelectBuilder) BeforeCursor(v any) *SelectBuilder {
	if c, ok := cursor.From(v); ok {
		b.cursor = c
		b.cursorDir = cursorBefore
	}
	return b
}

// Build assembles the statement. WHERE conditions are ANDed in fixed order:
// the filter expression, then simple filters, then the cursor condition,
// each advancing the shared placeholder index. HAVING continues the index
// but nothing after it parameterizes.
func (b *SelectBuilder) Build() QueryResult {
	var sql strings.Builder

	selectParts := make([]string, 0, len(b.fields)+len(b.computed)+len(b.aggregates))
	selectParts = append(selectParts, b.fields...)
	for _, comp := range b.computed {
		selectParts = append(selectParts, comp.SQL())
	}
	for _, agg := range b.aggregates {
		selectParts = append(selectParts, agg.SQL())
	}

	selectList := "*"
	if len(selectParts) > 0 {
		selectList = strings.Join(selectParts, ", ")
	}
	fmt.Fprintf(&sql, "SELECT %s FROM %s", selectList, b.table)

	where := newWhereState(b.dialect, 1)
	if b.filterExpr != nil {
		where.addExpr(b.filterExpr)
	}
	where.addFilters(b.filters)
	if expr, ok := b.cursorCondition(); ok {
		where.addExpr(expr)
	}
	sql.WriteString(where.clause())
	params := where.params
	paramIdx := where.idx

	if len(b.groupBy) > 0 {
		fmt.Fprintf(&sql, " GROUP BY %s", strings.Join(b.groupBy, ", "))
	}

	// HAVING continues the shared index; its resulting index is discarded
	// because ORDER BY/LIMIT/OFFSET never parameterize.
	if b.having != nil {
		condition, havingParams, _ := filter.Compile(b.dialect, b.having, paramIdx)
		fmt.Fprintf(&sql, " HAVING %s", condition)
		params = append(params, havingParams...)
	}

	if len(b.sorts) > 0 {
		sortParts := make([]string, len(b.sorts))
		for i, s := range b.sorts {
			sortParts[i] = s.Field + " " + s.Dir.SQL()
		}
		fmt.Fprintf(&sql, " ORDER BY %s", strings.Join(sortParts, ", "))
	}

	if b.limit != nil {
		fmt.Fprintf(&sql, " LIMIT %d", *b.limit)
	}
	if b.offset != nil {
		fmt.Fprintf(&sql, " OFFSET %d", *b.offset)
	}

	return QueryResult{SQL: sql.String(), Params: params}
}

// cursorCondition builds the keyset expression for the configured cursor.
// With no declared sorts, the cursor's own fields are used in ascending
// order. An unmatched sort field aborts: no condition is added.
func (b *SelectBuilder) cursorCondition() (filter.Expr, bool) {
	if b.cursor == nil || b.cursorDir == 0 {
		return nil, false
	}

	sorts := b.sorts
	if len(sorts) == 0 {
		// Field names come from the decoded token here, not from code, so
		// they are untrusted. A name that is not a valid identifier drops
		// the whole condition; tokens are best-effort input.
		sorts = make([]value.SortField, 0, len(b.cursor.Fields))
		for _, f := range b.cursor.Fields {
			if !validate.IsValidIdentifier(f.Name) {
				return nil, false
			}
			sorts = append(sorts, value.SortField{Field: f.Name, Dir: value.Asc})
		}
	}

	var (
		k  *cursor.KeysetCondition
		ok bool
	)
	if b.cursorDir == cursorAfter {
		k, ok = cursor.After(sorts, b.cursor)
	} else {
		k, ok = cursor.Before(sorts, b.cursor)
	}
	if !ok {
		return nil, false
	}
	return k.Expr(), true
}

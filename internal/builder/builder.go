package builder

import (
	"strings"

	"github.com/quarrydb/quarry/internal/dialect"
	"github.com/quarrydb/quarry/internal/filter"
	"github.com/quarrydb/quarry/internal/value"
)

// QueryResult is the sole output of every builder: dialect-specific
// parameterized SQL text plus the ordered params whose nth element matches
// the nth placeholder. No value is ever inlined into SQL.
type QueryResult struct {
	SQL    string
	Params []value.Value
}

// whereState accumulates WHERE conditions while threading the shared
// placeholder index across the filter expression, simple filters, and the
// cursor condition.
type whereState struct {
	dialect    dialect.Dialect
	conditions []string
	params     []value.Value
	idx        int
}

func newWhereState(d dialect.Dialect, startIdx int) *whereState {
	return &whereState{dialect: d, idx: startIdx}
}

// addExpr compiles a filter expression and appends its condition.
func (w *whereState) addExpr(expr filter.Expr) {
	condition, params, nextIdx := filter.Compile(w.dialect, expr, w.idx)
	if condition == "" {
		return
	}
	w.conditions = append(w.conditions, condition)
	w.params = append(w.params, params...)
	w.idx = nextIdx
}

// addFilters compiles simple filters in order, one condition each.
func (w *whereState) addFilters(filters []filter.Filter) {
	for _, f := range filters {
		w.addExpr(f)
	}
}

// clause renders " WHERE ..." with conditions ANDed, or "" when empty.
func (w *whereState) clause() string {
	if len(w.conditions) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conditions, " AND ")
}

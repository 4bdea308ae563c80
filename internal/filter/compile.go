package filter

import (
	"fmt"
	"strings"

	"github.com/quarrydb/quarry/internal/dialect"
	"github.com/quarrydb/quarry/internal/value"
)

// Compile turns a filter expression into a SQL fragment, its parameters, and
// the next free placeholder index. startIdx is 1-based. Compilation never
// fails: malformed input degrades to safe SQL (see the BETWEEN arity rule).
func Compile(d dialect.Dialect, expr Expr, startIdx int) (string, []value.Value, int) {
	switch e := expr.(type) {
	case Filter:
		return compileCondition(d, e, startIdx)
	case Compound:
		return compileCompound(d, e, startIdx)
	default:
		return "", nil, startIdx
	}
}

func compileCompound(d dialect.Dialect, compound Compound, startIdx int) (string, []value.Value, int) {
	idx := startIdx
	var allParams []value.Value
	conditions := make([]string, 0, len(compound.Filters))

	for _, child := range compound.Filters {
		condition, params, nextIdx := Compile(d, child, idx)
		conditions = append(conditions, condition)
		allParams = append(allParams, params...)
		idx = nextIdx
	}

	var sql string
	switch compound.Op {
	case value.LogicalNot:
		inner := ""
		if len(conditions) > 0 {
			inner = conditions[0]
		}
		sql = fmt.Sprintf("NOT (%s)", inner)
	case value.LogicalOr:
		sql = joinConditions(conditions, " OR ")
	default:
		sql = joinConditions(conditions, " AND ")
	}

	return sql, allParams, idx
}

// joinConditions parenthesizes only when there is more than one child. A
// childless compound is degenerate and compiles to nothing; callers drop
// empty fragments.
func joinConditions(conditions []string, sep string) string {
	switch len(conditions) {
	case 0:
		return ""
	case 1:
		return conditions[0]
	default:
		return "(" + strings.Join(conditions, sep) + ")"
	}
}

func compileCondition(d dialect.Dialect, f Filter, startIdx int) (string, []value.Value, int) {
	field := f.Field
	idx := startIdx

	switch {
	// NULL handling
	case f.Op == value.OpEq && isNull(f.Value):
		return field + " IS NULL", nil, idx
	case f.Op == value.OpNe && isNull(f.Value):
		return field + " IS NOT NULL", nil, idx

	// IN/NOT IN with arrays. The param shape is dialect-defined; the index
	// advances by however many params the dialect produced.
	case f.Op == value.OpIn:
		if arr, ok := f.Value.(value.Array); ok {
			sql, params := d.InClause(field, arr, idx)
			return sql, params, idx + len(params)
		}
	case f.Op == value.OpNotIn:
		if arr, ok := f.Value.(value.Array); ok {
			sql, params := d.NotInClause(field, arr, idx)
			return sql, params, idx + len(params)
		}

	case f.Op == value.OpRegex:
		sql := fmt.Sprintf("%s %s %s", field, d.RegexOp(), d.Param(idx))
		return sql, []value.Value{f.Value}, idx + 1

	case f.Op == value.OpILike:
		op := "LIKE"
		if d.SupportsILike() {
			op = "ILIKE"
		}
		sql := fmt.Sprintf("%s %s %s", field, op, d.Param(idx))
		return sql, []value.Value{f.Value}, idx + 1

	case f.Op == value.OpStartsWith:
		return d.StartsWithClause(field, idx), []value.Value{f.Value}, idx + 1
	case f.Op == value.OpEndsWith:
		return d.EndsWithClause(field, idx), []value.Value{f.Value}, idx + 1
	case f.Op == value.OpContains:
		return d.ContainsClause(field, idx), []value.Value{f.Value}, idx + 1

	// BETWEEN takes an array with exactly 2 values. Any other arity degrades
	// to an always-false fragment instead of erroring: the query stays
	// executable and returns no rows.
	case f.Op == value.OpBetween:
		if arr, ok := f.Value.(value.Array); ok {
			if len(arr) != 2 {
				sql := fmt.Sprintf("1=0 /* BETWEEN requires 2 values, got %d */", len(arr))
				return sql, nil, idx
			}
			sql := fmt.Sprintf("%s BETWEEN %s AND %s", field, d.Param(idx), d.Param(idx+1))
			return sql, []value.Value{arr[0], arr[1]}, idx + 2
		}
	}

	// Standard comparisons. Booleans are parameterized like every other
	// scalar, never inlined as literals.
	sql := fmt.Sprintf("%s %s %s", field, comparisonSQL(f.Op), d.Param(idx))
	return sql, []value.Value{f.Value}, idx + 1
}

func comparisonSQL(op value.Operator) string {
	switch op {
	case value.OpEq:
		return "="
	case value.OpNe:
		return "!="
	case value.OpGt:
		return ">"
	case value.OpGte:
		return ">="
	case value.OpLt:
		return "<"
	case value.OpLte:
		return "<="
	case value.OpLike:
		return "LIKE"
	default:
		return "="
	}
}

func isNull(v value.Value) bool {
	_, ok := v.(value.Null)
	return ok
}

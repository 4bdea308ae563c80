package dialect

import (
	"fmt"
	"strings"

	"github.com/quarrydb/quarry/internal/value"
)

// SQLite implements Dialect for SQLite: ?N placeholders, 1/0 boolean
// literals, and per-value IN expansion. SQLite has no native regex operator;
// RegexOp falls back to LIKE.
type SQLite struct{}

func (SQLite) Name() string { return "sqlite" }

func (SQLite) Param(idx int) string {
	return fmt.Sprintf("?%d", idx)
}

func (SQLite) BoolLit(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func (SQLite) RegexOp() string { return "LIKE" }

// InClause expands to one placeholder per value. params has the same length
// as values.
func (SQLite) InClause(field string, values []value.Value, startIdx int) (string, []value.Value) {
	placeholders := make([]string, len(values))
	for i := range values {
		placeholders[i] = fmt.Sprintf("?%d", startIdx+i)
	}
	sql := fmt.Sprintf("%s IN (%s)", field, strings.Join(placeholders, ", "))
	return sql, append([]value.Value(nil), values...)
}

func (SQLite) NotInClause(field string, values []value.Value, startIdx int) (string, []value.Value) {
	placeholders := make([]string, len(values))
	for i := range values {
		placeholders[i] = fmt.Sprintf("?%d", startIdx+i)
	}
	sql := fmt.Sprintf("%s NOT IN (%s)", field, strings.Join(placeholders, ", "))
	return sql, append([]value.Value(nil), values...)
}

// SupportsILike is false: SQLite's LIKE is already case-insensitive for
// ASCII, so ILIKE filters compile to plain LIKE.
func (SQLite) SupportsILike() bool { return false }

func (SQLite) StartsWithClause(field string, idx int) string {
	return fmt.Sprintf("%s LIKE ?%d || '%%'", field, idx)
}

func (SQLite) EndsWithClause(field string, idx int) string {
	return fmt.Sprintf("%s LIKE '%%' || ?%d", field, idx)
}

func (SQLite) ContainsClause(field string, idx int) string {
	return fmt.Sprintf("%s LIKE '%%' || ?%d || '%%'", field, idx)
}

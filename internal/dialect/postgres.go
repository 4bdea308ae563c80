package dialect

import (
	"fmt"

	"github.com/quarrydb/quarry/internal/value"
)

// Postgres implements Dialect for PostgreSQL: $N placeholders, TRUE/FALSE
// literals, native regex (~) and ILIKE, and array-typed IN parameters.
type Postgres struct{}

func (Postgres) Name() string { return "postgres" }

func (Postgres) Param(idx int) string {
	return fmt.Sprintf("$%d", idx)
}

func (Postgres) BoolLit(b bool) string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}

func (Postgres) RegexOp() string { return "~" }

// InClause encodes the whole list as one array-typed parameter consumed by a
// single placeholder. params always has length 1 regardless of len(values).
func (Postgres) InClause(field string, values []value.Value, startIdx int) (string, []value.Value) {
	sql := fmt.Sprintf("%s = ANY($%d)", field, startIdx)
	return sql, []value.Value{value.Array(append([]value.Value(nil), values...))}
}

func (Postgres) NotInClause(field string, values []value.Value, startIdx int) (string, []value.Value) {
	sql := fmt.Sprintf("%s != ALL($%d)", field, startIdx)
	return sql, []value.Value{value.Array(append([]value.Value(nil), values...))}
}

func (Postgres) SupportsILike() bool { return true }

func (Postgres) StartsWithClause(field string, idx int) string {
	return fmt.Sprintf("%s LIKE $%d || '%%'", field, idx)
}

func (Postgres) EndsWithClause(field string, idx int) string {
	return fmt.Sprintf("%s LIKE '%%' || $%d", field, idx)
}

func (Postgres) ContainsClause(field string, idx int) string {
	return fmt.Sprintf("%s LIKE '%%' || $%d || '%%'", field, idx)
}

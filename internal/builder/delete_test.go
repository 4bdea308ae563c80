package builder

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quarrydb/quarry/internal/dialect"
	"github.com/quarrydb/quarry/internal/filter"
	"github.com/quarrydb/quarry/internal/value"
)

func TestDelete_Simple(t *testing.T) {
	result := NewDelete(dialect.Postgres{}, "users").
		Filter("id", value.OpEq, value.Int(7)).
		Build()

	assert.Equal(t, "DELETE FROM users WHERE id = $1", result.SQL)
	assert.Equal(t, []value.Value{value.Int(7)}, result.Params)
}

func TestDelete_NoFilter_DeletesAll(t *testing.T) {
	result := NewDelete(dialect.Postgres{}, "sessions").Build()
	assert.Equal(t, "DELETE FROM sessions", result.SQL)
	assert.Empty(t, result.Params)
}

func TestDelete_CompoundFilter(t *testing.T) {
	result := NewDelete(dialect.SQLite{}, "logs").
		FilterExpr(filter.And(
			filter.Simple("level", value.OpEq, value.String("debug")),
			filter.Simple("age_days", value.OpGt, value.Int(30)),
		)).
		Build()

	assert.Equal(t,
		"DELETE FROM logs WHERE (level = ?1 AND age_days > ?2)",
		result.SQL)
}

func TestDelete_DialectConstructors(t *testing.T) {
	pg := PostgresDelete("users").Filter("id", value.OpEq, value.Int(1)).Build()
	assert.Equal(t, "DELETE FROM users WHERE id = $1", pg.SQL)

	lite := SQLiteDelete("users").Filter("id", value.OpEq, value.Int(1)).Build()
	assert.Equal(t, "DELETE FROM users WHERE id = ?1", lite.SQL)
}

func TestDelete_Returning(t *testing.T) {
	result := NewDelete(dialect.Postgres{}, "users").
		Filter("id", value.OpEq, value.Int(1)).
		Returning("id").
		Build()

	assert.Equal(t, "DELETE FROM users WHERE id = $1 RETURNING id", result.SQL)
}

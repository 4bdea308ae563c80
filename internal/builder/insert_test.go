package builder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quarrydb/quarry/internal/dialect"
	"github.com/quarrydb/quarry/internal/value"
)

func TestInsert_SingleRow(t *testing.T) {
	result := NewInsert(dialect.Postgres{}, "users").
		Columns("name", "email").
		Values(value.String("Alice"), value.String("alice@example.com")).
		Build()

	assert.Equal(t, "INSERT INTO users (name, email) VALUES ($1, $2)", result.SQL)
	assert.Equal(t, []value.Value{
		value.String("Alice"),
		value.String("alice@example.com"),
	}, result.Params)
}

func TestInsert_MultiRow_SharedIndex(t *testing.T) {
	result := NewInsert(dialect.Postgres{}, "users").
		Columns("name", "age").
		Values(value.String("Alice"), value.Int(30)).
		Values(value.String("Bob"), value.Int(25)).
		Build()

	assert.Equal(t,
		"INSERT INTO users (name, age) VALUES ($1, $2), ($3, $4)",
		result.SQL)
	require.Len(t, result.Params, 4)
	assert.Equal(t, value.String("Bob"), result.Params[2])
}

func TestInsert_SQLitePlaceholders(t *testing.T) {
	result := NewInsert(dialect.SQLite{}, "users").
		Columns("name").
		Values(value.String("Alice")).
		Values(value.String("Bob")).
		Build()

	assert.Equal(t, "INSERT INTO users (name) VALUES (?1), (?2)", result.SQL)
}

func TestInsert_Returning(t *testing.T) {
	result := NewInsert(dialect.Postgres{}, "users").
		Columns("name").
		Values(value.String("Alice")).
		Returning("id", "created_at").
		Build()

	assert.Equal(t,
		"INSERT INTO users (name) VALUES ($1) RETURNING id, created_at",
		result.SQL)
}

func TestInsert_Rows(t *testing.T) {
	rows := [][]value.Value{
		{value.Int(1)},
		{value.Int(2)},
		{value.Int(3)},
	}
	result := NewInsert(dialect.Postgres{}, "ids").
		Columns("n").
		Rows(rows).
		Build()

	assert.Equal(t, "INSERT INTO ids (n) VALUES ($1), ($2), ($3)", result.SQL)
	assert.Len(t, result.Params, 3)
}

func TestInsert_DialectConstructors(t *testing.T) {
	pg := PostgresInsert("users").Columns("name").Values(value.String("Alice")).Build()
	assert.Equal(t, "INSERT INTO users (name) VALUES ($1)", pg.SQL)

	lite := SQLiteInsert("users").Columns("name").Values(value.String("Alice")).Build()
	assert.Equal(t, "INSERT INTO users (name) VALUES (?1)", lite.SQL)
}

func TestInsert_PanicsOnInvalidNames(t *testing.T) {
	assert.Panics(t, func() { NewInsert(dialect.Postgres{}, "users; --") })
	assert.Panics(t, func() {
		NewInsert(dialect.Postgres{}, "users").Columns("name, email")
	})
	assert.Panics(t, func() {
		NewInsert(dialect.Postgres{}, "users").Returning("id; DROP")
	})
}

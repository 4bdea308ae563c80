package builder

import (
	"database/sql"
	"testing"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quarrydb/quarry/internal/cursor"
	"github.com/quarrydb/quarry/internal/dialect"
	"github.com/quarrydb/quarry/internal/value"
)

// openTestDB opens an in-memory SQLite database with a small users table.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec("PRAGMA foreign_keys = ON")
	require.NoError(t, err)

	_, err = db.Exec(`CREATE TABLE users (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		age INTEGER NOT NULL,
		active INTEGER NOT NULL DEFAULT 1
	)`)
	require.NoError(t, err)

	return db
}

// seedUsers inserts rows through the insert builder and returns the generated ids.
func seedUsers(t *testing.T, db *sql.DB, rows []struct {
	name   string
	age    int64
	active bool
}) []string {
	t.Helper()

	d := dialect.SQLite{}
	ins := NewInsert(d, "users").Columns("id", "name", "age", "active")
	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = uuid.NewString()
		ins.Values(
			value.String(ids[i]),
			value.String(r.name),
			value.Int(r.age),
			value.Bool(r.active),
		)
	}

	result := ins.Build()
	_, err := db.Exec(result.SQL, dialect.BindArgs(d, result.Params)...)
	require.NoError(t, err)
	return ids
}

func TestExec_InsertSelectRoundTrip(t *testing.T) {
	db := openTestDB(t)
	seedUsers(t, db, []struct {
		name   string
		age    int64
		active bool
	}{
		{"Alice", 30, true},
		{"Bob", 25, true},
		{"Carol", 41, false},
	})

	d := dialect.SQLite{}
	query := NewSelect(d, "users").
		Fields("name", "age").
		Filter("active", value.OpEq, value.Bool(true)).
		Sort("age", value.Asc).
		Build()

	rows, err := db.Query(query.SQL, dialect.BindArgs(d, query.Params)...)
	require.NoError(t, err)
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		var age int64
		require.NoError(t, rows.Scan(&name, &age))
		names = append(names, name)
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, []string{"Bob", "Alice"}, names)
}

func TestExec_InExpansion(t *testing.T) {
	db := openTestDB(t)
	seedUsers(t, db, []struct {
		name   string
		age    int64
		active bool
	}{
		{"Alice", 30, true},
		{"Bob", 25, true},
		{"Carol", 41, false},
	})

	d := dialect.SQLite{}
	query := NewSelect(d, "users").
		Count().
		Filter("name", value.OpIn, value.Strings("Alice", "Carol")).
		Build()

	var count int64
	err := db.QueryRow(query.SQL, dialect.BindArgs(d, query.Params)...).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestExec_UpdateThenDelete(t *testing.T) {
	db := openTestDB(t)
	ids := seedUsers(t, db, []struct {
		name   string
		age    int64
		active bool
	}{
		{"Alice", 30, true},
		{"Bob", 25, true},
	})

	d := dialect.SQLite{}

	upd := NewUpdate(d, "users").
		Set("active", value.Bool(false)).
		Filter("id", value.OpEq, value.String(ids[0])).
		Build()
	res, err := db.Exec(upd.SQL, dialect.BindArgs(d, upd.Params)...)
	require.NoError(t, err)
	affected, err := res.RowsAffected()
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	del := NewDelete(d, "users").
		Filter("active", value.OpEq, value.Bool(false)).
		Build()
	res, err = db.Exec(del.SQL, dialect.BindArgs(d, del.Params)...)
	require.NoError(t, err)
	affected, err = res.RowsAffected()
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	var remaining int64
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM users").Scan(&remaining))
	assert.Equal(t, int64(1), remaining)
}

func TestExec_CursorPagination(t *testing.T) {
	db := openTestDB(t)
	seedUsers(t, db, []struct {
		name   string
		age    int64
		active bool
	}{
		{"Alice", 30, true},
		{"Bob", 25, true},
		{"Carol", 41, true},
		{"Dave", 25, true},
		{"Erin", 35, true},
	})

	d := dialect.SQLite{}
	sorts := []value.SortField{
		{Field: "age", Dir: value.Asc},
		{Field: "name", Dir: value.Asc},
	}

	fetch := func(after string) []string {
		q := NewSelect(d, "users").
			Fields("name", "age").
			Sorts(sorts).
			AfterCursor(after).
			Limit(2).
			Build()

		rows, err := db.Query(q.SQL, dialect.BindArgs(d, q.Params)...)
		require.NoError(t, err)
		defer rows.Close()

		var names []string
		var lastName string
		var lastAge int64
		for rows.Next() {
			require.NoError(t, rows.Scan(&lastName, &lastAge))
			names = append(names, lastName)
		}
		require.NoError(t, rows.Err())
		return names
	}

	page1 := fetch("")
	require.Equal(t, []string{"Bob", "Dave"}, page1)

	// Resume after (age=25, name=Dave): lexicographic keyset, not OFFSET.
	token := encodeCursorFor(t, db, "Dave")
	page2 := fetch(token)
	assert.Equal(t, []string{"Alice", "Erin"}, page2)

	token = encodeCursorFor(t, db, "Erin")
	page3 := fetch(token)
	assert.Equal(t, []string{"Carol"}, page3)
}

// encodeCursorFor builds a cursor token from the stored row for name.
func encodeCursorFor(t *testing.T, db *sql.DB, name string) string {
	t.Helper()

	var age int64
	require.NoError(t, db.QueryRow("SELECT age FROM users WHERE name = ?1", name).Scan(&age))

	return cursor.New().Int("age", age).Str("name", name).Encode()
}

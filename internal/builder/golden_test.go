package builder

import (
	"fmt"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/quarrydb/quarry/internal/cursor"
	"github.com/quarrydb/quarry/internal/dialect"
	"github.com/quarrydb/quarry/internal/filter"
	"github.com/quarrydb/quarry/internal/value"
)

// renderResult formats a QueryResult for golden comparison.
func renderResult(r QueryResult) []byte {
	var b strings.Builder
	b.WriteString(r.SQL)
	b.WriteString("\nparams:\n")
	for i, p := range r.Params {
		fmt.Fprintf(&b, "  %d = %s\n", i+1, value.GoString(p))
	}
	return []byte(b.String())
}

func TestBuild_Golden(t *testing.T) {
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)

	tests := []struct {
		name   string
		result QueryResult
	}{
		{
			name: "select_cursor_page",
			result: Postgres("posts").
				Fields("id", "title", "created_at").
				Filter("published", value.OpEq, value.Bool(true)).
				Sort("created_at", value.Desc).
				Sort("id", value.Asc).
				AfterCursor(cursor.New().
					Str("created_at", "2026-01-02T15:04:05Z").
					Int("id", 42)).
				Limit(20).
				Build(),
		},
		{
			name: "select_aggregate_report",
			result: Postgres("orders").
				Aggregate(Count().As("order_count")).
				Aggregate(Sum("amount").As("revenue")).
				Filter("status", value.OpEq, value.String("paid")).
				GroupBy("customer_id").
				Having(filter.Simple("revenue", value.OpGt, value.Int(1000))).
				Build(),
		},
		{
			name: "sqlite_in_and_pattern",
			result: SQLite("users").
				Fields("id", "name").
				FilterExpr(filter.And(
					filter.Simple("status", value.OpIn, value.Strings("active", "trial")),
					filter.Simple("name", value.OpStartsWith, value.String("Al")),
				)).
				Build(),
		},
		{
			name: "insert_users",
			result: NewInsert(dialect.Postgres{}, "users").
				Columns("name", "email", "active").
				Values(value.String("Alice"), value.String("alice@example.com"), value.Bool(true)).
				Values(value.String("Bob"), value.String("bob@example.com"), value.Bool(false)).
				Returning("id").
				Build(),
		},
		{
			name: "update_soft_delete",
			result: NewUpdate(dialect.Postgres{}, "users").
				Set("deleted", value.Bool(true)).
				Filter("last_login", value.OpLt, value.String("2025-01-01")).
				Returning("id").
				Build(),
		},
		{
			name: "delete_stale_sessions",
			result: NewDelete(dialect.SQLite{}, "sessions").
				Filter("expires_at", value.OpLt, value.Int(1750000000)).
				Build(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g.Assert(t, tt.name, renderResult(tt.result))
		})
	}
}

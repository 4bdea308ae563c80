package cursor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quarrydb/quarry/internal/dialect"
	"github.com/quarrydb/quarry/internal/filter"
	"github.com/quarrydb/quarry/internal/value"
)

func TestAfter_SingleField(t *testing.T) {
	sorts := []value.SortField{{Field: "id", Dir: value.Asc}}
	c := New().Int("id", 100)

	k, ok := After(sorts, c)
	require.True(t, ok)

	sql, params, next := filter.Compile(dialect.Postgres{}, k.Expr(), 1)
	assert.Equal(t, "id > $1", sql)
	assert.Equal(t, []value.Value{value.Int(100)}, params)
	assert.Equal(t, 2, next)
}

func TestAfter_SingleFieldDesc(t *testing.T) {
	sorts := []value.SortField{{Field: "created_at", Dir: value.Desc}}
	c := New().Str("created_at", "2026-01-02")

	k, ok := After(sorts, c)
	require.True(t, ok)

	sql, _, _ := filter.Compile(dialect.Postgres{}, k.Expr(), 1)
	assert.Equal(t, "created_at < $1", sql)
}

func TestBefore_OperatorTable(t *testing.T) {
	c := New().Int("id", 100)

	tests := []struct {
		name    string
		dir     value.SortDir
		forward bool
		want    string
	}{
		{"after asc", value.Asc, true, "id > $1"},
		{"after desc", value.Desc, true, "id < $1"},
		{"before asc", value.Asc, false, "id < $1"},
		{"before desc", value.Desc, false, "id > $1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sorts := []value.SortField{{Field: "id", Dir: tt.dir}}
			var k *KeysetCondition
			var ok bool
			if tt.forward {
				k, ok = After(sorts, c)
			} else {
				k, ok = Before(sorts, c)
			}
			require.True(t, ok)

			sql, _, _ := filter.Compile(dialect.Postgres{}, k.Expr(), 1)
			assert.Equal(t, tt.want, sql)
		})
	}
}

func TestAfter_MultiField_LexicographicExpansion(t *testing.T) {
	sorts := []value.SortField{
		{Field: "a", Dir: value.Asc},
		{Field: "b", Dir: value.Desc},
	}
	c := New().Int("a", 1).Int("b", 2)

	k, ok := After(sorts, c)
	require.True(t, ok)

	sql, params, next := filter.Compile(dialect.Postgres{}, k.Expr(), 1)
	assert.Equal(t, "(a > $1 OR (a = $2 AND b < $3))", sql)
	assert.Equal(t, []value.Value{value.Int(1), value.Int(1), value.Int(2)}, params)
	assert.Equal(t, 4, next)
}

func TestAfter_ThreeFields(t *testing.T) {
	sorts := []value.SortField{
		{Field: "a", Dir: value.Asc},
		{Field: "b", Dir: value.Asc},
		{Field: "c", Dir: value.Asc},
	}
	c := New().Int("a", 1).Int("b", 2).Int("c", 3)

	k, ok := After(sorts, c)
	require.True(t, ok)

	sql, params, _ := filter.Compile(dialect.Postgres{}, k.Expr(), 1)
	assert.Equal(t,
		"(a > $1 OR (a = $2 AND b > $3) OR (a = $4 AND b = $5 AND c > $6))", sql)
	assert.Len(t, params, 6)
}

func TestAfter_UnmatchedSortFieldAborts(t *testing.T) {
	sorts := []value.SortField{
		{Field: "id", Dir: value.Asc},
		{Field: "created_at", Dir: value.Asc},
	}
	// Cursor lacks created_at.
	c := New().Int("id", 100)

	_, ok := After(sorts, c)
	assert.False(t, ok)
}

func TestAfter_NoSorts(t *testing.T) {
	_, ok := After(nil, New().Int("id", 1))
	assert.False(t, ok)
}

func TestPageInfo(t *testing.T) {
	// Full page implies more items.
	p := NewPageInfo(20, 20)
	assert.True(t, p.HasNext)
	assert.False(t, p.HasPrev)

	// Short page implies the end.
	p = NewPageInfo(7, 20)
	assert.False(t, p.HasNext)

	p = NewPageInfo(0, 20).
		WithNextCursor("abc").
		WithPrevCursor("def").
		WithTotal(123)
	assert.True(t, p.HasNext, "non-empty next cursor implies has_next")
	assert.True(t, p.HasPrev, "non-empty prev cursor implies has_prev")
	require.NotNil(t, p.Total)
	assert.Equal(t, int64(123), *p.Total)

	// Empty tokens do not flip the flags.
	p = NewPageInfo(0, 20).WithNextCursor("").WithPrevCursor("")
	assert.False(t, p.HasNext)
	assert.False(t, p.HasPrev)
}

func TestEncodeLast(t *testing.T) {
	type row struct{ ID int64 }

	items := []row{{1}, {2}, {3}}
	token := EncodeLast(items, func(r row) *Cursor {
		return New().Int("id", r.ID)
	})
	require.NotEmpty(t, token)

	c, err := Decode(token)
	require.NoError(t, err)
	v, ok := c.Lookup("id")
	require.True(t, ok)
	assert.Equal(t, value.Int(3), v)

	assert.Empty(t, EncodeLast(nil, func(r row) *Cursor { return New() }))
}

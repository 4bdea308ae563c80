package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quarrydb/quarry/internal/filter"
	"github.com/quarrydb/quarry/internal/value"
)

func TestBuildStatement_Select(t *testing.T) {
	limit := 10
	doc := &QueryDoc{
		Kind:    "select",
		Dialect: "postgres",
		Table:   "users",
		Fields:  []string{"id", "name"},
		Filter:  &FilterNode{Field: "active", Op: "eq", Value: true},
		Sort:    "name",
		Limit:   &limit,
	}

	result, err := BuildStatement(doc)
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT id, name FROM users WHERE active = $1 ORDER BY name ASC LIMIT 10",
		result.SQL)
	assert.Equal(t, []any{true}, result.Params)
	assert.Equal(t, "select", result.Kind)
	assert.Equal(t, "postgres", result.Dialect)
}

func TestBuildStatement_CompoundFilter(t *testing.T) {
	doc := &QueryDoc{
		Dialect: "sqlite",
		Table:   "tasks",
		Filter: &FilterNode{
			Op: "or",
			Filters: []FilterNode{
				{Field: "priority", Op: "eq", Value: "high"},
				{Field: "overdue", Op: "eq", Value: true},
			},
		},
	}

	result, err := BuildStatement(doc)
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT * FROM tasks WHERE (priority = ?1 OR overdue = ?2)",
		result.SQL)
}

func TestBuildStatement_Insert(t *testing.T) {
	doc := &QueryDoc{
		Kind:    "insert",
		Dialect: "postgres",
		Table:   "users",
		Columns: []string{"name", "age"},
		Rows: [][]any{
			{"Alice", 30},
			{"Bob", 25},
		},
		Returning: []string{"id"},
	}

	result, err := BuildStatement(doc)
	require.NoError(t, err)
	assert.Equal(t,
		"INSERT INTO users (name, age) VALUES ($1, $2), ($3, $4) RETURNING id",
		result.SQL)
	assert.Len(t, result.Params, 4)
}

func TestBuildStatement_InsertRowArityMismatch(t *testing.T) {
	doc := &QueryDoc{
		Kind:    "insert",
		Dialect: "postgres",
		Table:   "users",
		Columns: []string{"name", "age"},
		Rows:    [][]any{{"Alice"}},
	}

	_, err := BuildStatement(doc)
	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, ErrCodeBadShape, loadErr.Code)
}

func TestBuildStatement_Update(t *testing.T) {
	doc := &QueryDoc{
		Kind:    "update",
		Dialect: "postgres",
		Table:   "users",
		Set: []AssignmentNode{
			{Column: "name", Value: "Alice"},
		},
		Filter: &FilterNode{Field: "id", Op: "eq", Value: 7},
	}

	result, err := BuildStatement(doc)
	require.NoError(t, err)
	assert.Equal(t, "UPDATE users SET name = $1 WHERE id = $2", result.SQL)
	assert.Equal(t, []any{"Alice", int64(7)}, result.Params)
}

func TestBuildStatement_Delete(t *testing.T) {
	doc := &QueryDoc{
		Kind:    "delete",
		Dialect: "sqlite",
		Table:   "sessions",
		Filter:  &FilterNode{Field: "expires_at", Op: "lt", Value: 1750000000},
	}

	result, err := BuildStatement(doc)
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM sessions WHERE expires_at < ?1", result.SQL)
}

func TestBuildStatement_UnknownDialect(t *testing.T) {
	doc := &QueryDoc{Dialect: "oracle", Table: "users"}

	_, err := BuildStatement(doc)
	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, ErrCodeBadShape, loadErr.Code)
}

func TestFilterNode_ToExpr(t *testing.T) {
	leaf := &FilterNode{Field: "status", Op: "in", Value: []any{"a", "b"}}
	expr, err := leaf.toExpr()
	require.NoError(t, err)

	f, ok := expr.(filter.Filter)
	require.True(t, ok)
	assert.Equal(t, value.OpIn, f.Op)
	assert.Equal(t, value.Strings("a", "b"), f.Value)
}

func TestFilterNode_ToExpr_Errors(t *testing.T) {
	tests := []struct {
		name string
		node FilterNode
		code string
	}{
		{"bad field", FilterNode{Field: "1bad", Op: "eq", Value: 1}, ErrCodeBadField},
		{"unknown op", FilterNode{Field: "x", Op: "soundex", Value: 1}, ErrCodeBadOperator},
		{"bad compound op", FilterNode{Op: "xor", Filters: []FilterNode{{Field: "x", Op: "eq", Value: 1}}}, ErrCodeBadOperator},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.node.toExpr()
			var loadErr *LoadError
			require.True(t, errors.As(err, &loadErr))
			assert.Equal(t, tt.code, loadErr.Code)
		})
	}
}

func TestToValue(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want value.Value
	}{
		{"nil", nil, value.Null{}},
		{"bool", true, value.Bool(true)},
		{"int", 42, value.Int(42)},
		{"int64", int64(42), value.Int(42)},
		{"float", 2.5, value.Float(2.5)},
		{"string", "x", value.String("x")},
		{"array", []any{1, "a"}, value.Array{value.Int(1), value.String("a")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := toValue(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := toValue(map[string]any{"a": 1})
	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, ErrCodeBadValue, loadErr.Code)
}

package cli

import (
	"fmt"

	"github.com/quarrydb/quarry/internal/builder"
	"github.com/quarrydb/quarry/internal/cursor"
	"github.com/quarrydb/quarry/internal/dialect"
	"github.com/quarrydb/quarry/internal/filter"
	"github.com/quarrydb/quarry/internal/validate"
	"github.com/quarrydb/quarry/internal/value"
)

// StatementResult is the output of building a query document.
type StatementResult struct {
	Kind    string `json:"kind"`
	Dialect string `json:"dialect"`
	SQL     string `json:"sql"`
	Params  []any  `json:"params"`
}

// BuildStatement compiles a loaded query document into parameterized SQL.
func BuildStatement(doc *QueryDoc) (*StatementResult, error) {
	d, err := docDialect(doc.Dialect)
	if err != nil {
		return nil, err
	}

	var result builder.QueryResult
	switch doc.Kind {
	case "select", "":
		result, err = buildSelect(doc, d)
	case "insert":
		result, err = buildInsert(doc, d)
	case "update":
		result, err = buildUpdate(doc, d)
	case "delete":
		result, err = buildDelete(doc, d)
	default:
		err = &LoadError{Code: ErrCodeBadShape, Message: fmt.Sprintf("unknown kind %q", doc.Kind)}
	}
	if err != nil {
		return nil, err
	}

	params := make([]any, len(result.Params))
	for i, p := range result.Params {
		params[i] = value.Driver(p)
	}
	kind := doc.Kind
	if kind == "" {
		kind = "select"
	}
	return &StatementResult{
		Kind:    kind,
		Dialect: d.Name(),
		SQL:     result.SQL,
		Params:  params,
	}, nil
}

func docDialect(name string) (dialect.Dialect, error) {
	switch name {
	case "postgres":
		return dialect.Postgres{}, nil
	case "sqlite":
		return dialect.SQLite{}, nil
	default:
		return nil, &LoadError{Code: ErrCodeBadShape, Message: fmt.Sprintf("unknown dialect %q", name)}
	}
}

func buildSelect(doc *QueryDoc, d dialect.Dialect) (builder.QueryResult, error) {
	b := builder.NewSelect(d, doc.Table)
	if len(doc.Fields) > 0 {
		b.Fields(doc.Fields...)
	}

	if doc.Filter != nil {
		expr, err := doc.Filter.toExpr()
		if err != nil {
			return builder.QueryResult{}, err
		}
		b.FilterExpr(expr)
	}

	if len(doc.GroupBy) > 0 {
		b.GroupBy(doc.GroupBy...)
	}
	if doc.Having != nil {
		expr, err := doc.Having.toExpr()
		if err != nil {
			return builder.QueryResult{}, err
		}
		b.Having(expr)
	}

	if doc.Sort != "" {
		sorts, err := builder.ParseSortString(doc.Sort, nil)
		if err != nil {
			return builder.QueryResult{}, &LoadError{Code: ErrCodeBadSort, Message: err.Error()}
		}
		b.Sorts(sorts)
	}

	if doc.Limit != nil {
		b.Limit(*doc.Limit)
	}
	if doc.Offset != nil {
		b.Offset(*doc.Offset)
	}

	if doc.After != "" {
		c, err := cursor.Decode(doc.After)
		if err != nil {
			return builder.QueryResult{}, &LoadError{Code: ErrCodeBadCursor, Message: fmt.Sprintf("after cursor: %v", err)}
		}
		b.AfterCursor(c)
	}
	if doc.Before != "" {
		c, err := cursor.Decode(doc.Before)
		if err != nil {
			return builder.QueryResult{}, &LoadError{Code: ErrCodeBadCursor, Message: fmt.Sprintf("before cursor: %v", err)}
		}
		b.BeforeCursor(c)
	}

	return b.Build(), nil
}

func buildInsert(doc *QueryDoc, d dialect.Dialect) (builder.QueryResult, error) {
	if len(doc.Columns) == 0 || len(doc.Rows) == 0 {
		return builder.QueryResult{}, &LoadError{Code: ErrCodeBadShape, Message: "insert requires columns and rows"}
	}

	b := builder.NewInsert(d, doc.Table).Columns(doc.Columns...)
	for i, row := range doc.Rows {
		if len(row) != len(doc.Columns) {
			return builder.QueryResult{}, &LoadError{
				Code:    ErrCodeBadShape,
				Message: fmt.Sprintf("row %d has %d values, want %d", i, len(row), len(doc.Columns)),
			}
		}
		values := make([]value.Value, len(row))
		for j, raw := range row {
			v, err := toValue(raw)
			if err != nil {
				return builder.QueryResult{}, err
			}
			values[j] = v
		}
		b.Values(values...)
	}
	if len(doc.Returning) > 0 {
		b.Returning(doc.Returning...)
	}
	return b.Build(), nil
}

func buildUpdate(doc *QueryDoc, d dialect.Dialect) (builder.QueryResult, error) {
	if len(doc.Set) == 0 {
		return builder.QueryResult{}, &LoadError{Code: ErrCodeBadShape, Message: "update requires at least one set assignment"}
	}

	b := builder.NewUpdate(d, doc.Table)
	for _, a := range doc.Set {
		v, err := toValue(a.Value)
		if err != nil {
			return builder.QueryResult{}, err
		}
		b.Set(a.Column, v)
	}
	if doc.Filter != nil {
		expr, err := doc.Filter.toExpr()
		if err != nil {
			return builder.QueryResult{}, err
		}
		b.FilterExpr(expr)
	}
	if len(doc.Returning) > 0 {
		b.Returning(doc.Returning...)
	}
	return b.Build(), nil
}

func buildDelete(doc *QueryDoc, d dialect.Dialect) (builder.QueryResult, error) {
	b := builder.NewDelete(d, doc.Table)
	if doc.Filter != nil {
		expr, err := doc.Filter.toExpr()
		if err != nil {
			return builder.QueryResult{}, err
		}
		b.FilterExpr(expr)
	}
	if len(doc.Returning) > 0 {
		b.Returning(doc.Returning...)
	}
	return b.Build(), nil
}

// toExpr converts a YAML filter node into a filter expression.
func (n *FilterNode) toExpr() (filter.Expr, error) {
	if len(n.Filters) > 0 || n.Op == "and" || n.Op == "or" || n.Op == "not" {
		var logical value.LogicalOp
		switch n.Op {
		case "and":
			logical = value.LogicalAnd
		case "or":
			logical = value.LogicalOr
		case "not":
			logical = value.LogicalNot
		default:
			return nil, &LoadError{Code: ErrCodeBadOperator, Message: fmt.Sprintf("compound filter needs op and/or/not, got %q", n.Op)}
		}

		children := make([]filter.Expr, len(n.Filters))
		for i := range n.Filters {
			child, err := n.Filters[i].toExpr()
			if err != nil {
				return nil, err
			}
			children[i] = child
		}
		return filter.Compound{Op: logical, Filters: children}, nil
	}

	if !validate.IsValidIdentifier(n.Field) {
		return nil, &LoadError{Code: ErrCodeBadField, Message: fmt.Sprintf("invalid filter field %q", n.Field)}
	}
	op, ok := value.ParseOperator(n.Op)
	if !ok {
		return nil, &LoadError{Code: ErrCodeBadOperator, Message: fmt.Sprintf("unknown operator %q", n.Op)}
	}
	v, err := toValue(n.Value)
	if err != nil {
		return nil, err
	}
	return filter.Filter{Field: n.Field, Op: op, Value: v}, nil
}

// toValue converts a decoded YAML scalar or sequence into a typed value.
func toValue(raw any) (value.Value, error) {
	switch v := raw.(type) {
	case nil:
		return value.Null{}, nil
	case bool:
		return value.Bool(v), nil
	case int:
		return value.Int(int64(v)), nil
	case int64:
		return value.Int(v), nil
	case uint64:
		return value.Int(int64(v)), nil
	case float64:
		return value.Float(v), nil
	case string:
		return value.String(v), nil
	case []any:
		elems := make([]value.Value, len(v))
		for i, e := range v {
			elem, err := toValue(e)
			if err != nil {
				return nil, err
			}
			elems[i] = elem
		}
		return value.Array(elems), nil
	default:
		return nil, &LoadError{Code: ErrCodeBadValue, Message: fmt.Sprintf("unsupported value type %T", raw)}
	}
}

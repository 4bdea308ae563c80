package filter

import (
	"github.com/quarrydb/quarry/internal/validate"
	"github.com/quarrydb/quarry/internal/value"
)

// Expr is a sealed interface over the two filter node kinds.
// Only Filter and Compound implement it.
type Expr interface {
	filterExpr() // Sealed - only these types implement it
}

// Filter is a single field comparison. Field is embedded as raw SQL text and
// must pass identifier validation; Value is always parameterized.
type Filter struct {
	Field string
	Op    value.Operator
	Value value.Value
}

func (Filter) filterExpr() {}

// Compound joins child expressions with a logical connective. Not uses only
// its first child; additional children are ignored.
type Compound struct {
	Op      value.LogicalOp
	Filters []Expr
}

func (Compound) filterExpr() {}

// Simple creates a single-comparison expression.
// Panics if field is not a valid SQL identifier.
func Simple(field string, op value.Operator, val value.Value) Expr {
	validate.MustIdentifier(field, "filter field")
	return Filter{Field: field, Op: op, Value: val}
}

// And joins expressions with AND.
func And(exprs ...Expr) Expr {
	return Compound{Op: value.LogicalAnd, Filters: exprs}
}

// Or joins expressions with OR.
func Or(exprs ...Expr) Expr {
	return Compound{Op: value.LogicalOr, Filters: exprs}
}

// Not negates a single expression.
func Not(expr Expr) Expr {
	return Compound{Op: value.LogicalNot, Filters: []Expr{expr}}
}

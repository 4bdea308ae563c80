package builder

import (
	"fmt"

	"github.com/quarrydb/quarry/internal/validate"
	"github.com/quarrydb/quarry/internal/value"
)

// Aggregate is one aggregate term of a SELECT list. Field is empty for
// COUNT(*); Alias is optional.
type Aggregate struct {
	Func  value.AggregateFunc
	Field string
	Alias string
}

// Count creates a COUNT(*) aggregation.
func Count() Aggregate {
	return Aggregate{Func: value.AggCount}
}

// CountField creates a COUNT(field) aggregation.
// Panics if field is not a valid SQL identifier.
func CountField(field string) Aggregate {
	validate.MustIdentifier(field, "aggregate field")
	return Aggregate{Func: value.AggCount, Field: field}
}

// CountDistinct creates a COUNT(DISTINCT field) aggregation.
// Panics if field is not a valid SQL identifier.
func CountDistinct(field string) Aggregate {
	validate.MustIdentifier(field, "aggregate field")
	return Aggregate{Func: value.AggCountDistinct, Field: field}
}

// Sum creates a SUM(field) aggregation.
// Panics if field is not a valid SQL identifier.
func Sum(field string) Aggregate {
	validate.MustIdentifier(field, "aggregate field")
	return Aggregate{Func: value.AggSum, Field: field}
}

// Avg creates an AVG(field) aggregation.
// Panics if field is not a valid SQL identifier.
func Avg(field string) Aggregate {
	validate.MustIdentifier(field, "aggregate field")
	return Aggregate{Func: value.AggAvg, Field: field}
}

// Min creates a MIN(field) aggregation.
// Panics if field is not a valid SQL identifier.
func Min(field string) Aggregate {
	validate.MustIdentifier(field, "aggregate field")
	return Aggregate{Func: value.AggMin, Field: field}
}

// Max creates a MAX(field) aggregation.
// Panics if field is not a valid SQL identifier.
func Max(field string) Aggregate {
	validate.MustIdentifier(field, "aggregate field")
	return Aggregate{Func: value.AggMax, Field: field}
}

// As sets the result alias.
// Panics if alias is not a valid SQL identifier.
func (a Aggregate) As(alias string) Aggregate {
	validate.MustIdentifier(alias, "aggregate alias")
	a.Alias = alias
	return a
}

// SQL renders the aggregate term.
func (a Aggregate) SQL() string {
	var expr string
	switch {
	case a.Func == value.AggCount && a.Field == "":
		expr = "COUNT(*)"
	case a.Func == value.AggCount:
		expr = fmt.Sprintf("COUNT(%s)", a.Field)
	case a.Func == value.AggCountDistinct:
		expr = fmt.Sprintf("COUNT(DISTINCT %s)", a.Field)
	case a.Func == value.AggSum:
		expr = fmt.Sprintf("SUM(%s)", a.Field)
	case a.Func == value.AggAvg:
		expr = fmt.Sprintf("AVG(%s)", a.Field)
	case a.Func == value.AggMin:
		expr = fmt.Sprintf("MIN(%s)", a.Field)
	case a.Func == value.AggMax:
		expr = fmt.Sprintf("MAX(%s)", a.Field)
	default:
		expr = "COUNT(*)"
	}

	if a.Alias != "" {
		return expr + " AS " + a.Alias
	}
	return expr
}

// ComputedField is a SELECT term computed from a validated SQL expression.
// The expression is spliced into SQL text unparameterized; only use trusted
// expressions from code, never request input.
type ComputedField struct {
	Alias      string
	Expression string
}

// NewComputed creates a computed field.
// Panics if alias is not a valid identifier or the expression contains
// dangerous patterns.
func NewComputed(alias, expression string) ComputedField {
	validate.MustIdentifier(alias, "computed field alias")
	validate.MustExpression(expression, "computed field")
	return ComputedField{Alias: alias, Expression: expression}
}

// SQL renders "(expression) AS alias".
func (c ComputedField) SQL() string {
	return fmt.Sprintf("(%s) AS %s", c.Expression, c.Alias)
}

package cursor

import (
	"github.com/quarrydb/quarry/internal/filter"
	"github.com/quarrydb/quarry/internal/value"
)

// KeysetCondition resumes an ordered scan from a cursor position. It pairs
// the query's sort fields with the cursor's values and expands into the
// lexicographic inequality that makes multi-column pagination gap-free and
// duplicate-free across pages.
type KeysetCondition struct {
	// SortFields are the query's declared sorts, in order.
	SortFields []value.SortField

	// CursorValues hold the position, one per sort field.
	CursorValues []value.Value

	// Forward is true for "after" pagination, false for "before".
	Forward bool
}

// After creates a condition for paginating past the cursor.
// Returns false when sorts is empty or any sort field is missing from the
// cursor; in that case no condition should be added.
func After(sorts []value.SortField, c *Cursor) (*KeysetCondition, bool) {
	return newKeyset(sorts, c, true)
}

// Before creates a condition for paginating back from the cursor.
func Before(sorts []value.SortField, c *Cursor) (*KeysetCondition, bool) {
	return newKeyset(sorts, c, false)
}

func newKeyset(sorts []value.SortField, c *Cursor, forward bool) (*KeysetCondition, bool) {
	if len(sorts) == 0 || c == nil {
		return nil, false
	}

	values := make([]value.Value, 0, len(sorts))
	for _, sort := range sorts {
		v, ok := c.Lookup(sort.Field)
		if !ok {
			// An unmatched sort field aborts condition generation.
			return nil, false
		}
		values = append(values, v)
	}

	return &KeysetCondition{
		SortFields:   sorts,
		CursorValues: values,
		Forward:      forward,
	}, true
}

// Expr expands the condition into a filter expression.
//
// Single field: a direct inequality, e.g. created_at > $1.
//
// Multiple fields: the standard keyset disjunction. For sorts (a, b) and
// position (1, 2):
//
//	(a > 1) OR (a = 1 AND b > 2)
//
// Each disjunct pins all preceding fields with equality and applies the
// direction-appropriate inequality to the next one.
func (k *KeysetCondition) Expr() filter.Expr {
	if len(k.SortFields) == 0 || len(k.CursorValues) == 0 {
		// Degenerate: a tautology that filters nothing.
		return filter.Filter{Field: "1", Op: value.OpEq, Value: value.Int(1)}
	}

	if len(k.SortFields) == 1 {
		sort := k.SortFields[0]
		return filter.Filter{
			Field: sort.Field,
			Op:    k.operator(sort.Dir),
			Value: k.CursorValues[0],
		}
	}

	orTerms := make([]filter.Expr, 0, len(k.SortFields))
	for i := range k.SortFields {
		andTerms := make([]filter.Expr, 0, i+1)

		for j := 0; j < i; j++ {
			andTerms = append(andTerms, filter.Filter{
				Field: k.SortFields[j].Field,
				Op:    value.OpEq,
				Value: k.CursorValues[j],
			})
		}

		sort := k.SortFields[i]
		andTerms = append(andTerms, filter.Filter{
			Field: sort.Field,
			Op:    k.operator(sort.Dir),
			Value: k.CursorValues[i],
		})

		if len(andTerms) == 1 {
			orTerms = append(orTerms, andTerms[0])
		} else {
			orTerms = append(orTerms, filter.Compound{Op: value.LogicalAnd, Filters: andTerms})
		}
	}

	if len(orTerms) == 1 {
		return orTerms[0]
	}
	return filter.Compound{Op: value.LogicalOr, Filters: orTerms}
}

// operator picks the inequality from pagination direction and sort direction.
func (k *KeysetCondition) operator(dir value.SortDir) value.Operator {
	switch {
	case k.Forward && dir == value.Asc:
		return value.OpGt
	case k.Forward && dir == value.Desc:
		return value.OpLt
	case !k.Forward && dir == value.Asc:
		return value.OpLt
	default:
		return value.OpGt
	}
}

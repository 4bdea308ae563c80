package dialect

import (
	"github.com/quarrydb/quarry/internal/value"
)

// Dialect abstracts the syntax differences between target databases.
// Implementations are stateless and safe to share across builders.
type Dialect interface {
	// Name identifies the dialect ("postgres" or "sqlite").
	Name() string

	// Param renders the 1-based positional placeholder for idx.
	Param(idx int) string

	// BoolLit renders a boolean literal where one is needed in raw SQL text.
	BoolLit(b bool) string

	// RegexOp returns the regular-expression match operator, or a documented
	// fallback when the database has no native one.
	RegexOp() string

	// InClause renders "field is one of values" starting at placeholder
	// startIdx. The shape of the returned params is dialect-defined: it may
	// be a single array-typed param or one param per value. Callers must
	// advance their index by len(params).
	InClause(field string, values []value.Value, startIdx int) (string, []value.Value)

	// NotInClause is the negated form of InClause with the same contract.
	NotInClause(field string, values []value.Value, startIdx int) (string, []value.Value)

	// SupportsILike reports whether ILIKE exists natively. When false,
	// case-insensitive matching falls back to LIKE.
	SupportsILike() bool

	// StartsWithClause renders a prefix match against placeholder idx.
	// The '%' wildcard is concatenated in SQL, never spliced into the value.
	StartsWithClause(field string, idx int) string

	// EndsWithClause renders a suffix match against placeholder idx.
	EndsWithClause(field string, idx int) string

	// ContainsClause renders a substring match against placeholder idx.
	ContainsClause(field string, idx int) string
}

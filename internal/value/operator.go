package value

// Operator identifies a comparison operator in a filter.
type Operator string

const (
	OpEq         Operator = "eq"
	OpNe         Operator = "ne"
	OpGt         Operator = "gt"
	OpGte        Operator = "gte"
	OpLt         Operator = "lt"
	OpLte        Operator = "lte"
	OpIn         Operator = "in"
	OpNotIn      Operator = "not_in"
	OpRegex      Operator = "regex"
	OpLike       Operator = "like"
	OpILike      Operator = "ilike"
	OpStartsWith Operator = "starts_with"
	OpEndsWith   Operator = "ends_with"
	OpContains   Operator = "contains"
	OpBetween    Operator = "between"
)

// ParseOperator maps an external operator name to its Operator constant.
// Returns false for unknown names.
func ParseOperator(s string) (Operator, bool) {
	switch Operator(s) {
	case OpEq, OpNe, OpGt, OpGte, OpLt, OpLte,
		OpIn, OpNotIn, OpRegex, OpLike, OpILike,
		OpStartsWith, OpEndsWith, OpContains, OpBetween:
		return Operator(s), true
	}
	return "", false
}

// LogicalOp identifies a boolean connective in a compound filter.
type LogicalOp string

const (
	LogicalAnd LogicalOp = "and"
	LogicalOr  LogicalOp = "or"
	LogicalNot LogicalOp = "not"
)

// AggregateFunc identifies an aggregate function in a SELECT list.
type AggregateFunc string

const (
	AggCount         AggregateFunc = "count"
	AggCountDistinct AggregateFunc = "count_distinct"
	AggSum           AggregateFunc = "sum"
	AggAvg           AggregateFunc = "avg"
	AggMin           AggregateFunc = "min"
	AggMax           AggregateFunc = "max"
)

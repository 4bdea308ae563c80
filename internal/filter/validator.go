package filter

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/quarrydb/quarry/internal/value"
)

// Node cap across all array values in one filter, bounding validation cost.
const maxValueNodes = 10000

// ValidationError is returned when a user-supplied filter violates the
// validator's rules. It carries structured fields for translation into a
// client-facing error.
type ValidationError struct {
	// Code identifies the violation category.
	Code ValidationErrorCode

	// Field is the filter field involved (when applicable).
	Field string

	// Operator is the denied operator (for ErrCodeOperatorDenied).
	Operator value.Operator

	// Allowed lists the whitelisted fields (for ErrCodeFieldNotAllowed).
	Allowed []string

	// Max and Actual describe the violated limit.
	Max    int
	Actual int
}

// ValidationErrorCode categorizes validation errors.
type ValidationErrorCode string

const (
	// ErrCodeFieldNotAllowed indicates the field is not in the whitelist.
	ErrCodeFieldNotAllowed ValidationErrorCode = "FIELD_NOT_ALLOWED"

	// ErrCodeOperatorDenied indicates the operator is blacklisted.
	ErrCodeOperatorDenied ValidationErrorCode = "OPERATOR_DENIED"

	// ErrCodeNestingTooDeep indicates array nesting exceeds the depth cap.
	ErrCodeNestingTooDeep ValidationErrorCode = "NESTING_TOO_DEEP"

	// ErrCodeTooManyNodes indicates the filter value exceeds the node cap.
	ErrCodeTooManyNodes ValidationErrorCode = "TOO_MANY_NODES"
)

// Error implements the error interface.
func (e *ValidationError) Error() string {
	switch e.Code {
	case ErrCodeFieldNotAllowed:
		return fmt.Sprintf("field %q is not allowed. Allowed fields: %s",
			e.Field, strings.Join(e.Allowed, ", "))
	case ErrCodeOperatorDenied:
		return fmt.Sprintf("operator %q is denied for field %q", e.Operator, e.Field)
	case ErrCodeNestingTooDeep:
		return fmt.Sprintf("filter nesting depth %d exceeds maximum %d", e.Actual, e.Max)
	case ErrCodeTooManyNodes:
		return fmt.Sprintf("filter contains too many value nodes (max %d)", e.Max)
	default:
		return fmt.Sprintf("%s: invalid filter", e.Code)
	}
}

// IsValidationError returns the ValidationError if err is or wraps one.
func IsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// Validator applies security rules to user-provided filters. Four layers:
// a field whitelist, an operator blacklist, a nesting depth cap on array
// values, and a total node-count cap.
type Validator struct {
	// AllowedFields is a whitelist of queryable fields. Empty = allow all.
	AllowedFields []string

	// DeniedOperators lists operators users may not invoke.
	DeniedOperators []value.Operator

	// MaxDepth caps array nesting inside filter values.
	MaxDepth int
}

// NewValidator creates a validator with secure defaults: no field
// restrictions, Regex denied (ReDoS prevention), max depth 5.
//
// This is the recommended constructor for user-facing filters. Use
// Permissive for internal filters that need every operator.
func NewValidator() *Validator {
	return &Validator{
		DeniedOperators: []value.Operator{value.OpRegex},
		MaxDepth:        5,
	}
}

// Permissive creates a validator that denies nothing. Only for trusted
// internal filters, never for user input: Regex enables ReDoS.
func Permissive() *Validator {
	return &Validator{MaxDepth: 5}
}

// AllowFields sets the field whitelist. Empty allows all fields; for user
// input always provide an explicit list.
func (v *Validator) AllowFields(fields ...string) *Validator {
	v.AllowedFields = fields
	return v
}

// DenyOperators sets the operator blacklist.
func (v *Validator) DenyOperators(ops ...value.Operator) *Validator {
	v.DeniedOperators = ops
	return v
}

// WithMaxDepth sets the array nesting cap.
func (v *Validator) WithMaxDepth(depth int) *Validator {
	v.MaxDepth = depth
	return v
}

// Validate checks one filter against the configured rules, returning a
// *ValidationError on the first violation.
func (v *Validator) Validate(f Filter) error {
	return v.validateAtDepth(f, 0)
}

func (v *Validator) validateAtDepth(f Filter, depth int) error {
	if depth > v.MaxDepth {
		return &ValidationError{Code: ErrCodeNestingTooDeep, Max: v.MaxDepth, Actual: depth}
	}

	if len(v.AllowedFields) > 0 && !slices.Contains(v.AllowedFields, f.Field) {
		return &ValidationError{
			Code:    ErrCodeFieldNotAllowed,
			Field:   f.Field,
			Allowed: v.AllowedFields,
		}
	}

	if slices.Contains(v.DeniedOperators, f.Op) {
		return &ValidationError{
			Code:     ErrCodeOperatorDenied,
			Operator: f.Op,
			Field:    f.Field,
		}
	}

	if arr, ok := f.Value.(value.Array); ok {
		nodeCount := 0
		for _, elem := range arr {
			if err := v.validateValue(elem, depth+1, &nodeCount); err != nil {
				return err
			}
		}
	}

	return nil
}

func (v *Validator) validateValue(val value.Value, depth int, count *int) error {
	*count++
	if *count > maxValueNodes {
		return &ValidationError{Code: ErrCodeTooManyNodes, Max: maxValueNodes}
	}
	if depth > v.MaxDepth {
		return &ValidationError{Code: ErrCodeNestingTooDeep, Max: v.MaxDepth, Actual: depth}
	}

	if arr, ok := val.(value.Array); ok {
		for _, elem := range arr {
			if err := v.validateValue(elem, depth+1, count); err != nil {
				return err
			}
		}
	}
	return nil
}

// MergeFilters combines trusted system filters with validated user filters.
// Trusted filters (tenant scoping, soft-delete guards) bypass validation;
// every user filter is checked. The result preserves each group's order,
// trusted first.
func MergeFilters(trusted, user []Filter, v *Validator) ([]Filter, error) {
	for _, f := range user {
		if err := v.Validate(f); err != nil {
			return nil, err
		}
	}

	merged := make([]Filter, 0, len(trusted)+len(user))
	merged = append(merged, trusted...)
	merged = append(merged, user...)
	return merged, nil
}

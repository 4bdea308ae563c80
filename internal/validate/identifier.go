package validate

import "fmt"

// PostgreSQL caps identifiers at 63 bytes; SQLite is laxer, so the stricter
// limit applies to both dialects.
const maxIdentifierLength = 63

// IsValidIdentifier reports whether s is a safe SQL identifier: non-empty,
// at most 63 bytes, starting with an ASCII letter or underscore, with every
// remaining byte ASCII alphanumeric or underscore.
//
// Identifiers are embedded in SQL text without parameterization, so this
// check gates every table, column, alias, and sort field name.
func IsValidIdentifier(s string) bool {
	if len(s) == 0 || len(s) > maxIdentifierLength {
		return false
	}

	first := s[0]
	if !isASCIILetter(first) && first != '_' {
		return false
	}

	for i := 1; i < len(s); i++ {
		c := s[i]
		if !isASCIILetter(c) && !isASCIIDigit(c) && c != '_' {
			return false
		}
	}
	return true
}

// MustIdentifier panics if s is not a valid SQL identifier. Intended for
// programmer errors (bad table/column names in code), never as the sole gate
// on request data.
func MustIdentifier(s, context string) {
	if !IsValidIdentifier(s) {
		panic(fmt.Sprintf(
			"invalid SQL %s name %q: must start with letter/underscore, contain only ASCII alphanumeric/underscore, and be 1-63 chars",
			context, s))
	}
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isASCIIDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

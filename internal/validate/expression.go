package validate

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

const maxExpressionLength = 1000

// dangerousKeywords are rejected when they appear as standalone words in a
// computed expression. The same substrings inside longer identifiers are
// fine: "last_updated" is valid even though it contains "update".
var dangerousKeywords = []string{
	// DML/DDL statements
	"select", "insert", "update", "delete", "drop", "truncate", "alter",
	"create", "grant", "revoke", "exec", "execute", "union", "into", "from",
	"where", "having", "group", "order", "limit", "offset", "fetch",
	"returning",
	// Timing-attack and DoS functions
	"sleep", "benchmark", "waitfor", "pg_sleep", "dbms_lock",
	// File/network operations
	"load_file", "into_outfile", "into_dumpfile",
	// Encoding/conversion functions used to obfuscate injections
	"chr", "char", "ascii", "unicode", "hex", "unhex", "convert", "cast",
	"encode", "decode",
}

// IsValidExpression reports whether s is acceptable as a computed-field
// expression. Expressions are spliced into SQL text unparameterized, so this
// is defense-in-depth: it catches obvious injection patterns, not every
// possible one. Only use computed fields with trusted expressions from code.
//
// Rejected: empty or >1000-byte input, SQL comments, semicolons, backticks,
// standalone dangerous keywords, system-catalog prefixes, and hex escapes.
// Input is NFKC-normalized first so fullwidth or compatibility characters
// cannot smuggle a keyword past the scan.
func IsValidExpression(s string) bool {
	if len(s) == 0 || len(s) > maxExpressionLength {
		return false
	}

	// No SQL comments or statement terminators
	if strings.Contains(s, "--") || strings.Contains(s, "/*") || strings.Contains(s, "*/") {
		return false
	}
	if strings.ContainsRune(s, ';') {
		return false
	}

	// No backticks (MySQL-style identifier quoting)
	if strings.ContainsRune(s, '`') {
		return false
	}

	lower := strings.ToLower(norm.NFKC.String(s))

	for _, keyword := range dangerousKeywords {
		if containsKeyword(lower, keyword) {
			return false
		}
	}

	// System catalog access
	if strings.Contains(lower, "pg_") ||
		strings.Contains(lower, "sqlite_") ||
		strings.Contains(lower, "information_schema") ||
		strings.Contains(lower, "sys.") {
		return false
	}

	// Hex escapes that could bypass the keyword scan
	if strings.Contains(lower, "0x") || strings.Contains(lower, `\x`) {
		return false
	}

	return true
}

// MustExpression panics if s is not a valid computed-field expression.
func MustExpression(s, context string) {
	if !IsValidExpression(s) {
		panic(fmt.Sprintf(
			"invalid SQL expression for %s: %q contains dangerous patterns (comments, semicolons, or SQL keywords)",
			context, s))
	}
}

// containsKeyword reports whether keyword occurs in haystack delimited by
// word boundaries (non-alphanumeric, non-underscore).
func containsKeyword(haystack, keyword string) bool {
	if len(keyword) == 0 || len(haystack) < len(keyword) {
		return false
	}

	for i := 0; i+len(keyword) <= len(haystack); i++ {
		if haystack[i:i+len(keyword)] != keyword {
			continue
		}
		beforeOK := i == 0 || !isWordByte(haystack[i-1])
		afterOK := i+len(keyword) == len(haystack) || !isWordByte(haystack[i+len(keyword)])
		if beforeOK && afterOK {
			return true
		}
	}
	return false
}

func isWordByte(c byte) bool {
	return isASCIILetter(c) || isASCIIDigit(c) || c == '_'
}

package cursor

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"github.com/quarrydb/quarry/internal/value"
)

// Size cap on the encoded token, checked before base64 decoding.
const maxCursorSize = 4 * 1024

// Field-count cap, preventing DoS via cursors with hundreds of tiny fields.
const maxCursorFields = 16

// Field is one (name, value) pair of a cursor position.
type Field struct {
	Name  string
	Value value.Value
}

// Cursor is an opaque pagination position: the sort-field values of the last
// row of a page, encoded as unpadded URL-safe base64 of a minimal JSON
// object.
//
// Cursors are base64, not encrypted; clients can decode them. Never put
// sensitive data in cursor fields, only the values needed to resume
// pagination (id, created_at).
type Cursor struct {
	Fields []Field
}

// New creates an empty cursor.
func New() *Cursor {
	return &Cursor{}
}

// Field appends a (name, value) pair.
func (c *Cursor) Field(name string, v value.Value) *Cursor {
	c.Fields = append(c.Fields, Field{Name: name, Value: v})
	return c
}

// Int appends an integer field.
func (c *Cursor) Int(name string, v int64) *Cursor {
	return c.Field(name, value.Int(v))
}

// Float appends a float field.
func (c *Cursor) Float(name string, v float64) *Cursor {
	return c.Field(name, value.Float(v))
}

// Bool appends a boolean field.
func (c *Cursor) Bool(name string, v bool) *Cursor {
	return c.Field(name, value.Bool(v))
}

// Str appends a string field.
func (c *Cursor) Str(name, v string) *Cursor {
	return c.Field(name, value.String(v))
}

// Lookup returns the value for name, or false if absent.
func (c *Cursor) Lookup(name string) (value.Value, bool) {
	for _, f := range c.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// Encode serializes the cursor to its wire form. The JSON object preserves
// field order; this format is a stability contract for paginated APIs.
func (c *Cursor) Encode() string {
	return base64.RawURLEncoding.EncodeToString([]byte(c.toJSON()))
}

// Decode parses a cursor token. Inputs over 4096 bytes are rejected before
// any base64 work. Both the URL-safe and standard alphabets are accepted.
func Decode(encoded string) (*Cursor, error) {
	if len(encoded) > maxCursorSize {
		return nil, &CursorError{Code: ErrCursorTooLarge}
	}

	raw, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		// Tolerate tokens produced with the standard alphabet.
		raw, err = base64.RawStdEncoding.DecodeString(encoded)
		if err != nil {
			return nil, &CursorError{Code: ErrCursorInvalidBase64}
		}
	}

	return fromJSON(string(raw))
}

// toJSON writes the compact ordered JSON object. Array values cannot be
// pagination positions and are skipped.
func (c *Cursor) toJSON() string {
	var b strings.Builder
	b.WriteByte('{')

	first := true
	for _, f := range c.Fields {
		var val string
		switch v := f.Value.(type) {
		case value.Null:
			val = "null"
		case value.Bool:
			val = strconv.FormatBool(bool(v))
		case value.Int:
			val = strconv.FormatInt(int64(v), 10)
		case value.Float:
			val = strconv.FormatFloat(float64(v), 'g', -1, 64)
		case value.String:
			val = `"` + escapeJSON(string(v)) + `"`
		default:
			continue
		}

		if !first {
			b.WriteByte(',')
		}
		first = false
		fmt.Fprintf(&b, "%q:%s", f.Name, val)
	}

	b.WriteByte('}')
	return b.String()
}

// fromJSON parses the cursor's JSON subset: one flat object of
// null/bool/int/float/string values.
func fromJSON(json string) (*Cursor, error) {
	json = strings.TrimSpace(json)
	if !strings.HasPrefix(json, "{") || !strings.HasSuffix(json, "}") {
		return nil, &CursorError{Code: ErrCursorInvalidFormat}
	}

	cursor := New()
	inner := json[1 : len(json)-1]
	if inner == "" {
		return cursor, nil
	}

	for _, pair := range splitPairs(inner) {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}

		colon := strings.IndexByte(pair, ':')
		if colon < 0 {
			return nil, &CursorError{Code: ErrCursorInvalidFormat}
		}
		key := strings.TrimSpace(pair[:colon])
		raw := strings.TrimSpace(pair[colon+1:])

		if len(key) < 2 || key[0] != '"' || key[len(key)-1] != '"' {
			return nil, &CursorError{Code: ErrCursorInvalidFormat}
		}
		name := key[1 : len(key)-1]

		parsed, err := parseValue(raw)
		if err != nil {
			return nil, err
		}
		cursor.Fields = append(cursor.Fields, Field{Name: name, Value: parsed})

		if len(cursor.Fields) > maxCursorFields {
			return nil, &CursorError{Code: ErrCursorTooManyFields}
		}
	}

	return cursor, nil
}

func parseValue(raw string) (value.Value, error) {
	switch {
	case raw == "null":
		return value.Null{}, nil
	case raw == "true":
		return value.Bool(true), nil
	case raw == "false":
		return value.Bool(false), nil
	case len(raw) >= 2 && raw[0] == '"' && raw[len(raw)-1] == '"':
		return value.String(unescapeJSON(raw[1 : len(raw)-1])), nil
	case strings.ContainsAny(raw, ".eE"):
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, &CursorError{Code: ErrCursorInvalidFormat}
		}
		return value.Float(f), nil
	default:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, &CursorError{Code: ErrCursorInvalidFormat}
		}
		return value.Int(n), nil
	}
}

// escapeJSON escapes a string per RFC 8259.
func escapeJSON(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		default:
			if r < 0x20 {
				fmt.Fprintf(&b, `\u%04x`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	return b.String()
}

// unescapeJSON reverses escapeJSON. Malformed escapes are passed through
// rather than erroring; the surrounding parser already bounded the input.
func unescapeJSON(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r != '\\' {
			b.WriteRune(r)
			continue
		}
		i++
		if i >= len(runes) {
			b.WriteRune('\\')
			break
		}
		switch runes[i] {
		case '"':
			b.WriteRune('"')
		case '\\':
			b.WriteRune('\\')
		case '/':
			b.WriteRune('/')
		case 'n':
			b.WriteRune('\n')
		case 'r':
			b.WriteRune('\r')
		case 't':
			b.WriteRune('\t')
		case 'b':
			b.WriteRune('\b')
		case 'f':
			b.WriteRune('\f')
		case 'u':
			if i+5 <= len(runes) {
				code, err := strconv.ParseUint(string(runes[i+1:i+5]), 16, 32)
				if err == nil {
					b.WriteRune(rune(code))
					i += 4
					continue
				}
			}
			b.WriteRune('\\')
			b.WriteRune('u')
		default:
			b.WriteRune('\\')
			b.WriteRune(runes[i])
		}
	}
	return b.String()
}

// splitPairs splits a JSON object body on top-level commas, respecting
// strings and nesting.
func splitPairs(s string) []string {
	var pairs []string
	start := 0
	depth := 0
	inString := false
	escape := false

	for i, r := range s {
		if escape {
			escape = false
			continue
		}
		switch r {
		case '\\':
			if inString {
				escape = true
			}
		case '"':
			inString = !inString
		case '{', '[':
			if !inString {
				depth++
			}
		case '}', ']':
			if !inString {
				depth--
			}
		case ',':
			if !inString && depth == 0 {
				pairs = append(pairs, s[start:i])
				start = i + 1
			}
		}
	}

	if start < len(s) {
		pairs = append(pairs, s[start:])
	}
	return pairs
}

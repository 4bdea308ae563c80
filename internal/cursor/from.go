package cursor

import "github.com/quarrydb/quarry/internal/value"

// From converts flexible caller input into a cursor:
//
//   - *Cursor / Cursor: passed through (empty cursors yield no cursor)
//   - string: decoded from its wire form
//   - *string: nil-tolerant string, matching an absent query parameter
//
// Pagination tokens from clients are best-effort hints: invalid, empty, or
// absent input yields (nil, false) rather than an error.
func From(v any) (*Cursor, bool) {
	switch c := v.(type) {
	case *Cursor:
		if c == nil || len(c.Fields) == 0 {
			return nil, false
		}
		return c, true
	case Cursor:
		return From(&c)
	case string:
		return fromString(c)
	case *string:
		if c == nil {
			return nil, false
		}
		return fromString(*c)
	default:
		return nil, false
	}
}

func fromString(s string) (*Cursor, bool) {
	if s == "" || len(s) > maxCursorSize {
		return nil, false
	}
	c, err := Decode(s)
	if err != nil || len(c.Fields) == 0 {
		return nil, false
	}
	return c, true
}

// FromRow builds a cursor from one result row, taking fields in sort order.
// Returns nil when any sort field is missing from the row.
func FromRow(sorts []value.SortField, row map[string]value.Value) *Cursor {
	c := New()
	for _, sort := range sorts {
		v, ok := row[sort.Field]
		if !ok {
			return nil
		}
		c.Field(sort.Field, v)
	}
	return c
}

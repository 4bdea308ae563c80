package builder

import (
	"fmt"
	"slices"
	"strings"

	"github.com/quarrydb/quarry/internal/validate"
	"github.com/quarrydb/quarry/internal/value"
)

// ParseSortString parses a comma-separated sort spec like "name,-created_at"
// into sort fields. A "-" prefix sorts descending. Empty segments are
// skipped.
//
// When allowed is non-empty, every field must be in it; for user input
// always provide an explicit whitelist so callers cannot sort by sensitive
// columns. Field names must also be valid SQL identifiers.
func ParseSortString(sort string, allowed []string) ([]value.SortField, error) {
	var result []value.SortField

	for _, part := range strings.Split(sort, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		field, dir := part, value.Asc
		if stripped, found := strings.CutPrefix(part, "-"); found {
			field, dir = stripped, value.Desc
		}

		if !validate.IsValidIdentifier(field) {
			return nil, fmt.Errorf("invalid sort field %q", field)
		}
		if len(allowed) > 0 && !slices.Contains(allowed, field) {
			return nil, fmt.Errorf("sort field %q not allowed. Allowed: %s",
				field, strings.Join(allowed, ", "))
		}

		result = append(result, value.SortField{Field: field, Dir: dir})
	}

	return result, nil
}

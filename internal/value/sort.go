package value

// SortDir is the direction of an ORDER BY field.
type SortDir string

const (
	Asc  SortDir = "asc"
	Desc SortDir = "desc"
)

// SQL returns the ORDER BY keyword for the direction.
func (d SortDir) SQL() string {
	if d == Desc {
		return "DESC"
	}
	return "ASC"
}

// Reverse returns the opposite direction.
func (d SortDir) Reverse() SortDir {
	if d == Desc {
		return Asc
	}
	return Desc
}

// SortField is one ORDER BY term. Field must be a valid SQL identifier
// before it is embedded in statement text.
type SortField struct {
	Field string
	Dir   SortDir
}

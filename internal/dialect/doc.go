// Package dialect isolates the syntax differences between PostgreSQL and
// SQLite behind a single interface: placeholder style ($N vs ?N), boolean
// literals, regex support, ILIKE availability, pattern-match composition, and
// the structurally different IN/NOT IN encodings (one array-typed parameter
// vs per-value expansion).
//
// Callers must never assume how many params an IN clause produced; the count
// is dialect-defined and the parameter index advances by len(params).
package dialect

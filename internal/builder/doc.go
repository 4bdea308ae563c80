// Package builder provides fluent assemblers for SELECT, INSERT, UPDATE, and
// DELETE statements. Each builder is bound to one dialect and one table
// (validated as an identifier at construction) and terminates in a single
// Build call producing a QueryResult: parameterized SQL plus its ordered
// params. Builders hold no external resources and must not be reused after
// Build.
//
// Filters and sort fields only accept validated identifiers and typed
// values, never raw SQL substrings. Cursor pagination plugs into the WHERE
// clause as a keyset condition compiled by the same filter compiler as
// everything else, so placeholder numbering stays consistent end to end.
package builder

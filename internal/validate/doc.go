// Package validate holds the string-level security checks applied before any
// caller-supplied name or expression is embedded in SQL text: identifier
// whitelisting and computed-expression pattern blocking.
//
// Both checks come in a predicate form (IsValid*) and an assertive form
// (Must*) that panics. The panic forms gate construction-time programmer
// errors; request-derived filter input goes through filter.Validator instead.
package validate

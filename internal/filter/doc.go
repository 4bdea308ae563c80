// Package filter models boolean filter trees and compiles them to
// parameterized SQL fragments.
//
// An Expr is either a Filter (one field comparison) or a Compound (AND/OR/NOT
// over children). Compile walks the tree left to right, threading a single
// monotonically increasing placeholder index through every leaf, and returns
// the fragment, its params, and the next free index so callers can continue
// the sequence across WHERE, cursor, and HAVING clauses.
//
// Validator and MergeFilters gate request-derived filters before they reach
// a builder: field whitelist, operator blacklist, and depth/node caps.
package filter

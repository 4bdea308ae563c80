// Package value defines the parameter value model shared by every layer of
// the statement compiler: a sealed Value sum type (Null, Bool, Int, Float,
// String, Array), the comparison/logical/aggregate operator vocabularies, and
// sort-field descriptors.
//
// Values are pure data. They carry no dialect knowledge; rendering a Value as
// a placeholder plus driver argument is the dialect package's job, and no
// Value is ever interpolated into SQL text.
package value

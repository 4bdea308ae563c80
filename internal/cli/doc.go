// Package cli implements the quarry command line interface: building
// parameterized SQL from YAML query documents, validating documents against
// the embedded schema and filter security rules, and inspecting pagination
// cursor tokens.
package cli

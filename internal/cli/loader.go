package cli

import (
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
	cueyaml "cuelang.org/go/encoding/yaml"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaCUE string

// LoadMode controls how errors are handled during document loading.
type LoadMode int

const (
	// LoadModeFailFast stops on the first error encountered.
	LoadModeFailFast LoadMode = iota
	// LoadModeCollectAll collects all errors before returning.
	LoadModeCollectAll
)

// LoadError represents an error that occurred during document loading.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // source position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric    = "E001" // Generic/unknown error
	ErrCodeReadFailed = "E002" // File read error
	ErrCodeBadYAML    = "E003" // YAML parse error
	ErrCodeSchema     = "E004" // Schema violation
	ErrCodeNotFound   = "E005" // Path not found

	// Document conversion errors
	ErrCodeBadField    = "E101" // Invalid field name
	ErrCodeBadOperator = "E102" // Unknown operator
	ErrCodeBadValue    = "E103" // Unsupported value type
	ErrCodeBadSort     = "E104" // Invalid sort string
	ErrCodeBadCursor   = "E105" // Undecodable cursor token
	ErrCodeBadShape    = "E106" // Document shape does not match its kind
)

// FilterNode is the YAML form of one node in a filter tree. A node with
// child filters is a compound (op "and", "or", or "not"); otherwise it is a
// leaf condition.
type FilterNode struct {
	Field   string       `yaml:"field"`
	Op      string       `yaml:"op"`
	Value   any          `yaml:"value"`
	Filters []FilterNode `yaml:"filters"`
}

// AssignmentNode is one SET column in an update document.
type AssignmentNode struct {
	Column string `yaml:"column"`
	Value  any    `yaml:"value"`
}

// QueryDoc is a parsed query document. Kind defaults to "select".
type QueryDoc struct {
	Kind      string           `yaml:"kind"`
	Dialect   string           `yaml:"dialect"`
	Table     string           `yaml:"table"`
	Fields    []string         `yaml:"fields"`
	Filter    *FilterNode      `yaml:"filter"`
	Sort      string           `yaml:"sort"`
	Limit     *int             `yaml:"limit"`
	Offset    *int             `yaml:"offset"`
	After     string           `yaml:"after"`
	Before    string           `yaml:"before"`
	GroupBy   []string         `yaml:"group_by"`
	Having    *FilterNode      `yaml:"having"`
	Columns   []string         `yaml:"columns"`
	Rows      [][]any          `yaml:"rows"`
	Set       []AssignmentNode `yaml:"set"`
	Returning []string         `yaml:"returning"`
}

// LoadQueryFile reads a YAML query document, validates it against the
// embedded schema, and decodes it. In LoadModeCollectAll every schema
// violation is reported; in LoadModeFailFast only the first.
func LoadQueryFile(path string, mode LoadMode) (*QueryDoc, []error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("query document not found: %s", path)}}
	}
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeReadFailed, Message: fmt.Sprintf("reading query document: %v", err)}}
	}

	if errs := validateAgainstSchema(path, data, mode); len(errs) > 0 {
		return nil, errs
	}

	doc := &QueryDoc{}
	if err := yaml.Unmarshal(data, doc); err != nil {
		return nil, []error{&LoadError{Code: ErrCodeBadYAML, Message: fmt.Sprintf("parsing YAML: %v", err)}}
	}
	if doc.Kind == "" {
		doc.Kind = "select"
	}
	return doc, nil
}

// validateAgainstSchema unifies the YAML document with the embedded CUE
// schema and reports every violation with its source position.
func validateAgainstSchema(path string, data []byte, mode LoadMode) []error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return []error{&LoadError{Code: ErrCodeGeneric, Message: fmt.Sprintf("compiling schema: %v", err)}}
	}

	file, err := cueyaml.Extract(path, data)
	if err != nil {
		return []error{&LoadError{Code: ErrCodeBadYAML, Message: fmt.Sprintf("parsing YAML: %v", err)}}
	}
	docVal := ctx.BuildFile(file)
	if err := docVal.Err(); err != nil {
		return []error{&LoadError{Code: ErrCodeBadYAML, Message: fmt.Sprintf("building document: %v", err)}}
	}

	unified := schema.Unify(docVal)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		var errs []error
		for _, cueErr := range cueerrors.Errors(err) {
			format, args := cueErr.Msg()
			errs = append(errs, &LoadError{
				Code:    ErrCodeSchema,
				Message: fmt.Sprintf(format, args...),
				Pos:     cueErr.Position(),
			})
			if mode == LoadModeFailFast {
				break
			}
		}
		return errs
	}
	return nil
}

package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quarrydb/quarry/internal/filter"
	"github.com/quarrydb/quarry/internal/value"
)

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	*RootOptions
	AllowFields []string
	DenyOps     []string
	MaxDepth    int
}

// ValidationReport is the success payload of the validate command.
type ValidationReport struct {
	Path  string `json:"path"`
	Kind  string `json:"kind"`
	Table string `json:"table"`
	Valid bool   `json:"valid"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "validate <query.yaml>",
		Short: "Validate a query document without building SQL",
		Long: `Validate a YAML query document against the embedded schema and,
optionally, against a field whitelist and operator denylist. All
violations are reported, not just the first.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringSliceVar(&opts.AllowFields, "allow-fields", nil, "whitelist of filterable fields (empty allows all)")
	cmd.Flags().StringSliceVar(&opts.DenyOps, "deny-ops", nil, "operators to reject in filters")
	cmd.Flags().IntVar(&opts.MaxDepth, "max-depth", 0, "maximum value nesting depth (0 uses the default)")

	return cmd
}

func runValidate(opts *ValidateOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	doc, errs := LoadQueryFile(path, LoadModeCollectAll)
	if doc == nil {
		var loadErr *LoadError
		if len(errs) > 0 && errors.As(errs[0], &loadErr) &&
			(loadErr.Code == ErrCodeNotFound || loadErr.Code == ErrCodeReadFailed) {
			return formatter.FailCommand(loadErr)
		}
		return outputValidationErrors(formatter, errs)
	}
	formatter.VerboseLog("Loaded %s document for table %s", doc.Kind, doc.Table)

	v := docValidator(opts)
	if doc.Filter != nil {
		errs = append(errs, validateFilterTree(doc.Filter, v)...)
	}
	if doc.Having != nil {
		errs = append(errs, validateFilterTree(doc.Having, v)...)
	}

	if len(errs) > 0 {
		return outputValidationErrors(formatter, errs)
	}

	report := ValidationReport{Path: path, Kind: doc.Kind, Table: doc.Table, Valid: true}
	if formatter.Format == "json" {
		return formatter.Success(report)
	}
	fmt.Fprintf(formatter.Writer, "✓ %s is a valid %s document\n", path, doc.Kind)
	return nil
}

// docValidator builds a filter validator from command flags. The default
// denies Regex, matching NewValidator.
func docValidator(opts *ValidateOptions) *filter.Validator {
	v := filter.NewValidator()
	if len(opts.AllowFields) > 0 {
		v = v.AllowFields(opts.AllowFields...)
	}
	if len(opts.DenyOps) > 0 {
		ops := make([]value.Operator, 0, len(opts.DenyOps))
		for _, raw := range opts.DenyOps {
			if op, ok := value.ParseOperator(raw); ok {
				ops = append(ops, op)
			}
		}
		v = v.DenyOperators(ops...)
	}
	if opts.MaxDepth > 0 {
		v = v.WithMaxDepth(opts.MaxDepth)
	}
	return v
}

// validateFilterTree converts and checks every leaf condition in a filter
// node tree, collecting all violations.
func validateFilterTree(n *FilterNode, v *filter.Validator) []error {
	if len(n.Filters) > 0 {
		var errs []error
		for i := range n.Filters {
			errs = append(errs, validateFilterTree(&n.Filters[i], v)...)
		}
		return errs
	}

	expr, err := n.toExpr()
	if err != nil {
		return []error{err}
	}
	leaf, ok := expr.(filter.Filter)
	if !ok {
		// Empty compound, nothing to check.
		return nil
	}
	if err := v.Validate(leaf); err != nil {
		return []error{err}
	}
	return nil
}

// outputValidationErrors reports all violations. Validation failures exit
// with code 1, distinct from command errors.
func outputValidationErrors(formatter *OutputFormatter, errs []error) error {
	if formatter.Format == "json" {
		cliErrors := make([]CLIError, len(errs))
		for i, err := range errs {
			cliErrors[i] = toCLIError(err)
		}
		response := CLIResponse{
			Status: "error",
			Error:  &cliErrors[0],
			Data:   cliErrors,
		}
		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return err
		}
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
	}

	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)
	for _, err := range errs {
		cliErr := toCLIError(err)
		var loadErr *LoadError
		if errors.As(err, &loadErr) && loadErr.Pos.IsValid() {
			fmt.Fprintf(formatter.Writer, "%s:%d:%d\n", loadErr.Pos.Filename(), loadErr.Pos.Line(), loadErr.Pos.Column())
		}
		fmt.Fprintf(formatter.Writer, "  %s: %s\n\n", cliErr.Code, cliErr.Message)
	}
	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
}

// toCLIError maps loader and filter-validator errors to response errors.
func toCLIError(err error) CLIError {
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		return CLIError{Code: loadErr.Code, Message: loadErr.Message}
	}
	if vErr, ok := filter.IsValidationError(err); ok {
		return CLIError{Code: string(vErr.Code), Message: vErr.Error()}
	}
	return CLIError{Code: ErrCodeGeneric, Message: err.Error()}
}

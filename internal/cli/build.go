package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// BuildOptions holds flags for the build command.
type BuildOptions struct {
	*RootOptions
}

// NewBuildCommand creates the build command.
func NewBuildCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BuildOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "build <query.yaml>",
		Short: "Build parameterized SQL from a query document",
		Long: `Build parameterized SQL from a YAML query document.

The document is validated against the embedded schema, then compiled into
dialect-specific SQL with ordered parameters. Values never appear in the
SQL text.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(opts, args[0], cmd)
		},
	}

	return cmd
}

func runBuild(opts *BuildOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	doc, errs := LoadQueryFile(path, LoadModeFailFast)
	if len(errs) > 0 {
		return formatter.FailCommand(errs[0])
	}
	formatter.VerboseLog("Loaded %s document for table %s", doc.Kind, doc.Table)

	result, err := BuildStatement(doc)
	if err != nil {
		return formatter.FailCommand(err)
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	fmt.Fprintln(formatter.Writer, result.SQL)
	for i, p := range result.Params {
		fmt.Fprintf(formatter.Writer, "  %d = %v\n", i+1, p)
	}
	return nil
}

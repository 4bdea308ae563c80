package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quarrydb/quarry/internal/cursor"
	"github.com/quarrydb/quarry/internal/value"
)

// CursorField is one decoded cursor position field.
type CursorField struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

// NewCursorCommand creates the cursor command group.
func NewCursorCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cursor",
		Short: "Encode and decode pagination cursors",
	}
	cmd.AddCommand(newCursorDecodeCommand(rootOpts))
	cmd.AddCommand(newCursorEncodeCommand(rootOpts))
	return cmd
}

func newCursorDecodeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "decode <token>",
		Short:         "Decode a cursor token into its position fields",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCursorDecode(rootOpts, args[0], cmd)
		},
	}
}

func newCursorEncodeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "encode <field=value>...",
		Short: "Encode position fields into a cursor token",
		Long: `Encode position fields into an opaque cursor token.

Values are typed by inference: integers, floats, and the literals true,
false, and null keep their type; everything else is a string.

Example:
  quarry cursor encode created_at=2026-01-02T15:04:05Z id=42`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCursorEncode(rootOpts, args, cmd)
		},
	}
}

func runCursorDecode(opts *RootOptions, token string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:  opts.Format,
		Writer:  cmd.OutOrStdout(),
		Verbose: opts.Verbose,
	}

	c, err := cursor.Decode(token)
	if err != nil {
		return formatter.FailCommand(err)
	}

	fields := make([]CursorField, len(c.Fields))
	for i, f := range c.Fields {
		fields[i] = CursorField{Name: f.Name, Value: value.Driver(f.Value)}
	}

	if formatter.Format == "json" {
		return formatter.Success(fields)
	}
	for _, f := range fields {
		fmt.Fprintf(formatter.Writer, "%s = %v\n", f.Name, f.Value)
	}
	return nil
}

func runCursorEncode(opts *RootOptions, args []string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:  opts.Format,
		Writer:  cmd.OutOrStdout(),
		Verbose: opts.Verbose,
	}

	c := cursor.New()
	for _, arg := range args {
		name, raw, found := strings.Cut(arg, "=")
		if !found || name == "" {
			return formatter.FailCommand(fmt.Errorf("argument %q is not field=value", arg))
		}
		c.Field(name, inferValue(raw))
	}

	token := c.Encode()
	if formatter.Format == "json" {
		return formatter.Success(map[string]string{"cursor": token})
	}
	fmt.Fprintln(formatter.Writer, token)
	return nil
}

// inferValue types a command-line literal the way the cursor wire format
// distinguishes values.
func inferValue(raw string) value.Value {
	switch raw {
	case "null":
		return value.Null{}
	case "true":
		return value.Bool(true)
	case "false":
		return value.Bool(false)
	}
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return value.Int(i)
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return value.Float(f)
	}
	return value.String(raw)
}

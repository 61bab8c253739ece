// Package flags provides the flag registry of the argot binary.
// Usage text, short-flag expansion and unknown-flag detection derive from it.
package flags

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// All is the complete registry of argot flags.
//
//nolint:gochecknoglobals // Read-only flag registry, initialized once.
var All = []Def{
	{
		Long:        "grammar",
		Short:       "g",
		Desc:        "Grammar file to parse against",
		Placeholder: &PlaceholderFile,
		TakesValue:  true,
	},
	{
		Long:        "line",
		Short:       "l",
		Desc:        "Parse a whole command line instead of the arguments after --",
		Placeholder: &PlaceholderLine,
		TakesValue:  true,
	},
	{Long: "complete", Short: "c", Desc: "Print completions for the input"},
	{
		Long:        "position",
		Short:       "p",
		Desc:        "Cursor position for --complete",
		Placeholder: &PlaceholderPosition,
		TakesValue:  true,
	},
	{Long: "diagram", Short: "d", Desc: "Print the parse diagram"},
	{Long: "validate", Desc: "Check the grammar and exit"},
	{Long: "no-color", Desc: "Disable colored output"},
	{Long: "verbose", Short: "v", Desc: "Log tokenizing and matching to stderr"},
	{Long: "help", Short: "h", Desc: "Show help"},
}

// Exported variables.
var (
	ErrMissingValue = errors.New("flag needs a value")
	ErrUnknownFlag  = errors.New("unknown flag")
)

// Def describes a CLI flag for usage, expansion and detection.
type Def struct {
	Long        string       // without "--", e.g. "grammar"
	Short       string       // without "-", e.g. "g" (empty if none)
	Desc        string       // help text
	Placeholder *Placeholder // value placeholder with format info (nil if TakesValue is false)
	TakesValue  bool         // consumes next arg as value
	Hidden      bool         // excluded from usage
}

// BooleanFlags returns map of --long and -short flags that don't take values.
func BooleanFlags() map[string]bool {
	m := make(map[string]bool)

	for _, f := range All {
		if !f.TakesValue {
			m["--"+f.Long] = true
			if f.Short != "" {
				m["-"+f.Short] = true
			}
		}
	}

	return m
}

// Find returns the flag def matching arg (e.g. "--grammar", "-g"), or nil.
func Find(arg string) *Def {
	if after, ok := strings.CutPrefix(arg, "--"); ok {
		// Strip =value suffix for --flag=value forms.
		name, _, _ := strings.Cut(after, "=")

		for i := range All {
			if All[i].Long == name {
				return &All[i]
			}
		}

		return nil
	}

	if after, ok := strings.CutPrefix(arg, "-"); ok {
		name, _, _ := strings.Cut(after, "=")
		if len(name) != 1 {
			return nil
		}

		for i := range All {
			if All[i].Short == name {
				return &All[i]
			}
		}
	}

	return nil
}

// Normalize rewrites short flags to their long forms and rejects anything
// that is not a registered flag or the value of one.
func Normalize(args []string) ([]string, error) {
	out := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		def := Find(arg)
		if def == nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownFlag, arg)
		}

		long := "--" + def.Long
		if _, value, ok := strings.Cut(arg, "="); ok {
			out = append(out, long+"="+value)
			continue
		}

		out = append(out, long)

		if !def.TakesValue {
			continue
		}

		if i+1 >= len(args) {
			return nil, fmt.Errorf("%w: --%s", ErrMissingValue, def.Long)
		}

		i++
		out[len(out)-1] += "=" + args[i]
	}

	return out, nil
}

// VisibleFlags returns all non-hidden flags.
func VisibleFlags() []Def {
	var out []Def

	for _, f := range All {
		if !f.Hidden {
			out = append(out, f)
		}
	}

	return out
}

// WithValues returns map of --long flags that consume next arg.
func WithValues() map[string]bool {
	m := make(map[string]bool)

	for _, f := range All {
		if f.TakesValue {
			m["--"+f.Long] = true
		}
	}

	return m
}

// WriteUsage writes the usage text of the binary.
func WriteUsage(w io.Writer, program string) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Usage: %s --grammar <file> [flags] [-- args...]\n\nFlags:\n", program)

	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)

	for _, f := range VisibleFlags() {
		names := "    --" + f.Long
		if f.Short != "" {
			names = "-" + f.Short + ", --" + f.Long
		}

		if f.Placeholder != nil {
			names += " " + f.Placeholder.Name
		}

		fmt.Fprintf(tw, "  %s\t%s\n", names, f.Desc)
	}

	_ = tw.Flush()

	placeholders := PlaceholdersUsedByFlags(VisibleFlags())
	if len(placeholders) > 0 {
		b.WriteString("\nFormats:\n")

		for _, p := range placeholders {
			fmt.Fprintf(&b, "  %s  %s\n", p.Name, p.Format)
		}
	}

	_, err := io.WriteString(w, b.String())
	if err != nil {
		return fmt.Errorf("writing usage: %w", err)
	}

	return nil
}

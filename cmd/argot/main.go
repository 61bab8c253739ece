// Package main provides the argot CLI: it loads a grammar file and parses,
// diagrams or completes an input against it.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/shayne/yargs"

	"github.com/toejough/argot/internal/core"
	"github.com/toejough/argot/internal/diagram"
	"github.com/toejough/argot/internal/flags"
	"github.com/toejough/argot/internal/grammar"
)

// unexported constants.
const (
	exitOK          = 0
	exitParseErrors = 1
	exitUsage       = 2
)

// unexported variables.
var (
	errBadPosition    = errors.New("invalid cursor position")
	errMissingGrammar = errors.New("missing --grammar")
)

// cliFlags are the parsed flags of one invocation.
type cliFlags struct {
	Grammar  string `flag:"grammar"  help:"Grammar file to parse against"`
	Line     string `flag:"line"     help:"Parse a whole command line"`
	Complete bool   `flag:"complete" help:"Print completions for the input"`
	Position string `flag:"position" help:"Cursor position for --complete"`
	Diagram  bool   `flag:"diagram"  help:"Print the parse diagram"`
	Validate bool   `flag:"validate" help:"Check the grammar and exit"`
	NoColor  bool   `flag:"no-color" help:"Disable colored output"`
	Verbose  bool   `flag:"verbose"  help:"Log tokenizing and matching to stderr"`
}

// argotRunner holds state for a single argot invocation.
type argotRunner struct {
	flags   cliFlags
	hasLine bool
	input   []string
	out     io.Writer
	errOut  io.Writer
	errText *color.Color
	hint    *color.Color
}

func (r *argotRunner) fail(code int, err error) int {
	for line := range strings.Lines(err.Error()) {
		r.errText.Fprintf(r.errOut, "error: %s\n", strings.TrimRight(line, "\n"))
	}

	return code
}

func (r *argotRunner) parse(parser *core.Parser) *core.ParseResult {
	if r.hasLine {
		return parser.ParseLine(r.flags.Line)
	}

	return parser.Parse(r.input)
}

func (r *argotRunner) parser() (*core.Parser, error) {
	if r.flags.Grammar == "" {
		return nil, errMissingGrammar
	}

	doc, err := grammar.Load(r.flags.Grammar)
	if err != nil {
		return nil, err
	}

	built, err := doc.Build(os.DirFS("."), nil)
	if err != nil {
		return nil, err
	}

	if r.flags.Verbose {
		built.Config.Logger = slog.New(slog.NewTextHandler(r.errOut, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	return built.Parser()
}

// position resolves the cursor for completion: --position wins over the
// value of a [suggest:N] directive, and both default to the end of input.
func (r *argotRunner) position(result *core.ParseResult) (int, error) {
	text := r.flags.Position

	if text == "" {
		values, _ := result.Directive(core.SuggestDirectiveName)
		if len(values) > 0 {
			text = values[len(values)-1]
		}
	}

	if text == "" {
		return -1, nil
	}

	position, err := strconv.Atoi(text)
	if err != nil || position < -1 {
		return 0, fmt.Errorf("%w: %q", errBadPosition, text)
	}

	return position, nil
}

func (r *argotRunner) printCompletions(result *core.ParseResult) int {
	position, err := r.position(result)
	if err != nil {
		return r.fail(exitUsage, err)
	}

	for _, item := range result.Complete(position) {
		if item.Detail == "" {
			fmt.Fprintln(r.out, item.Label)
			continue
		}

		fmt.Fprintf(r.out, "%s\t%s\n", item.Label, r.hint.Sprint(item.Detail))
	}

	return exitOK
}

func (r *argotRunner) printDiagram(result *core.ParseResult) int {
	styles := diagram.PlainStyles()
	if !r.flags.NoColor && !color.NoColor {
		styles = diagram.DefaultStyles()
	}

	err := diagram.Write(r.out, result, styles)
	if err != nil {
		return r.fail(exitParseErrors, err)
	}

	return r.printErrors(result)
}

func (r *argotRunner) printErrors(result *core.ParseResult) int {
	errs := result.Errors()
	if len(errs) == 0 {
		return exitOK
	}

	for _, err := range errs {
		r.errText.Fprintf(r.errOut, "error: %s\n", err.Message)

		if len(err.Suggestions) > 0 {
			r.hint.Fprintf(r.errOut, "  did you mean %s?\n", strings.Join(err.Suggestions, ", "))
		}
	}

	return exitParseErrors
}

func (r *argotRunner) printValues(result *core.ParseResult) int {
	if code := r.printErrors(result); code != exitOK {
		return code
	}

	var names []string

	for cmd := result.RootCommandResult(); cmd != nil; cmd = cmd.Subcommand() {
		names = append(names, cmd.Command().GetName())
	}

	fmt.Fprintf(r.out, "command: %s\n", strings.Join(names, " "))

	for cmd := result.RootCommandResult(); cmd != nil; cmd = cmd.Subcommand() {
		for _, child := range cmd.Children() {
			r.printValue(child)
		}
	}

	return exitOK
}

func (r *argotRunner) printValue(res core.SymbolResult) {
	var (
		value any
		err   error
		label string
		note  string
	)

	switch res := res.(type) {
	case *core.OptionResult:
		value, err = res.Value()
		label = res.Option().GetName()

		if res.IsImplicit() {
			note = r.hint.Sprint(" (default)")
		}
	case *core.ArgumentResult:
		value, err = res.Value()
		label = res.Argument().GetName()

		if len(res.Tokens()) == 0 {
			note = r.hint.Sprint(" (default)")
		}
	default:
		return
	}

	if err != nil {
		return
	}

	fmt.Fprintf(r.out, "  %s = %v%s\n", label, value, note)
}

func (r *argotRunner) run() int {
	parser, err := r.parser()
	if err != nil {
		if errors.Is(err, errMissingGrammar) {
			return r.fail(exitUsage, err)
		}

		return r.fail(exitParseErrors, err)
	}

	if r.flags.Validate {
		fmt.Fprintf(r.out, "%s: ok\n", r.flags.Grammar)
		return exitOK
	}

	result := r.parse(parser)

	_, suggest := result.Directive(core.SuggestDirectiveName)
	_, diagramRequested := result.Directive(core.ParseDirectiveName)

	switch {
	case r.flags.Complete || suggest:
		return r.printCompletions(result)
	case r.flags.Diagram || diagramRequested:
		return r.printDiagram(result)
	default:
		return r.printValues(result)
	}
}

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

// run executes one invocation and returns its exit code. Flags come before
// "--"; the arguments after it are parsed against the grammar.
func run(args []string, stdout, stderr io.Writer) int {
	program := "argot"
	if len(args) > 0 {
		program = filepath.Base(args[0])
		args = args[1:]
	}

	own, input := args, []string(nil)
	if end := slices.Index(args, "--"); end >= 0 {
		own, input = args[:end], args[end+1:]
	}

	r := &argotRunner{
		input:   input,
		out:     stdout,
		errOut:  stderr,
		errText: color.New(color.FgRed, color.Bold),
		hint:    color.New(color.Faint),
	}

	normalized, err := flags.Normalize(own)
	if err != nil {
		r.fail(exitUsage, err)
		_ = flags.WriteUsage(stderr, program)

		return exitUsage
	}

	if slices.Contains(normalized, "--help") {
		err := flags.WriteUsage(stdout, program)
		if err != nil {
			return r.fail(exitParseErrors, err)
		}

		return exitOK
	}

	parsed, err := yargs.ParseKnownFlags[cliFlags](normalized, yargs.KnownFlagsOptions{})
	if err != nil {
		return r.fail(exitUsage, err)
	}

	r.flags = parsed.Flags
	r.hasLine = slices.ContainsFunc(normalized, func(arg string) bool {
		return strings.HasPrefix(arg, "--line=")
	})

	if r.flags.NoColor {
		r.errText.DisableColor()
		r.hint.DisableColor()
	}

	return r.run()
}

package grammar

import (
	"context"
	"fmt"
	"io/fs"
	"reflect"

	"github.com/toejough/argot/internal/core"
	"github.com/toejough/argot/internal/file"
)

// Grammar is a built symbol tree plus the parser settings of its document.
type Grammar struct {
	Root   *core.Command
	Config core.Config
}

// Parser validates the tree and returns a parser for it.
func (g *Grammar) Parser() (*core.Parser, error) {
	parser, err := core.NewParser(g.Config)
	if err != nil {
		return nil, err
	}

	err = parser.Validate()
	if err != nil {
		return nil, err
	}

	return parser, nil
}

// Build turns the document into a symbol tree. Path completions glob
// against fsys; reg converts defaults and is nil for the default registry.
func (d *Document) Build(fsys fs.FS, reg *core.Registry) (*Grammar, error) {
	if reg == nil {
		reg = core.NewDefaultRegistry()
	}

	b := builder{fsys: fsys, reg: reg}

	root, err := b.command(&d.CommandSpec, true)
	if err != nil {
		return nil, err
	}

	mode, err := responseFileMode(d.ResponseFiles)
	if err != nil {
		return nil, err
	}

	cfg := core.Config{
		Root:                 root,
		Directives:           directives(d.Directives),
		Registry:             reg,
		ResponseFiles:        mode,
		DisablePosixBundling: d.PosixBundling != nil && !*d.PosixBundling,
		CaseInsensitive:      d.CaseInsensitive,
	}

	return &Grammar{Root: root, Config: cfg}, nil
}

type builder struct {
	fsys fs.FS
	reg  *core.Registry
}

func (b builder) argument(spec *ArgumentSpec) (*core.Argument, error) {
	typ, err := b.valueType(spec.Type, fallbackType(&spec.ValueSpec, reflect.TypeFor[string]()))
	if err != nil {
		return nil, err
	}

	arg := core.NewArgumentOfType(spec.Name, typ).Description(spec.Description)
	if spec.Hidden {
		arg.Hidden()
	}

	values, err := b.values(&spec.ValueSpec, typ)
	if err != nil {
		return nil, err
	}

	if values.hasArity {
		arg.Arity(values.arity)
	}

	if values.hasDefault {
		arg.Default(values.defaultValue)
	}

	if len(spec.AcceptOnly) > 0 {
		arg.AcceptOnlyFromAmong(spec.AcceptOnly...)
	}

	if len(spec.Completions) > 0 {
		arg.Completions(spec.Completions...)
	}

	if values.paths != nil {
		arg.CompletionSource(values.paths)
	}

	return arg, nil
}

func (b builder) command(spec *CommandSpec, isRoot bool) (*core.Command, error) {
	var cmd *core.Command
	if isRoot && spec.Name == "" {
		cmd = core.NewRootCommand(spec.Description)
	} else {
		cmd = core.NewCommand(spec.Name, spec.Description)
	}

	for _, alias := range spec.Aliases {
		err := cmd.AddAlias(alias)
		if err != nil {
			return nil, err
		}
	}

	if spec.Hidden {
		cmd.Hidden()
	}

	cmd.TreatUnmatchedTokensAsErrors(!spec.AllowUnmatched)

	if !spec.RequireSubcommand || len(spec.Commands) == 0 {
		cmd.Action(noAction)
	}

	for i := range spec.Options {
		opt, err := b.option(&spec.Options[i])
		if err != nil {
			return nil, fmt.Errorf("command %q: %w", cmd.GetName(), err)
		}

		err = cmd.AddOption(opt)
		if err != nil {
			return nil, err
		}
	}

	for i := range spec.Arguments {
		arg, err := b.argument(&spec.Arguments[i])
		if err != nil {
			return nil, fmt.Errorf("command %q: argument %q: %w", cmd.GetName(), spec.Arguments[i].Name, err)
		}

		err = cmd.AddArgument(arg)
		if err != nil {
			return nil, err
		}
	}

	for i := range spec.Commands {
		sub, err := b.command(&spec.Commands[i], false)
		if err != nil {
			return nil, err
		}

		err = cmd.AddCommand(sub)
		if err != nil {
			return nil, err
		}
	}

	return cmd, nil
}

func (b builder) option(spec *OptionSpec) (*core.Option, error) {
	if len(spec.Aliases) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrMissingAlias, spec.Name)
	}

	typ, err := b.valueType(spec.Type, fallbackType(&spec.ValueSpec, reflect.TypeFor[bool]()))
	if err != nil {
		return nil, fmt.Errorf("option %q: %w", spec.Aliases[0], err)
	}

	opt := core.NewOptionOfType(typ, spec.Aliases[0], spec.Aliases[1:]...).Description(spec.Description)

	if spec.Name != "" {
		opt.Name(spec.Name)
	}

	if spec.Hidden {
		opt.Hidden()
	}

	if spec.Required {
		opt.Required()
	}

	if spec.Recursive {
		opt.Recursive()
	}

	if spec.MultiplePerToken {
		opt.AllowMultipleArgumentsPerToken()
	}

	values, err := b.values(&spec.ValueSpec, typ)
	if err != nil {
		return nil, fmt.Errorf("option %q: %w", spec.Aliases[0], err)
	}

	if values.hasArity {
		opt.Arity(values.arity)
	}

	if values.hasDefault {
		opt.Default(values.defaultValue)
	}

	if len(spec.AcceptOnly) > 0 {
		opt.AcceptOnlyFromAmong(spec.AcceptOnly...)
	}

	if len(spec.Completions) > 0 {
		opt.Completions(spec.Completions...)
	}

	if values.paths != nil {
		opt.CompletionSource(values.paths)
	}

	return opt, nil
}

// fallbackType is the type of a value with no type name. An arity of more
// than one value needs a collection.
func fallbackType(spec *ValueSpec, single reflect.Type) reflect.Type {
	if spec.Arity == "" {
		return single
	}

	arity, err := ParseArity(spec.Arity)
	if err != nil || arity.Max <= 1 {
		return single
	}

	return reflect.TypeFor[[]string]()
}

func (b builder) valueType(name string, fallback reflect.Type) (reflect.Type, error) {
	if name == "" {
		return fallback, nil
	}

	return typeNamed(name)
}

// builtValues holds the converted parts of a ValueSpec.
type builtValues struct {
	arity        core.Arity
	hasArity     bool
	defaultValue any
	hasDefault   bool
	paths        core.CompletionSource
}

func (b builder) values(spec *ValueSpec, typ reflect.Type) (builtValues, error) {
	var out builtValues

	if spec.Arity != "" {
		arity, err := ParseArity(spec.Arity)
		if err != nil {
			return out, err
		}

		out.arity, out.hasArity = arity, true
	}

	if spec.Default != nil {
		value, err := convertDefault(b.reg, typ, spec.Default)
		if err != nil {
			return out, err
		}

		out.defaultValue, out.hasDefault = value, true
	}

	if len(spec.Paths) > 0 {
		source, err := file.Suggestions(b.fsys, spec.Paths...)
		if err != nil {
			return out, err
		}

		out.paths = source
	}

	return out, nil
}

func directives(specs []DirectiveSpec) []*core.Directive {
	if specs == nil {
		return []*core.Directive{core.NewParseDirective(), core.NewSuggestDirective()}
	}

	out := make([]*core.Directive, 0, len(specs))

	for _, spec := range specs {
		var d *core.Directive

		switch {
		case spec.Description != "":
			d = core.NewDirective(spec.Name, spec.Description)
		case spec.Name == core.ParseDirectiveName:
			d = core.NewParseDirective()
		case spec.Name == core.SuggestDirectiveName:
			d = core.NewSuggestDirective()
		default:
			d = core.NewDirective(spec.Name, "")
		}

		if spec.Hidden {
			d.Hidden()
		}

		out = append(out, d)
	}

	return out
}

func noAction(context.Context, *core.ParseResult) error { return nil }

func responseFileMode(name string) (core.ResponseFileHandling, error) {
	switch name {
	case "", "lines":
		return core.ResponseFilesLineSeparated, nil
	case "spaces":
		return core.ResponseFilesSpaceSeparated, nil
	case "off":
		return core.ResponseFilesDisabled, nil
	default:
		return 0, fmt.Errorf("%w: response_files must be lines, spaces or off, got %q", ErrDecode, name)
	}
}

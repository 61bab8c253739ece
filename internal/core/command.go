package core

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/tidwall/btree"
)

// Action is the handler a collaborator runs for a matched command.
type Action func(ctx context.Context, result *ParseResult) error

// Command is a named node of the grammar owning arguments, options and
// subcommands.
type Command struct {
	identifier

	arguments   []*Argument
	options     []*Option
	subcommands []*Command
	// index maps every raw alias of the child options and subcommands to its symbol.
	index                        *btree.Map[string, Symbol]
	treatUnmatchedTokensAsErrors bool
	action                       Action
}

// NewCommand creates a command whose name is also its first alias.
func NewCommand(name, description string) *Command {
	cmd := &Command{
		index:                        btree.NewMap[string, Symbol](0),
		treatUnmatchedTokensAsErrors: true,
	}
	cmd.self = cmd
	cmd.name = name
	cmd.named = true
	cmd.description = description
	cmd.aliases = []string{name}

	return cmd
}

// NewRootCommand creates a command named after the running executable.
func NewRootCommand(description string) *Command {
	return NewCommand(executableName(), description)
}

// Action sets the handler collaborators run when this command is matched.
func (c *Command) Action(action Action) *Command {
	c.action = action
	return c
}

// AddArgument appends a positional argument.
func (c *Command) AddArgument(arg *Argument) error {
	if arg == nil {
		return configError(c, "argument must not be nil")
	}

	if arg.owner != nil {
		return configError(arg, "argument already belongs to option %q", arg.owner.GetName())
	}

	if slices.Contains(c.arguments, arg) {
		return configError(arg, "argument already added to command %q", c.name)
	}

	err := checkNameText(arg)
	if err != nil {
		return err
	}

	err = arg.checkArity(arg)
	if err != nil {
		return err
	}

	for _, sibling := range c.arguments {
		if sibling.name == arg.name {
			return configError(arg, "argument name is already used in command %q", c.name)
		}
	}

	c.arguments = append(c.arguments, arg)
	arg.addParent(c)

	return nil
}

// AddCommand appends a subcommand. Cycles are rejected.
func (c *Command) AddCommand(sub *Command) error {
	if sub == nil {
		return configError(c, "subcommand must not be nil")
	}

	if sub == c || sub.isAncestorOf(c) {
		return configError(sub, "adding it under %q would create a cycle", c.name)
	}

	if slices.Contains(c.subcommands, sub) {
		return configError(sub, "subcommand already added to command %q", c.name)
	}

	err := c.admitChild(sub, &sub.identifier)
	if err != nil {
		return err
	}

	c.subcommands = append(c.subcommands, sub)

	return nil
}

// AddOption appends an option.
func (c *Command) AddOption(opt *Option) error {
	if opt == nil {
		return configError(c, "option must not be nil")
	}

	if slices.Contains(c.options, opt) {
		return configError(opt, "option already added to command %q", c.name)
	}

	err := opt.argument.checkArity(opt)
	if err != nil {
		return err
	}

	err = c.admitChild(opt, &opt.identifier)
	if err != nil {
		return err
	}

	c.options = append(c.options, opt)

	return nil
}

// Description sets the description.
func (c *Command) Description(description string) *Command {
	c.description = description
	return c
}

// GetAction returns the handler, or nil.
func (c *Command) GetAction() Action { return c.action }

// GetArguments returns the positional arguments in declaration order.
func (c *Command) GetArguments() []*Argument { return slices.Clone(c.arguments) }

// GetOptions returns the options in declaration order.
func (c *Command) GetOptions() []*Option { return slices.Clone(c.options) }

// GetSubcommands returns the subcommands in declaration order.
func (c *Command) GetSubcommands() []*Command { return slices.Clone(c.subcommands) }

// Hidden excludes the command from completions.
func (c *Command) Hidden() *Command {
	c.hidden = true
	return c
}

// Kind returns SymbolCommand.
func (c *Command) Kind() SymbolKind { return SymbolCommand }

// TreatUnmatchedTokensAsErrors controls whether unmatched tokens are reported
// when this command is the innermost matched command. The default is true.
func (c *Command) TreatUnmatchedTokensAsErrors(treat bool) *Command {
	c.treatUnmatchedTokensAsErrors = treat
	return c
}

// TreatsUnmatchedTokensAsErrors reports the setting made by TreatUnmatchedTokensAsErrors.
func (c *Command) TreatsUnmatchedTokensAsErrors() bool {
	return c.treatUnmatchedTokensAsErrors
}

// admitChild checks the child's aliases against the index and registers them.
func (c *Command) admitChild(child Symbol, ident *identifier) error {
	err := checkNameText(child)
	if err != nil {
		return err
	}

	for _, alias := range ident.aliases {
		err = checkAliasText(child, alias)
		if err != nil {
			return err
		}

		other, ok := c.index.Get(alias)
		if ok && other != child {
			return configError(child, "alias %q is already used by %s %q in command %q",
				alias, other.Kind(), other.GetName(), c.name)
		}
	}

	for _, sibling := range c.identifiedChildren() {
		if sibling != child && sibling.Kind() == child.Kind() && sibling.GetName() == child.GetName() {
			return configError(child, "name is already used by %s in command %q",
				sibling.Kind(), c.name)
		}
	}

	for _, alias := range ident.aliases {
		c.index.Set(alias, child)
	}

	child.base().addParent(c)

	return nil
}

// identifiedChildren returns the options and subcommands.
func (c *Command) identifiedChildren() []Symbol {
	children := make([]Symbol, 0, len(c.options)+len(c.subcommands))

	for _, opt := range c.options {
		children = append(children, opt)
	}

	for _, sub := range c.subcommands {
		children = append(children, sub)
	}

	return children
}

// isAncestorOf reports whether c is descendant's parent, grandparent, and so on.
func (c *Command) isAncestorOf(descendant *Command) bool {
	seen := map[*Command]bool{}
	pending := descendant.Parents()

	for len(pending) > 0 {
		current := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		if current == c {
			return true
		}

		if seen[current] {
			continue
		}

		seen[current] = true
		pending = append(pending, current.Parents()...)
	}

	return false
}

// lookup resolves a raw alias among the options and subcommands.
func (c *Command) lookup(alias string, foldCase bool) Symbol {
	if sym, ok := c.index.Get(alias); ok {
		return sym
	}

	if !foldCase {
		return nil
	}

	var found Symbol

	c.index.Scan(func(key string, sym Symbol) bool {
		if strings.EqualFold(key, alias) {
			found = sym
			return false
		}

		return true
	})

	return found
}

// recursiveOptions returns the options visible to every descendant.
func (c *Command) recursiveOptions() []*Option {
	var out []*Option

	for _, opt := range c.options {
		if opt.recursive {
			out = append(out, opt)
		}
	}

	return out
}

func executableName() string {
	if len(os.Args) == 0 {
		return "root"
	}

	name := filepath.Base(os.Args[0])

	return strings.TrimSuffix(name, filepath.Ext(name))
}

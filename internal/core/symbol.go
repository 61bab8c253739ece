package core

import (
	"slices"
	"strings"
	"unicode"
)

// Symbol is a node of the grammar: a command, option, argument or directive.
//
// Symbols are identified by pointer. A symbol may be added under more than one
// command, so its parents form a list rather than a single owner. Symbols must
// not be mutated while a parse that uses them is running.
type Symbol interface {
	GetName() string
	GetDescription() string
	IsHidden() bool
	Kind() SymbolKind
	Parents() []*Command

	base() *symbolBase
}

type identifier struct {
	symbolBase

	aliases []string
	// named is set once Name was called; otherwise the name follows the longest alias.
	named bool
	self  Symbol
}

// AddAlias adds an alias after validating it against the symbol's siblings.
func (i *identifier) AddAlias(alias string) error {
	err := checkAliasText(i.self, alias)
	if err != nil {
		return err
	}

	if slices.Contains(i.aliases, alias) {
		return nil
	}

	for parent := i.parents; parent != nil; parent = parent.next {
		other, ok := parent.command.index.Get(alias)
		if ok && other != i.self {
			return configError(i.self, "alias %q is already used by %s %q",
				alias, other.Kind(), other.GetName())
		}
	}

	i.aliases = append(i.aliases, alias)
	if !i.named {
		i.name = longestAlias(i.aliases)
	}

	for parent := i.parents; parent != nil; parent = parent.next {
		parent.command.index.Set(alias, i.self)
	}

	return nil
}

// GetAliases returns the raw aliases in the order they were added.
func (i *identifier) GetAliases() []string {
	return slices.Clone(i.aliases)
}

// HasAlias reports whether alias matches one of the aliases once prefixes
// are stripped from both, so "f" matches "-f".
func (i *identifier) HasAlias(alias string) bool {
	stripped := stripPrefix(alias)

	for _, candidate := range i.aliases {
		if stripPrefix(candidate) == stripped {
			return true
		}
	}

	return false
}

// HasRawAlias reports whether alias is exactly one of the raw aliases.
func (i *identifier) HasRawAlias(alias string) bool {
	return slices.Contains(i.aliases, alias)
}

type parentLink struct {
	command *Command
	next    *parentLink
}

type symbolBase struct {
	name        string
	description string
	hidden      bool
	parents     *parentLink
}

// GetDescription returns the description.
func (s *symbolBase) GetDescription() string { return s.description }

// GetName returns the name.
func (s *symbolBase) GetName() string { return s.name }

// IsHidden reports whether the symbol is excluded from completions.
func (s *symbolBase) IsHidden() bool { return s.hidden }

// Parents returns the commands the symbol was added to, in the order added.
func (s *symbolBase) Parents() []*Command {
	var parents []*Command

	for link := s.parents; link != nil; link = link.next {
		parents = append(parents, link.command)
	}

	slices.Reverse(parents)

	return parents
}

func (s *symbolBase) addParent(command *Command) {
	s.parents = &parentLink{command: command, next: s.parents}
}

func (s *symbolBase) base() *symbolBase { return s }

func (s *symbolBase) hasParent(command *Command) bool {
	for link := s.parents; link != nil; link = link.next {
		if link.command == command {
			return true
		}
	}

	return false
}

func checkAliasText(symbol Symbol, alias string) error {
	if alias == "" {
		return configError(symbol, "alias must not be empty")
	}

	if strings.ContainsFunc(alias, unicode.IsSpace) {
		return configError(symbol, "alias %q must not contain whitespace", alias)
	}

	return nil
}

func checkNameText(symbol Symbol) error {
	name := symbol.GetName()
	if name == "" {
		return configError(symbol, "name must not be empty")
	}

	if strings.ContainsFunc(name, unicode.IsSpace) {
		return configError(symbol, "name must not contain whitespace")
	}

	return nil
}

// longestAlias returns the longest alias with its prefix removed.
func longestAlias(aliases []string) string {
	longest := ""

	for _, alias := range aliases {
		stripped := stripPrefix(alias)
		if len(stripped) > len(longest) {
			longest = stripped
		}
	}

	return longest
}

func stripPrefix(alias string) string {
	return strings.TrimLeft(alias, "-/")
}

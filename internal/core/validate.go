package core

import (
	"errors"
	"slices"
	"strings"
)

// Validate checks a whole symbol tree: names and aliases are well formed,
// arities are consistent, no two siblings share a name or alias, and no
// command is its own ancestor. Every problem found is returned, joined.
//
// Every pair of siblings is compared, so this is meant for tests and
// start-up checks rather than for every parse.
func Validate(root *Command) error {
	return validateTree(root, false)
}

type treeValidator struct {
	foldCase bool
	problems []error
	done     map[*Command]bool
	stack    []*Command
}

func (v *treeValidator) aliasesOverlap(left, right []string) (string, bool) {
	for _, a := range left {
		for _, b := range right {
			if a == b || (v.foldCase && strings.EqualFold(a, b)) {
				return a, true
			}
		}
	}

	return "", false
}

func (v *treeValidator) checkArguments(cmd *Command) {
	names := map[string]bool{}

	for _, arg := range cmd.arguments {
		v.report(checkNameText(arg))

		if names[arg.name] {
			v.report(configError(arg, "argument name is used twice in command %q", cmd.name))
		}

		names[arg.name] = true

		v.report(arg.checkArity(arg))
	}
}

func (v *treeValidator) checkIdentifier(sym Symbol, ident *identifier) {
	v.report(checkNameText(sym))

	for _, alias := range ident.aliases {
		v.report(checkAliasText(sym, alias))
	}
}

func (v *treeValidator) checkSiblings(cmd *Command) {
	type sibling struct {
		sym     Symbol
		aliases []string
	}

	siblings := make([]sibling, 0, len(cmd.options)+len(cmd.subcommands))

	for _, opt := range cmd.options {
		v.checkIdentifier(opt, &opt.identifier)

		v.report(opt.argument.checkArity(opt))

		siblings = append(siblings, sibling{sym: opt, aliases: opt.aliases})
	}

	for _, sub := range cmd.subcommands {
		v.checkIdentifier(sub, &sub.identifier)
		siblings = append(siblings, sibling{sym: sub, aliases: sub.aliases})
	}

	for i := range siblings {
		for j := i + 1; j < len(siblings); j++ {
			left, right := siblings[i], siblings[j]

			if left.sym.Kind() == right.sym.Kind() && v.sameText(left.sym.GetName(), right.sym.GetName()) {
				v.report(configError(right.sym, "name is also used by a sibling in command %q", cmd.name))
			}

			if alias, ok := v.aliasesOverlap(left.aliases, right.aliases); ok {
				v.report(configError(right.sym, "alias %q is also used by %s %q in command %q",
					alias, left.sym.Kind(), left.sym.GetName(), cmd.name))
			}
		}
	}
}

func (v *treeValidator) report(err error) {
	if err != nil {
		v.problems = append(v.problems, err)
	}
}

func (v *treeValidator) sameText(a, b string) bool {
	if v.foldCase {
		return strings.EqualFold(a, b)
	}

	return a == b
}

func (v *treeValidator) visit(cmd *Command) {
	if slices.Contains(v.stack, cmd) {
		v.report(configError(cmd, "command is its own ancestor"))
		return
	}

	if v.done[cmd] {
		return
	}

	v.stack = append(v.stack, cmd)

	v.checkArguments(cmd)
	v.checkSiblings(cmd)

	for _, sub := range cmd.subcommands {
		v.visit(sub)
	}

	v.stack = v.stack[:len(v.stack)-1]
	v.done[cmd] = true
}

func validateTree(root *Command, foldCase bool) error {
	if root == nil {
		return configError(nil, "root command must not be nil")
	}

	v := &treeValidator{foldCase: foldCase, done: map[*Command]bool{}}
	v.report(checkNameText(root))
	v.visit(root)

	return errors.Join(v.problems...)
}

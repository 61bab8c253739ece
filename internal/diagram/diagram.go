// Package diagram renders how a parse matched its input, one bracketed group
// per command and option:
//
//	[ tool [ -v ] [ build [ --out <bin> ] <main> ] ]   ???--> extra
//
// A "*" marks an option filled from its default and a "!" marks a result
// with errors. Unmatched tokens follow the "???-->" marker.
package diagram

import (
	"fmt"
	"io"
	"strings"

	"github.com/toejough/argot/internal/core"
)

// Render returns the diagram of a parse result.
func Render(result *core.ParseResult, styles Styles) string {
	failed := map[core.SymbolResult]bool{}

	for _, err := range result.Errors() {
		if err.Result != nil {
			failed[err.Result] = true
		}
	}

	r := renderer{styles: styles, failed: failed}
	r.command(result.RootCommandResult())

	if unmatched := result.UnmatchedTokens(); len(unmatched) > 0 {
		r.out.WriteString("   ")
		r.out.WriteString(styles.Error.Render("???--> " + strings.Join(unmatched, " ")))
	}

	return r.out.String()
}

// Write renders the diagram to w, followed by a newline.
func Write(w io.Writer, result *core.ParseResult, styles Styles) error {
	_, err := fmt.Fprintln(w, Render(result, styles))
	if err != nil {
		return fmt.Errorf("writing diagram: %w", err)
	}

	return nil
}

type renderer struct {
	styles Styles
	failed map[core.SymbolResult]bool
	out    strings.Builder
}

func (r *renderer) argument(res *core.ArgumentResult) {
	tokens := res.Tokens()

	if len(tokens) == 0 {
		switch {
		case r.failed[res]:
			r.out.WriteString(" " + r.styles.Error.Render("!") + "<>")
		case res.Argument().HasDefault():
			value, err := res.Value()
			if err == nil {
				r.out.WriteString(" " + r.styles.Implicit.Render("*") + r.value(value))
			}
		}

		return
	}

	r.out.WriteString(" ")
	r.mark(res)

	for i, tok := range tokens {
		if i > 0 {
			r.out.WriteString(" ")
		}

		r.out.WriteString(r.value(tok.Text()))
	}
}

func (r *renderer) command(res *core.CommandResult) {
	r.mark(res)
	r.out.WriteString("[ ")

	label := res.Command().GetName()
	if tok := res.IdentifierToken(); tok != nil {
		label = tok.Text()
	}

	r.out.WriteString(r.styles.Command.Render(label))

	for _, child := range res.Children() {
		switch c := child.(type) {
		case *core.OptionResult:
			r.out.WriteString(" ")
			r.option(c)
		case *core.ArgumentResult:
			r.argument(c)
		}
	}

	if sub := res.Subcommand(); sub != nil {
		r.out.WriteString(" ")
		r.command(sub)
	}

	r.out.WriteString(" ]")
}

func (r *renderer) mark(res core.SymbolResult) {
	if r.failed[res] {
		r.out.WriteString(r.styles.Error.Render("!"))
	}
}

func (r *renderer) option(res *core.OptionResult) {
	if res.IsImplicit() {
		r.out.WriteString(r.styles.Implicit.Render("*"))
	} else {
		r.mark(res)
	}

	r.out.WriteString("[ ")

	identifiers := res.IdentifierTokens()
	if len(identifiers) > 0 {
		r.out.WriteString(r.styles.Option.Render(identifiers[0].Text()))
	} else {
		r.out.WriteString(r.styles.Option.Render(longestAlias(res.Option().GetAliases())))
	}

	if res.IsImplicit() {
		value, err := res.Value()
		if err == nil {
			r.out.WriteString(" " + r.value(value))
		}
	}

	for _, tok := range res.ArgumentResult().Tokens() {
		r.out.WriteString(" " + r.value(tok.Text()))
	}

	r.out.WriteString(" ]")
}

func (r *renderer) value(value any) string {
	return r.styles.Value.Render(fmt.Sprintf("<%v>", value))
}

func longestAlias(aliases []string) string {
	longest := ""

	for _, alias := range aliases {
		if len(alias) > len(longest) {
			longest = alias
		}
	}

	return longest
}

package core

import "strings"

// Built-in directive names.
const (
	ParseDirectiveName   = "parse"
	SuggestDirectiveName = "suggest"
)

// Directive is a bracketed annotation such as "[parse]" or "[suggest:12]"
// given before the first ordinary token.
type Directive struct {
	symbolBase
}

// NewDirective creates a directive.
func NewDirective(name, description string) *Directive {
	d := &Directive{}
	d.name = name
	d.description = description

	return d
}

// NewParseDirective creates the "[parse]" directive, which asks the caller
// to show the parse diagram instead of acting on the input.
func NewParseDirective() *Directive {
	return NewDirective(ParseDirectiveName, "Show how the input was parsed")
}

// NewSuggestDirective creates the "[suggest:position]" directive, which asks
// the caller to print completions for the given cursor position.
func NewSuggestDirective() *Directive {
	return NewDirective(SuggestDirectiveName, "Suggest completions at a cursor position")
}

// Hidden marks the directive as hidden.
func (d *Directive) Hidden() *Directive {
	d.hidden = true
	return d
}

// Kind returns SymbolDirective.
func (d *Directive) Kind() SymbolKind { return SymbolDirective }

func checkDirectiveName(d *Directive) error {
	err := checkNameText(d)
	if err != nil {
		return err
	}

	if strings.ContainsAny(d.name, "[]:") {
		return configError(d, "name must not contain brackets or colons")
	}

	return nil
}

// splitDirective returns the name and value of "[name]" or "[name:value]".
func splitDirective(text string) (name, value string, hasValue, ok bool) {
	if len(text) < len("[x]") || text[0] != '[' || text[len(text)-1] != ']' {
		return "", "", false, false
	}

	name, value, hasValue = strings.Cut(text[1:len(text)-1], ":")
	if name == "" {
		return "", "", false, false
	}

	return name, value, hasValue, true
}

// Package argot is a command-line grammar engine.
//
// Declare a tree of commands, options and arguments, then parse raw input
// against it:
//
//	root := argot.NewRootCommand("build things")
//	verbose := argot.NewOption[bool]("-v", "--verbose").Recursive()
//	_ = root.AddOption(verbose)
//
//	parser, _ := argot.NewParser(argot.Config{Root: root})
//	result := parser.Parse(os.Args[1:])
//	on, _ := argot.GetValue[bool](result, verbose)
//
// A parse never stops at the first problem: every error is collected in
// ParseResult.Errors. ParseResult.Complete ranks completions for a cursor
// position, and Diagram shows how the tokens were matched.
//
// Grammars may also be declared in YAML or TOML files and loaded with
// LoadGrammar.
package argot

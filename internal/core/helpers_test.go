package core_test

import (
	"context"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/toejough/argot/internal/core"
)

// toolFixture is a small grammar:
//
//	tool [-v|--verbose] [-f|--file <string>] [--tag <string>...]
//	tool build [-o|--out <string>] <target>
//	tool clean
type toolFixture struct {
	root    *core.Command
	verbose *core.Option
	file    *core.Option
	tags    *core.Option
	build   *core.Command
	out     *core.Option
	target  *core.Argument
	clean   *core.Command
}

func errorKinds(result *core.ParseResult) []core.ErrorKind {
	kinds := make([]core.ErrorKind, 0, len(result.Errors()))
	for _, err := range result.Errors() {
		kinds = append(kinds, err.Kind)
	}

	return kinds
}

func labels(items []core.CompletionItem) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Label)
	}

	return out
}

func mustParser(t *testing.T, cfg core.Config) *core.Parser {
	t.Helper()

	parser, err := core.NewParser(cfg)
	if err != nil {
		t.Fatalf("creating parser: %v", err)
	}

	return parser
}

func newToolFixture(t *testing.T) (*core.Command, toolFixture) {
	t.Helper()
	g := NewWithT(t)

	f := toolFixture{
		root:    core.NewCommand("tool", "a tool"),
		verbose: core.NewOption[bool]("-v", "--verbose").Recursive().Description("talk more"),
		file:    core.NewOption[string]("-f", "--file").Description("input file"),
		tags:    core.NewOption[[]string]("--tag"),
		build:   core.NewCommand("build", "build a target"),
		out:     core.NewOption[string]("-o", "--out"),
		target:  core.NewArgument[string]("target").Completions("main", "test"),
		clean:   core.NewCommand("clean", "remove outputs"),
	}

	f.root.Action(func(context.Context, *core.ParseResult) error { return nil })

	g.Expect(f.root.AddOption(f.verbose)).To(Succeed())
	g.Expect(f.root.AddOption(f.file)).To(Succeed())
	g.Expect(f.root.AddOption(f.tags)).To(Succeed())
	g.Expect(f.root.AddCommand(f.build)).To(Succeed())
	g.Expect(f.root.AddCommand(f.clean)).To(Succeed())
	g.Expect(f.build.AddOption(f.out)).To(Succeed())
	g.Expect(f.build.AddArgument(f.target)).To(Succeed())

	return f.root, f
}

func parseArgs(t *testing.T, root *core.Command, args ...string) *core.ParseResult {
	t.Helper()

	return mustParser(t, core.Config{
		Root:       root,
		Directives: []*core.Directive{core.NewParseDirective(), core.NewSuggestDirective()},
	}).Parse(args)
}

func tokenStrings(result *core.ParseResult) []string {
	tokens := result.Tokens()
	out := make([]string, 0, len(tokens))

	for _, tok := range tokens {
		out = append(out, tok.String())
	}

	return out
}

package core_test

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/google/go-cmp/cmp"
	. "github.com/onsi/gomega"

	"github.com/toejough/argot/internal/core"
)

func TestTokenize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "OptionsCommandsAndArguments",
			args: []string{"-v", "-f", "a.txt", "build", "-o", "bin", "main"},
			want: []string{
				"Option: -v", "Option: -f", "Argument: a.txt",
				"Command: build", "Option: -o", "Argument: bin", "Argument: main",
			},
		},
		{
			name: "EqualsDelimiter",
			args: []string{"--file=a.txt"},
			want: []string{"Option: --file", "Argument: a.txt"},
		},
		{
			name: "ColonDelimiter",
			args: []string{"-f:a.txt"},
			want: []string{"Option: -f", "Argument: a.txt"},
		},
		{
			name: "EmptyDelimitedValue",
			args: []string{"--file="},
			want: []string{"Option: --file"},
		},
		{
			name: "UnknownDelimitedOption",
			args: []string{"--nope=1"},
			want: []string{"Argument: --nope=1"},
		},
		{
			name: "EndOfArguments",
			args: []string{"--", "-v", "build"},
			want: []string{"EndOfArguments: --", "Operand: -v", "Operand: build"},
		},
		{
			name: "AliasAfterOptionAwaitingValue",
			args: []string{"--file", "build"},
			want: []string{"Option: --file", "Argument: build"},
		},
		{
			name: "BooleanOptionDoesNotSwallowCommand",
			args: []string{"--verbose", "build"},
			want: []string{"Option: --verbose", "Command: build"},
		},
		{
			name: "NoSubstringMatches",
			args: []string{"--verb", "buil"},
			want: []string{"Argument: --verb", "Argument: buil"},
		},
		{
			name: "RecursiveOptionInSubcommand",
			args: []string{"build", "--verbose", "--file"},
			want: []string{"Command: build", "Option: --verbose", "Argument: --file"},
		},
		{
			name: "Directives",
			args: []string{"[parse]", "[suggest:4]", "[nope]", "[parse]"},
			want: []string{
				"Directive: [parse]", "Directive: [suggest:4]", "Argument: [nope]", "Argument: [parse]",
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			root, _ := newToolFixture(t)
			got := tokenStrings(parseArgs(t, root, test.args...))

			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("tokens mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTokenizeBundling(t *testing.T) {
	t.Parallel()

	newRoot := func(t *testing.T) *core.Command {
		t.Helper()
		g := NewWithT(t)

		root := core.NewCommand("tool", "")
		g.Expect(root.AddOption(core.NewOption[bool]("-a"))).To(Succeed())
		g.Expect(root.AddOption(core.NewOption[bool]("-b"))).To(Succeed())
		g.Expect(root.AddOption(core.NewOption[bool]("-c"))).To(Succeed())
		g.Expect(root.AddOption(core.NewOption[bool]("-ab").Name("ab-both"))).To(Succeed())
		g.Expect(root.AddOption(core.NewOption[string]("-f"))).To(Succeed())

		return root.TreatUnmatchedTokensAsErrors(false)
	}

	tests := []struct {
		name    string
		args    []string
		disable bool
		want    []string
	}{
		{
			name: "Unbundles",
			args: []string{"-cab"},
			want: []string{"Option: -c", "Option: -a", "Option: -b"},
		},
		{
			name: "KnownAliasIsNotSplit",
			args: []string{"-ab"},
			want: []string{"Option: -ab"},
		},
		{
			name: "UnknownCharacterFallsThrough",
			args: []string{"-abx"},
			want: []string{"Argument: -abx"},
		},
		{
			name: "PendingValueIsNotSplit",
			args: []string{"-f", "-bc"},
			want: []string{"Option: -f", "Argument: -bc"},
		},
		{
			name:    "Disabled",
			args:    []string{"-ca"},
			disable: true,
			want:    []string{"Argument: -ca"},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			parser := mustParser(t, core.Config{Root: newRoot(t), DisablePosixBundling: test.disable})
			got := tokenStrings(parser.Parse(test.args))

			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("tokens mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTokenizeCaseInsensitive(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	root, _ := newToolFixture(t)
	parser := mustParser(t, core.Config{Root: root, CaseInsensitive: true})

	g.Expect(tokenStrings(parser.Parse([]string{"BUILD", "--Verbose"}))).To(Equal([]string{
		"Command: BUILD", "Option: --Verbose",
	}))
}

func TestTokenPositions(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	root, f := newToolFixture(t)
	tokens := parseArgs(t, root, "[parse]", "--file=x", "build").Tokens()

	g.Expect(tokens).To(HaveLen(4))
	g.Expect(tokens[0].Position()).To(Equal(0))
	g.Expect(tokens[1].Position()).To(Equal(1))
	g.Expect(tokens[1].Symbol()).To(BeIdenticalTo(f.file))
	g.Expect(tokens[2].Position()).To(Equal(1))
	g.Expect(tokens[3].Position()).To(Equal(2))
	g.Expect(tokens[3].Symbol()).To(BeIdenticalTo(f.build))
}

func TestResponseFiles(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"lines.rsp":  "--file\n  a b.txt  \n# comment\n\n-v\n",
		"spaces.rsp": "--file \"a b.txt\" -v # trailing comment\n",
		"outer.rsp":  "@lines.rsp\nbuild\n",
		"loop.rsp":   "@loop.rsp\n",
	}

	readFile := func(name string) ([]byte, error) {
		content, ok := files[name]
		if !ok {
			return nil, fs.ErrNotExist
		}

		return []byte(content), nil
	}

	newParser := func(t *testing.T, mode core.ResponseFileHandling) *core.Parser {
		t.Helper()

		root, _ := newToolFixture(t)

		return mustParser(t, core.Config{Root: root, ResponseFiles: mode, ReadFile: readFile})
	}

	t.Run("LineSeparated", func(t *testing.T) {
		t.Parallel()

		got := tokenStrings(newParser(t, core.ResponseFilesLineSeparated).Parse([]string{"@lines.rsp"}))
		want := []string{"Option: --file", "Argument: a b.txt", "Option: -v"}

		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("tokens mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("SpaceSeparated", func(t *testing.T) {
		t.Parallel()

		got := tokenStrings(newParser(t, core.ResponseFilesSpaceSeparated).Parse([]string{"@spaces.rsp"}))
		want := []string{"Option: --file", "Argument: a b.txt", "Option: -v"}

		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("tokens mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("Nested", func(t *testing.T) {
		t.Parallel()
		g := NewWithT(t)

		result := newParser(t, core.ResponseFilesLineSeparated).Parse([]string{"-v", "@outer.rsp"})

		g.Expect(tokenStrings(result)).To(Equal([]string{
			"Option: -v", "Option: --file", "Argument: a b.txt", "Option: -v", "Command: build",
		}))

		for _, tok := range result.Tokens()[1:] {
			g.Expect(tok.Position()).To(Equal(1))
		}
	})

	t.Run("MissingFile", func(t *testing.T) {
		t.Parallel()
		g := NewWithT(t)

		result := newParser(t, core.ResponseFilesLineSeparated).Parse([]string{"@missing.rsp"})

		g.Expect(result.Tokens()).To(BeEmpty())
		g.Expect(errorKinds(result)).To(Equal([]core.ErrorKind{core.ErrorResponseFile}))
		g.Expect(errors.Is(result.Errors()[0], core.ErrResponseFile)).To(BeTrue())
		g.Expect(errors.Is(result.Errors()[0], fs.ErrNotExist)).To(BeTrue())
		g.Expect(result.Errors()[0].Token.Text()).To(Equal("@missing.rsp"))
	})

	t.Run("SelfInclusion", func(t *testing.T) {
		t.Parallel()
		g := NewWithT(t)

		result := newParser(t, core.ResponseFilesLineSeparated).Parse([]string{"@loop.rsp"})

		g.Expect(errorKinds(result)).To(Equal([]core.ErrorKind{core.ErrorResponseFile}))
		g.Expect(result.Errors()[0].Message).To(ContainSubstring("includes itself"))
	})

	t.Run("Disabled", func(t *testing.T) {
		t.Parallel()
		g := NewWithT(t)

		result := newParser(t, core.ResponseFilesDisabled).Parse([]string{"@lines.rsp"})

		g.Expect(tokenStrings(result)).To(Equal([]string{"Argument: @lines.rsp"}))
	})

	t.Run("LineWords", func(t *testing.T) {
		t.Parallel()
		g := NewWithT(t)

		words, err := core.ResponseFileWordsForTest(core.ResponseFilesLineSeparated, " one \n#two\n\nthree four\n")
		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(words).To(Equal([]string{"one", "three four"}))
	})
}

func TestSplitCommandLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line string
		want []string
	}{
		{line: "", want: []string{}},
		{line: "  build   main ", want: []string{"build", "main"}},
		{line: `--file "a b.txt" x`, want: []string{"--file", "a b.txt", "x"}},
		{line: `--name="two words"`, want: []string{"--name=two words"}},
		{line: `""`, want: []string{""}},
		{line: "a\tb\nc", want: []string{"a", "b", "c"}},
	}

	for _, test := range tests {
		t.Run(test.line, func(t *testing.T) {
			t.Parallel()

			got := core.SplitCommandLine(test.line)
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("SplitCommandLine(%q) mismatch (-want +got):\n%s", test.line, diff)
			}
		})
	}
}

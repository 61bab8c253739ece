package core_test

import (
	"testing"

	. "github.com/onsi/gomega"

	"github.com/toejough/argot/internal/core"
)

func TestArgumentDefaultArity(t *testing.T) {
	t.Parallel()

	t.Run("ScalarIsExactlyOne", func(t *testing.T) {
		t.Parallel()
		g := NewWithT(t)

		g.Expect(core.NewArgument[string]("name").GetArity()).To(Equal(core.ArityExactlyOne))
		g.Expect(core.NewArgument[int]("count").GetArity()).To(Equal(core.ArityExactlyOne))
	})

	t.Run("BoolIsZeroOrOne", func(t *testing.T) {
		t.Parallel()
		g := NewWithT(t)

		g.Expect(core.NewArgument[bool]("flag").GetArity()).To(Equal(core.ArityZeroOrOne))
	})

	t.Run("CommandCollectionIsZeroOrMore", func(t *testing.T) {
		t.Parallel()
		g := NewWithT(t)

		g.Expect(core.NewArgument[[]string]("files").GetArity()).To(Equal(core.ArityZeroOrMore))
	})

	t.Run("OptionCollectionIsOneOrMore", func(t *testing.T) {
		t.Parallel()
		g := NewWithT(t)

		opt := core.NewOption[[]string]("--tag")
		g.Expect(opt.GetArgument().GetArity()).To(Equal(core.ArityOneOrMore))
	})

	t.Run("CommandArgumentWithDefaultIsOptional", func(t *testing.T) {
		t.Parallel()
		g := NewWithT(t)

		arg := core.NewArgument[int]("count").Default(3)
		g.Expect(arg.GetArity()).To(Equal(core.ArityZeroOrOne))
	})

	t.Run("ExplicitArityWins", func(t *testing.T) {
		t.Parallel()
		g := NewWithT(t)

		arg := core.NewArgument[[]string]("pair").Arity(core.Arity{Min: 2, Max: 2})
		g.Expect(arg.GetArity()).To(Equal(core.Arity{Min: 2, Max: 2}))
	})

	t.Run("BytesAreScalar", func(t *testing.T) {
		t.Parallel()
		g := NewWithT(t)

		arg := core.NewArgument[[]byte]("payload")
		g.Expect(arg.ValueKind()).To(Equal(core.KindScalar))
		g.Expect(arg.GetArity()).To(Equal(core.ArityExactlyOne))
	})
}

func TestArityString(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	g.Expect(core.ArityExactlyOne.String()).To(Equal("1..1"))
	g.Expect(core.ArityOneOrMore.String()).To(Equal("1..*"))
	g.Expect(core.ArityOneOrMore.IsUnbounded()).To(BeTrue())
	g.Expect(core.ArityZeroOrOne.IsUnbounded()).To(BeFalse())
}

func TestCommand(t *testing.T) {
	t.Parallel()

	t.Run("RejectsAddingItself", func(t *testing.T) {
		t.Parallel()
		g := NewWithT(t)

		cmd := core.NewCommand("tool", "")
		g.Expect(cmd.AddCommand(cmd)).To(MatchError(core.ErrInvalidConfiguration))
	})

	t.Run("RejectsCycles", func(t *testing.T) {
		t.Parallel()
		g := NewWithT(t)

		outer := core.NewCommand("outer", "")
		middle := core.NewCommand("middle", "")
		inner := core.NewCommand("inner", "")

		g.Expect(outer.AddCommand(middle)).To(Succeed())
		g.Expect(middle.AddCommand(inner)).To(Succeed())
		g.Expect(inner.AddCommand(outer)).To(MatchError(core.ErrInvalidConfiguration))
	})

	t.Run("RejectsNilChildren", func(t *testing.T) {
		t.Parallel()
		g := NewWithT(t)

		cmd := core.NewCommand("tool", "")
		g.Expect(cmd.AddCommand(nil)).To(MatchError(core.ErrInvalidConfiguration))
		g.Expect(cmd.AddOption(nil)).To(MatchError(core.ErrInvalidConfiguration))
		g.Expect(cmd.AddArgument(nil)).To(MatchError(core.ErrInvalidConfiguration))
	})

	t.Run("RejectsDuplicateOptionAlias", func(t *testing.T) {
		t.Parallel()
		g := NewWithT(t)

		cmd := core.NewCommand("tool", "")
		g.Expect(cmd.AddOption(core.NewOption[string]("--file", "-f"))).To(Succeed())

		err := cmd.AddOption(core.NewOption[string]("--force", "-f"))
		g.Expect(err).To(MatchError(core.ErrInvalidConfiguration))
		g.Expect(err.Error()).To(ContainSubstring(`"-f"`))
	})

	t.Run("AllowsOptionAndSubcommandWithSameBareName", func(t *testing.T) {
		t.Parallel()
		g := NewWithT(t)

		cmd := core.NewCommand("tool", "")
		g.Expect(cmd.AddOption(core.NewOption[bool]("--list"))).To(Succeed())
		g.Expect(cmd.AddCommand(core.NewCommand("list", ""))).To(Succeed())
	})

	t.Run("RejectsArgumentOwnedByOption", func(t *testing.T) {
		t.Parallel()
		g := NewWithT(t)

		cmd := core.NewCommand("tool", "")
		opt := core.NewOption[string]("--file")

		g.Expect(cmd.AddArgument(opt.GetArgument())).To(MatchError(core.ErrInvalidConfiguration))
	})

	t.Run("RejectsDuplicateArgumentName", func(t *testing.T) {
		t.Parallel()
		g := NewWithT(t)

		cmd := core.NewCommand("tool", "")
		g.Expect(cmd.AddArgument(core.NewArgument[string]("src"))).To(Succeed())
		g.Expect(cmd.AddArgument(core.NewArgument[string]("src"))).To(MatchError(core.ErrInvalidConfiguration))
	})

	t.Run("RejectsSeveralTokensIntoOneValue", func(t *testing.T) {
		t.Parallel()
		g := NewWithT(t)

		cmd := core.NewCommand("tool", "")
		pair := core.Arity{Min: 1, Max: 2}

		g.Expect(cmd.AddArgument(core.NewArgument[string]("src").Arity(pair))).
			To(MatchError(core.ErrInvalidConfiguration))
		g.Expect(cmd.AddOption(core.NewOption[int]("--count").Arity(core.ArityOneOrMore))).
			To(MatchError(core.ErrInvalidConfiguration))
		g.Expect(cmd.AddOption(core.NewOption[bool]("--flag").Arity(pair))).
			To(MatchError(core.ErrInvalidConfiguration))

		g.Expect(cmd.AddArgument(core.NewArgument[[]string]("srcs").Arity(pair))).To(Succeed())
		g.Expect(cmd.AddArgument(core.NewArgument[string]("joined").Arity(pair).
			CustomParser(func(tokens []string) (any, error) { return tokens[0], nil }))).To(Succeed())
	})

	t.Run("SharedSymbolKeepsEveryParent", func(t *testing.T) {
		t.Parallel()
		g := NewWithT(t)

		build := core.NewCommand("build", "")
		test := core.NewCommand("test", "")
		verbose := core.NewOption[bool]("--verbose")

		g.Expect(build.AddOption(verbose)).To(Succeed())
		g.Expect(test.AddOption(verbose)).To(Succeed())
		g.Expect(verbose.Parents()).To(Equal([]*core.Command{build, test}))
		g.Expect(verbose.GetArgument().Parents()).To(Equal([]*core.Command{build, test}))
	})

	t.Run("GettersReturnDeclarationOrder", func(t *testing.T) {
		t.Parallel()
		g := NewWithT(t)

		cmd := core.NewCommand("tool", "a tool")
		first := core.NewOption[bool]("--first")
		second := core.NewOption[bool]("--second")
		sub := core.NewCommand("sub", "")

		g.Expect(cmd.AddOption(first)).To(Succeed())
		g.Expect(cmd.AddOption(second)).To(Succeed())
		g.Expect(cmd.AddCommand(sub)).To(Succeed())

		g.Expect(cmd.GetOptions()).To(Equal([]*core.Option{first, second}))
		g.Expect(cmd.GetSubcommands()).To(Equal([]*core.Command{sub}))
		g.Expect(cmd.GetDescription()).To(Equal("a tool"))
		g.Expect(cmd.TreatsUnmatchedTokensAsErrors()).To(BeTrue())
	})
}

func TestOption(t *testing.T) {
	t.Parallel()

	t.Run("NameIsLongestAliasWithoutPrefix", func(t *testing.T) {
		t.Parallel()
		g := NewWithT(t)

		opt := core.NewOption[string]("-f", "--file")
		g.Expect(opt.GetName()).To(Equal("file"))
		g.Expect(opt.GetAliases()).To(Equal([]string{"-f", "--file"}))
		g.Expect(opt.GetArgument().GetName()).To(Equal("file"))
	})

	t.Run("NameOverride", func(t *testing.T) {
		t.Parallel()
		g := NewWithT(t)

		opt := core.NewOption[string]("-i").Name("input")
		g.Expect(opt.GetName()).To(Equal("input"))
		g.Expect(opt.GetArgument().GetName()).To(Equal("input"))

		g.Expect(opt.AddAlias("--source")).To(Succeed())
		g.Expect(opt.GetName()).To(Equal("input"))
	})

	t.Run("AddAliasRenamesUnlessNamed", func(t *testing.T) {
		t.Parallel()
		g := NewWithT(t)

		opt := core.NewOption[bool]("-v")
		g.Expect(opt.GetName()).To(Equal("v"))

		g.Expect(opt.AddAlias("--verbose")).To(Succeed())
		g.Expect(opt.GetName()).To(Equal("verbose"))
	})

	t.Run("HasAliasIgnoresPrefixes", func(t *testing.T) {
		t.Parallel()
		g := NewWithT(t)

		opt := core.NewOption[string]("-f", "--file")
		g.Expect(opt.HasAlias("f")).To(BeTrue())
		g.Expect(opt.HasAlias("file")).To(BeTrue())
		g.Expect(opt.HasAlias("fil")).To(BeFalse())
		g.Expect(opt.HasRawAlias("-f")).To(BeTrue())
		g.Expect(opt.HasRawAlias("f")).To(BeFalse())
	})

	t.Run("AddAliasRejectsBadText", func(t *testing.T) {
		t.Parallel()
		g := NewWithT(t)

		opt := core.NewOption[string]("--file")
		g.Expect(opt.AddAlias("")).To(MatchError(core.ErrInvalidConfiguration))
		g.Expect(opt.AddAlias("--my file")).To(MatchError(core.ErrInvalidConfiguration))
	})

	t.Run("AddAliasRejectsSiblingCollision", func(t *testing.T) {
		t.Parallel()
		g := NewWithT(t)

		cmd := core.NewCommand("tool", "")
		all := core.NewOption[bool]("--all", "-a")
		brief := core.NewOption[bool]("--brief", "-b")

		g.Expect(cmd.AddOption(all)).To(Succeed())
		g.Expect(cmd.AddOption(brief)).To(Succeed())
		g.Expect(brief.AddAlias("-a")).To(MatchError(core.ErrInvalidConfiguration))
		g.Expect(brief.AddAlias("-B")).To(Succeed())
	})

	t.Run("StripPrefix", func(t *testing.T) {
		t.Parallel()
		g := NewWithT(t)

		g.Expect(core.StripPrefixForTest("--file")).To(Equal("file"))
		g.Expect(core.StripPrefixForTest("/f")).To(Equal("f"))
		g.Expect(core.StripPrefixForTest("build")).To(Equal("build"))
	})
}

func TestValidate(t *testing.T) {
	t.Parallel()

	t.Run("AcceptsWellFormedTree", func(t *testing.T) {
		t.Parallel()
		g := NewWithT(t)

		root, _ := newToolFixture(t)
		g.Expect(core.Validate(root)).To(Succeed())
	})

	t.Run("RejectsNilRoot", func(t *testing.T) {
		t.Parallel()
		g := NewWithT(t)

		g.Expect(core.Validate(nil)).To(MatchError(core.ErrInvalidConfiguration))
	})

	t.Run("ReportsEveryProblem", func(t *testing.T) {
		t.Parallel()
		g := NewWithT(t)

		root := core.NewCommand("tool", "")
		broken := core.NewOption[string]("--broken")
		g.Expect(root.AddOption(broken)).To(Succeed())
		g.Expect(root.AddArgument(core.NewArgument[string]("src"))).To(Succeed())

		broken.Arity(core.Arity{Min: 2, Max: 1})
		root.GetArguments()[0].Arity(core.Arity{Min: 3, Max: 0})

		err := core.Validate(root)
		g.Expect(err).To(MatchError(core.ErrInvalidConfiguration))
		g.Expect(err.Error()).To(ContainSubstring(`option "broken"`))
		g.Expect(err.Error()).To(ContainSubstring(`argument "src"`))
	})

	t.Run("ReportsScalarWidenedAfterAdding", func(t *testing.T) {
		t.Parallel()
		g := NewWithT(t)

		root := core.NewCommand("tool", "")
		name := core.NewArgument[string]("name")
		g.Expect(root.AddArgument(name)).To(Succeed())

		name.Arity(core.Arity{Min: 2, Max: 2})

		err := core.Validate(root)
		g.Expect(err).To(MatchError(core.ErrInvalidConfiguration))
		g.Expect(err.Error()).To(ContainSubstring("collection type"))
	})

	t.Run("CaseInsensitiveParserFindsFoldedCollisions", func(t *testing.T) {
		t.Parallel()
		g := NewWithT(t)

		root := core.NewCommand("tool", "")
		g.Expect(root.AddOption(core.NewOption[bool]("--File"))).To(Succeed())
		g.Expect(root.AddOption(core.NewOption[bool]("--file"))).To(Succeed())
		g.Expect(core.Validate(root)).To(Succeed())

		parser, err := core.NewParser(core.Config{Root: root, CaseInsensitive: true})
		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(parser.Validate()).To(MatchError(core.ErrInvalidConfiguration))
	})
}

func TestNewParser(t *testing.T) {
	t.Parallel()

	t.Run("RequiresRoot", func(t *testing.T) {
		t.Parallel()
		g := NewWithT(t)

		_, err := core.NewParser(core.Config{})
		g.Expect(err).To(MatchError(core.ErrInvalidConfiguration))
	})

	t.Run("RejectsDuplicateDirectives", func(t *testing.T) {
		t.Parallel()
		g := NewWithT(t)

		_, err := core.NewParser(core.Config{
			Root:       core.NewCommand("tool", ""),
			Directives: []*core.Directive{core.NewParseDirective(), core.NewParseDirective()},
		})
		g.Expect(err).To(MatchError(core.ErrInvalidConfiguration))
	})

	t.Run("RejectsBracketsInDirectiveNames", func(t *testing.T) {
		t.Parallel()
		g := NewWithT(t)

		_, err := core.NewParser(core.Config{
			Root:       core.NewCommand("tool", ""),
			Directives: []*core.Directive{core.NewDirective("a:b", "")},
		})
		g.Expect(err).To(MatchError(core.ErrInvalidConfiguration))
	})

	t.Run("DefaultsRegistry", func(t *testing.T) {
		t.Parallel()
		g := NewWithT(t)

		root := core.NewCommand("tool", "")
		parser, err := core.NewParser(core.Config{Root: root})
		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(parser.Registry()).NotTo(BeNil())
		g.Expect(parser.Root()).To(BeIdenticalTo(root))
	})
}

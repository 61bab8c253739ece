package core

import (
	"log/slog"
	"os"
)

// Response file handling modes.
const (
	// ResponseFilesLineSeparated reads one argument per line.
	ResponseFilesLineSeparated ResponseFileHandling = iota
	// ResponseFilesSpaceSeparated splits the file like a shell would.
	ResponseFilesSpaceSeparated
	// ResponseFilesDisabled leaves "@file" tokens alone.
	ResponseFilesDisabled
)

// Config controls a Parser. The zero value of every field except Root is a
// usable default.
type Config struct {
	// Root is the implicit command matched before the first token.
	Root *Command

	// Directives lists the directives recognized at the start of the input.
	Directives []*Directive

	// Registry converts values. Nil means NewDefaultRegistry().
	Registry *Registry

	// ResponseFiles selects how "@file" tokens are expanded.
	ResponseFiles ResponseFileHandling

	// DisablePosixBundling stops "-abc" from meaning "-a -b -c".
	DisablePosixBundling bool

	// CaseInsensitive matches aliases regardless of case.
	CaseInsensitive bool

	// ReadFile reads response files. Nil means os.ReadFile.
	ReadFile func(name string) ([]byte, error)

	// Logger receives debug traces of tokenizing and matching. Nil discards them.
	Logger *slog.Logger
}

// Parser parses input against a symbol tree.
//
// A Parser holds no per-parse state and may be used by concurrent goroutines,
// as long as nobody mutates the symbol tree or the registry meanwhile.
type Parser struct {
	cfg        Config
	directives map[string]*Directive
}

// ResponseFileHandling selects how response files are read.
type ResponseFileHandling int

// NewParser validates the parts of cfg that are cheap to check and returns
// a parser. The full tree check is Validate.
func NewParser(cfg Config) (*Parser, error) {
	if cfg.Root == nil {
		return nil, configError(nil, "root command must not be nil")
	}

	if cfg.Registry == nil {
		cfg.Registry = NewDefaultRegistry()
	}

	if cfg.ReadFile == nil {
		cfg.ReadFile = os.ReadFile
	}

	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}

	directives := make(map[string]*Directive, len(cfg.Directives))

	for _, d := range cfg.Directives {
		if d == nil {
			return nil, configError(nil, "directive must not be nil")
		}

		err := checkDirectiveName(d)
		if err != nil {
			return nil, err
		}

		if _, ok := directives[d.name]; ok {
			return nil, configError(d, "directive is declared twice")
		}

		directives[d.name] = d
	}

	return &Parser{cfg: cfg, directives: directives}, nil
}

// Registry returns the registry used for conversion.
func (p *Parser) Registry() *Registry { return p.cfg.Registry }

// Root returns the root command.
func (p *Parser) Root() *Command { return p.cfg.Root }

// Validate checks the whole symbol tree. See Validate.
func (p *Parser) Validate() error {
	return validateTree(p.cfg.Root, p.cfg.CaseInsensitive)
}

// Package grammar loads declarative grammar documents (YAML or TOML) and
// builds core symbol trees from them.
//
// A document describes the root command; nested commands, options and
// arguments follow the same shape:
//
//	name: tool
//	options:
//	  - aliases: [-v, --verbose]
//	    recursive: true
//	commands:
//	  - name: build
//	    arguments:
//	      - name: target
//	        completions: [main, test]
package grammar

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Exported constants.
const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// Exported variables.
var (
	ErrBadArity      = errors.New("invalid arity")
	ErrBadDefault    = errors.New("invalid default")
	ErrDecode        = errors.New("cannot decode grammar")
	ErrMissingAlias  = errors.New("option has no aliases")
	ErrUnknownFormat = errors.New("unknown grammar format")
	ErrUnknownType   = errors.New("unknown value type")
)

// ArgumentSpec declares a positional argument.
type ArgumentSpec struct {
	ValueSpec `yaml:",inline"`

	Name        string `toml:"name"        yaml:"name"`
	Description string `toml:"description" yaml:"description"`
	Hidden      bool   `toml:"hidden"      yaml:"hidden"`
}

// CommandSpec declares a command and its children.
type CommandSpec struct {
	Name        string   `toml:"name"        yaml:"name"`
	Description string   `toml:"description" yaml:"description"`
	Aliases     []string `toml:"aliases"     yaml:"aliases"`
	Hidden      bool     `toml:"hidden"      yaml:"hidden"`

	// RequireSubcommand reports a parse error when none of the subcommands
	// is given.
	RequireSubcommand bool `toml:"require_subcommand" yaml:"require_subcommand"`

	// AllowUnmatched keeps unmatched tokens out of the errors.
	AllowUnmatched bool `toml:"allow_unmatched" yaml:"allow_unmatched"`

	Options   []OptionSpec   `toml:"options"   yaml:"options"`
	Arguments []ArgumentSpec `toml:"arguments" yaml:"arguments"`
	Commands  []CommandSpec  `toml:"commands"  yaml:"commands"`
}

// DirectiveSpec declares a directive. The names "parse" and "suggest" get
// the built-in descriptions when Description is empty.
type DirectiveSpec struct {
	Name        string `toml:"name"        yaml:"name"`
	Description string `toml:"description" yaml:"description"`
	Hidden      bool   `toml:"hidden"      yaml:"hidden"`
}

// Document is a whole grammar file: the root command plus parser settings.
type Document struct {
	CommandSpec `yaml:",inline"`

	CaseInsensitive bool `toml:"case_insensitive" yaml:"case_insensitive"`

	// PosixBundling is on unless set to false.
	PosixBundling *bool `toml:"posix_bundling" yaml:"posix_bundling"`

	// ResponseFiles is "lines" (the default), "spaces" or "off".
	ResponseFiles string `toml:"response_files" yaml:"response_files"`

	// Directives defaults to parse and suggest when absent.
	Directives []DirectiveSpec `toml:"directives" yaml:"directives"`
}

// Format names a grammar file syntax.
type Format string

// OptionSpec declares an option.
type OptionSpec struct {
	ValueSpec `yaml:",inline"`

	Aliases     []string `toml:"aliases"     yaml:"aliases"`
	Name        string   `toml:"name"        yaml:"name"`
	Description string   `toml:"description" yaml:"description"`
	Hidden      bool     `toml:"hidden"      yaml:"hidden"`
	Required    bool     `toml:"required"    yaml:"required"`
	Recursive   bool     `toml:"recursive"   yaml:"recursive"`

	// MultiplePerToken lets one occurrence take several values.
	MultiplePerToken bool `toml:"multiple_per_token" yaml:"multiple_per_token"`
}

// ValueSpec describes the value an option or argument carries.
type ValueSpec struct {
	// Type is a type name such as "int", "duration" or "[]string". Options
	// default to "bool", arguments to "string". Either defaults to
	// "[]string" when Arity allows more than one value.
	Type string `toml:"type" yaml:"type"`

	// Arity is "N", "N..M" or "N..*". Empty means the default for the type.
	Arity string `toml:"arity" yaml:"arity"`

	// Default is converted with the registry. Collections take a list.
	Default any `toml:"default" yaml:"default"`

	Completions []string `toml:"completions" yaml:"completions"`
	AcceptOnly  []string `toml:"accept_only" yaml:"accept_only"`

	// Paths are glob patterns offered as completions.
	Paths []string `toml:"paths" yaml:"paths"`
}

// Decode parses a document in the given format.
func Decode(data []byte, format Format) (*Document, error) {
	var doc Document

	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)

		err := dec.Decode(&doc)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDecode, err)
		}
	case FormatTOML:
		meta, err := toml.Decode(string(data), &doc)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDecode, err)
		}

		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("%w: unknown key %q", ErrDecode, undecoded[0].String())
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	return &doc, nil
}

// FormatOf returns the format implied by a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
	}
}

// Load reads and decodes a grammar file, choosing the format by extension.
func Load(path string) (*Document, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading grammar: %w", err)
	}

	doc, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return doc, nil
}

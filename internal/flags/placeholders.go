package flags

// Exported variables.
//
//nolint:gochecknoglobals // Read-only placeholders referenced by the registry.
var (
	PlaceholderFile = Placeholder{
		Name:   "<file>",
		Format: "grammar file ending in .yaml, .yml or .toml",
	}
	PlaceholderLine     = Placeholder{Name: "<line>"}
	PlaceholderPosition = Placeholder{
		Name:   "<n>",
		Format: "byte offset into the input; -1 or absent means the end",
	}
)

// Placeholder describes a value format for flag arguments.
type Placeholder struct {
	Name   string // Display name in help, e.g., "<file>"
	Format string // Format description, e.g., "path ending in .yaml"
}

// NeedsExplanation returns true if this placeholder has a non-obvious format.
func (p Placeholder) NeedsExplanation() bool {
	return p.Format != ""
}

// PlaceholdersUsedByFlags returns unique placeholders that need explanation
// from the given flag definitions.
func PlaceholdersUsedByFlags(defs []Def) []Placeholder {
	seen := make(map[string]bool)

	var result []Placeholder

	for _, def := range defs {
		if def.Placeholder == nil || !def.Placeholder.NeedsExplanation() {
			continue
		}

		if seen[def.Placeholder.Name] {
			continue
		}

		seen[def.Placeholder.Name] = true
		result = append(result, *def.Placeholder)
	}

	return result
}

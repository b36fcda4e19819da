// Package theme provides the named color presets applied to table borders,
// header shading, and diagram rendering.
package theme

import "strings"

// Theme is a resolved color preset. Color values are RRGGBB hex without a
// leading hash, the form OOXML expects. Mermaid names the init-directive
// theme injected into diagram sources.
type Theme struct {
	Name        string
	BorderColor string
	HeaderFill  string
	CodeFill    string
	Mermaid     string
}

var themes = map[string]Theme{
	"default": {
		Name:        "default",
		BorderColor: "666666",
		HeaderFill:  "DDDDDD",
		CodeFill:    "F2F2F2",
		Mermaid:     "default",
	},
	"dark": {
		Name:        "dark",
		BorderColor: "333333",
		HeaderFill:  "444444",
		CodeFill:    "2B2B2B",
		Mermaid:     "dark",
	},
	"forest": {
		Name:        "forest",
		BorderColor: "1B5E20",
		HeaderFill:  "C8E6C9",
		CodeFill:    "F1F8E9",
		Mermaid:     "forest",
	},
	"neutral": {
		Name:        "neutral",
		BorderColor: "999999",
		HeaderFill:  "EEEEEE",
		CodeFill:    "F7F7F7",
		Mermaid:     "neutral",
	},
}

// Default returns the default theme.
func Default() Theme {
	return themes["default"]
}

// Lookup resolves a theme by name, case-insensitively. The second return
// value reports whether the name was known; callers fall back to Default
// with a warning when it was not.
func Lookup(name string) (Theme, bool) {
	t, ok := themes[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Default(), false
	}
	return t, true
}

// Names returns the known theme names.
func Names() []string {
	return []string{"default", "dark", "forest", "neutral"}
}

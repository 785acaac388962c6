// Package texgen turns a FontAwesome desktop distribution into a
// LaTeX style package: icon macro definitions plus font and license
// assets laid out in an output tree.
package texgen

import (
	"encoding/json"
	"fmt"
	"os"
)

// Icon is one entry of the icons.json manifest. Only the fields the
// generator needs are decoded.
type Icon struct {
	Styles  []string `json:"styles"`
	Unicode string   `json:"unicode"`
	Label   string   `json:"label"`
	Search  struct {
		// Terms mixes strings and numbers (e.g. the "500px" icon
		// has the term 500), so it decodes as raw values.
		Terms []any `json:"terms"`
	} `json:"search"`
}

// Manifest maps icon names to their metadata.
type Manifest map[string]Icon

// LoadManifest reads and decodes an icons.json manifest file.
func LoadManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read icon manifest: %w", err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("invalid icon manifest %s: %w", path, err)
	}
	return m, nil
}

// HasStyle reports whether the icon ships in the given style.
func (i Icon) HasStyle(style string) bool {
	for _, s := range i.Styles {
		if s == style {
			return true
		}
	}
	return false
}

// FirstTerm returns the first search term as a string, or "" when the
// icon has none.
func (i Icon) FirstTerm() string {
	if len(i.Search.Terms) == 0 {
		return ""
	}
	switch v := i.Search.Terms[0].(type) {
	case string:
		return v
	case float64:
		// JSON numbers decode as float64; terms are small integers.
		return fmt.Sprintf("%v", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

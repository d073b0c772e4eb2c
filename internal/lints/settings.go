package lints

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Settings configures the relative-import rule.
type Settings struct {
	// MaxDepth is the number of "../" traversals tolerated before an
	// import is flagged unconditionally.
	MaxDepth int `yaml:"maxDepth"`

	// Suggested also flags relative imports that carry more path
	// separators than their aliased form would.
	Suggested bool `yaml:"suggested"`
}

// DefaultSettings returns the settings used when the config file leaves the
// options block out.
func DefaultSettings() Settings {
	return Settings{MaxDepth: 2, Suggested: false}
}

// UnmarshalYAML applies defaults for absent fields and rejects keys outside
// the allowed set.
func (s *Settings) UnmarshalYAML(value *yaml.Node) error {
	*s = DefaultSettings()
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("rule options must be a mapping")
	}
	for i := 0; i+1 < len(value.Content); i += 2 {
		key, val := value.Content[i].Value, value.Content[i+1]
		switch key {
		case "maxDepth":
			if err := val.Decode(&s.MaxDepth); err != nil {
				return err
			}
		case "suggested":
			if err := val.Decode(&s.Suggested); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unknown rule option: %q", key)
		}
	}
	return nil
}

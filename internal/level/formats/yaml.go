package formats

import (
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-sokoban/internal/level"
)

func init() {
	Register(Format{
		Name:       "yaml",
		Extensions: []string{".yaml", ".yml"},
		Parse:      ParseYAML,
		Encode:     EncodeYAML,
	})
}

// ParseYAML parses a YAML level document.
func ParseYAML(data []byte) (level.Definition, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return level.Definition{}, err
	}
	return doc.definition(), nil
}

// EncodeYAML writes a definition as a YAML document.
func EncodeYAML(def level.Definition) ([]byte, error) {
	return yaml.Marshal(fromDefinition(def))
}

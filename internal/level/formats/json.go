package formats

import (
	"encoding/json"

	"github.com/vovakirdan/tui-sokoban/internal/level"
)

func init() {
	Register(Format{
		Name:       "json",
		Extensions: []string{".json"},
		Parse:      ParseJSON,
		Encode:     EncodeJSON,
	})
}

// ParseJSON parses a JSON level document.
func ParseJSON(data []byte) (level.Definition, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return level.Definition{}, err
	}
	return doc.definition(), nil
}

// EncodeJSON writes a definition as an indented JSON document.
func EncodeJSON(def level.Definition) ([]byte, error) {
	data, err := json.MarshalIndent(fromDefinition(def), "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

package formats

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/vovakirdan/tui-sokoban/internal/level"
)

func init() {
	Register(Format{
		Name:       "xsb",
		Extensions: []string{".xsb", ".sok"},
		Parse:      ParseXSB,
		Encode:     EncodeXSB,
	})
}

var errNoRows = errors.New("no grid rows")

// ParseXSB parses the classic plain-text Sokoban layout. Width and height
// are taken from the rows. Lines starting with ';' are comments, and a
// "Title:" line names the level. '-' and '_' are accepted as floor.
func ParseXSB(data []byte) (level.Definition, error) {
	var def level.Definition
	var rows []string

	sc := bufio.NewScanner(bytes.NewReader(data))
scan:
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		trimmed := strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(trimmed, ";"):
			if def.Name == "" {
				def.Name = strings.TrimSpace(strings.TrimPrefix(trimmed, ";"))
			}
			continue
		case strings.HasPrefix(trimmed, "Title:"):
			def.Name = strings.TrimSpace(strings.TrimPrefix(trimmed, "Title:"))
			continue
		case trimmed == "":
			if len(rows) > 0 {
				// A blank line ends the grid; anything after is metadata.
				break scan
			}
			continue
		}

		row := strings.NewReplacer("-", " ", "_", " ").Replace(line)
		rows = append(rows, row)
		if n := utf8.RuneCountInString(row); n > def.Width {
			def.Width = n
		}
	}
	if err := sc.Err(); err != nil {
		return level.Definition{}, err
	}

	if len(rows) == 0 {
		return level.Definition{}, errNoRows
	}
	def.Height = len(rows)
	def.Grid = rows
	return def, nil
}

// EncodeXSB writes the grid rows with a title line.
func EncodeXSB(def level.Definition) ([]byte, error) {
	var buf bytes.Buffer
	if def.Name != "" {
		buf.WriteString("Title: " + def.Name + "\n")
	}
	for _, row := range def.Grid {
		buf.WriteString(strings.TrimRight(row, " ") + "\n")
	}
	return buf.Bytes(), nil
}

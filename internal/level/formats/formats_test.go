package formats

import (
	"errors"
	"reflect"
	"testing"

	"github.com/vovakirdan/tui-sokoban/internal/core"
	"github.com/vovakirdan/tui-sokoban/internal/level"
)

const tutorialJSON = `{
  "name": "Tutorial",
  "width": 6,
  "height": 5,
  "playerStart": {"x": 1, "y": 1},
  "grid": [
    "######",
    "#@ $.#",
    "#    #",
    "#    #",
    "######"
  ]
}`

const tutorialYAML = `name: Tutorial
width: 6
height: 5
playerStart: {x: 1, y: 1}
grid:
  - "######"
  - "#@ $.#"
  - "#    #"
  - "#    #"
  - "######"
`

func tutorial() level.Definition {
	return level.Definition{
		Name:        "Tutorial",
		Width:       6,
		Height:      5,
		PlayerStart: core.Pt(1, 1),
		Grid:        []string{"######", "#@ $.#", "#    #", "#    #", "######"},
	}
}

func TestParseByExtension(t *testing.T) {
	tests := []struct {
		name string
		path string
		data string
	}{
		{"json", "levels/level1.json", tutorialJSON},
		{"yaml", "levels/level1.yaml", tutorialYAML},
		{"yml upper case", "levels/LEVEL1.YML", tutorialYAML},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			def, err := Parse(tc.path, []byte(tc.data))
			if err != nil {
				t.Fatalf("Parse() failed: %v", err)
			}
			if !reflect.DeepEqual(def, tutorial()) {
				t.Errorf("Parse() = %+v, want %+v", def, tutorial())
			}
		})
	}
}

func TestParseUnsupported(t *testing.T) {
	_, err := Parse("notes.txt", []byte("hello"))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Parse(.txt) error = %v, want ErrUnsupportedFormat", err)
	}
	if IsSupported("notes.txt") {
		t.Error("IsSupported(.txt) = true")
	}
}

func TestParseMalformed(t *testing.T) {
	if _, err := Parse("bad.json", []byte(`{"name": "x", "width": "six"}`)); err == nil {
		t.Error("Parse(bad json) should fail")
	}
	if _, err := Parse("bad.yaml", []byte("grid: [unterminated")); err == nil {
		t.Error("Parse(bad yaml) should fail")
	}
	if _, err := Parse("empty.xsb", []byte("; only a comment\n")); err == nil {
		t.Error("Parse(empty xsb) should fail")
	}
}

func TestParseXSB(t *testing.T) {
	data := `; Warehouse
  #####
###---#
#.@$--#
###-$.#
  #####

Author: someone
`
	def, err := Parse("warehouse.xsb", []byte(data))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if def.Name != "Warehouse" {
		t.Errorf("Name = %q, want Warehouse", def.Name)
	}
	if def.Width != 7 || def.Height != 5 {
		t.Errorf("size = %dx%d, want 7x5", def.Width, def.Height)
	}

	l := level.New(nil)
	if !l.LoadFromDefinition(def) {
		t.Fatal("LoadFromDefinition() rejected parsed xsb")
	}
	if l.PlayerStart() != core.Pt(2, 2) {
		t.Errorf("PlayerStart() = %v, want (2,2)", l.PlayerStart())
	}
	if l.TotalBoxes() != 2 {
		t.Errorf("TotalBoxes() = %d, want 2", l.TotalBoxes())
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	for _, path := range []string{"a.json", "a.yaml", "a.xsb"} {
		t.Run(path, func(t *testing.T) {
			data, err := Encode(path, tutorial())
			if err != nil {
				t.Fatalf("Encode() failed: %v", err)
			}
			def, err := Parse(path, data)
			if err != nil {
				t.Fatalf("Parse(Encode()) failed: %v", err)
			}

			l := level.New(nil)
			if !l.LoadFromDefinition(def) {
				t.Fatal("LoadFromDefinition() rejected encoded level")
			}
			want := level.New(nil)
			want.LoadFromDefinition(tutorial())
			if l.Render(core.Pt(-1, -1)) != want.Render(core.Pt(-1, -1)) {
				t.Errorf("grid changed through %s:\n%s\nwant\n%s", path,
					l.Render(core.Pt(-1, -1)), want.Render(core.Pt(-1, -1)))
			}
		})
	}
}

func TestExtensions(t *testing.T) {
	want := []string{".json", ".sok", ".xsb", ".yaml", ".yml"}
	if got := Extensions(); !reflect.DeepEqual(got, want) {
		t.Errorf("Extensions() = %v, want %v", got, want)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Register() with a taken extension should panic")
		}
	}()
	Register(Format{Name: "dup", Extensions: []string{".json"}})
}

package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/vovakirdan/tui-sokoban/internal/level"
	"github.com/vovakirdan/tui-sokoban/internal/level/formats"
)

func writeLevel(t *testing.T, dir, name string, def level.Definition) string {
	t.Helper()
	path := filepath.Join(dir, name)
	data, err := formats.Encode(path, def)
	if err != nil {
		t.Fatalf("Encode(%s) failed: %v", name, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile(%s) failed: %v", name, err)
	}
	return path
}

func named(name string) level.Definition {
	def := TestLevel()
	def.Name = name
	return def
}

func loadedCatalog(t *testing.T, dir string) *Catalog {
	t.Helper()
	c := New(nil)
	if !c.Load(dir) {
		t.Fatalf("Load(%s) = false", dir)
	}
	return c
}

func TestLoadOrdersByID(t *testing.T) {
	dir := t.TempDir()
	writeLevel(t, dir, "b.json", named("B"))
	writeLevel(t, dir, "a.yaml", named("A"))
	writeLevel(t, dir, "c.xsb", named("C"))
	writeLevel(t, dir, "pack/z.json", named("Z"))
	if err := os.WriteFile(filepath.Join(dir, "README.md"), []byte("not a level"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := loadedCatalog(t, dir)

	var ids []string
	for _, e := range c.Entries() {
		ids = append(ids, e.ID)
	}
	want := []string{"a", "b", "c", "pack/z"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("entry IDs = %v, want %v", ids, want)
	}
	if c.Current() != 0 {
		t.Errorf("Current() = %d, want 0", c.Current())
	}
	if got := c.Names(); !reflect.DeepEqual(got, []string{"A", "B", "C", "Z"}) {
		t.Errorf("Names() = %v", got)
	}
}

func TestLoadSkipsInvalidFiles(t *testing.T) {
	dir := t.TempDir()
	writeLevel(t, dir, "good.json", named("Good"))
	bad := level.Definition{Name: "Bad", Width: 3, Height: 2, Grid: []string{"###"}}
	writeLevel(t, dir, "bad.json", bad)
	if err := os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := loadedCatalog(t, dir)
	if c.Count() != 1 || c.CurrentID() != "good" {
		t.Errorf("Count() = %d, CurrentID() = %q, want 1 and good", c.Count(), c.CurrentID())
	}
}

func TestLoadMissingDirectoryWritesBuiltin(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "levels")

	c := loadedCatalog(t, dir)

	if c.Count() != len(Builtin()) {
		t.Fatalf("Count() = %d, want %d", c.Count(), len(Builtin()))
	}
	for i := range Builtin() {
		if _, err := os.Stat(filepath.Join(dir, builtinFileName(i))); err != nil {
			t.Errorf("built-in level %d not written: %v", i+1, err)
		}
	}
	if c.CurrentName() != "level1" {
		t.Errorf("CurrentName() = %q, want level1", c.CurrentName())
	}

	// A second load reads the files that were written.
	again := loadedCatalog(t, dir)
	if again.Count() != c.Count() || again.Entries()[0].Path == "" {
		t.Error("second Load should find the written files on disk")
	}
}

func TestLoadUnwritableFallsBackToMemory(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	dir := filepath.Join(blocker, "levels")

	c := loadedCatalog(t, dir)
	if c.Count() != len(Builtin()) {
		t.Fatalf("Count() = %d, want %d", c.Count(), len(Builtin()))
	}

	l := level.New(nil)
	if !c.LoadLevel(l, 0) {
		t.Fatal("LoadLevel(0) from memory failed")
	}
	if l.Name() != "Tutorial" {
		t.Errorf("Name() = %q, want Tutorial", l.Name())
	}
}

func TestLoadLevelOutOfRange(t *testing.T) {
	c := loadedCatalog(t, filepath.Join(t.TempDir(), "levels"))
	l := level.New(nil)
	if !c.LoadLevel(l, 2) {
		t.Fatal("LoadLevel(2) failed")
	}
	before := l.Render(l.PlayerStart())

	for _, idx := range []int{-1, c.Count(), 99} {
		if c.LoadLevel(l, idx) {
			t.Errorf("LoadLevel(%d) = true, want false", idx)
		}
		if c.Current() != 2 {
			t.Errorf("LoadLevel(%d) moved Current() to %d", idx, c.Current())
		}
		if l.Render(l.PlayerStart()) != before {
			t.Errorf("LoadLevel(%d) changed the loaded grid", idx)
		}
	}

	if _, err := c.Definition(-1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Definition(-1) error = %v, want ErrIndexOutOfRange", err)
	}
}

func TestSequencing(t *testing.T) {
	dir := t.TempDir()
	writeLevel(t, dir, "1.json", named("One"))
	writeLevel(t, dir, "2.json", named("Two"))
	writeLevel(t, dir, "3.json", named("Three"))

	c := loadedCatalog(t, dir)
	l := level.New(nil)

	if c.HasPrevious() {
		t.Error("HasPrevious() = true at index 0")
	}
	if c.LoadPrevious(l) {
		t.Error("LoadPrevious() = true at index 0")
	}

	for _, want := range []string{"Two", "Three"} {
		if !c.LoadNext(l) {
			t.Fatalf("LoadNext() failed before %s", want)
		}
		if l.Name() != want {
			t.Errorf("Name() = %q, want %q", l.Name(), want)
		}
	}

	if c.HasNext() {
		t.Error("HasNext() = true at last index")
	}
	if c.LoadNext(l) || c.Current() != 2 {
		t.Errorf("LoadNext() at end should fail and keep index 2, got %d", c.Current())
	}

	if !c.LoadPrevious(l) || l.Name() != "Two" {
		t.Errorf("LoadPrevious() = %q, want Two", l.Name())
	}
	if !c.Reload(l) || c.Current() != 1 {
		t.Errorf("Reload() should keep index 1, got %d", c.Current())
	}
}

func TestLoadLevelReadsEditsFromDisk(t *testing.T) {
	dir := t.TempDir()
	path := writeLevel(t, dir, "edit.json", named("Before"))
	c := loadedCatalog(t, dir)

	writeLevel(t, dir, "edit.json", named("After"))
	l := level.New(nil)
	if !c.LoadLevel(l, 0) || l.Name() != "After" {
		t.Errorf("LoadLevel() name = %q, want After", l.Name())
	}

	if err := os.WriteFile(path, []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}
	if c.LoadLevel(l, 0) {
		t.Error("LoadLevel() of a corrupted file = true")
	}
	if l.Name() != "After" {
		t.Errorf("failed load changed level to %q", l.Name())
	}
}

func TestFailedLoadKeepsCursor(t *testing.T) {
	tests := []struct {
		name   string
		damage func(t *testing.T, path string)
	}{
		{"corrupted", func(t *testing.T, path string) {
			if err := os.WriteFile(path, []byte("{"), 0o644); err != nil {
				t.Fatal(err)
			}
		}},
		{"deleted", func(t *testing.T, path string) {
			if err := os.Remove(path); err != nil {
				t.Fatal(err)
			}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeLevel(t, dir, "a.json", named("A"))
			path := writeLevel(t, dir, "b.json", named("B"))
			writeLevel(t, dir, "c.json", named("C"))
			c := loadedCatalog(t, dir)
			l := level.New(nil)
			if !c.LoadLevel(l, 0) {
				t.Fatal("LoadLevel(0) failed")
			}

			tt.damage(t, path)
			if c.LoadLevel(l, 1) {
				t.Fatal("LoadLevel(1) of a broken file = true")
			}
			if c.Current() != 0 {
				t.Errorf("Current() = %d, want 0", c.Current())
			}
			if c.CurrentID() != "a" {
				t.Errorf("CurrentID() = %q, want a", c.CurrentID())
			}
			if l.Name() != "A" {
				t.Errorf("Name() = %q, want A kept", l.Name())
			}
		})
	}
}

func TestIndexOfID(t *testing.T) {
	dir := t.TempDir()
	writeLevel(t, dir, "a.json", named("A"))
	writeLevel(t, dir, "pack/b.json", named("B"))
	c := loadedCatalog(t, dir)

	tests := []struct {
		id   string
		want int
	}{
		{"a", 0},
		{"pack/b", 1},
		{"b", -1},
		{"", -1},
	}
	for _, tt := range tests {
		if got := c.IndexOfID(tt.id); got != tt.want {
			t.Errorf("IndexOfID(%q) = %d, want %d", tt.id, got, tt.want)
		}
	}
}

func TestRefreshKeepsCurrentEntry(t *testing.T) {
	dir := t.TempDir()
	writeLevel(t, dir, "b.json", named("B"))
	writeLevel(t, dir, "c.json", named("C"))
	c := loadedCatalog(t, dir)
	c.SetCurrent(1)

	writeLevel(t, dir, "a.json", named("A"))
	if !c.Refresh() {
		t.Fatal("Refresh() = false")
	}
	if c.Count() != 3 || c.CurrentID() != "c" || c.Current() != 2 {
		t.Errorf("after refresh: count=%d current=%d id=%q, want 3, 2, c",
			c.Count(), c.Current(), c.CurrentID())
	}

	if got := c.IndexOfPath(filepath.Join(dir, "a.json")); got != 0 {
		t.Errorf("IndexOfPath(a.json) = %d, want 0", got)
	}
	if got := c.IndexOfPath(filepath.Join(dir, "missing.json")); got != -1 {
		t.Errorf("IndexOfPath(missing) = %d, want -1", got)
	}
}

func TestEmptyCatalogNames(t *testing.T) {
	c := New(nil)
	if c.CurrentName() != "Unknown" {
		t.Errorf("CurrentName() = %q, want Unknown", c.CurrentName())
	}
	if c.Reload(level.New(nil)) {
		t.Error("Reload() on empty catalog = true")
	}
	if c.SetCurrent(0) {
		t.Error("SetCurrent(0) on empty catalog = true")
	}
}

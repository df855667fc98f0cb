// Package catalog discovers level files, orders them, and tracks which
// level is active. When no level files exist it writes a built-in set so
// the game is always playable.
package catalog

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-sokoban/internal/level"
	"github.com/vovakirdan/tui-sokoban/internal/level/formats"
)

// ErrIndexOutOfRange is returned when an entry index is outside the catalog.
var ErrIndexOutOfRange = errors.New("catalog: level index out of range")

// Entry is one level known to the catalog.
type Entry struct {
	// ID is the path relative to the root, without extension, using '/'.
	// Entries are ordered by ID.
	ID string

	// Name is the level's display name as parsed during the scan.
	Name string

	// Path is the file on disk. Empty for in-memory built-in entries.
	Path string

	def *level.Definition
}

// Catalog is an ordered collection of level entries plus a cursor.
type Catalog struct {
	root    string
	entries []Entry
	current int
	logger  *log.Logger
}

// New creates an empty catalog. A nil logger discards log output.
func New(logger *log.Logger) *Catalog {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Catalog{logger: logger}
}

// Load scans root for level files and resets the cursor to 0.
// If root is missing or holds no valid level, the built-in levels are
// written there and scanned again; if writing fails they are served from
// memory. Load reports whether at least one level is available.
func (c *Catalog) Load(root string) bool {
	c.root = root
	c.current = 0

	entries, err := c.scan(root)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		c.logger.Warn("cannot scan level directory", "dir", root, "error", err)
	}

	if len(entries) == 0 {
		c.logger.Info("no level files found, creating built-in levels", "dir", root)
		if werr := WriteBuiltin(root); werr != nil {
			c.logger.Warn("cannot write built-in levels, using in-memory copies", "error", werr)
			entries = memoryEntries()
		} else if entries, err = c.scan(root); err != nil || len(entries) == 0 {
			c.logger.Warn("built-in levels unreadable after write, using in-memory copies",
				"dir", root, "error", err)
			entries = memoryEntries()
		}
	}

	c.entries = entries
	c.logger.Info("level catalog loaded", "dir", root, "levels", len(entries))
	return len(c.entries) > 0
}

// Refresh rescans the current root, keeping the cursor on the same entry ID
// when it still exists. Unlike Load it never writes built-in levels.
func (c *Catalog) Refresh() bool {
	entries, err := c.scan(c.root)
	if err != nil || len(entries) == 0 {
		c.logger.Warn("level refresh found no levels, keeping current list", "dir", c.root, "error", err)
		return false
	}

	currentID := c.CurrentID()
	c.entries = entries
	c.current = 0
	for i, e := range entries {
		if e.ID == currentID {
			c.current = i
			break
		}
	}
	c.logger.Debug("level catalog refreshed", "levels", len(entries), "current", c.CurrentID())
	return true
}

// scan walks root and returns every parseable level, ordered by ID.
func (c *Catalog) scan(root string) ([]Entry, error) {
	if root == "" {
		return nil, fs.ErrNotExist
	}

	var entries []Entry
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !formats.IsSupported(path) {
			return nil
		}

		def, perr := readDefinition(path)
		if perr == nil && !level.New(nil).LoadFromDefinition(def) {
			perr = errors.New("invalid level geometry")
		}
		if perr != nil {
			// Skip invalid files
			c.logger.Warn("skipping level file", "path", path, "error", perr)
			return nil
		}

		entries = append(entries, Entry{
			ID:   entryID(root, path),
			Name: def.Name,
			Path: path,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("catalog: walking %s: %w", root, err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ID < entries[j].ID
	})
	return entries, nil
}

func memoryEntries() []Entry {
	defs := Builtin()
	entries := make([]Entry, len(defs))
	for i := range defs {
		entries[i] = Entry{
			ID:   strings.TrimSuffix(builtinFileName(i), filepath.Ext(builtinFileName(i))),
			Name: defs[i].Name,
			def:  &defs[i],
		}
	}
	return entries
}

func entryID(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = filepath.Base(path)
	}
	rel = strings.TrimSuffix(rel, filepath.Ext(rel))
	return filepath.ToSlash(rel)
}

func readDefinition(path string) (level.Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return level.Definition{}, err
	}
	return formats.Parse(path, data)
}

// Definition reads the definition for entry index afresh, so edits on disk
// are picked up. A definition without a name takes the entry ID.
func (c *Catalog) Definition(index int) (level.Definition, error) {
	if index < 0 || index >= len(c.entries) {
		return level.Definition{}, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, index, len(c.entries))
	}

	e := c.entries[index]
	var def level.Definition
	if e.def != nil {
		def = cloneDefinition(*e.def)
	} else {
		var err error
		if def, err = readDefinition(e.Path); err != nil {
			return level.Definition{}, fmt.Errorf("catalog: %s: %w", e.ID, err)
		}
	}
	if def.Name == "" {
		def.Name = e.ID
	}
	return def, nil
}

// LoadLevel loads entry index into l and makes it current.
// The cursor moves only on success. An out-of-range index also leaves l
// untouched.
func (c *Catalog) LoadLevel(l *level.Level, index int) bool {
	if index < 0 || index >= len(c.entries) {
		c.logger.Error("level index out of range", "index", index, "count", len(c.entries))
		return false
	}

	def, err := c.Definition(index)
	if err != nil {
		c.logger.Warn("cannot read level", "index", index, "error", err)
		return false
	}
	if !l.LoadFromDefinition(def) {
		c.logger.Warn("level rejected", "index", index, "id", c.entries[index].ID)
		return false
	}
	c.current = index

	c.logger.Info("loaded level", "index", index, "id", c.entries[index].ID, "name", l.Name())
	return true
}

// LoadNext loads the following level if there is one.
func (c *Catalog) LoadNext(l *level.Level) bool {
	if !c.HasNext() {
		c.logger.Debug("no next level")
		return false
	}
	return c.LoadLevel(l, c.current+1)
}

// LoadPrevious loads the preceding level if there is one.
func (c *Catalog) LoadPrevious(l *level.Level) bool {
	if !c.HasPrevious() {
		c.logger.Debug("no previous level")
		return false
	}
	return c.LoadLevel(l, c.current-1)
}

// Reload loads the current level again.
func (c *Catalog) Reload(l *level.Level) bool {
	if len(c.entries) == 0 {
		c.logger.Warn("no levels loaded")
		return false
	}
	return c.LoadLevel(l, c.current)
}

// HasNext reports whether a level follows the current one.
func (c *Catalog) HasNext() bool {
	return c.current < len(c.entries)-1
}

// HasPrevious reports whether a level precedes the current one.
func (c *Catalog) HasPrevious() bool {
	return c.current > 0
}

// SetCurrent moves the cursor without loading. Out-of-range indices are ignored.
func (c *Catalog) SetCurrent(index int) bool {
	if index < 0 || index >= len(c.entries) {
		return false
	}
	c.current = index
	return true
}

// Current returns the cursor position.
func (c *Catalog) Current() int { return c.current }

// Count returns the number of entries.
func (c *Catalog) Count() int { return len(c.entries) }

// Root returns the directory passed to Load.
func (c *Catalog) Root() string { return c.root }

// CurrentID returns the current entry's ID, or "" when the catalog is empty.
func (c *Catalog) CurrentID() string {
	if c.current < 0 || c.current >= len(c.entries) {
		return ""
	}
	return c.entries[c.current].ID
}

// CurrentName returns the current level's file name without extension,
// or "Unknown" when the catalog is empty.
func (c *Catalog) CurrentName() string {
	id := c.CurrentID()
	if id == "" {
		return "Unknown"
	}
	return id[strings.LastIndex(id, "/")+1:]
}

// Entries returns a copy of the ordered entry list.
func (c *Catalog) Entries() []Entry {
	return append([]Entry(nil), c.entries...)
}

// Names returns display names in catalog order, falling back to IDs.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.entries))
	for i, e := range c.entries {
		names[i] = e.Name
		if names[i] == "" {
			names[i] = e.ID
		}
	}
	return names
}

// IndexOfID returns the index of the entry with the given ID, or -1.
func (c *Catalog) IndexOfID(id string) int {
	for i, e := range c.entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// IndexOfPath returns the entry index whose file is path, or -1.
func (c *Catalog) IndexOfPath(path string) int {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	for i, e := range c.entries {
		if e.Path == "" {
			continue
		}
		ep, err := filepath.Abs(e.Path)
		if err != nil {
			ep = e.Path
		}
		if ep == abs {
			return i
		}
	}
	return -1
}

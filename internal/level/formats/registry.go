// Package formats provides pluggable level file parsers.
// Each format registers itself in init() keyed by file extension, so the
// catalog can discover level files without hardcoding a parser list.
package formats

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/vovakirdan/tui-sokoban/internal/level"
)

// ErrUnsupportedFormat is returned for files with no registered parser.
var ErrUnsupportedFormat = errors.New("formats: unsupported level format")

// Format describes one level file encoding.
type Format struct {
	// Name is a short identifier such as "json".
	Name string

	// Extensions are lower-case file extensions including the dot.
	Extensions []string

	// Parse decodes a document into a definition. It should not validate
	// geometry beyond what the encoding requires; the level model does that.
	Parse func(data []byte) (level.Definition, error)

	// Encode writes a definition back out. May be nil for read-only formats.
	Encode func(def level.Definition) ([]byte, error)
}

var (
	byExt = make(map[string]Format)
	mu    sync.RWMutex
)

// Register adds a format to the registry.
// Panics if one of its extensions is already registered.
func Register(f Format) {
	mu.Lock()
	defer mu.Unlock()

	for _, ext := range f.Extensions {
		ext = strings.ToLower(ext)
		if existing, ok := byExt[ext]; ok {
			panic(fmt.Sprintf("formats: extension %q already registered by %s", ext, existing.Name))
		}
		byExt[ext] = f
	}
}

// ForPath returns the format registered for the file's extension.
func ForPath(path string) (Format, bool) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := byExt[strings.ToLower(filepath.Ext(path))]
	return f, ok
}

// IsSupported reports whether a parser exists for the file's extension.
func IsSupported(path string) bool {
	_, ok := ForPath(path)
	return ok
}

// Extensions returns all registered extensions, sorted.
func Extensions() []string {
	mu.RLock()
	defer mu.RUnlock()

	exts := make([]string, 0, len(byExt))
	for ext := range byExt {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Parse decodes data using the format implied by path's extension.
func Parse(path string, data []byte) (level.Definition, error) {
	f, ok := ForPath(path)
	if !ok {
		return level.Definition{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
	def, err := f.Parse(data)
	if err != nil {
		return level.Definition{}, fmt.Errorf("formats: %s: %w", f.Name, err)
	}
	return def, nil
}

// Encode writes def using the format implied by path's extension.
func Encode(path string, def level.Definition) ([]byte, error) {
	f, ok := ForPath(path)
	if !ok || f.Encode == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
	return f.Encode(def)
}

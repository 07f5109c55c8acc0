// Package levels provides level loading functionality for Sokoban.
// This package depends on core but core does not depend on levels.
package levels

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/core"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/levels/formats"
)

// ErrUnknownLevel is returned when a level ID is not found.
var ErrUnknownLevel = errors.New("levels: unknown level")

// Level represents a complete level definition.
type Level struct {
	ID       string
	Name     string
	Width    int
	Height   int
	Cells    []core.Cell
	Metadata map[string]string
	FilePath string
}

// Title returns the display name, falling back to the ID.
func (l Level) Title() string {
	if l.Name != "" {
		return l.Name
	}
	return l.ID
}

// Build creates a fresh world from the level.
func (l Level) Build() (*core.World, error) {
	w, err := core.Build(l.Width, l.Height, l.Cells)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", l.ID, err)
	}
	return w, nil
}

// NewEngine builds the level and wraps it in an engine.
func (l Level) NewEngine(opts ...core.Option) (*core.Engine, error) {
	w, err := l.Build()
	if err != nil {
		return nil, err
	}
	return core.NewEngine(w, opts...)
}

// Map returns the level as map text.
func (l Level) Map() string {
	return formats.FormatMap(l.Width, l.Height, l.Cells)
}

// FileError reports a level file that failed to load.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// Loader handles loading levels from a file tree.
type Loader struct {
	fsys fs.FS
	Root string
}

// NewLoader creates a loader reading from a directory on disk.
func NewLoader(root string) *Loader {
	return &Loader{fsys: os.DirFS(root), Root: root}
}

// NewFSLoader creates a loader reading from fsys.
// root names the tree in file paths and error messages.
func NewFSLoader(fsys fs.FS, root string) *Loader {
	return &Loader{fsys: fsys, Root: root}
}

// LoadAll recursively scans and loads all level files.
// Returns levels sorted by ID for deterministic ordering. Files that fail to
// parse or build are reported as *FileError values joined into the returned
// error; the levels that did load are still returned.
func (l *Loader) LoadAll() ([]Level, error) {
	var levels []Level
	var errs []error
	seen := make(map[string]string)

	err := fs.WalkDir(l.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(path.Ext(p))
		if !isSupportedExtension(ext) {
			return nil
		}

		level, err := l.LoadFile(p)
		if err != nil {
			errs = append(errs, err)
			return nil
		}

		if prev, dup := seen[level.ID]; dup {
			errs = append(errs, &FileError{
				Path: level.FilePath,
				Err:  fmt.Errorf("duplicate level id %q (also in %s)", level.ID, prev),
			})
			return nil
		}
		seen[level.ID] = level.FilePath

		levels = append(levels, level)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	// Sort by ID for determinism
	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})

	return levels, errors.Join(errs...)
}

// LoadFile loads and validates a single level file.
// The path is relative to the loader root.
func (l *Loader) LoadFile(p string) (Level, error) {
	full := filepath.Join(l.Root, filepath.FromSlash(p))

	data, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		return Level{}, &FileError{Path: full, Err: err}
	}

	ext := strings.ToLower(path.Ext(p))
	parsed, err := parseByExtension(data, ext)
	if err != nil {
		return Level{}, &FileError{Path: full, Err: err}
	}

	id := parsed.ID
	if id == "" {
		id = strings.TrimSuffix(path.Base(p), path.Ext(p))
	}

	level := Level{
		ID:       id,
		Name:     parsed.Name,
		Width:    parsed.Width,
		Height:   parsed.Height,
		Cells:    parsed.Cells,
		Metadata: parsed.Metadata,
		FilePath: full,
	}

	// Malformed levels are fatal at load time.
	if _, err := level.Build(); err != nil {
		return Level{}, &FileError{Path: full, Err: err}
	}

	return level, nil
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id string) (Level, error) {
	levels, err := l.LoadAll()
	if len(levels) == 0 && err != nil {
		return Level{}, err
	}

	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}

	return Level{}, fmt.Errorf("%w: %s", ErrUnknownLevel, id)
}

// ListIDs returns all level IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	levels, err := l.LoadAll()
	ids := make([]string, len(levels))
	for i, lvl := range levels {
		ids[i] = lvl.ID
	}
	return ids, err
}

// Find returns the index of the level with the given ID.
func Find(levels []Level, id string) (int, error) {
	for i, lvl := range levels {
		if lvl.ID == id {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %s", ErrUnknownLevel, id)
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// parseByExtension routes to the correct parser.
func parseByExtension(data []byte, ext string) (formats.Level, error) {
	switch ext {
	case ".txt", ".map":
		return formats.ParseText(data)
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	case ".toml":
		return formats.ParseTOML(data)
	default:
		return formats.Level{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}

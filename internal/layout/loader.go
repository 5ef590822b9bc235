// Package layout loads maze layouts: the built-in set embedded in the
// binary and user files from a directory (.txt/.lay raw grids or YAML).
package layout

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vovakirdan/rotamaze/internal/maze"
	"github.com/vovakirdan/rotamaze/internal/problem"
)

//go:embed builtin/*
var builtinFS embed.FS

// ErrNotFound is returned when no layout matches an ID.
var ErrNotFound = errors.New("layout not found")

// RuleOverrides lets a layout pin rules that differ from the configuration.
type RuleOverrides struct {
	RotationPeriod  *int  `yaml:"rotation_period,omitempty"`
	PieDuration     *int  `yaml:"pie_duration,omitempty"`
	CornerTeleports *bool `yaml:"corner_teleports,omitempty"`
}

// Level represents a complete layout definition.
type Level struct {
	ID          string
	Name        string
	Description string
	Rows        []string
	Rules       RuleOverrides
	FilePath    string // empty for built-ins
}

// Builtin reports whether the level ships with the binary.
func (l Level) Builtin() bool {
	return l.FilePath == ""
}

// Apply layers the level's overrides on top of the configured rules.
func (l Level) Apply(rules problem.Rules, opts maze.Options) (problem.Rules, maze.Options) {
	if l.Rules.RotationPeriod != nil {
		rules.RotationPeriod = *l.Rules.RotationPeriod
	}
	if l.Rules.PieDuration != nil {
		rules.PieDuration = *l.Rules.PieDuration
	}
	if l.Rules.CornerTeleports != nil {
		opts.CornerTeleports = *l.Rules.CornerTeleports
	}
	return rules, opts
}

// Build parses the level and creates its problem.
func (l Level) Build(rules problem.Rules, opts maze.Options) (*problem.Problem, error) {
	rules, opts = l.Apply(rules, opts)
	geo, err := maze.Parse(l.Rows, opts)
	if err != nil {
		return nil, fmt.Errorf("layout %s: %w", l.ID, err)
	}
	return problem.New(geo, rules), nil
}

// Builtins returns the embedded layouts sorted by ID.
func Builtins() []Level {
	entries, err := fs.ReadDir(builtinFS, "builtin")
	if err != nil {
		return nil
	}
	var levels []Level
	for _, e := range entries {
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if e.IsDir() || !isSupportedExtension(ext) {
			continue
		}
		data, err := builtinFS.ReadFile("builtin/" + e.Name())
		if err != nil {
			continue
		}
		lvl, err := parseByExtension(data, ext, strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())))
		if err != nil {
			continue
		}
		levels = append(levels, lvl)
	}
	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})
	return levels
}

// Loader handles loading layouts from a directory.
type Loader struct {
	Root string
}

// NewLoader creates a new layout loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans and loads all layout files.
// Returns layouts sorted by ID for deterministic ordering. A missing root
// directory yields no layouts.
func (l *Loader) LoadAll() ([]Level, error) {
	var levels []Level

	if _, err := os.Stat(l.Root); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if !isSupportedExtension(ext) {
			return nil
		}

		level, err := l.LoadFile(path)
		if err != nil {
			// Skip invalid files
			return nil
		}

		levels = append(levels, level)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})

	return levels, nil
}

// LoadFile loads a single layout file.
func (l *Loader) LoadFile(path string) (Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Level{}, fmt.Errorf("reading file %s: %w", path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	id := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	lvl, err := parseByExtension(data, ext, id)
	if err != nil {
		return Level{}, fmt.Errorf("parsing file %s: %w", path, err)
	}
	lvl.FilePath = path
	return lvl, nil
}

// LoadByID loads a specific layout by ID.
func (l *Loader) LoadByID(id string) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}

	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}

	return Level{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// All returns user layouts followed by built-ins whose IDs they do not
// shadow.
func All(dir string) ([]Level, error) {
	user, err := NewLoader(dir).LoadAll()
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(user))
	for _, lvl := range user {
		seen[lvl.ID] = true
	}
	out := append([]Level(nil), user...)
	for _, lvl := range Builtins() {
		if !seen[lvl.ID] {
			out = append(out, lvl)
		}
	}
	return out, nil
}

// Resolve finds a layout by file path or ID. A path to an existing file
// wins, then user layouts in dir, then built-ins.
func Resolve(arg, dir string) (Level, error) {
	if info, err := os.Stat(arg); err == nil && !info.IsDir() {
		return NewLoader(filepath.Dir(arg)).LoadFile(arg)
	}

	levels, err := All(dir)
	if err != nil {
		return Level{}, err
	}
	for _, lvl := range levels {
		if lvl.ID == arg {
			return lvl, nil
		}
	}
	return Level{}, fmt.Errorf("%w: %s", ErrNotFound, arg)
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range formatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

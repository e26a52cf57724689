// Package manifest handles potato.toml project configuration.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// FileName is the name of the project configuration file.
const FileName = "potato.toml"

// DefaultStackSize matches the VM's default operand stack capacity.
const DefaultStackSize = 1024

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid manifest")

// Manifest represents a potato.toml project configuration.
type Manifest struct {
	Project Project `toml:"project"`
	VM      VM      `toml:"vm"`
	Output  Output  `toml:"output"`
	Log     Log     `toml:"log"`

	// Dir is the directory containing the potato.toml file (set at load time).
	Dir string `toml:"-"`
}

// Project contains project metadata.
type Project struct {
	Name  string `toml:"name"`
	Entry string `toml:"entry"`
}

// VM configures the virtual machine.
type VM struct {
	StackSize int `toml:"stack-size"`
}

// Output configures diagnostic rendering.
type Output struct {
	Color ColorMode `toml:"color"`
}

// Log configures logging.
type Log struct {
	Verbosity int    `toml:"verbosity"`
	File      string `toml:"file"`
}

// ColorMode selects when diagnostics are coloured.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ParseColorMode validates s as a colour mode.
func ParseColorMode(s string) (ColorMode, error) {
	switch m := ColorMode(strings.ToLower(s)); m {
	case ColorAuto, ColorAlways, ColorNever:
		return m, nil
	}
	return "", fmt.Errorf("%w: color must be auto, always or never, got %q", ErrInvalid, s)
}

// Enabled resolves the mode against whether output is a terminal.
func (c ColorMode) Enabled(terminal bool) bool {
	switch c {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	return terminal
}

// Default returns the configuration used when no potato.toml exists.
func Default() *Manifest {
	return &Manifest{
		VM:     VM{StackSize: DefaultStackSize},
		Output: Output{Color: ColorAuto},
	}
}

// Load parses a potato.toml file from the given directory. Keys the
// manifest does not define are rejected.
func Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	m := Default()
	md, err := toml.Decode(string(data), m)
	if err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%w: unknown keys in %s: %s", ErrInvalid, path, strings.Join(keys, ", "))
	}

	m.Dir, err = filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", dir, err)
	}

	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	m.Output.Color, _ = ParseColorMode(string(m.Output.Color))
	return m, nil
}

// FindAndLoad walks up from startDir to find a potato.toml file,
// then loads and returns the manifest. Returns nil if no manifest is found.
func FindAndLoad(startDir string) (*Manifest, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return Load(dir)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, nil
		}
		dir = parent
	}
}

// Validate checks value ranges.
func (m *Manifest) Validate() error {
	if m.VM.StackSize < 0 {
		return fmt.Errorf("%w: vm.stack-size must not be negative, got %d", ErrInvalid, m.VM.StackSize)
	}
	if _, err := ParseColorMode(string(m.Output.Color)); err != nil {
		return err
	}
	if m.Log.Verbosity < 0 {
		return fmt.Errorf("%w: log.verbosity must not be negative, got %d", ErrInvalid, m.Log.Verbosity)
	}
	return nil
}

// EntryPath returns the absolute path of the entry script, or "" if none is
// configured.
func (m *Manifest) EntryPath() string {
	if m.Project.Entry == "" {
		return ""
	}
	if filepath.IsAbs(m.Project.Entry) {
		return m.Project.Entry
	}
	return filepath.Join(m.Dir, m.Project.Entry)
}

// LogFile returns the configured log path relative to Dir, or nil to log to
// stderr.
func (m *Manifest) LogFile() *string {
	if m.Log.File == "" {
		return nil
	}
	path := m.Log.File
	if !filepath.IsAbs(path) {
		path = filepath.Join(m.Dir, path)
	}
	return &path
}

// Package manifest handles ada2c.toml project configuration.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileName is the manifest file looked up in a project directory.
const FileName = "ada2c.toml"

// ErrNotFound is returned by FindAndLoad when no manifest exists up to the root.
var ErrNotFound = errors.New(FileName + " not found")

// Manifest represents an ada2c.toml project configuration.
type Manifest struct {
	Source  Source  `toml:"source"`
	Output  Output  `toml:"output"`
	Compare Compare `toml:"compare"`

	// Dir is the directory containing the ada2c.toml file (set at load time).
	Dir string `toml:"-"`
}

// Source configures where the Ada sources are.
type Source struct {
	Dir      string   `toml:"dir"`
	Files    []string `toml:"files"`
	Encoding string   `toml:"encoding"`
}

// Output configures the generated C files.
type Output struct {
	Dir            string `toml:"dir"`
	Header         string `toml:"header"`
	Implementation string `toml:"implementation"`
	// CanonicalHeader is the header name the shipped C sources include.
	CanonicalHeader string `toml:"canonical-header"`
}

// Compare configures the check against a hand-maintained implementation.
type Compare struct {
	Enabled   bool   `toml:"enabled"`
	Reference string `toml:"reference"`
}

// Default returns the configuration used when no manifest exists.
func Default() *Manifest {
	m := &Manifest{Dir: "."}
	m.applyDefaults(toml.MetaData{})
	return m
}

// applyDefaults fills the keys the file did not define. A key that is
// present but empty, such as files = [], is kept as written.
func (m *Manifest) applyDefaults(md toml.MetaData) {
	if m.Source.Dir == "" {
		m.Source.Dir = "."
	}
	if !md.IsDefined("source", "files") {
		m.Source.Files = []string{"library.adb", "library_c_wrapper.adb"}
	}
	if m.Source.Encoding == "" {
		m.Source.Encoding = "auto"
	}
	if m.Output.Dir == "" {
		m.Output.Dir = "."
	}
	if m.Output.Header == "" {
		m.Output.Header = "ada_math_generated.h"
	}
	if m.Output.Implementation == "" {
		m.Output.Implementation = "ada_math_generated.c"
	}
	if m.Output.CanonicalHeader == "" {
		m.Output.CanonicalHeader = "ada_math.h"
	}
	if m.Compare.Reference == "" {
		m.Compare.Reference = "ada_math_android.c"
	}
	if !md.IsDefined("compare", "enabled") {
		m.Compare.Enabled = true
	}
}

// Load parses the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var m Manifest
	md, err := toml.Decode(string(data), &m)
	if err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	m.Dir, err = filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", path, err)
	}

	m.applyDefaults(md)
	if m.Source.Files == nil {
		m.Source.Files = []string{}
	}
	return &m, nil
}

// FindAndLoad walks up from startDir to find an ada2c.toml file,
// then loads and returns the manifest.
func FindAndLoad(startDir string) (*Manifest, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, ErrNotFound
		}
		dir = parent
	}
}

// Resolve makes p relative to the manifest directory unless it is absolute.
func (m *Manifest) Resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(m.Dir, p)
}

// SourceDir returns the resolved source directory.
func (m *Manifest) SourceDir() string {
	return m.Resolve(m.Source.Dir)
}

// HeaderPath returns the resolved path of the generated header.
func (m *Manifest) HeaderPath() string {
	return filepath.Join(m.Resolve(m.Output.Dir), m.Output.Header)
}

// ImplementationPath returns the resolved path of the generated C file.
func (m *Manifest) ImplementationPath() string {
	return filepath.Join(m.Resolve(m.Output.Dir), m.Output.Implementation)
}

// ReferencePath returns the resolved path of the hand-maintained C file.
func (m *Manifest) ReferencePath() string {
	return m.Resolve(m.Compare.Reference)
}

// Package prefs stores the client's cosmetic settings in a small YAML file.
// Nothing in it affects balances.
package prefs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"
)

const (
	MascotIdle    = "idle"
	MascotBuzzing = "buzzing"
	MascotSleepy  = "sleepy"
)

var mascots = []string{MascotIdle, MascotBuzzing, MascotSleepy}

type Prefs struct {
	Mascot   string `yaml:"mascot"`
	Language string `yaml:"language"`
}

func Default() Prefs {
	return Prefs{Mascot: MascotIdle, Language: "en"}
}

func (p Prefs) Validate() error {
	if !slices.Contains(mascots, p.Mascot) {
		return fmt.Errorf("unknown mascot variant %q", p.Mascot)
	}
	if p.Language == "" {
		return errors.New("language is required")
	}
	return nil
}

type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultPath is prefs.yaml under the user's config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "honeyhive", "prefs.yaml"), nil
}

// Load returns the saved preferences, or the defaults when nothing was saved.
// Fields missing from the file keep their defaults.
func (s *Store) Load() (Prefs, error) {
	p := Default()
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return p, nil
	}
	if err != nil {
		return p, err
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Default(), fmt.Errorf("parse %s: %w", s.path, err)
	}
	if err := p.Validate(); err != nil {
		return Default(), err
	}
	return p, nil
}

// Save writes p atomically.
func (s *Store) Save(p Prefs) error {
	if err := p.Validate(); err != nil {
		return err
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".prefs-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

// Package prefs persists quayside user preferences in
// ~/.config/quayside/prefs.toml.
package prefs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Prefs holds preferences that survive between sessions.
type Prefs struct {
	Theme string `toml:"theme"`
}

const (
	defaultPrefsPath = "~/.config/quayside/prefs.toml"
	// DefaultTheme is used when no preference has been saved.
	DefaultTheme = "Harbor"
)

// Default returns the preferences used before anything is saved.
func Default() Prefs {
	return Prefs{Theme: DefaultTheme}
}

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// Load reads preferences from path. Preferences never block startup: on any
// failure Load returns usable defaults together with the error, which callers
// log and otherwise ignore. A missing file is not a failure.
func Load(path string) (Prefs, error) {
	prefs := Default()

	resolved, err := resolvePath(path)
	if err != nil {
		return prefs, err
	}

	bytes, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return prefs, nil
		}
		return prefs, fmt.Errorf("read prefs: %w", err)
	}

	var stored Prefs
	if err := toml.Unmarshal(bytes, &stored); err != nil {
		return prefs, fmt.Errorf("parse prefs %s: %w", resolved, err)
	}
	if theme := strings.TrimSpace(stored.Theme); theme != "" {
		prefs.Theme = theme
	}
	return prefs, nil
}

// Save writes preferences to path, creating directories as needed.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	bytes, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	if err := os.WriteFile(resolved, bytes, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		path = defaultPrefsPath
	}
	trimmed := strings.TrimSpace(path)
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}

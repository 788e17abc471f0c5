package prefs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	p, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if p.Theme != DefaultTheme {
		t.Fatalf("Theme = %q, want %q", p.Theme, DefaultTheme)
	}
}

func TestLoad_ReadsDefaultLocation(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	prefsDir := filepath.Join(home, ".config", "quayside")
	if err := os.MkdirAll(prefsDir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(filepath.Join(prefsDir, "prefs.toml"), []byte("theme = \"Slate\"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if p.Theme != "Slate" {
		t.Fatalf("Theme = %q, want %q", p.Theme, "Slate")
	}
}

func TestSave_CreatesFileAndDirs(t *testing.T) {
	prefsFile := filepath.Join(t.TempDir(), "subdir", "prefs.toml")

	if err := Save(prefsFile, Prefs{Theme: "Kanagawa"}); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	loaded, err := Load(prefsFile)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if loaded.Theme != "Kanagawa" {
		t.Fatalf("Theme = %q, want %q", loaded.Theme, "Kanagawa")
	}
}

func TestLoad_FallsBackToDefault(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"empty theme", "theme = \"  \"\n", ""},
		{"invalid toml", "not valid toml {{{\n", "parse prefs"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prefsFile := filepath.Join(t.TempDir(), "prefs.toml")
			if err := os.WriteFile(prefsFile, []byte(tt.body), 0o644); err != nil {
				t.Fatalf("WriteFile: %v", err)
			}

			p, err := Load(prefsFile)
			if p.Theme != DefaultTheme {
				t.Fatalf("Theme = %q, want %q", p.Theme, DefaultTheme)
			}
			switch {
			case tt.wantErr == "" && err != nil:
				t.Fatalf("Load returned error: %v", err)
			case tt.wantErr != "" && (err == nil || !strings.Contains(err.Error(), tt.wantErr)):
				t.Fatalf("Load error = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

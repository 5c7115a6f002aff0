package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseImportPath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		setup   func(t *testing.T) string // returns path to use
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid absolute path to existing file",
			setup: func(t *testing.T) string {
				path := filepath.Join(t.TempDir(), "games.yaml")
				if err := os.WriteFile(path, []byte("games: {}"), 0644); err != nil {
					t.Fatalf("failed to create test file: %v", err)
				}
				return path
			},
		},
		{
			name:    "empty path",
			path:    "",
			wantErr: true,
			errMsg:  "games file path cannot be empty",
		},
		{
			name: "path to non-existent file",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "missing.yaml")
			},
			wantErr: true,
			errMsg:  "games file does not exist",
		},
		{
			name: "path to directory",
			setup: func(t *testing.T) string {
				path := filepath.Join(t.TempDir(), "games.yaml")
				if err := os.Mkdir(path, 0755); err != nil {
					t.Fatalf("failed to create dir: %v", err)
				}
				return path
			},
			wantErr: true,
			errMsg:  "games file path is a directory, not a file",
		},
		{
			name: "wrong extension",
			setup: func(t *testing.T) string {
				path := filepath.Join(t.TempDir(), "games.json")
				if err := os.WriteFile(path, []byte("{}"), 0644); err != nil {
					t.Fatalf("failed to create test file: %v", err)
				}
				return path
			},
			wantErr: true,
			errMsg:  "games file must have .yaml or .yml extension",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := tt.path
			if tt.setup != nil {
				path = tt.setup(t)
			}

			got, err := ParseImportPath(path)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseImportPath(%q) expected error", path)
				}
				if tt.errMsg != "" && err.Error() != tt.errMsg {
					t.Errorf("ParseImportPath(%q) error = %q, want %q", path, err.Error(), tt.errMsg)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseImportPath(%q) unexpected error: %v", path, err)
			}
			if !filepath.IsAbs(got) {
				t.Errorf("ParseImportPath(%q) = %q, want absolute path", path, got)
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	if got := ExpandPath("~/hooks/a.sh"); got != filepath.Join(home, "hooks", "a.sh") {
		t.Errorf("ExpandPath(~/hooks/a.sh) = %q", got)
	}
	if got := ExpandPath("/abs/a.sh"); got != "/abs/a.sh" {
		t.Errorf("ExpandPath(/abs/a.sh) = %q", got)
	}
	if got := ExpandPath("~user/a.sh"); !strings.HasPrefix(got, "~user") {
		t.Errorf("ExpandPath(~user/a.sh) = %q, want unchanged", got)
	}
}

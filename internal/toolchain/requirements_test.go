package toolchain

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadRequirements(t *testing.T) {
	t.Run("missing manifest yields defaults", func(t *testing.T) {
		tools, err := LoadRequirements(filepath.Join(t.TempDir(), "requirements.toml"), "")
		if err != nil {
			t.Fatalf("LoadRequirements() error = %v", err)
		}

		if len(tools) != 2 {
			t.Fatalf("expected 2 default tools, got %d", len(tools))
		}
		if tools[0].CLI != "cmake" || tools[0].Version != ">=3.16" {
			t.Errorf("expected cmake >=3.16 first, got %+v", tools[0])
		}
		if tools[1].CLI != "make" || tools[1].Version != "" {
			t.Errorf("expected make existence check second, got %+v", tools[1])
		}
	})

	t.Run("toolchain prefix adds a cross compiler check", func(t *testing.T) {
		tools, err := LoadRequirements(filepath.Join(t.TempDir(), "requirements.toml"), "xtensa-esp32-elf-")
		if err != nil {
			t.Fatalf("LoadRequirements() error = %v", err)
		}

		last := tools[len(tools)-1]
		if last.CLI != "xtensa-esp32-elf-gcc" {
			t.Errorf("expected cross compiler check, got %+v", last)
		}
		if last.Version != "" {
			t.Errorf("expected existence check only, got constraint %q", last.Version)
		}
	})

	t.Run("parses a manifest", func(t *testing.T) {
		tmpDir := t.TempDir()
		path := filepath.Join(tmpDir, "requirements.toml")
		content := `
[cmake]
version = ">=3.20"

[ninja]
optional = true
message = "needed for -GNinja builds"

[gnu-make]
cli = "make"
version = ">=4.0"
version_arg = "--version"
`
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}

		tools, err := LoadRequirements(path, "")
		if err != nil {
			t.Fatalf("LoadRequirements() error = %v", err)
		}

		if len(tools) != 3 {
			t.Fatalf("expected 3 tools, got %d", len(tools))
		}

		// Sorted by table name: cmake, gnu-make, ninja.
		if tools[0].Name != "cmake" || tools[0].Version != ">=3.20" {
			t.Errorf("expected cmake >=3.20, got %+v", tools[0])
		}
		if tools[1].Name != "gnu-make" || tools[1].CLI != "make" {
			t.Errorf("expected gnu-make mapped to make, got %+v", tools[1])
		}
		if tools[2].Name != "ninja" || !tools[2].Optional {
			t.Errorf("expected optional ninja, got %+v", tools[2])
		}
		if tools[2].Message != "needed for -GNinja builds" {
			t.Errorf("expected message kept, got %q", tools[2].Message)
		}
	})

	t.Run("manifest cross compiler is not duplicated", func(t *testing.T) {
		tmpDir := t.TempDir()
		path := filepath.Join(tmpDir, "requirements.toml")
		content := `
[cross]
cli = "xtensa-esp32-elf-gcc"
version = ">=8.0"
`
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}

		tools, err := LoadRequirements(path, "xtensa-esp32-elf-")
		if err != nil {
			t.Fatalf("LoadRequirements() error = %v", err)
		}

		if len(tools) != 1 {
			t.Errorf("expected the manifest entry to win, got %d tools", len(tools))
		}
	})

	t.Run("cli defaults to the table name", func(t *testing.T) {
		tmpDir := t.TempDir()
		path := filepath.Join(tmpDir, "requirements.toml")
		if err := os.WriteFile(path, []byte("[ccache]\n"), 0o600); err != nil {
			t.Fatal(err)
		}

		tools, err := LoadRequirements(path, "")
		if err != nil {
			t.Fatalf("LoadRequirements() error = %v", err)
		}

		if len(tools) != 1 || tools[0].CLI != "ccache" {
			t.Errorf("expected cli 'ccache', got %+v", tools)
		}
	})

	t.Run("returns error for invalid TOML", func(t *testing.T) {
		tmpDir := t.TempDir()
		path := filepath.Join(tmpDir, "requirements.toml")
		if err := os.WriteFile(path, []byte("[cmake\nbroken"), 0o600); err != nil {
			t.Fatal(err)
		}

		if _, err := LoadRequirements(path, ""); err == nil {
			t.Error("expected error for invalid TOML")
		}
	})
}

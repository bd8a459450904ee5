package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestScan(t *testing.T) {
	t.Run("discovers apps and examples", func(t *testing.T) {
		root := t.TempDir()
		makeProject(t, root, "apps/blink", "sdkconfig")
		makeProject(t, root, "apps/display", "CMakeLists.txt")
		makeProject(t, root, "examples/mac")
		makeProject(t, root, "examples/esp32")

		catalog := Scan(root)

		if len(catalog.Apps) != 2 {
			t.Fatalf("expected 2 apps, got %d", len(catalog.Apps))
		}
		if len(catalog.Examples) != 2 {
			t.Fatalf("expected 2 examples, got %d", len(catalog.Examples))
		}
	})

	t.Run("entries are sorted by name", func(t *testing.T) {
		root := t.TempDir()
		makeProject(t, root, "examples/rpi4")
		makeProject(t, root, "examples/esp32")
		makeProject(t, root, "examples/mac")

		catalog := Scan(root)

		want := []string{"esp32", "mac", "rpi4"}
		for i, name := range want {
			if catalog.Examples[i].Name != name {
				t.Errorf("expected examples[%d] = %q, got %q", i, name, catalog.Examples[i].Name)
			}
		}
	})

	t.Run("app platform comes from build markers", func(t *testing.T) {
		root := t.TempDir()
		makeProject(t, root, "apps/firmware", "sdkconfig")
		makeProject(t, root, "apps/desktop", "CMakeLists.txt")
		makeProject(t, root, "apps/bare")

		catalog := Scan(root)

		want := map[string]string{"firmware": "esp32", "desktop": "native", "bare": "unknown"}
		for _, entry := range catalog.Apps {
			if entry.Platform != want[entry.Name] {
				t.Errorf("expected %s platform %q, got %q", entry.Name, want[entry.Name], entry.Platform)
			}
		}
	})

	t.Run("example platform is the directory name", func(t *testing.T) {
		root := t.TempDir()
		makeProject(t, root, "examples/esp32", "CMakeLists.txt")

		catalog := Scan(root)

		if catalog.Examples[0].Platform != "esp32" {
			t.Errorf("expected platform 'esp32', got %q", catalog.Examples[0].Platform)
		}
	})

	t.Run("follows symlinked project directories", func(t *testing.T) {
		root := t.TempDir()
		makeProject(t, root, "shared/mac", "CMakeLists.txt")
		if err := os.MkdirAll(filepath.Join(root, "examples"), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.Symlink(filepath.Join(root, "shared", "mac"), filepath.Join(root, "examples", "mac")); err != nil {
			t.Fatal(err)
		}

		catalog := Scan(root)

		if len(catalog.Examples) != 1 || catalog.Examples[0].Name != "mac" {
			t.Fatalf("expected the linked example, got %+v", catalog.Examples)
		}
	})

	t.Run("ignores stray files", func(t *testing.T) {
		root := t.TempDir()
		makeProject(t, root, "apps/blink")
		if err := os.WriteFile(filepath.Join(root, "apps", "notes.txt"), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}

		catalog := Scan(root)

		if len(catalog.Apps) != 1 {
			t.Errorf("expected 1 app, got %d", len(catalog.Apps))
		}
	})

	t.Run("missing trees yield empty categories", func(t *testing.T) {
		catalog := Scan(t.TempDir())

		if len(catalog.Apps) != 0 || len(catalog.Examples) != 0 {
			t.Errorf("expected empty catalog, got %+v", catalog)
		}
	})
}

func TestLookup(t *testing.T) {
	root := t.TempDir()
	makeProject(t, root, "apps/blink")
	makeProject(t, root, "examples/mac")
	catalog := Scan(root)

	t.Run("finds a project", func(t *testing.T) {
		entry, err := catalog.Lookup(CategoryApps, "blink")
		if err != nil {
			t.Fatalf("Lookup() error = %v", err)
		}
		if entry.Name != "blink" || entry.Category != CategoryApps {
			t.Errorf("expected apps/blink, got %+v", entry)
		}
	})

	t.Run("names are scoped to their category", func(t *testing.T) {
		_, err := catalog.Lookup(CategoryApps, "mac")
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("unknown name", func(t *testing.T) {
		_, err := catalog.Lookup(CategoryExamples, "windows")
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("unknown category", func(t *testing.T) {
		_, err := catalog.Lookup(Category("tools"), "blink")
		if !errors.Is(err, ErrInvalidCategory) {
			t.Errorf("expected ErrInvalidCategory, got %v", err)
		}
	})
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		input   string
		want    Category
		wantErr bool
	}{
		{input: "apps", want: CategoryApps},
		{input: "examples", want: CategoryExamples},
		{input: "Apps", wantErr: true},
		{input: "tools", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run("input "+tt.input, func(t *testing.T) {
			got, err := ParseCategory(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidCategory) {
					t.Errorf("expected ErrInvalidCategory, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCategory(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestEntryDirs(t *testing.T) {
	entry := Entry{Name: "blink", Path: filepath.Join("/sdk", "apps", "blink")}

	if got, want := entry.BuildDir(), filepath.Join("/sdk", "apps", "blink", "build"); got != want {
		t.Errorf("BuildDir() = %q, want %q", got, want)
	}
	if got, want := entry.BinDir(), filepath.Join("/sdk", "apps", "blink", "build", "bin"); got != want {
		t.Errorf("BinDir() = %q, want %q", got, want)
	}
}

// makeProject creates a project directory with optional marker files.
func makeProject(t *testing.T, root, rel string, markers ...string) {
	t.Helper()
	dir := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	for _, marker := range markers {
		if err := os.WriteFile(filepath.Join(dir, marker), []byte("# marker\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

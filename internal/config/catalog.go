package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// catalogExt is the extension catalog entries are stored under.
const catalogExt = ".config"

// Entry is a named configuration preset from the catalog directory.
type Entry struct {
	Name        string
	Path        string
	Description string
	Values      map[string]string
}

// Config returns the fully-populated configuration this entry resolves to.
func (e Entry) Config() Config {
	return FromValues(e.Values, e.Name)
}

// ScanCatalog lists the presets under dir, sorted by name. Files that
// cannot be read produce a warning and are skipped; files that parse to
// nothing are skipped silently. A missing directory yields an empty
// catalog.
func ScanCatalog(dir string) ([]Entry, []string) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil
	}

	var (
		entries  []Entry
		warnings []string
	)
	for _, de := range dirEntries {
		if de.IsDir() || filepath.Ext(de.Name()) != catalogExt {
			continue
		}
		path := filepath.Join(dir, de.Name())
		values, err := ParseFile(path)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("skipping unreadable configuration %s: %v", path, err))
			continue
		}
		if len(values) == 0 {
			continue
		}
		name := strings.TrimSuffix(de.Name(), catalogExt)
		desc := values[KeyDescription]
		if desc == "" {
			desc = name
		}
		entries = append(entries, Entry{
			Name:        name,
			Path:        path,
			Description: desc,
			Values:      values,
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, warnings
}

// Apply copies the entry's backing file over the active configuration at
// activePath. On any failure the active file is left as it was.
func Apply(entry Entry, activePath string) error {
	data, err := os.ReadFile(entry.Path)
	if err != nil {
		return fmt.Errorf("failed to read configuration %s: %w", entry.Path, err)
	}
	if err := os.WriteFile(activePath, data, 0o644); err != nil {
		return fmt.Errorf("failed to apply configuration: %w", err)
	}
	return nil
}

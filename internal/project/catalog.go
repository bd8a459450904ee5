// Package project discovers the buildable app and example projects of a
// LinX OS SDK tree.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Category identifies which project tree an entry belongs to.
type Category string

const (
	CategoryApps     Category = "apps"
	CategoryExamples Category = "examples"
)

var (
	// ErrInvalidCategory marks a category other than apps or examples.
	ErrInvalidCategory = errors.New("invalid project category")

	// ErrNotFound marks a project name that is not in the catalog.
	ErrNotFound = errors.New("project not found")
)

// ParseCategory validates a user-supplied category string.
func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case CategoryApps, CategoryExamples:
		return Category(s), nil
	}
	return "", fmt.Errorf("%w: %q (want apps or examples)", ErrInvalidCategory, s)
}

// Entry is one buildable project directory.
type Entry struct {
	Name     string
	Path     string
	Category Category
	Platform string
}

// BuildDir is the project's out-of-source build directory.
func (e Entry) BuildDir() string {
	return filepath.Join(e.Path, "build")
}

// BinDir is where the project's build drops executables.
func (e Entry) BinDir() string {
	return filepath.Join(e.BuildDir(), "bin")
}

// Catalog holds every project discovered under an SDK root.
type Catalog struct {
	Apps     []Entry
	Examples []Entry
}

// Scan discovers projects under <root>/apps and <root>/examples. Only
// immediate subdirectories count, symlinks to directories included; a
// missing tree yields an empty category. Each category is sorted by
// name so listing and batch build order are deterministic.
func Scan(root string) Catalog {
	return Catalog{
		Apps:     scanDir(filepath.Join(root, "apps"), CategoryApps),
		Examples: scanDir(filepath.Join(root, "examples"), CategoryExamples),
	}
}

func scanDir(dir string, category Category) []Entry {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var entries []Entry
	for _, de := range dirEntries {
		path := filepath.Join(dir, de.Name())
		info, err := os.Stat(path)
		if err != nil || !info.IsDir() {
			continue
		}
		entry := Entry{Name: de.Name(), Path: path, Category: category}
		if category == CategoryExamples {
			// Example directories are named after the platform they target.
			entry.Platform = de.Name()
		} else {
			entry.Platform = DetectPlatform(path)
		}
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries
}

// DetectPlatform classifies a project directory by its build markers: a
// project-local sdkconfig marks an esp32 project, a CMakeLists.txt a
// native one, anything else is unknown.
func DetectPlatform(dir string) string {
	if exists(filepath.Join(dir, "sdkconfig")) {
		return "esp32"
	}
	if exists(filepath.Join(dir, "CMakeLists.txt")) {
		return "native"
	}
	return "unknown"
}

// ByCategory returns the entries of one category.
func (c Catalog) ByCategory(category Category) []Entry {
	switch category {
	case CategoryApps:
		return c.Apps
	case CategoryExamples:
		return c.Examples
	}
	return nil
}

// All returns every project across both categories, apps first.
func (c Catalog) All() []Entry {
	all := make([]Entry, 0, len(c.Apps)+len(c.Examples))
	all = append(all, c.Apps...)
	all = append(all, c.Examples...)
	return all
}

// Lookup finds a single project by category and name.
func (c Catalog) Lookup(category Category, name string) (Entry, error) {
	var entries []Entry
	switch category {
	case CategoryApps:
		entries = c.Apps
	case CategoryExamples:
		entries = c.Examples
	default:
		return Entry{}, fmt.Errorf("%w: %q (want apps or examples)", ErrInvalidCategory, category)
	}
	for _, e := range entries {
		if e.Name == name {
			return e, nil
		}
	}
	return Entry{}, fmt.Errorf("%w: %s/%s", ErrNotFound, category, name)
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

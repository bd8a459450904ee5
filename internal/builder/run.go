package builder

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sunqirui1987/linx-os-sdk/internal/project"
)

// RunProject executes the first executable (by name) in the project's
// build/bin directory, passing args through and returning the command's
// error so callers can propagate its exit status. Nothing is built here:
// a project without executables fails with ErrExecutableNotFound.
func (o *Orchestrator) RunProject(ctx context.Context, category project.Category, name string, args []string) error {
	entry, err := o.Catalog.Lookup(category, name)
	if err != nil {
		return err
	}

	exes := executables(entry.BinDir())
	if len(exes) == 0 {
		return fmt.Errorf("%s/%s: %w", entry.Category, entry.Name, ErrExecutableNotFound)
	}

	argv := append([]string{exes[0]}, args...)
	o.Log.Infof("running: %s", strings.Join(argv, " "))
	return o.Runner.Run(ctx, StageRun, "", argv)
}

// executables lists the executable regular files in dir, sorted by
// name. Symlinks are resolved, so a link to an executable counts.
func executables(dir string) []string {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var out []string
	for _, de := range dirEntries {
		path := filepath.Join(dir, de.Name())
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		if info.Mode().IsRegular() && info.Mode()&0o111 != 0 {
			out = append(out, path)
		}
	}
	sort.Strings(out)
	return out
}

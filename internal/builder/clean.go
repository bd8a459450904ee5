package builder

import (
	"fmt"
	"os"

	"github.com/sunqirui1987/linx-os-sdk/internal/project"
)

// Clean removes build output. With an empty category and name it removes
// the SDK build tree, the install output tree, and every known project's
// build directory, then resets the tracked build flags. With both set it
// removes only that project's build directory. Directories that are
// already gone are not errors.
func (o *Orchestrator) Clean(category project.Category, name string) error {
	if category == "" && name == "" {
		return o.cleanAll()
	}

	entry, err := o.Catalog.Lookup(category, name)
	if err != nil {
		return err
	}
	return o.cleanProject(entry)
}

func (o *Orchestrator) cleanAll() error {
	o.Log.Infof("cleaning all build output...")

	dirs := []string{o.Layout.SDKBuildDir(), o.Layout.OutDir()}
	for _, entry := range o.Catalog.All() {
		dirs = append(dirs, entry.BuildDir())
	}
	for _, dir := range dirs {
		if err := o.removeDir(dir); err != nil {
			return err
		}
	}

	o.sdkBuilt = false
	o.boardBuilt = false
	o.Log.Successf("clean complete")
	return nil
}

func (o *Orchestrator) cleanProject(entry project.Entry) error {
	buildDir := entry.BuildDir()
	if !exists(buildDir) {
		o.Log.Infof("nothing to clean for %s/%s", entry.Category, entry.Name)
		return nil
	}
	if err := o.removeDir(buildDir); err != nil {
		return err
	}
	o.Log.Successf("cleaned %s/%s", entry.Category, entry.Name)
	return nil
}

func (o *Orchestrator) removeDir(dir string) error {
	if !exists(dir) {
		return nil
	}
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("failed to remove %s: %w", dir, err)
	}
	o.Log.Infof("removed %s", dir)
	return nil
}

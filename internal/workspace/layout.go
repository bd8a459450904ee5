// Package workspace resolves the fixed directory layout of a LinX OS SDK
// tree and probes the build artifacts that mark components as built.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
)

// Layout derives every well-known path in an SDK tree from its root.
// It holds no state beyond the root; all accessors are pure.
type Layout struct {
	Root string
}

// New returns a Layout rooted at the given SDK directory.
func New(root string) Layout {
	return Layout{Root: root}
}

// ActiveConfig is the path of the active configuration file.
func (l Layout) ActiveConfig() string {
	return filepath.Join(l.Root, "sdkconfig")
}

// BuildDir is the shared build support directory.
func (l Layout) BuildDir() string {
	return filepath.Join(l.Root, "build")
}

// ConfigsDir holds the named configuration presets.
func (l Layout) ConfigsDir() string {
	return filepath.Join(l.BuildDir(), "configs")
}

// ToolchainsDir holds cross-compilation toolchain files.
func (l Layout) ToolchainsDir() string {
	return filepath.Join(l.BuildDir(), "toolchains")
}

// ToolchainFile resolves a toolchain file name from the configuration to
// its location under the toolchains directory.
func (l Layout) ToolchainFile(name string) string {
	return filepath.Join(l.ToolchainsDir(), name)
}

// RequirementsFile is the optional host toolchain requirements manifest.
func (l Layout) RequirementsFile() string {
	return filepath.Join(l.BuildDir(), "requirements.toml")
}

// OutDir is the install output tree.
func (l Layout) OutDir() string {
	return filepath.Join(l.Root, "out")
}

// LibDir is where installed static libraries land.
func (l Layout) LibDir() string {
	return filepath.Join(l.OutDir(), "linx", "lib")
}

// SDKDir is the SDK core source tree.
func (l Layout) SDKDir() string {
	return filepath.Join(l.Root, "sdk")
}

// SDKBuildDir is the out-of-source build directory for the SDK core.
func (l Layout) SDKBuildDir() string {
	return filepath.Join(l.SDKDir(), "build")
}

// BoardDir is the adaptation source tree for the given board.
func (l Layout) BoardDir(board string) string {
	return filepath.Join(l.Root, "board", board)
}

// BoardBuildDir is the out-of-source build directory for the given board.
func (l Layout) BoardBuildDir(board string) string {
	return filepath.Join(l.BoardDir(board), "build")
}

// AppsDir holds application projects.
func (l Layout) AppsDir() string {
	return filepath.Join(l.Root, "apps")
}

// ExamplesDir holds example projects.
func (l Layout) ExamplesDir() string {
	return filepath.Join(l.Root, "examples")
}

// SDKArtifact is the installed library whose presence marks the SDK core
// as built.
func (l Layout) SDKArtifact() string {
	return filepath.Join(l.LibDir(), "liblinx_sdk_static.a")
}

// BoardArtifact is the installed library whose presence marks the
// adaptation layer for the given board as built.
func (l Layout) BoardArtifact(board string) string {
	return filepath.Join(l.LibDir(), fmt.Sprintf("liblinx_board_%s.a", board))
}

// SDKBuilt reports whether the SDK install artifact exists. Presence is
// the only signal; timestamps and contents are never inspected.
func (l Layout) SDKBuilt() bool {
	return exists(l.SDKArtifact())
}

// BoardBuilt reports whether the install artifact for the given board
// exists.
func (l Layout) BoardBuilt(board string) bool {
	return exists(l.BoardArtifact(board))
}

// EnsureDirs creates the working directories every command expects to
// find. Directories that already exist are left alone.
func (l Layout) EnsureDirs() error {
	for _, dir := range []string{l.BuildDir(), l.OutDir(), l.ConfigsDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	return nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

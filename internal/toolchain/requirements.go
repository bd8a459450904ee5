// Package toolchain verifies that the host tools the build stages invoke
// are installed and recent enough. Requirements come from an optional
// TOML manifest in the SDK tree, with built-in defaults covering the
// stock cmake and make pipeline.
package toolchain

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"github.com/BurntSushi/toml"
)

// Tool describes one host tool the build depends on.
type Tool struct {
	Name           string
	CLI            string
	Version        string // semver constraint; empty means existence only
	VersionArg     string
	VersionPattern string
	Optional       bool
	Message        string
}

// ToolConfig is one table of the requirements manifest. The table key
// names the tool; cli defaults to that key.
type ToolConfig struct {
	Name           string `toml:"name"`
	CLI            string `toml:"cli"`
	Version        string `toml:"version"`
	VersionArg     string `toml:"version_arg"`
	VersionPattern string `toml:"version_pattern"`
	Optional       bool   `toml:"optional"`
	Message        string `toml:"message"`
}

// LoadRequirements reads the requirements manifest at path, falling back
// to the built-in defaults when no manifest exists. toolchainPrefix, when
// set, adds an existence check for the configured cross compiler unless
// the manifest already covers it.
func LoadRequirements(path, toolchainPrefix string) ([]Tool, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Defaults(toolchainPrefix), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read requirements: %w", err)
	}

	var raw map[string]ToolConfig
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse requirements: %w", err)
	}

	tools := make([]Tool, 0, len(raw))
	for name, tc := range raw {
		tools = append(tools, toolFromConfig(name, tc))
	}
	sort.Slice(tools, func(i, j int) bool { return tools[i].Name < tools[j].Name })

	if toolchainPrefix != "" && !hasCLI(tools, toolchainPrefix+"gcc") {
		tools = append(tools, crossTool(toolchainPrefix))
	}
	return tools, nil
}

func toolFromConfig(name string, tc ToolConfig) Tool {
	tool := Tool{
		Name:           name,
		CLI:            tc.CLI,
		Version:        tc.Version,
		VersionArg:     tc.VersionArg,
		VersionPattern: tc.VersionPattern,
		Optional:       tc.Optional,
		Message:        tc.Message,
	}
	if tc.Name != "" {
		tool.Name = tc.Name
	}
	if tool.CLI == "" {
		tool.CLI = name
	}
	return tool
}

func hasCLI(tools []Tool, cli string) bool {
	for _, t := range tools {
		if t.CLI == cli {
			return true
		}
	}
	return false
}

package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sunqirui1987/linx-os-sdk/internal/config"
	"github.com/sunqirui1987/linx-os-sdk/internal/output"
	"github.com/sunqirui1987/linx-os-sdk/internal/toolchain"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List buildable apps and examples",
	Args:  exactArgs(0),
	RunE: func(*cobra.Command, []string) error {
		env := newEnv()
		output.PrintProjects(env.catalog, parseFormat())
		return nil
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show and switch the active build configuration",
	Long: `Show the active configuration and the build state it implies, then
offer the presets under build/configs as a numbered menu. Picking one
copies it over sdkconfig; Enter keeps the current configuration.`,
	Args: exactArgs(0),
	RunE: runConfig,
}

// Both 'config' and 'config choice' run the picker.
var configChoiceCmd = &cobra.Command{
	Use:   "choice",
	Short: "Interactively pick a configuration",
	Args:  exactArgs(0),
	RunE:  runConfig,
}

func init() {
	configCmd.AddCommand(configChoiceCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the host toolchain",
	Long: `Check that the tools the build stages invoke are installed, and that
their versions satisfy build/requirements.toml. Without a manifest a
built-in baseline of cmake and make is checked. Exits non-zero when a
required tool is missing or too old.`,
	Args: exactArgs(0),
	RunE: runDoctor,
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Scaffold configuration files for a new SDK tree",
	Long: `Create a starter sdkconfig, a configuration preset, and a toolchain
manifest in the SDK root. Files that already exist are left alone.`,
	Args: exactArgs(0),
	RunE: runInit,
}

func runConfig(cmd *cobra.Command, _ []string) error {
	env := newEnv()
	output.PrintConfig(env.cfg, env.layout.SDKBuilt(), env.layout.BoardBuilt(env.cfg.Board))

	entries, warnings := config.ScanCatalog(env.layout.ConfigsDir())
	for _, warning := range warnings {
		env.log.Warnf("%s", warning)
	}
	if len(entries) == 0 {
		env.log.Warnf("no configuration presets in %s", env.layout.ConfigsDir())
		env.log.Infof("run 'linxos init' to create one")
		return nil
	}

	output.PrintCatalogMenu(entries)
	fmt.Printf("\nSelect configuration [1-%d], Enter to keep, q to quit: ", len(entries))

	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		fmt.Println()
		env.log.Infof("selection cancelled")
		return nil
	}

	choice, err := config.ParseChoice(line, len(entries))
	if err != nil {
		return err
	}
	switch {
	case choice.Quit:
		env.log.Infof("configuration unchanged")
		return nil
	case choice.Keep:
		env.log.Infof("keeping %s", env.cfg.Description)
		return nil
	}

	entry := entries[choice.Index]
	if err := config.Apply(entry, env.layout.ActiveConfig()); err != nil {
		return err
	}

	applied := entry.Config()
	env.log.Successf("switched to configuration %s", entry.Name)
	env.log.Infof("description: %s", applied.Description)

	// Check artifacts under the board the new configuration names, not
	// the one that was active when the command started.
	if !env.layout.SDKBuilt() || !env.layout.BoardBuilt(applied.Board) {
		env.log.Warnf("configuration changed, rebuild to apply it")
		env.log.Infof("run 'linxos build all --force'")
	}
	return nil
}

func runDoctor(*cobra.Command, []string) error {
	env := newEnv()
	tools, err := toolchain.LoadRequirements(env.layout.RequirementsFile(), env.cfg.ToolchainPrefix)
	if err != nil {
		return err
	}

	results := toolchain.CheckAll(tools)
	output.PrintDoctor(results, parseFormat())
	if output.DoctorFailed(results) {
		os.Exit(1)
	}
	return nil
}

const sampleActiveConfig = `# LinX OS SDK active configuration
CONFIG_TARGET_PLATFORM=native
CONFIG_BOARD_PLATFORM=mac
CONFIG_BUILD_TYPE=Release
CONFIG_DESCRIPTION="Native development build"
`

const samplePreset = `# Native development preset
CONFIG_TARGET_PLATFORM=native
CONFIG_BOARD_PLATFORM=mac
CONFIG_BUILD_TYPE=Release
CONFIG_DESCRIPTION="Native development build"
`

const sampleRequirements = `# Host tools the build stages invoke.

[cmake]
version = ">=3.16"

[make]
# No version constraint, existence is enough.

[ninja]
optional = true
message = "Only needed for -GNinja builds"
`

func runInit(*cobra.Command, []string) error {
	env := newEnv()

	created := 0
	scaffold := func(path, content string) error {
		if _, err := os.Stat(path); err == nil {
			env.log.Infof("%s already exists, skipping", path)
			return nil
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		env.log.Successf("created %s", path)
		created++
		return nil
	}

	if err := scaffold(env.layout.ActiveConfig(), sampleActiveConfig); err != nil {
		return err
	}
	if entries, _ := config.ScanCatalog(env.layout.ConfigsDir()); len(entries) == 0 {
		preset := filepath.Join(env.layout.ConfigsDir(), "native-mac.config")
		if err := scaffold(preset, samplePreset); err != nil {
			return err
		}
	}
	if err := scaffold(env.layout.RequirementsFile(), sampleRequirements); err != nil {
		return err
	}

	if created == 0 {
		env.log.Infof("nothing to do, all files present")
	}
	return nil
}

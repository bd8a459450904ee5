package main

import (
	"github.com/spf13/cobra"

	"github.com/sunqirui1987/linx-os-sdk/internal/project"
)

var forceBuild bool

var buildCmd = &cobra.Command{
	Use:   "build {sdk | board | all | apps <name> | examples [<name>]}",
	Short: "Build SDK components and projects",
	Long: `Build a component of the SDK tree.

Targets:
  sdk            SDK core (liblinx_sdk_static.a)
  board          board adaptation layer for the configured board
  all            SDK, board, then every example
  apps <name>    one application
  examples       every example
  examples <name>  one example

The SDK and board are skipped when their libraries already exist;
use --force to rebuild them anyway.`,
	Args: rangeArgs(1, 2),
	RunE: runBuild,
}

var buildSDKCmd = &cobra.Command{
	Use:        "build-sdk",
	Short:      "Build the SDK core",
	Deprecated: "use 'linxos build sdk' instead.",
	Args:       exactArgs(0),
	RunE: func(cmd *cobra.Command, _ []string) error {
		return newEnv().orchestrator().BuildSDK(cmd.Context(), forceBuild)
	},
}

var buildBoardCmd = &cobra.Command{
	Use:        "build-board",
	Short:      "Build the board adaptation layer",
	Deprecated: "use 'linxos build board' instead.",
	Args:       exactArgs(0),
	RunE: func(cmd *cobra.Command, _ []string) error {
		return newEnv().orchestrator().BuildBoard(cmd.Context(), forceBuild)
	},
}

var runCmd = &cobra.Command{
	Use:   "run {apps|examples} <name> [args...]",
	Short: "Run a built project executable",
	Long: `Run the first executable in a project's bin directory. Everything
after the project name is passed to the executable untouched, and its
exit status becomes the linxos exit status.`,
	Args: minimumArgs(2),
	RunE: runRun,
}

var cleanCmd = &cobra.Command{
	Use:   "clean [{apps|examples} <name>]",
	Short: "Remove build output",
	Long: `Without arguments, remove the SDK and board build trees, the
installed libraries under out/, and every project build directory.
Configuration presets are kept. With a category and name, clean that
one project.`,
	Args: cleanArgs,
	RunE: runClean,
}

func init() {
	buildCmd.Flags().BoolVarP(&forceBuild, "force", "f", false, "rebuild even when artifacts exist")
	buildSDKCmd.Flags().BoolVarP(&forceBuild, "force", "f", false, "rebuild even when artifacts exist")
	buildBoardCmd.Flags().BoolVarP(&forceBuild, "force", "f", false, "rebuild even when artifacts exist")

	// Flags after the project name belong to the project, not to us.
	runCmd.Flags().SetInterspersed(false)
}

func runBuild(cmd *cobra.Command, args []string) error {
	env := newEnv()
	orch := env.orchestrator()
	ctx := cmd.Context()

	target := args[0]
	switch target {
	case "sdk", "board", "all":
		if len(args) > 1 {
			return usageErrorf("build %s takes no project name", target)
		}
	}

	switch target {
	case "sdk":
		return orch.BuildSDK(ctx, forceBuild)
	case "board":
		return orch.BuildBoard(ctx, forceBuild)
	case "all":
		return orch.BuildAll(ctx, forceBuild)
	case "apps", "examples":
		category := project.Category(target)
		if len(args) == 2 {
			return orch.BuildProject(ctx, category, args[1], forceBuild)
		}
		if category == project.CategoryExamples {
			_, err := orch.BuildExamples(ctx, forceBuild)
			return err
		}
		return usageErrorf("build apps requires a project name")
	default:
		return usageErrorf("unknown build target %q (want sdk, board, all, apps, or examples)", target)
	}
}

func runRun(cmd *cobra.Command, args []string) error {
	category, err := project.ParseCategory(args[0])
	if err != nil {
		return err
	}
	return newEnv().orchestrator().RunProject(cmd.Context(), category, args[1], args[2:])
}

func cleanArgs(_ *cobra.Command, args []string) error {
	if len(args) != 0 && len(args) != 2 {
		return usageErrorf("clean takes no arguments, or a category and a project name")
	}
	return nil
}

func runClean(_ *cobra.Command, args []string) error {
	orch := newEnv().orchestrator()
	if len(args) == 0 {
		return orch.Clean("", "")
	}
	category, err := project.ParseCategory(args[0])
	if err != nil {
		return err
	}
	return orch.Clean(category, args[1])
}

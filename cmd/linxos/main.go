package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/sunqirui1987/linx-os-sdk/internal/builder"
	"github.com/sunqirui1987/linx-os-sdk/internal/config"
	"github.com/sunqirui1987/linx-os-sdk/internal/output"
	"github.com/sunqirui1987/linx-os-sdk/internal/project"
	"github.com/sunqirui1987/linx-os-sdk/internal/workspace"
)

// Exit codes, so scripts can tell usage mistakes and missing
// prerequisites apart from failed builds.
const (
	exitFailure = 1
	exitUsage   = 2
	exitPrereq  = 3
)

var (
	rootDir      string
	outputFormat string
	quiet        bool
	version      = "dev" // set via -ldflags
)

var rootCmd = &cobra.Command{
	Use:   "linxos",
	Short: "Build and run LinX OS SDK components",
	Long: `linxos drives the cmake and make pipeline of a LinX OS SDK tree:
the SDK core, the board adaptation layer, and the apps and examples
built on top of them.

Examples:
  linxos list                   # List buildable projects
  linxos config                 # Pick a build configuration
  linxos build all              # Build SDK, board, and examples
  linxos build apps blink       # Build one app
  linxos run examples mac       # Run a built example
  linxos clean                  # Remove all build output`,
	RunE:              runRoot,
	Args:              cobra.ArbitraryArgs,
	SilenceUsage:      true,
	SilenceErrors:     true,
	DisableAutoGenTag: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootDir, "root", defaultRoot(), "SDK root directory (default $LINXOS_SDK_ROOT or .)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "pretty", "output format (pretty|quiet|json)")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "only show problems")

	rootCmd.AddCommand(listCmd, configCmd, buildCmd, buildSDKCmd, buildBoardCmd, runCmd, cleanCmd, doctorCmd, initCmd)
	rootCmd.Version = version
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", errUsage, err)
	})
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
}

// runRoot is the bare invocation: list what is buildable and show the
// most useful commands, the way newcomers expect.
func runRoot(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return usageErrorf("unknown command %q, see 'linxos --help'", args[0])
	}

	env := newEnv()
	output.PrintProjects(env.catalog, parseFormat())

	if parseFormat() == output.FormatPretty {
		fmt.Println()
		fmt.Println("Usage examples:")
		fmt.Println("  linxos config choice          # Pick a build configuration")
		fmt.Println("  linxos build sdk              # Build the SDK core")
		fmt.Println("  linxos build all              # Build SDK, board, and examples")
		fmt.Println("  linxos build examples mac     # Build the mac example")
		fmt.Println("  linxos run examples mac       # Run the mac example")
		fmt.Println("  linxos clean                  # Remove all build output")
	}
	return nil
}

func defaultRoot() string {
	if root := os.Getenv("LINXOS_SDK_ROOT"); root != "" {
		return root
	}
	return "."
}

// env bundles what every command needs from the SDK tree.
type env struct {
	layout  workspace.Layout
	cfg     config.Config
	catalog project.Catalog
	log     *output.Logger
}

func newEnv() *env {
	layout := workspace.New(rootDir)
	log := output.New(os.Stdout)
	if err := layout.EnsureDirs(); err != nil {
		log.Warnf("failed to prepare working directories: %v", err)
	}
	return &env{
		layout:  layout,
		cfg:     config.LoadActive(layout.ActiveConfig()),
		catalog: project.Scan(rootDir),
		log:     log,
	}
}

func (e *env) orchestrator() *builder.Orchestrator {
	return builder.New(e.layout, e.catalog, e.cfg, &builder.ExecRunner{}, e.log)
}

func parseFormat() output.Format {
	if quiet {
		return output.FormatQuiet
	}
	switch outputFormat {
	case "json":
		return output.FormatJSON
	case "quiet":
		return output.FormatQuiet
	}
	return output.FormatPretty
}

// errUsage marks command line mistakes that should exit with the usage
// code instead of a plain failure.
var errUsage = errors.New("usage error")

func usageErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errUsage, fmt.Sprintf(format, args...))
}

func exitCode(err error) int {
	var prereqErr *builder.PrerequisiteError
	if errors.As(err, &prereqErr) || errors.Is(err, builder.ErrExecutableNotFound) {
		return exitPrereq
	}
	if errors.Is(err, errUsage) || errors.Is(err, project.ErrInvalidCategory) || errors.Is(err, project.ErrNotFound) {
		return exitUsage
	}
	// A failed build stage is a plain failure no matter how the tool
	// exited; only 'linxos run' hands the child's status through.
	var stageErr *builder.StageError
	if errors.As(err, &stageErr) {
		return exitFailure
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() > 0 {
		return exitErr.ExitCode()
	}
	return exitFailure
}

// exactArgs and friends mirror the cobra validators but fail with the
// usage exit code.
func exactArgs(n int) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) != n {
			return usageErrorf("accepts %d arg(s), received %d", n, len(args))
		}
		return nil
	}
}

func minimumArgs(n int) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) < n {
			return usageErrorf("requires at least %d arg(s), received %d", n, len(args))
		}
		return nil
	}
}

func rangeArgs(min, max int) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) < min || len(args) > max {
			return usageErrorf("accepts between %d and %d arg(s), received %d", min, max, len(args))
		}
		return nil
	}
}

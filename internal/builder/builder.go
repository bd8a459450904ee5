// Package builder sequences the external cmake and make stages that turn
// a LinX OS SDK tree into installed libraries and project binaries.
package builder

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/sunqirui1987/linx-os-sdk/internal/config"
	"github.com/sunqirui1987/linx-os-sdk/internal/output"
	"github.com/sunqirui1987/linx-os-sdk/internal/project"
	"github.com/sunqirui1987/linx-os-sdk/internal/workspace"
)

// component identifies a build kind for prerequisite ordering.
type component int

const (
	componentSDK component = iota
	componentBoard
	componentProject
)

// prereq is one upstream dependency of a build kind. ensure means build
// it (non-forced) when missing; otherwise the prerequisite must already
// be built and its absence aborts before any external stage runs.
type prereq struct {
	c      component
	ensure bool
}

// prereqs is the dependency chain walked before each kind's own stages.
var prereqs = map[component][]prereq{
	componentSDK:   nil,
	componentBoard: {{c: componentSDK}},
	componentProject: {
		{c: componentSDK, ensure: true},
		{c: componentBoard, ensure: true},
	},
}

// Orchestrator drives component builds with prerequisite ordering and
// artifact-derived skip logic. Build state is probed from the output
// tree at construction and tracked in memory afterwards.
type Orchestrator struct {
	Layout  workspace.Layout
	Catalog project.Catalog
	Config  config.Config
	Runner  Runner
	Log     *output.Logger
	Jobs    int

	sdkBuilt   bool
	boardBuilt bool
}

// New returns an Orchestrator with build flags seeded from the artifact
// probes for the configured board.
func New(layout workspace.Layout, catalog project.Catalog, cfg config.Config, runner Runner, log *output.Logger) *Orchestrator {
	if log == nil {
		log = output.New(io.Discard)
	}
	o := &Orchestrator{
		Layout:  layout,
		Catalog: catalog,
		Config:  cfg,
		Runner:  runner,
		Log:     log,
		Jobs:    runtime.NumCPU(),
	}
	o.RefreshState()
	return o
}

// RefreshState re-probes the output tree, discarding the in-memory flags.
func (o *Orchestrator) RefreshState() {
	o.sdkBuilt = o.Layout.SDKBuilt()
	o.boardBuilt = o.Layout.BoardBuilt(o.Config.Board)
}

// SDKBuilt reports the tracked build state of the SDK core.
func (o *Orchestrator) SDKBuilt() bool {
	return o.sdkBuilt
}

// BoardBuilt reports the tracked build state of the configured board.
func (o *Orchestrator) BoardBuilt() bool {
	return o.boardBuilt
}

// BuildSDK configures, compiles, and installs the SDK core. When the
// install artifact already exists and force is false nothing runs.
func (o *Orchestrator) BuildSDK(ctx context.Context, force bool) error {
	if err := o.walkPrereqs(ctx, componentSDK); err != nil {
		return err
	}
	if o.sdkBuilt && !force {
		o.Log.Infof("SDK already built, skipping")
		return nil
	}

	o.Log.Infof("building SDK (%s, %s)...", o.Config.Target, o.Config.BuildType)

	buildDir := o.Layout.SDKBuildDir()
	if err := o.prepareBuildDir(buildDir, force); err != nil {
		return err
	}

	stages := []stageCmd{
		{StageConfigure, o.configureArgs(o.Layout.SDKDir(), true)},
		{StageCompile, o.compileArgs()},
		{StageInstall, installArgs()},
	}
	if err := o.runStages(ctx, "sdk", buildDir, stages); err != nil {
		return err
	}

	o.sdkBuilt = true
	o.Log.Successf("SDK built")
	return nil
}

// BuildBoard builds the adaptation layer for the configured board. The
// SDK is a hard prerequisite: it must already be built, it is never
// built transitively from here.
func (o *Orchestrator) BuildBoard(ctx context.Context, force bool) error {
	if err := o.walkPrereqs(ctx, componentBoard); err != nil {
		return err
	}
	if o.boardBuilt && !force {
		o.Log.Infof("board %s already built, skipping", o.Config.Board)
		return nil
	}

	board := o.Config.Board
	boardDir := o.Layout.BoardDir(board)
	if !exists(boardDir) {
		return fmt.Errorf("board directory does not exist: %s", boardDir)
	}

	o.Log.Infof("building board adaptation for %s...", board)

	buildDir := o.Layout.BoardBuildDir(board)
	if err := o.prepareBuildDir(buildDir, force); err != nil {
		return err
	}

	stages := []stageCmd{
		{StageConfigure, o.configureArgs(boardDir, true)},
		{StageCompile, o.compileArgs()},
		{StageInstall, installArgs()},
	}
	if err := o.runStages(ctx, "board", buildDir, stages); err != nil {
		return err
	}

	o.boardBuilt = true
	o.Log.Successf("board %s built", board)
	return nil
}

// BuildProject builds one app or example against the installed SDK. The
// SDK and board prerequisites are built first when missing, never
// forced. Projects configure and compile only; nothing is installed.
func (o *Orchestrator) BuildProject(ctx context.Context, category project.Category, name string, force bool) error {
	entry, err := o.Catalog.Lookup(category, name)
	if err != nil {
		return err
	}

	target := fmt.Sprintf("%s/%s", entry.Category, entry.Name)
	o.Log.Infof("building project %s (platform %s)...", target, entry.Platform)

	if err := o.walkPrereqs(ctx, componentProject); err != nil {
		return err
	}

	buildDir := entry.BuildDir()
	if err := o.prepareBuildDir(buildDir, force); err != nil {
		return err
	}

	stages := []stageCmd{
		{StageConfigure, o.configureArgs(entry.Path, false)},
		{StageCompile, o.compileArgs()},
	}
	if err := o.runStages(ctx, target, buildDir, stages); err != nil {
		return err
	}

	o.Log.Successf("project %s built", target)
	for _, exe := range executables(entry.BinDir()) {
		o.Log.Infof("executable: %s", exe)
	}
	return nil
}

// ExamplesReport summarizes a batch example build.
type ExamplesReport struct {
	Built  []string
	Failed []string
}

// Total is the number of examples attempted.
func (r *ExamplesReport) Total() int {
	return len(r.Built) + len(r.Failed)
}

// BuildExamples builds every example in catalog order, continuing past
// individual failures. The report always covers the whole batch; the
// returned error is ErrExamplesFailed when any example failed.
func (o *Orchestrator) BuildExamples(ctx context.Context, force bool) (*ExamplesReport, error) {
	report := &ExamplesReport{}
	if len(o.Catalog.Examples) == 0 {
		o.Log.Warnf("no examples found")
		return report, nil
	}

	o.Log.Infof("building %d examples...", len(o.Catalog.Examples))
	for _, entry := range o.Catalog.Examples {
		if err := o.BuildProject(ctx, project.CategoryExamples, entry.Name, force); err != nil {
			o.Log.Warnf("example %s failed: %v", entry.Name, err)
			report.Failed = append(report.Failed, entry.Name)
			if ctx.Err() != nil {
				break
			}
			continue
		}
		report.Built = append(report.Built, entry.Name)
	}

	if len(report.Failed) > 0 {
		o.Log.Warnf("examples built: %d/%d", len(report.Built), report.Total())
		return report, ErrExamplesFailed
	}
	o.Log.Successf("examples built: %d/%d", len(report.Built), report.Total())
	return report, nil
}

// BuildAll builds the SDK, the board layer, and every example, stopping
// at the first failure.
func (o *Orchestrator) BuildAll(ctx context.Context, force bool) error {
	o.Log.Infof("building all components...")
	if err := o.BuildSDK(ctx, force); err != nil {
		return err
	}
	if err := o.BuildBoard(ctx, force); err != nil {
		return err
	}
	if _, err := o.BuildExamples(ctx, force); err != nil {
		return err
	}
	o.Log.Successf("all components built")
	return nil
}

// walkPrereqs enforces the upstream dependencies of a build kind before
// its own stages run. Prerequisite builds are never forced.
func (o *Orchestrator) walkPrereqs(ctx context.Context, kind component) error {
	for _, p := range prereqs[kind] {
		if p.ensure {
			if err := o.buildComponent(ctx, p.c); err != nil {
				return err
			}
			continue
		}
		if !o.built(p.c) {
			return &PrerequisiteError{Missing: componentName(p.c)}
		}
	}
	return nil
}

func (o *Orchestrator) buildComponent(ctx context.Context, c component) error {
	switch c {
	case componentSDK:
		return o.BuildSDK(ctx, false)
	case componentBoard:
		return o.BuildBoard(ctx, false)
	}
	return fmt.Errorf("component %d is not buildable as a prerequisite", c)
}

func (o *Orchestrator) built(c component) bool {
	switch c {
	case componentSDK:
		return o.sdkBuilt
	case componentBoard:
		return o.boardBuilt
	}
	return false
}

func componentName(c component) string {
	switch c {
	case componentSDK:
		return "sdk"
	case componentBoard:
		return "board"
	case componentProject:
		return "project"
	}
	return "unknown"
}

// stageCmd pairs a stage name with its argv.
type stageCmd struct {
	stage Stage
	argv  []string
}

// runStages runs the stages in order inside dir, stopping at the first
// failure.
func (o *Orchestrator) runStages(ctx context.Context, target, dir string, stages []stageCmd) error {
	for _, s := range stages {
		o.Log.Infof("%s %s: %s", target, s.stage, strings.Join(s.argv, " "))
		if err := o.Runner.Run(ctx, s.stage, dir, s.argv); err != nil {
			return &StageError{Target: target, Stage: s.stage, Err: err}
		}
	}
	return nil
}

// prepareBuildDir wipes dir when force is set, then makes sure it exists.
func (o *Orchestrator) prepareBuildDir(dir string, force bool) error {
	if force {
		if err := os.RemoveAll(dir); err != nil {
			return fmt.Errorf("failed to clean %s: %w", dir, err)
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}
	return nil
}

// configureArgs assembles the cmake invocation for a component rooted at
// srcDir. The toolchain file only applies to the SDK and board layers,
// and only when the configured file actually exists on disk.
func (o *Orchestrator) configureArgs(srcDir string, withToolchain bool) []string {
	args := []string{"cmake", "-DCMAKE_BUILD_TYPE=" + o.Config.BuildType}
	if withToolchain && o.Config.ToolchainFile != "" {
		path := o.Layout.ToolchainFile(o.Config.ToolchainFile)
		if exists(path) {
			args = append(args, "-DCMAKE_TOOLCHAIN_FILE="+path)
		} else {
			o.Log.Warnf("toolchain file not found: %s", path)
		}
	}
	return append(args, srcDir)
}

func (o *Orchestrator) compileArgs() []string {
	jobs := o.Jobs
	if jobs < 1 {
		jobs = runtime.NumCPU()
	}
	return []string{"make", "-j", strconv.Itoa(jobs)}
}

func installArgs() []string {
	return []string{"make", "install"}
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

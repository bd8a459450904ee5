package builder

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
)

// Stage names one step of an external build sequence.
type Stage string

const (
	StageConfigure Stage = "configure"
	StageCompile   Stage = "compile"
	StageInstall   Stage = "install"
	StageRun       Stage = "run"
)

// Runner executes one external step to completion. Implementations block
// until the command exits and return an error for any non-zero status.
// An empty dir runs the command in the current working directory.
type Runner interface {
	Run(ctx context.Context, stage Stage, dir string, argv []string) error
}

// ExecRunner runs steps as real subprocesses with output passed straight
// through, so cmake and make progress stays visible.
type ExecRunner struct {
	Stdout io.Writer
	Stderr io.Writer
}

func (r *ExecRunner) Run(ctx context.Context, stage Stage, dir string, argv []string) error {
	if len(argv) == 0 {
		return errors.New("empty command")
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = r.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = r.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}
	return cmd.Run()
}

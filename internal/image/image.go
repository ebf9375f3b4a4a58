// SPDX-License-Identifier: MPL-2.0

package image

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/jlinker/jlinker/internal/jdk"
	"github.com/jlinker/jlinker/pkg/types"
)

// ErrNotAnImage is returned when the image directory has no java launcher.
var ErrNotAnImage = errors.New("not a runtime image")

type (
	// ExecCommandFunc creates the exec.Cmd for java. Tests replace it.
	ExecCommandFunc func(ctx context.Context, name string, arg ...string) *exec.Cmd

	// Image is a runtime image produced by jlink.
	Image struct {
		Dir string

		execCommand ExecCommandFunc
	}

	// RunOptions selects what to run and where its streams go. Nil streams
	// are discarded (Stdin reads as empty).
	RunOptions struct {
		MainModule string
		MainClass  string
		Args       []string
		Stdin      io.Reader
		Stdout     io.Writer
		Stderr     io.Writer
	}
)

// New returns the image rooted at dir.
func New(dir string) *Image {
	return &Image{Dir: dir, execCommand: exec.CommandContext}
}

// WithExecCommand returns a copy of the image that creates processes with fn.
func (i *Image) WithExecCommand(fn ExecCommandFunc) *Image {
	c := *i
	c.execCommand = fn
	return &c
}

// JavaPath returns <dir>/bin/java, with .exe on Windows.
func (i *Image) JavaPath() string {
	return jdk.BinPath(i.Dir, "java")
}

// Run executes "java -m module[/class] args..." and returns its exit code.
// A non-zero exit code is not an error; failing to start java is.
func (i *Image) Run(ctx context.Context, opts RunOptions) (types.ExitCode, error) {
	if opts.MainModule == "" {
		return 1, errors.New("main module must not be empty")
	}

	target := opts.MainModule
	if opts.MainClass != "" {
		target += "/" + opts.MainClass
	}
	args := append([]string{"-m", target}, opts.Args...)

	return i.exec(ctx, args, opts.Stdin, opts.Stdout, opts.Stderr)
}

// ListModules writes the output of "java --list-modules" to w.
func (i *Image) ListModules(ctx context.Context, w io.Writer) error {
	code, err := i.exec(ctx, []string{"--list-modules"}, nil, w, w)
	if err != nil {
		return err
	}
	if !code.IsSuccess() {
		return fmt.Errorf("java --list-modules exited with code %s", code)
	}
	return nil
}

func (i *Image) exec(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) (types.ExitCode, error) {
	java := i.JavaPath()
	if _, err := os.Stat(java); err != nil {
		return 1, fmt.Errorf("%w: %s: %w", ErrNotAnImage, i.Dir, err)
	}

	execCommand := i.execCommand
	if execCommand == nil {
		execCommand = exec.CommandContext
	}
	cmd := execCommand(ctx, java, args...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}
	code, exited := types.ExitCodeFromError(err)
	if !exited {
		return code, fmt.Errorf("running %s: %w", java, err)
	}
	return code, nil
}

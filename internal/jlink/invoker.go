// SPDX-License-Identifier: MPL-2.0

package jlink

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"github.com/jlinker/jlinker/internal/jdk"
	"github.com/jlinker/jlinker/pkg/types"
)

// ToolName is the name jlink is registered under in a ToolRegistry.
const ToolName = "jlink"

// ErrLinkFailed is wrapped by every failed jlink invocation.
var ErrLinkFailed = errors.New("jlink failed")

type (
	// Invoker runs jlink with a prepared argument list.
	Invoker interface {
		Invoke(ctx context.Context, args []string) error
	}

	// LinkFailedError carries the exit status and output of a failed run.
	LinkFailedError struct {
		ExitCode types.ExitCode
		Stdout   string
		Stderr   string
	}

	// ExecCommandFunc creates the exec.Cmd for a subprocess. Tests replace it.
	ExecCommandFunc func(ctx context.Context, name string, arg ...string) *exec.Cmd

	invokeOptions struct {
		execCommand ExecCommandFunc
		stdout      io.Writer
		stderr      io.Writer
	}

	// Option configures an invoker.
	Option func(*invokeOptions)

	// SubprocessInvoker runs <jdk>/bin/jlink as a child process.
	SubprocessInvoker struct {
		jlinkPath string
		opts      invokeOptions
	}

	// ToolProvider is a linker that runs inside the current process.
	ToolProvider interface {
		Name() string
		Run(stdout, stderr io.Writer, args ...string) int
	}

	// ToolRegistry finds ToolProviders by name.
	ToolRegistry struct {
		mu    sync.RWMutex
		tools map[string]ToolProvider
	}

	// InProcessInvoker runs a ToolProvider, capturing its output in buffers.
	InProcessInvoker struct {
		tool ToolProvider
		opts invokeOptions
	}
)

// Error includes jlink's error output verbatim, or its standard output when
// nothing was written to stderr.
func (e *LinkFailedError) Error() string {
	output := strings.TrimSpace(e.Stderr)
	if output == "" {
		output = strings.TrimSpace(e.Stdout)
	}
	if output == "" {
		return fmt.Sprintf("jlink failed with exit code %s", e.ExitCode)
	}
	return fmt.Sprintf("jlink failed with exit code %s:\n%s", e.ExitCode, output)
}

func (e *LinkFailedError) Unwrap() error { return ErrLinkFailed }

// WithExecCommand replaces exec.CommandContext for subprocess invocations.
func WithExecCommand(fn ExecCommandFunc) Option {
	return func(o *invokeOptions) {
		o.execCommand = fn
	}
}

// WithOutput tees jlink's output to the given writers while it is also
// captured for error reporting.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(o *invokeOptions) {
		o.stdout = stdout
		o.stderr = stderr
	}
}

func applyOptions(opts []Option) invokeOptions {
	o := invokeOptions{execCommand: exec.CommandContext}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// NewSubprocessInvoker creates an invoker for the jlink binary at jlinkPath.
func NewSubprocessInvoker(jlinkPath string, opts ...Option) *SubprocessInvoker {
	return &SubprocessInvoker{jlinkPath: jlinkPath, opts: applyOptions(opts)}
}

// Path returns the jlink binary path.
func (s *SubprocessInvoker) Path() string {
	return s.jlinkPath
}

// Invoke runs jlink and waits for it to exit.
func (s *SubprocessInvoker) Invoke(ctx context.Context, args []string) error {
	var stdout, stderr bytes.Buffer
	cmd := s.opts.execCommand(ctx, s.jlinkPath, args...)
	cmd.Stdout = tee(&stdout, s.opts.stdout)
	cmd.Stderr = tee(&stderr, s.opts.stderr)

	err := cmd.Run()
	if err == nil {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("running %s: %w", s.jlinkPath, ctxErr)
	}

	code, exited := types.ExitCodeFromError(err)
	if !exited {
		return fmt.Errorf("%w: starting %s: %w", ErrLinkFailed, s.jlinkPath, err)
	}
	return &LinkFailedError{ExitCode: code, Stdout: stdout.String(), Stderr: stderr.String()}
}

// NewToolRegistry creates a registry holding tools.
func NewToolRegistry(tools ...ToolProvider) *ToolRegistry {
	r := &ToolRegistry{tools: make(map[string]ToolProvider)}
	for _, t := range tools {
		r.Register(t)
	}
	return r
}

// Register adds or replaces a tool under its Name.
func (r *ToolRegistry) Register(t ToolProvider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tools[t.Name()] = t
}

// Lookup returns the tool registered under name.
func (r *ToolRegistry) Lookup(name string) (ToolProvider, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tools[name]
	return t, ok
}

// NewInProcessInvoker creates an invoker for tool. WithExecCommand has no
// effect on it.
func NewInProcessInvoker(tool ToolProvider, opts ...Option) *InProcessInvoker {
	return &InProcessInvoker{tool: tool, opts: applyOptions(opts)}
}

// Invoke runs the tool. ctx is only checked before the call, as a
// ToolProvider cannot be interrupted.
func (p *InProcessInvoker) Invoke(ctx context.Context, args []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var stdout, stderr bytes.Buffer
	code := p.tool.Run(tee(&stdout, p.opts.stdout), tee(&stderr, p.opts.stderr), args...)
	if code != 0 {
		return &LinkFailedError{ExitCode: types.ExitCode(code), Stdout: stdout.String(), Stderr: stderr.String()}
	}
	return nil
}

// SelectInvoker chooses how to run the jlink of jdkHome. The in-process tool
// is used only when jdkHome is the installation the current process runs
// from (currentHome) and registry provides jlink; otherwise jlink runs as a
// subprocess. An empty currentHome always selects the subprocess.
func SelectInvoker(jdkHome, currentHome string, registry *ToolRegistry, opts ...Option) Invoker {
	if currentHome != "" && sameDir(jdkHome, currentHome) {
		if tool, ok := registry.Lookup(ToolName); ok {
			return NewInProcessInvoker(tool, opts...)
		}
	}
	return NewSubprocessInvoker(jdk.BinPath(jdkHome, ToolName), opts...)
}

func sameDir(a, b string) bool {
	fa, errA := os.Stat(a)
	fb, errB := os.Stat(b)
	if errA == nil && errB == nil {
		return os.SameFile(fa, fb)
	}
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}

func tee(capture *bytes.Buffer, w io.Writer) io.Writer {
	if w == nil {
		return capture
	}
	return io.MultiWriter(capture, w)
}

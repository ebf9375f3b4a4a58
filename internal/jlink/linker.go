// SPDX-License-Identifier: MPL-2.0

package jlink

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"al.essio.dev/pkg/shellescape"
	"github.com/charmbracelet/log"
)

type (
	// LinkRequest is one image to assemble.
	LinkRequest struct {
		Config ImageConfig
		// LocalModulePath holds application module directories and jars.
		LocalModulePath []string
		// CrossTargetJmods is the jmods directory of a cross-target JDK, or "".
		CrossTargetJmods string
		OutputDir        string
	}

	// Linker validates requests, prepares the output directory and invokes jlink.
	Linker struct {
		invoker Invoker
		logger  *log.Logger
	}

	// LinkerOption configures a Linker.
	LinkerOption func(*Linker)
)

// WithLinkerLogger sets the logger.
func WithLinkerLogger(l *log.Logger) LinkerOption {
	return func(k *Linker) {
		k.logger = l
	}
}

// NewLinker creates a Linker that runs jlink through invoker.
func NewLinker(invoker Invoker, opts ...LinkerOption) *Linker {
	k := &Linker{invoker: invoker}
	for _, opt := range opts {
		opt(k)
	}
	if k.logger == nil {
		k.logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "jlink"})
	}
	return k
}

// Plan validates req and returns the jlink arguments without side effects.
func (k *Linker) Plan(req *LinkRequest) ([]string, error) {
	if err := req.Config.Validate(); err != nil {
		return nil, err
	}
	if req.OutputDir == "" {
		return nil, fmt.Errorf("%w: output directory must not be empty", ErrInvalidConfig)
	}
	modulePath, err := JoinModulePath(req.LocalModulePath, req.CrossTargetJmods)
	if err != nil {
		return nil, err
	}
	return BuildArgs(&req.Config, modulePath, req.OutputDir), nil
}

// Link deletes the output directory, then runs jlink. There is no
// incremental update of an existing image.
func (k *Linker) Link(ctx context.Context, req *LinkRequest) error {
	args, err := k.Plan(req)
	if err != nil {
		return err
	}

	if err := os.RemoveAll(req.OutputDir); err != nil {
		return fmt.Errorf("removing previous image %s: %w", req.OutputDir, err)
	}
	if err := os.MkdirAll(filepath.Dir(req.OutputDir), 0o755); err != nil {
		return fmt.Errorf("creating image parent directory: %w", err)
	}

	k.logger.Debug("running jlink", "command", shellescape.QuoteCommand(append([]string{ToolName}, args...)))

	if err := k.invoker.Invoke(ctx, args); err != nil {
		return err
	}

	k.logger.Info("image created", "dir", req.OutputDir)
	return nil
}

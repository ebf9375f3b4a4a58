// SPDX-License-Identifier: MPL-2.0

package jlink

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/charmbracelet/log"
)

func quietLinker(inv Invoker) *Linker {
	return NewLinker(inv, WithLinkerLogger(log.New(io.Discard)))
}

func demoRequest(out string) *LinkRequest {
	return &LinkRequest{
		Config: ImageConfig{
			MainModule: "demo.main",
			Launchers:  []Launcher{{Name: "demo", Module: "demo.main", Class: "com.example.demo.DemoApplication"}},
		},
		OutputDir: out,
	}
}

func TestLinkExcludeFiles(t *testing.T) {
	t.Parallel()

	out := filepath.Join(t.TempDir(), "images", "demo")
	req := demoRequest(out)
	req.Config.ExcludeFiles = []string{"/**/legal/**", "/**/man/**"}

	tool := &fakeTool{}
	if err := quietLinker(NewInProcessInvoker(tool)).Link(context.Background(), req); err != nil {
		t.Fatalf("Link() error = %v", err)
	}

	for _, dir := range []string{"bin", "lib"} {
		if _, err := os.Stat(filepath.Join(out, dir)); err != nil {
			t.Errorf("expected %s in image: %v", dir, err)
		}
	}
	for _, dir := range []string{"legal", "man"} {
		if _, err := os.Stat(filepath.Join(out, dir)); !errors.Is(err, os.ErrNotExist) {
			t.Errorf("expected %s to be excluded, stat error = %v", dir, err)
		}
	}
	if len(tool.calls) != 1 || !slices.Contains(tool.calls[0], "/**/legal/**,/**/man/**") {
		t.Errorf("calls = %q", tool.calls)
	}
}

func TestLinkReplacesExistingImage(t *testing.T) {
	t.Parallel()

	out := filepath.Join(t.TempDir(), "image")
	stale := filepath.Join(out, "stale.txt")
	if err := os.MkdirAll(out, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(stale, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := quietLinker(NewInProcessInvoker(&fakeTool{})).Link(context.Background(), demoRequest(out)); err != nil {
		t.Fatalf("Link() error = %v", err)
	}
	if _, err := os.Stat(stale); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("stale file survived relink: %v", err)
	}
}

func TestLinkInvalidConfigTouchesNothing(t *testing.T) {
	t.Parallel()

	out := filepath.Join(t.TempDir(), "image")
	if err := os.MkdirAll(out, 0o755); err != nil {
		t.Fatal(err)
	}
	req := demoRequest(out)
	req.Config.MainModule = ""

	tool := &fakeTool{}
	err := quietLinker(NewInProcessInvoker(tool)).Link(context.Background(), req)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("Link() error = %v, want ErrInvalidConfig", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("output dir removed despite invalid config: %v", err)
	}
	if len(tool.calls) != 0 {
		t.Errorf("jlink invoked %d times", len(tool.calls))
	}
}

func TestLinkPropagatesFailure(t *testing.T) {
	t.Parallel()

	tool := &fakeTool{exitCode: 1, stderr: "Error: Module demo.main not found"}
	err := quietLinker(NewInProcessInvoker(tool)).Link(context.Background(), demoRequest(filepath.Join(t.TempDir(), "image")))
	if !errors.Is(err, ErrLinkFailed) {
		t.Fatalf("Link() error = %v, want ErrLinkFailed", err)
	}
	if got := err.Error(); got != "jlink failed with exit code 1:\nError: Module demo.main not found" {
		t.Errorf("Error() = %q", got)
	}
}

func TestPlanCrossTarget(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	jmods := filepath.Join(dir, "jdks", "windows", "jdk-21", "jmods")
	req := demoRequest(filepath.Join(dir, "images", "windows"))
	req.LocalModulePath = []string{filepath.Join(dir, "target", "modules")}
	req.CrossTargetJmods = jmods

	args, err := quietLinker(nil).Plan(req)
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	want := filepath.Join(dir, "jdks", "windows", "jdk-21", "jmods") +
		string(os.PathListSeparator) + filepath.Join(dir, "target", "modules")
	if args[0] != "--module-path" || args[1] != want {
		t.Errorf("module path = %q, want %q", args[1], want)
	}
}

func TestPlanRequiresOutputDir(t *testing.T) {
	t.Parallel()

	if _, err := quietLinker(nil).Plan(demoRequest("")); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Plan() error = %v, want ErrInvalidConfig", err)
	}
}

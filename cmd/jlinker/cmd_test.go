// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jlinker/jlinker/internal/config"
	"github.com/jlinker/jlinker/internal/jlink"
	"github.com/jlinker/jlinker/internal/pipeline"
	"github.com/jlinker/jlinker/internal/testutil"
)

type (
	// cliResult holds the output of one command run.
	cliResult struct {
		stdout string
		stderr string
		err    error
	}

	// fakeJlink is an in-process jlink that records its arguments, creates the
	// output directory and fails with exitCode when it is set.
	fakeJlink struct {
		args     []string
		exitCode int
		stderr   string
	}

	// stubConfig is a ConfigProvider returning a fixed configuration.
	stubConfig struct {
		cfg  *config.Config
		path string
	}
)

func (f *fakeJlink) Name() string { return jlink.ToolName }

func (f *fakeJlink) Run(_, stderr io.Writer, args ...string) int {
	f.args = args
	if f.exitCode != 0 {
		fmt.Fprint(stderr, f.stderr)
		return f.exitCode
	}
	for i := 0; i < len(args)-1; i++ {
		if args[i] == "--output" {
			if err := os.MkdirAll(filepath.Join(args[i+1], "bin"), 0o755); err != nil {
				fmt.Fprintln(stderr, err)
				return 1
			}
		}
	}
	return 0
}

func (s stubConfig) Load(context.Context, config.LoadOptions) (*config.Config, error) {
	return s.cfg, nil
}

func (s stubConfig) Locate(config.LoadOptions) (string, error) {
	return s.path, nil
}

// newHostJDK creates a JDK home holding only a release file.
func newHostJDK(t *testing.T, version string) string {
	t.Helper()
	return testutil.NewJDKHome(t, version, false)
}

// writeProjectFile writes a jlinker.cue for a demo application linked with
// home and returns its path. extra is appended verbatim.
func writeProjectFile(t *testing.T, dir, home, extra string) string {
	t.Helper()
	content := fmt.Sprintf(`java_home: %q
module_path: ["mods"]

application: {
	name:        "demo"
	main_module: "demo.main"
	main_class:  "com.example.demo.Demo"
}
%s`, home, extra)
	path := filepath.Join(dir, config.FileName())
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// inProcessDeps makes home's jlink run as tool inside the test process.
func inProcessDeps(home string, tool *fakeJlink) Dependencies {
	return Dependencies{
		PipelineOptions: []pipeline.Option{
			pipeline.WithCurrentJavaHome(home),
			pipeline.WithToolRegistry(jlink.NewToolRegistry(tool)),
		},
	}
}

// runCLI executes the command tree with args and captured streams.
func runCLI(t *testing.T, deps Dependencies, args ...string) cliResult {
	t.Helper()

	var stdout, stderr bytes.Buffer
	deps.Stdin = strings.NewReader("")
	deps.Stdout = &stdout
	deps.Stderr = &stderr

	app, err := NewApp(deps)
	if err != nil {
		t.Fatalf("NewApp() error = %v", err)
	}
	root := NewRootCommand(app)
	root.SilenceErrors = true
	root.SilenceUsage = true
	root.SetArgs(args)

	err = root.ExecuteContext(context.Background())
	return cliResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/jlinker/jlinker/internal/config"
	"github.com/jlinker/jlinker/internal/download"
	"github.com/jlinker/jlinker/internal/issue"
	"github.com/jlinker/jlinker/internal/jlink"
	"github.com/jlinker/jlinker/internal/pipeline"
)

type (
	// App wires CLI services and shared dependencies. All Cobra command
	// handlers receive an App reference.
	App struct {
		Config ConfigProvider

		stdin  io.Reader
		stdout io.Writer
		stderr io.Writer
		logger *log.Logger

		httpClient      *http.Client
		pipelineOptions []pipeline.Option

		// Set from persistent flags.
		configPath string
		verbose    bool

		// colorScheme is ui.color_scheme of the last loaded project file.
		colorScheme config.ColorScheme
	}

	// Dependencies defines the injection points for building an App. Nil fields are
	// replaced with production defaults by NewApp.
	Dependencies struct {
		Config ConfigProvider
		Stdin  io.Reader
		Stdout io.Writer
		Stderr io.Writer
		// HTTPClient is used for every download.
		HTTPClient *http.Client
		// PipelineOptions are appended to the options of every build pipeline.
		PipelineOptions []pipeline.Option
	}

	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
		Locate(opts config.LoadOptions) (string, error)
	}
)

// NewApp creates an App, filling unset dependencies with defaults.
func NewApp(deps Dependencies) (*App, error) {
	if deps.Stdin == nil {
		deps.Stdin = os.Stdin
	}
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.HTTPClient == nil {
		deps.HTTPClient = http.DefaultClient
	}

	return &App{
		Config:          deps.Config,
		stdin:           deps.Stdin,
		stdout:          deps.Stdout,
		stderr:          deps.Stderr,
		logger:          log.NewWithOptions(deps.Stderr, log.Options{Prefix: "jlinker"}),
		httpClient:      deps.HTTPClient,
		pipelineOptions: deps.PipelineOptions,
	}, nil
}

func (a *App) loadOptions() config.LoadOptions {
	return config.LoadOptions{ConfigFilePath: a.configPath}
}

// loadConfig loads the project file and applies ui.verbose.
func (a *App) loadConfig(ctx context.Context) (*config.Config, error) {
	cfg, err := a.Config.Load(ctx, a.loadOptions())
	if err != nil {
		return nil, err
	}
	if cfg.UI.Verbose && !a.verbose {
		a.setVerbose(true)
	}
	a.colorScheme = cfg.UI.ColorScheme
	switch a.colorScheme {
	case config.ColorSchemeDark:
		lipgloss.SetHasDarkBackground(true)
	case config.ColorSchemeLight:
		lipgloss.SetHasDarkBackground(false)
	}
	return cfg, nil
}

// issueStyle returns the glamour style for catalog entries.
func (a *App) issueStyle() string {
	if a.colorScheme == config.ColorSchemeLight {
		return "light"
	}
	return "dark"
}

func (a *App) setVerbose(v bool) {
	a.verbose = v
	if v {
		a.logger.SetLevel(log.DebugLevel)
	} else {
		a.logger.SetLevel(log.InfoLevel)
	}
}

// javaHome returns the host JDK: java_home from the project file (or
// JLINKER_JAVA_HOME), then JAVA_HOME.
func (a *App) javaHome(cfg *config.Config) (string, error) {
	if cfg.JavaHome != "" {
		return cfg.JavaHome, nil
	}
	if home := os.Getenv("JAVA_HOME"); home != "" {
		return home, nil
	}
	return "", issue.NewErrorContext().
		WithOperation("locate the host JDK").
		WithSuggestion("Set java_home in " + config.FileName()).
		WithSuggestion("Or export JAVA_HOME (or JLINKER_JAVA_HOME)").
		WithIssue(issue.JavaNotFoundId).
		Wrap(pipeline.ErrNoJavaHome).
		BuildError()
}

func (a *App) newDownloader() *download.Downloader {
	return download.New(
		download.WithHTTPClient(a.httpClient),
		download.WithUserAgent("jlinker/"+Version),
		download.WithLogger(a.logger),
	)
}

// newPipeline builds the pipeline for cfg with the host JDK.
func (a *App) newPipeline(cfg *config.Config) (*pipeline.Pipeline, error) {
	home, err := a.javaHome(cfg)
	if err != nil {
		return nil, err
	}

	opts := []pipeline.Option{
		pipeline.WithJavaHome(home),
		pipeline.WithRepositories(cfg.JdkRepositories()),
		pipeline.WithDownloader(a.newDownloader()),
		pipeline.WithLogger(a.logger),
	}
	if a.verbose {
		opts = append(opts, pipeline.WithInvokeOptions(jlink.WithOutput(a.stdout, a.stderr)))
	}
	opts = append(opts, a.pipelineOptions...)
	return pipeline.New(opts...), nil
}

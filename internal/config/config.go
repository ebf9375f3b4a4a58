// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"

	"github.com/jlinker/jlinker/internal/issue"
	"github.com/jlinker/jlinker/pkg/cueutil"
	"github.com/jlinker/jlinker/pkg/platform"
)

const (
	// AppName is the application name.
	AppName = "jlinker"
	// ConfigFileName is the name of the project file (without extension).
	ConfigFileName = "jlinker"
	// ConfigFileExt is the project file extension.
	ConfigFileExt = "cue"
	// EnvPrefix prefixes environment overrides (JLINKER_JAVA_HOME).
	EnvPrefix = "JLINKER"
)

// ErrConfigExists is returned by WriteDefault when the file already exists.
var ErrConfigExists = errors.New("config file already exists")

//go:embed config_schema.cue
var configSchema []byte

// ConfigDir returns the jlinker configuration directory using platform-specific
// conventions: Windows uses %APPDATA%, macOS uses ~/Library/Application Support,
// and Linux/others use $XDG_CONFIG_HOME (defaulting to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	var configDir string

	switch runtime.GOOS {
	case platform.Windows:
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case platform.Darwin:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default:
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// FileName returns "jlinker.cue".
func FileName() string {
	return ConfigFileName + "." + ConfigFileExt
}

// locate returns the project file to load, or "" when there is none. An
// explicit ConfigFilePath must exist.
func locate(opts LoadOptions) (string, error) {
	if opts.ConfigFilePath != "" {
		if !fileExists(opts.ConfigFilePath) {
			return "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(opts.ConfigFilePath).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Run 'jlinker config init' to create a project file").
				WithIssue(issue.ConfigLoadFailedId).
				Wrap(fmt.Errorf("config file not found: %s", opts.ConfigFilePath)).
				BuildError()
		}
		return opts.ConfigFilePath, nil
	}

	local := filepath.Join(opts.WorkDir, FileName())
	if fileExists(local) {
		return local, nil
	}

	cfgDir := opts.ConfigDirPath
	if cfgDir == "" {
		var err error
		if cfgDir, err = ConfigDir(); err != nil {
			return "", err
		}
	}
	if user := filepath.Join(cfgDir, FileName()); fileExists(user) {
		return user, nil
	}
	return "", nil
}

// loadWithOptions performs option-driven config loading. It returns the
// loaded file path, or "" when only defaults and environment apply.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("java_home", defaults.JavaHome)
	v.SetDefault("build_dir", defaults.BuildDir)
	v.SetDefault("module_path", defaults.ModulePath)
	v.SetDefault("ui.verbose", defaults.UI.Verbose)
	v.SetDefault("ui.color_scheme", defaults.UI.ColorScheme)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path, err := locate(opts)
	if err != nil {
		return nil, "", err
	}
	if path != "" {
		if err := loadCUEIntoViper(v, path); err != nil {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(path).
				WithSuggestion("Check that the file contains valid CUE syntax").
				WithSuggestion("Verify the configuration values match the expected schema").
				WithSuggestion("Run 'jlinker config show' to see the effective configuration").
				WithIssue(issue.ConfigLoadFailedId).
				Wrap(err).
				BuildError()
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}

	if valid, errs := cfg.IsValid(); !valid {
		return nil, "", issue.NewErrorContext().
			WithOperation("validate configuration").
			WithResource(path).
			WithSuggestion("Give every target a unique name").
			WithSuggestion("Set exactly one of url, group or java_home per target, with a checksum or checksum_url").
			WithIssue(issue.ConfigLoadFailedId).
			Wrap(errors.Join(errs...)).
			BuildError()
	}

	if path != "" {
		cfg.resolvePaths(filepath.Dir(path))
	}
	return &cfg, path, nil
}

// resolvePaths makes the build directory and module path entries relative
// to the directory holding the project file.
func (c *Config) resolvePaths(base string) {
	if !filepath.IsAbs(c.BuildDir) {
		c.BuildDir = filepath.Join(base, c.BuildDir)
	}
	for i, p := range c.ModulePath {
		if !filepath.IsAbs(p) {
			c.ModulePath[i] = filepath.Join(base, p)
		}
	}
}

// loadCUEIntoViper validates a CUE file against the #Config schema and merges
// its contents into Viper, keeping defaults and environment overrides.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	configMap, err := cueutil.DecodeMap(configSchema, data, "#Config", path)
	if err != nil {
		return err
	}

	if err := v.MergeConfigMap(configMap); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}
	return nil
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

// WriteDefault writes a starter project file to path. It never overwrites.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%w: %s", ErrConfigExists, path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	cfg := DefaultConfig()
	cfg.Application = ApplicationConfig{
		Name:       "app",
		MainModule: "com.example.app",
		MainClass:  "com.example.app.Main",
		NoManPages: true,
		StripDebug: true,
	}
	cfg.ModulePath = []string{"target/modules"}

	if err := os.WriteFile(path, []byte(GenerateCUE(cfg)), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SPDX-License-Identifier: MPL-2.0

package config

import "context"

// LoadOptions defines explicit configuration loading inputs.
type LoadOptions struct {
	// ConfigFilePath forces loading from a specific project file when set.
	ConfigFilePath string
	// ConfigDirPath overrides the user config directory lookup when set.
	ConfigDirPath string
	// WorkDir is searched for jlinker.cue before the config directory.
	// Empty means the current directory.
	WorkDir string
}

// Provider loads configuration from explicit options.
type Provider interface {
	Load(ctx context.Context, opts LoadOptions) (*Config, error)
	// Locate returns the project file Load would read, or "" for none.
	Locate(opts LoadOptions) (string, error)
}

type fileProvider struct{}

// NewProvider creates a configuration provider.
func NewProvider() Provider {
	return &fileProvider{}
}

// Load reads configuration from the requested source.
func (p *fileProvider) Load(ctx context.Context, opts LoadOptions) (*Config, error) {
	cfg, _, err := loadWithOptions(ctx, opts)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func (p *fileProvider) Locate(opts LoadOptions) (string, error) {
	return locate(opts)
}

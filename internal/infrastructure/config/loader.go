// Package config loads the kalkon configuration file, seeds it on
// first run and applies KALKON_* environment overrides on top.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/freand76/kalkon/assets"
	"github.com/freand76/kalkon/internal/domain"
	"github.com/freand76/kalkon/internal/pkg/filesystem"
	"github.com/freand76/kalkon/internal/ports"
)

// FileLoader loads YAML configuration from ~/.kalkon/config.yaml,
// overridable via KALKON_CONFIG or an explicit path.
type FileLoader struct {
	overridePath string
}

var _ ports.ConfigProvider = (*FileLoader)(nil)

// NewFileLoader builds a loader. An empty path means the default
// resolution order applies.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load implements ports.ConfigProvider. A missing file is seeded with
// the embedded defaults; a present file is merged with defaults for
// any key it leaves out. Environment variables win over both.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	path := l.Path()
	if err := ensureConfigDir(path); err != nil {
		return domain.Config{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return domain.Config{}, err
		}
		if err := writeDefault(path); err != nil {
			return domain.Config{}, err
		}
		data = assets.DefaultConfigYAML
	}

	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.HydrateDefaults()

	if err := env.Parse(&cfg); err != nil {
		return domain.Config{}, fmt.Errorf("apply environment overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return domain.Config{}, fmt.Errorf("invalid configuration in %s: %w", path, err)
	}
	return cfg, nil
}

// Save validates and persists the configuration. Comments in the file
// are lost; Reset restores the commented default.
func (l *FileLoader) Save(cfg domain.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	path := l.Path()
	if err := ensureConfigDir(path); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, domain.SecureFilePermissions)
}

// Reset rewrites the file with the embedded default configuration.
func (l *FileLoader) Reset() (domain.Config, error) {
	path := l.Path()
	if err := ensureConfigDir(path); err != nil {
		return domain.Config{}, err
	}
	if err := writeDefault(path); err != nil {
		return domain.Config{}, err
	}
	return domain.DefaultConfig(), nil
}

// Path returns the file the loader reads, without touching the disk.
func (l *FileLoader) Path() string {
	if l.overridePath != "" {
		return l.overridePath
	}
	if custom := os.Getenv(domain.ConfigPathEnv); custom != "" {
		return expandPath(custom)
	}
	return filepath.Join(filesystem.ConfigDir(), domain.ConfigFileName)
}

func ensureConfigDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions)
}

func writeDefault(path string) error {
	return os.WriteFile(path, assets.DefaultConfigYAML, domain.SecureFilePermissions)
}

func expandPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if len(path) > 1 && path[:2] == "~/" {
		return filepath.Join(filesystem.UserHomeDir(), path[2:])
	}
	return filepath.Clean(path)
}

package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/freand76/kalkon/assets"
	"github.com/freand76/kalkon/internal/domain"
	"github.com/freand76/kalkon/internal/infrastructure/config"
)

func TestFileLoader_SeedsDefaultOnFirstRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	loader := config.NewFileLoader(path)

	cfg, err := loader.Load(context.Background())
	require.NoError(t, err)

	if diff := cmp.Diff(domain.DefaultConfig(), cfg); diff != "" {
		t.Fatalf("first-run config differs from defaults (-want +got):\n%s", diff)
	}

	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, assets.DefaultConfigYAML, written, "seeded file is the embedded asset")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(domain.SecureFilePermissions), info.Mode().Perm())
}

func TestFileLoader_EmbeddedAssetMatchesDefaults(t *testing.T) {
	var cfg domain.Config
	require.NoError(t, yaml.Unmarshal(assets.DefaultConfigYAML, &cfg))
	cfg.HydrateDefaults()

	if diff := cmp.Diff(domain.DefaultConfig(), cfg); diff != "" {
		t.Fatalf("embedded asset drifted from DefaultConfig (-want +got):\n%s", diff)
	}
}

func TestFileLoader_HydratesSparseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("engine:\n  precision_bits: 256\n"), 0o600))

	cfg, err := config.NewFileLoader(path).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 256, cfg.Engine.PrecisionBits)
	assert.Equal(t, domain.DefaultDisplayDigits, cfg.Display.Digits)
	assert.Equal(t, domain.DefaultStackDepth, cfg.Display.StackDepth)
	assert.Equal(t, domain.DefaultColorMode, cfg.Display.Color)
}

func TestFileLoader_EnvironmentWinsOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("display:\n  digits: 8\n"), 0o600))
	t.Setenv("KALKON_DIGITS", "20")
	t.Setenv("KALKON_COLOR", "never")

	cfg, err := config.NewFileLoader(path).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 20, cfg.Display.Digits)
	assert.Equal(t, "never", cfg.Display.Color)
}

func TestFileLoader_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{name: "precision too small", yaml: "engine:\n  precision_bits: 10\n", want: "precision_bits"},
		{name: "digits too large", yaml: "display:\n  digits: 500\n", want: "display.digits"},
		{name: "bad color mode", yaml: "display:\n  color: sometimes\n", want: "display.color"},
		{name: "negative retention", yaml: "history:\n  retention: -1\n", want: "history.retention"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o600))

			_, err := config.NewFileLoader(path).Load(context.Background())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestFileLoader_RejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("engine: [not a mapping"), 0o600))

	_, err := config.NewFileLoader(path).Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse")
}

func TestFileLoader_SaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	loader := config.NewFileLoader(path)

	cfg := domain.DefaultConfig()
	cfg.Display.Digits = 24
	cfg.History.Retention = 50
	require.NoError(t, loader.Save(cfg))

	loaded, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 24, loaded.Display.Digits)
	assert.Equal(t, 50, loaded.History.Retention)

	cfg.Display.Color = "sometimes"
	err = loader.Save(cfg)
	require.Error(t, err, "Save must validate before writing")
	assert.Contains(t, err.Error(), "display.color")
}

func TestFileLoader_ResetRestoresDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	loader := config.NewFileLoader(path)

	cfg := domain.DefaultConfig()
	cfg.Display.Digits = 42
	require.NoError(t, loader.Save(cfg))

	reset, err := loader.Reset()
	require.NoError(t, err)
	if diff := cmp.Diff(domain.DefaultConfig(), reset); diff != "" {
		t.Fatalf("Reset returned non-default config (-want +got):\n%s", diff)
	}

	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, assets.DefaultConfigYAML, written, "Reset restores the commented asset")
}

func TestFileLoader_PathResolution(t *testing.T) {
	override := filepath.Join(t.TempDir(), "explicit.yaml")
	assert.Equal(t, override, config.NewFileLoader(override).Path())

	fromEnv := filepath.Join(t.TempDir(), "env.yaml")
	t.Setenv(domain.ConfigPathEnv, fromEnv)
	assert.Equal(t, fromEnv, config.NewFileLoader("").Path())
}

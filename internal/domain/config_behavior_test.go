package domain_test

import (
	"testing"

	"github.com/freand76/kalkon/internal/domain"
)

// TestConfig_Validate tests the documented bounds of every field.
func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*domain.Config)
		wantError bool
	}{
		{
			name:      "default configuration is valid",
			mutate:    func(c *domain.Config) {},
			wantError: false,
		},
		{
			name:      "precision below float64 mantissa rejected",
			mutate:    func(c *domain.Config) { c.Engine.PrecisionBits = 52 },
			wantError: true,
		},
		{
			name:      "precision at lower bound accepted",
			mutate:    func(c *domain.Config) { c.Engine.PrecisionBits = 53 },
			wantError: false,
		},
		{
			name:      "precision above cap rejected",
			mutate:    func(c *domain.Config) { c.Engine.PrecisionBits = 16385 },
			wantError: true,
		},
		{
			name:      "zero digits rejected",
			mutate:    func(c *domain.Config) { c.Display.Digits = 0 },
			wantError: true,
		},
		{
			name:      "digits above cap rejected",
			mutate:    func(c *domain.Config) { c.Display.Digits = 101 },
			wantError: true,
		},
		{
			name:      "zero stack depth rejected",
			mutate:    func(c *domain.Config) { c.Display.StackDepth = 0 },
			wantError: true,
		},
		{
			name:      "unknown color mode rejected",
			mutate:    func(c *domain.Config) { c.Display.Color = "rainbow" },
			wantError: true,
		},
		{
			name:      "always color mode accepted",
			mutate:    func(c *domain.Config) { c.Display.Color = "always" },
			wantError: false,
		},
		{
			name:      "negative retention rejected",
			mutate:    func(c *domain.Config) { c.History.Retention = -1 },
			wantError: true,
		},
		{
			name:      "bounded retention accepted",
			mutate:    func(c *domain.Config) { c.History.Retention = 100 },
			wantError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := domain.DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantError {
				if err == nil {
					t.Error("expected error but got none")
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

// TestConfig_HydrateDefaults tests that a sparse configuration is
// completed without clobbering explicit settings.
func TestConfig_HydrateDefaults(t *testing.T) {
	var cfg domain.Config
	cfg.HydrateDefaults()

	if cfg.Engine.PrecisionBits != domain.DefaultPrecisionBits {
		t.Errorf("PrecisionBits = %d, want %d", cfg.Engine.PrecisionBits, domain.DefaultPrecisionBits)
	}
	if cfg.Display.Digits != domain.DefaultDisplayDigits {
		t.Errorf("Digits = %d, want %d", cfg.Display.Digits, domain.DefaultDisplayDigits)
	}
	if cfg.Display.StackDepth != domain.DefaultStackDepth {
		t.Errorf("StackDepth = %d, want %d", cfg.Display.StackDepth, domain.DefaultStackDepth)
	}
	if cfg.Display.Color != domain.DefaultColorMode {
		t.Errorf("Color = %q, want %q", cfg.Display.Color, domain.DefaultColorMode)
	}

	kept := domain.Config{}
	kept.Display.Digits = 30
	kept.History.Retention = 7
	kept.HydrateDefaults()
	if kept.Display.Digits != 30 {
		t.Errorf("explicit digits overwritten: got %d", kept.Display.Digits)
	}
	if kept.History.Retention != 7 {
		t.Errorf("explicit retention overwritten: got %d", kept.History.Retention)
	}
}

// TestConfig_Accessors tests fallback behavior of the getter methods.
func TestConfig_Accessors(t *testing.T) {
	var cfg domain.Config

	if got := cfg.GetPrecisionBits(); got != domain.DefaultPrecisionBits {
		t.Errorf("GetPrecisionBits() = %d, want %d", got, domain.DefaultPrecisionBits)
	}
	if got := cfg.GetDisplayDigits(); got != domain.DefaultDisplayDigits {
		t.Errorf("GetDisplayDigits() = %d, want %d", got, domain.DefaultDisplayDigits)
	}
	if got := cfg.GetStackDepth(); got != domain.DefaultStackDepth {
		t.Errorf("GetStackDepth() = %d, want %d", got, domain.DefaultStackDepth)
	}
	if got := cfg.GetColorMode(); got != domain.DefaultColorMode {
		t.Errorf("GetColorMode() = %q, want %q", got, domain.DefaultColorMode)
	}

	cfg.Engine.PrecisionBits = 256
	if got := cfg.GetPrecisionBits(); got != 256 {
		t.Errorf("GetPrecisionBits() = %d, want 256", got)
	}
	if cfg.IsSessionLogEnabled() {
		t.Error("session log should be disabled by default")
	}
}

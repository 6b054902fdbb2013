package domain

import "fmt"

// DefaultConfig returns the configuration used when no file exists yet.
// It is the single source of truth for defaults; the embedded YAML asset
// mirrors it for first-run file generation.
func DefaultConfig() Config {
	return Config{
		Engine: EngineSettings{
			PrecisionBits: DefaultPrecisionBits,
		},
		Display: DisplaySettings{
			Digits:     DefaultDisplayDigits,
			StackDepth: DefaultStackDepth,
			Color:      DefaultColorMode,
		},
		History: HistorySettings{
			Retention: 0,
		},
		SessionLog: SessionLogSettings{
			Enabled: false,
			Path:    "",
		},
	}
}

// HydrateDefaults fills unset fields so a sparse or older configuration
// file still yields a complete configuration. Zero retention is a valid
// setting (keep everything), so it is left alone.
func (c *Config) HydrateDefaults() {
	if c.Engine.PrecisionBits == 0 {
		c.Engine.PrecisionBits = DefaultPrecisionBits
	}
	if c.Display.Digits == 0 {
		c.Display.Digits = DefaultDisplayDigits
	}
	if c.Display.StackDepth == 0 {
		c.Display.StackDepth = DefaultStackDepth
	}
	if c.Display.Color == "" {
		c.Display.Color = DefaultColorMode
	}
}

// Validate checks every field against its documented bounds.
func (c *Config) Validate() error {
	if c.Engine.PrecisionBits < MinPrecisionBits || c.Engine.PrecisionBits > MaxPrecisionBits {
		return fmt.Errorf("engine.precision_bits must be between %d and %d, got %d",
			MinPrecisionBits, MaxPrecisionBits, c.Engine.PrecisionBits)
	}
	if c.Display.Digits < 1 || c.Display.Digits > MaxDisplayDigits {
		return fmt.Errorf("display.digits must be between 1 and %d, got %d",
			MaxDisplayDigits, c.Display.Digits)
	}
	if c.Display.StackDepth < 1 || c.Display.StackDepth > MaxStackDepth {
		return fmt.Errorf("display.stack_depth must be between 1 and %d, got %d",
			MaxStackDepth, c.Display.StackDepth)
	}
	switch c.Display.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("display.color must be auto, always or never, got %q", c.Display.Color)
	}
	if c.History.Retention < 0 {
		return fmt.Errorf("history.retention must not be negative, got %d", c.History.Retention)
	}
	return nil
}

// GetPrecisionBits returns the engine precision, falling back to the
// default when the field is unset.
func (c *Config) GetPrecisionBits() uint {
	if c.Engine.PrecisionBits <= 0 {
		return DefaultPrecisionBits
	}
	return uint(c.Engine.PrecisionBits)
}

// GetDisplayDigits returns the significant digits for non-integer output.
func (c *Config) GetDisplayDigits() int {
	if c.Display.Digits <= 0 {
		return DefaultDisplayDigits
	}
	return c.Display.Digits
}

// GetStackDepth returns the visible result window size.
func (c *Config) GetStackDepth() int {
	if c.Display.StackDepth <= 0 {
		return DefaultStackDepth
	}
	return c.Display.StackDepth
}

// GetColorMode returns the terminal styling mode.
func (c *Config) GetColorMode() string {
	if c.Display.Color == "" {
		return DefaultColorMode
	}
	return c.Display.Color
}

// IsSessionLogEnabled checks if committed results should be mirrored to
// the persistent session log.
func (c *Config) IsSessionLogEnabled() bool {
	return c.SessionLog.Enabled
}

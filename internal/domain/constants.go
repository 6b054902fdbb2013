package domain

// File permissions constants
const (
	// DirectoryPermissions is the permission for the application directory (rwx------)
	DirectoryPermissions = 0o700
	// SecureFilePermissions is the permission for files written under it (rw-------)
	SecureFilePermissions = 0o600
)

// Application identity constants
const (
	// AppName is the binary name
	AppName = "kalkon"
	// ConfigDirName is the per-user application directory under $HOME
	ConfigDirName = ".kalkon"
	// ConfigFileName is the configuration file inside ConfigDirName
	ConfigFileName = "config.yaml"
	// SessionDBFileName is the SQLite session log inside ConfigDirName
	SessionDBFileName = "sessions.db"
	// ConfigPathEnv overrides the configuration file location
	ConfigPathEnv = "KALKON_CONFIG"
	// DebugEnv enables debug logging when set to "1" or "true"
	DebugEnv = "KALKON_DEBUG"
)

// Engine constants
const (
	// DefaultPrecisionBits is the mantissa precision for all arithmetic
	DefaultPrecisionBits = 128
	// MinPrecisionBits is the smallest accepted precision, the float64 mantissa
	MinPrecisionBits = 53
	// MaxPrecisionBits is the largest precision a configuration may request
	MaxPrecisionBits = 16384
)

// Display constants
const (
	// DefaultDisplayDigits is the number of significant digits for non-integer results
	DefaultDisplayDigits = 12
	// MaxDisplayDigits is the upper bound for display.digits
	MaxDisplayDigits = 100
	// DefaultStackDepth is the number of visible result rows, pending row included
	DefaultStackDepth = 5
	// MaxStackDepth is the upper bound for display.stack_depth
	MaxStackDepth = 100
	// DefaultColorMode decides terminal styling from the environment
	DefaultColorMode = "auto"
)

// Time formats
const (
	// TimestampFormat is the standard timestamp format
	TimestampFormat = "2006-01-02 15:04:05"
)

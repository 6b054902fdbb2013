package domain

// Config mirrors ~/.kalkon/config.yaml. Every leaf can also be set
// through the KALKON_* environment, which wins over the file.
type Config struct {
	Engine     EngineSettings     `yaml:"engine"`
	Display    DisplaySettings    `yaml:"display"`
	History    HistorySettings    `yaml:"history"`
	SessionLog SessionLogSettings `yaml:"session_log"`
}

// EngineSettings configures the expression engine.
type EngineSettings struct {
	PrecisionBits int `yaml:"precision_bits" env:"KALKON_PRECISION_BITS"`
}

// DisplaySettings controls how results are rendered.
type DisplaySettings struct {
	Digits     int    `yaml:"digits" env:"KALKON_DIGITS"`
	StackDepth int    `yaml:"stack_depth" env:"KALKON_STACK_DEPTH"`
	Color      string `yaml:"color" env:"KALKON_COLOR"`
}

// HistorySettings bounds the in-memory history store.
// Retention 0 keeps everything; N keeps the newest N entries.
type HistorySettings struct {
	Retention int `yaml:"retention" env:"KALKON_RETENTION"`
}

// SessionLogSettings configures the persistent session log.
type SessionLogSettings struct {
	Enabled bool   `yaml:"enabled" env:"KALKON_SESSION_LOG"`
	Path    string `yaml:"path" env:"KALKON_SESSION_LOG_PATH"`
}

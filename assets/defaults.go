package assets

import (
	_ "embed"
)

// DefaultConfigYAML contains the embedded default configuration. It is
// written verbatim to ~/.kalkon/config.yaml on first run so the seeded
// file keeps its comments.
//
//go:embed defaults/config.yaml
var DefaultConfigYAML []byte

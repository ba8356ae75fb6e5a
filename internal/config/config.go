package config

import (
	"encoding/json"
	"os"
)

// Config is the top-level configuration loaded from file/env.
type Config struct {
	// BufferDefaults apply to every buffer the runtime creates.
	BufferDefaults BufferDefaults `json:"bufferDefaults"`
	// BufferNameRegex validates names passed to the runtime registry.
	BufferNameRegex string `json:"bufferNameRegex"`
	// MaxBuffers caps how many named buffers a runtime will hold
	// simultaneously. 0 means no cap.
	MaxBuffers int `json:"maxBuffers"`
	// PumpChunkBytes is the read size the CLI pump uses per submit.
	PumpChunkBytes int `json:"pumpChunkBytes"`
	// RateLimitBytesPerSec throttles pump ingress. 0 disables the limiter.
	RateLimitBytesPerSec int64 `json:"rateLimitBytesPerSec"`
	LogLevel             string `json:"logLevel"`
	LogFormat            string `json:"logFormat"`
}

// BufferDefaults captures per-buffer baseline limits. Zero means
// unbounded, matching chunkstore.Options.
type BufferDefaults struct {
	RetentionWindowBytes int64 `json:"retentionWindowBytes"`
	PerReadCapBytes      int64 `json:"perReadCapBytes"`
}

// Default returns built-in defaults.
func Default() Config {
	return Config{
		BufferDefaults:  BufferDefaults{},
		BufferNameRegex: "[a-z0-9-_]{1,64}",
		PumpChunkBytes:  64 << 10,
		LogLevel:        "info",
		LogFormat:       "text",
	}
}

// Load reads configuration from a JSON file, overlaying the defaults. An
// empty path returns the defaults unchanged.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg := Default()
	if err := json.Unmarshal(b, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

package config

import (
	"os"
	"strconv"
)

// FromEnv overlays STREAMBUF_* environment variables onto cfg.
func FromEnv(cfg *Config) {
	if v := os.Getenv("STREAMBUF_RETENTION_WINDOW_BYTES"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n >= 0 {
			cfg.BufferDefaults.RetentionWindowBytes = n
		}
	}
	if v := os.Getenv("STREAMBUF_PER_READ_CAP_BYTES"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n >= 0 {
			cfg.BufferDefaults.PerReadCapBytes = n
		}
	}
	if v := os.Getenv("STREAMBUF_BUFFER_NAME_REGEX"); v != "" {
		cfg.BufferNameRegex = v
	}
	if v := os.Getenv("STREAMBUF_MAX_BUFFERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxBuffers = n
		}
	}
	if v := os.Getenv("STREAMBUF_PUMP_CHUNK_BYTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.PumpChunkBytes = n
		}
	}
	if v := os.Getenv("STREAMBUF_RATE_LIMIT_BYTES_PER_SEC"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n >= 0 {
			cfg.RateLimitBytesPerSec = n
		}
	}
	if v := os.Getenv("STREAMBUF_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("STREAMBUF_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
}

package relay

import (
	"os"
	"strings"
)

// Config holds the runtime settings for the relay server.
type Config struct {
	Addr           string
	AllowedOrigins []string
}

// NewConfigFromEnv builds a Config from environment variables,
// falling back to defaults. ALLOWED_ORIGINS is a comma-separated
// list; "*" allows every origin, which is the dev-mode default.
func NewConfigFromEnv() *Config {
	cfg := &Config{
		Addr:           ":5000",
		AllowedOrigins: []string{"*"},
	}
	if addr := os.Getenv("ADDR"); addr != "" {
		cfg.Addr = addr
	}
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		parts := strings.Split(origins, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		cfg.AllowedOrigins = parts
	}
	return cfg
}

// OriginAllowed reports whether a websocket upgrade from the given
// Origin header may proceed.
func (c *Config) OriginAllowed(origin string) bool {
	// Non-browser clients send no Origin header.
	if origin == "" {
		return true
	}
	for _, allowed := range c.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

package redis

import "time"

// Config holds Redis connection and behavior settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string

	// Pool settings
	PoolSize     int
	MinIdleConns int

	// Connection check settings
	PingAttempts uint
	PingDelay    time.Duration

	// GameTTL expires idle games; zero keeps them forever
	GameTTL time.Duration
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:          "redis://localhost:6379",
		PoolSize:     10,
		MinIdleConns: 2,
		PingAttempts: 5,
		PingDelay:    200 * time.Millisecond,
		GameTTL:      7 * 24 * time.Hour,
	}
}

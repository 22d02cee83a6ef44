package server

import "time"

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API.
	ApiKey string `mapstructure:"api_key" default:""`
	// CacheTTLSeconds is how long loaded snapshots are reused. Zero disables the cache.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" default:"300"`
}

// CacheTTL returns the snapshot cache lifetime. Zero disables the cache.
func (c Config) CacheTTL() time.Duration {
	if c.CacheTTLSeconds <= 0 {
		return 0
	}
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

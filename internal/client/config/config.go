// Package config handles configuration for the CLI client.
package config

// Config holds runtime settings for the ItemVault CLI.
//
// Fields:
//   - ServerEndpointAddr: base URL of the backend HTTP endpoint.
type Config struct {
	ServerEndpointAddr string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "http://localhost:8080"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from environment variables and command-line flags. Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}

package config

import "os"

// parseEnv overlays Config fields from environment variables.
//
// Recognized variables:
//
//	SERVER_ADDRESS  base URL of the backend HTTP endpoint
func parseEnv(config *Config) {
	if v, ok := os.LookupEnv("SERVER_ADDRESS"); ok {
		config.ServerEndpointAddr = v
	}
}

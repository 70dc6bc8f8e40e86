package config

import (
	"os"
	"strconv"
	"time"
)

// parseEnv overlays Config fields from environment variables.
//
// Recognized variables:
//
//	ADDRESS                      HTTP bind address
//	DATABASE_DSN                 PostgreSQL DSN
//	DATABASE_NAME                fallback database name
//	JWT_SECRET                   token signing secret
//	JWT_ALG                      token signing algorithm
//	ACCESS_TOKEN_EXPIRE_MINUTES  token lifetime, minutes
//	CORS_ORIGINS                 comma-separated allowed origins
//	CONNECT_ATTEMPTS             startup connection attempts
//	USER_STORE                   credential backend (memory|postgres)
//
// Unset variables leave the current value untouched; unparsable numeric
// values are ignored the same way.
func parseEnv(config *Config) {
	if v, ok := os.LookupEnv("ADDRESS"); ok {
		config.EndpointAddr = v
	}
	if v, ok := os.LookupEnv("DATABASE_DSN"); ok {
		config.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv("DATABASE_NAME"); ok {
		config.DatabaseName = v
	}
	if v, ok := os.LookupEnv("JWT_SECRET"); ok {
		config.SecretKey = v
	}
	if v, ok := os.LookupEnv("JWT_ALG"); ok {
		config.TokenAlg = v
	}
	if v, ok := os.LookupEnv("ACCESS_TOKEN_EXPIRE_MINUTES"); ok {
		if minutes, err := strconv.Atoi(v); err == nil {
			config.AccessTokenValidityDuration = time.Duration(minutes) * time.Minute
		}
	}
	if v, ok := os.LookupEnv("CORS_ORIGINS"); ok {
		config.CORSOrigins = v
	}
	if v, ok := os.LookupEnv("CONNECT_ATTEMPTS"); ok {
		if attempts, err := strconv.Atoi(v); err == nil {
			config.ConnectAttempts = attempts
		}
	}
	if v, ok := os.LookupEnv("USER_STORE"); ok {
		config.UserStore = v
	}
}

package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/itemvault/internal/flagx"
)

// JsonConfig defines a configuration structure tailored for JSON
// unmarshalling. Duration fields are integers in minutes, matching the flag
// and environment layers.
//
// This struct is an intermediate DTO used only for reading JSON configuration
// files. After unmarshalling, its fields are copied into the runtime Config.
type JsonConfig struct {
	EndpointAddr             string `json:"endpoint_addr"`
	DatabaseDSN              string `json:"database_dsn"`
	DatabaseName             string `json:"database_name"`
	SecretKey                string `json:"secret_key"`
	TokenAlg                 string `json:"token_alg"`
	AccessTokenExpireMinutes int    `json:"access_token_expire_minutes"`
	CORSOrigins              string `json:"cors_origins"`
	ConnectAttempts          int    `json:"connect_attempts"`
	UserStore                string `json:"user_store"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance. The file path comes from the -c or -config flags; when
// neither is set, no JSON file is loaded. An unreadable or invalid file
// panics, since a half-applied config file is worse than none.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	if c.EndpointAddr != "" {
		config.EndpointAddr = c.EndpointAddr
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.DatabaseName != "" {
		config.DatabaseName = c.DatabaseName
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.TokenAlg != "" {
		config.TokenAlg = c.TokenAlg
	}
	if c.AccessTokenExpireMinutes > 0 {
		config.AccessTokenValidityDuration = time.Duration(c.AccessTokenExpireMinutes) * time.Minute
	}
	if c.CORSOrigins != "" {
		config.CORSOrigins = c.CORSOrigins
	}
	if c.ConnectAttempts > 0 {
		config.ConnectAttempts = c.ConnectAttempts
	}
	if c.UserStore != "" {
		config.UserStore = c.UserStore
	}
}

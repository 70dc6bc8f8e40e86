package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/itemvault/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-n string   fallback database name
//	-s string   JWT HMAC secret key
//	-j string   JWT signing algorithm
//	-t int      access token validity, minutes
//	-o string   comma-separated allowed CORS origins
//	-r int      startup connection attempts
//	-u string   user store backend (memory|postgres)
//
// Notes:
//   - The function first filters os.Args to only the flags it recognizes using
//     flagx.FilterArgs, avoiding collisions with other components.
//   - Duration flags are accepted as integers in minutes and then converted
//     to time.Duration values.
func parseFlags(config *Config) {
	// Filter args to include only the flags handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-n", "-s", "-j", "-t", "-o", "-r", "-u"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.DatabaseName, "n", config.DatabaseName, "database name (used when DSN has none)")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.StringVar(&config.TokenAlg, "j", config.TokenAlg, "JWT signing algorithm")

	accessTokenValidityDuration := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access_token_validity_duration (in minutes)")

	fs.StringVar(&config.CORSOrigins, "o", config.CORSOrigins, "allowed CORS origins, comma-separated")
	fs.IntVar(&config.ConnectAttempts, "r", config.ConnectAttempts, "startup connection attempts")
	fs.StringVar(&config.UserStore, "u", config.UserStore, "user store backend (memory|postgres)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.AccessTokenValidityDuration = time.Duration(*accessTokenValidityDuration) * time.Minute
}

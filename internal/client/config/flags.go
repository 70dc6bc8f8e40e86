package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/itemvault/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-s string   base URL of the backend HTTP endpoint
func parseFlags(config *Config) {
	// Filter args to include only the flags handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-s"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.ServerEndpointAddr, "s", config.ServerEndpointAddr, "server endpoint address")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}

package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/interestnet/internal/flagx"
)

// parseFlags populates Config from command-line flags.
//
//	-a string   HTTP bind address (e.g. ":8080")
//	-d string   PostgreSQL DSN
//	-t int      token validity, hours
//	-l string   token lookup mode: "token" or "email"
//	-s          keep a single active token per user
//	-f string   log format: "json", "text" or "logrus"
//
// Only these flags are taken from os.Args; -c is handled by parseJson.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-t", "-l", "-s", "-f"}, "-s")

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	validity := fs.Int("t", int(config.TokenValidityDuration.Hours()), "token validity (in hours)")
	fs.StringVar(&config.TokenLookup, "l", config.TokenLookup, "token lookup mode (token|email)")
	fs.BoolVar(&config.SingleActiveToken, "s", config.SingleActiveToken, "keep a single active token per user")
	fs.StringVar(&config.LogFormat, "f", config.LogFormat, "log format (json|text|logrus)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// only an explicit -t overrides, so sub-hour values from other layers survive
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			config.TokenValidityDuration = time.Duration(*validity) * time.Hour
		}
	})
}

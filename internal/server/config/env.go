package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const envPrefix = "INTERESTNET_"

// envFile is the dotenv file loaded before reading variables. Missing files are ignored.
var envFile = ".env"

// parseEnv overlays INTERESTNET_* variables. Variables already present in the
// process environment win over the .env file. Unparsable numbers and bools
// leave the current value untouched.
//
//	INTERESTNET_ADDR                 bind address
//	INTERESTNET_DATABASE_DSN         PostgreSQL DSN
//	INTERESTNET_TOKEN_VALIDITY       duration, e.g. "336h"
//	INTERESTNET_TOKEN_LOOKUP         "token" or "email"
//	INTERESTNET_SINGLE_ACTIVE_TOKEN  bool
//	INTERESTNET_LOG_FORMAT           "json", "text" or "logrus"
func parseEnv(config *Config) {
	_ = godotenv.Load(envFile)

	if v, ok := lookup("ADDR"); ok {
		config.EndpointAddrHTTP = v
	}
	if v, ok := lookup("DATABASE_DSN"); ok {
		config.DatabaseDSN = v
	}
	if v, ok := lookup("TOKEN_VALIDITY"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			config.TokenValidityDuration = d
		}
	}
	if v, ok := lookup("TOKEN_LOOKUP"); ok {
		config.TokenLookup = v
	}
	if v, ok := lookup("SINGLE_ACTIVE_TOKEN"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			config.SingleActiveToken = b
		}
	}
	if v, ok := lookup("LOG_FORMAT"); ok {
		config.LogFormat = v
	}
}

func lookup(name string) (string, bool) {
	v, ok := os.LookupEnv(envPrefix + name)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

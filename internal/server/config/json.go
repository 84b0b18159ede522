package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/interestnet/internal/flagx"
	"github.com/dmitrijs2005/interestnet/internal/timex"
)

// JsonConfig is the on-disk shape of the JSON config file. Pointer fields
// distinguish "absent" from zero values, so a partial file only overrides
// what it names.
type JsonConfig struct {
	EndpointAddrHTTP      *string         `json:"endpoint_addr_http"`
	DatabaseDSN           *string         `json:"database_dsn"`
	TokenValidityDuration *timex.Duration `json:"token_validity_duration"`
	TokenLookup           *string         `json:"token_lookup"`
	SingleActiveToken     *bool           `json:"single_active_token"`
	LogFormat             *string         `json:"log_format"`
}

// parseJson loads the file named by -c/-config into config. Without the flag
// nothing happens. Unreadable files and invalid JSON panic.
func parseJson(config *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.EndpointAddrHTTP != nil {
		config.EndpointAddrHTTP = *c.EndpointAddrHTTP
	}
	if c.DatabaseDSN != nil {
		config.DatabaseDSN = *c.DatabaseDSN
	}
	if c.TokenValidityDuration != nil {
		config.TokenValidityDuration = c.TokenValidityDuration.Duration
	}
	if c.TokenLookup != nil {
		config.TokenLookup = *c.TokenLookup
	}
	if c.SingleActiveToken != nil {
		config.SingleActiveToken = *c.SingleActiveToken
	}
	if c.LogFormat != nil {
		config.LogFormat = *c.LogFormat
	}
}

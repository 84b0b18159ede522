// Package config loads runtime configuration for the interestnet CLI.
//
// Values are applied in order, later sources winning:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Command-line flags.
//
// Flags:
//
//	-a string   base URL of the HTTP API, e.g. "http://localhost:8080"
//	-r int      per-request timeout, seconds
//
// JSON durations accept either "10s" strings or integer nanoseconds:
//
//	{
//	  "server_endpoint_addr": "http://localhost:8080",
//	  "request_timeout": "10s"
//	}
package config

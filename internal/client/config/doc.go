// Package config loads runtime configuration for the netconfctl client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   address:port of the netconfd gRPC endpoint
//	-n string   user name to mint a token for
//	-s string   shared secret key
//	-k string   pre-issued access token
//	-target     delete-config target (startup|url)
//	-url        resource locator for the url target
//	-w int      request timeout (seconds)
//
// # JSON schema
//
// Durations use timex.Duration, so values can be strings like "30s" or
// integer nanoseconds:
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "username": "admin",
//	  "secret_key": "secretKey",
//	  "target": "startup",
//	  "request_timeout": "30s"
//	}
package config

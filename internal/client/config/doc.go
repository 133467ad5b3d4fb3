// Package config loads runtime configuration for the Couple Diaries client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. COUPLEDIARIES_CLIENT_* environment variables.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   address:port of the backend gRPC endpoint
//	-d string   data directory (sqlite database, card photos)
//	-w string   OpenWeatherMap API key; empty disables weather lookup
//	-l string   log level
//
// # JSON schema
//
// Durations accept Go duration strings or integer nanoseconds:
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "data_dir": "~/.couplediaries",
//	  "verification_poll_interval": "3s",
//	  "guard_cooldown": "2s",
//	  "countdown_interval": "1m"
//	}
package config

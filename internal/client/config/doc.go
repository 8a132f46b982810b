// Package config loads runtime configuration for the CallSecure CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-s string   storage driver: sqlite (default), postgres or memory
//	-d string   database DSN
//	-p string   data directory
//	-w int      success delay (milliseconds)
//	-l string   log level
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the success delay, so it can be
// either a string like "2s" or integer nanoseconds:
//
//	{
//	  "storage_driver": "sqlite",
//	  "database_dsn": "callsecure.db",
//	  "data_dir": ".callsecure",
//	  "success_delay": "2s",
//	  "log_level": "info"
//	}
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config

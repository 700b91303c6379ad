// Package config loads runtime configuration for the deepneumoscan CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables, optionally from a .env file (see parseEnv).
//  3. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   backend base URL
//	-t int      request timeout (seconds)
//	-d string   local database file
//	-l string   log level
//
// Environment
//
//	DEEPNEUMOSCAN_BACKEND_URL, DEEPNEUMOSCAN_REQUEST_TIMEOUT,
//	DEEPNEUMOSCAN_DB, DEEPNEUMOSCAN_LOG_LEVEL
//
// # JSON schema
//
//	{
//	  "backend_url": "http://127.0.0.1:8000",
//	  "request_timeout": "20s",
//	  "database_path": "deepneumoscan.db",
//	  "log_level": "warn",
//	  "default_language": "en"
//	}
//
// Invalid values in any source panic at start-up.
package config

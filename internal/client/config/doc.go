// Package config loads runtime configuration for the gym console.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Environment variables prefixed GYMADMIN_, optionally read from a
//     .env file in the working directory. Real variables win over .env.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string      base URL of the gym API
//	-t duration    request timeout
//	-i int         online status check interval (seconds)
//	-db string     session database path
//	-scope string  session scope (defaults to the parent shell)
//	-page-size int default rows per page of the customers screen
//	-log-level string, -log-format string, -log-file string
//
// # JSON schema
//
// Durations use timex.Duration, so they may be strings like "15s" or
// integer nanoseconds:
//
//	{
//	  "api_url": "https://api.powergym.co",
//	  "request_timeout": "15s",
//	  "health_interval": "5s",
//	  "session_db": "/home/ana/.local/state/gymadmin/session.db",
//	  "session_retention": "12h",
//	  "page_size": 25,
//	  "max_upload_bytes": 5242880,
//	  "log_level": "info",
//	  "log_format": "json",
//	  "s3_region": "us-east-1",
//	  "s3_endpoint": "http://127.0.0.1:9000"
//	}
package config

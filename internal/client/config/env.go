package config

import (
	"fmt"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment variable the console reads.
const EnvPrefix = "GYMADMIN_"

// DotenvFile is read, when present, as a fallback for unset variables.
var DotenvFile = ".env"

type lookupFunc func(key string) (string, bool)

// dotenvLookup resolves keys from the process environment first and from
// the dotenv file second. A missing or unreadable file is ignored.
func dotenvLookup(path string, env lookupFunc) lookupFunc {
	file, err := godotenv.Read(path)
	if err != nil {
		file = nil
	}
	return func(key string) (string, bool) {
		if v, ok := env(key); ok {
			return v, true
		}
		v, ok := file[key]
		return v, ok
	}
}

// parseEnv overlays cfg with GYMADMIN_* variables.
func parseEnv(cfg *Config, lookup lookupFunc) error {
	get := func(name string) (string, bool) {
		v, ok := lookup(EnvPrefix + name)
		return v, ok && v != ""
	}

	strs := map[string]*string{
		"API_URL":       &cfg.APIURL,
		"SESSION_DB":    &cfg.SessionDB,
		"SESSION_SCOPE": &cfg.SessionScope,
		"LOG_LEVEL":     &cfg.LogLevel,
		"LOG_FORMAT":    &cfg.LogFormat,
		"LOG_FILE":      &cfg.LogFile,
		"S3_REGION":     &cfg.S3Region,
		"S3_ENDPOINT":   &cfg.S3Endpoint,
		"S3_ACCESS_KEY": &cfg.S3AccessKey,
		"S3_SECRET_KEY": &cfg.S3SecretKey,
	}
	for name, dst := range strs {
		if v, ok := get(name); ok {
			*dst = v
		}
	}

	durations := map[string]*time.Duration{
		"REQUEST_TIMEOUT":   &cfg.RequestTimeout,
		"HEALTH_INTERVAL":   &cfg.HealthInterval,
		"SESSION_RETENTION": &cfg.SessionRetention,
	}
	for name, dst := range durations {
		if v, ok := get(name); ok {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("%s%s: %w", EnvPrefix, name, err)
			}
			*dst = d
		}
	}

	if v, ok := get("PAGE_SIZE"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sPAGE_SIZE: %w", EnvPrefix, err)
		}
		cfg.PageSize = n
	}
	if v, ok := get("MAX_UPLOAD_BYTES"); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%sMAX_UPLOAD_BYTES: %w", EnvPrefix, err)
		}
		cfg.MaxUploadBytes = n
	}
	return nil
}

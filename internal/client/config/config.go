package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sabastianrafa/powergym-ag-system/internal/client/listing"
	"github.com/sabastianrafa/powergym-ag-system/internal/filex"
)

// Config holds runtime settings for the gym console.
type Config struct {
	APIURL         string
	RequestTimeout time.Duration
	HealthInterval time.Duration

	SessionDB        string
	SessionScope     string
	SessionRetention time.Duration

	PageSize       int
	MaxUploadBytes int64

	LogLevel  string
	LogFormat string
	// LogFile receives the console logs; empty means stderr.
	LogFile string

	S3Region    string
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	state := filex.DefaultStateDir()

	c.APIURL = "http://localhost:8000"
	c.RequestTimeout = 15 * time.Second
	c.HealthInterval = 5 * time.Second
	c.SessionDB = filepath.Join(state, "session.db")
	c.SessionScope = ""
	c.SessionRetention = 12 * time.Hour
	c.PageSize = listing.DefaultPageSize
	c.MaxUploadBytes = 5 << 20
	c.LogLevel = "info"
	c.LogFormat = "text"
	c.LogFile = filepath.Join(state, "console.log")
	c.S3Region = "us-east-1"
}

// Validate reports settings the console cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.APIURL == "" {
		errs = append(errs, errors.New("api url is required"))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout))
	}
	if c.HealthInterval <= 0 {
		errs = append(errs, fmt.Errorf("health interval must be positive, got %s", c.HealthInterval))
	}
	if c.SessionDB == "" {
		errs = append(errs, errors.New("session db path is required"))
	}
	if c.SessionRetention <= 0 {
		errs = append(errs, fmt.Errorf("session retention must be positive, got %s", c.SessionRetention))
	}
	if !listing.ValidPageSize(c.PageSize) {
		errs = append(errs, fmt.Errorf("page size must be one of %v, got %d", listing.PageSizes, c.PageSize))
	}
	if c.MaxUploadBytes <= 0 {
		errs = append(errs, fmt.Errorf("max upload size must be positive, got %d", c.MaxUploadBytes))
	}
	return errors.Join(errs...)
}

// LoadConfig builds a Config from defaults, the JSON file, the environment
// and args (os.Args[1:] in production). Later sources take precedence.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg, dotenvLookup(DotenvFile, os.LookupEnv)); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

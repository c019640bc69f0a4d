package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sabastianrafa/powergym-ag-system/internal/flagx"
	"github.com/sabastianrafa/powergym-ag-system/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Absent or
// zero fields leave the current value untouched.
type JsonConfig struct {
	APIURL           string         `json:"api_url"`
	RequestTimeout   timex.Duration `json:"request_timeout"`
	HealthInterval   timex.Duration `json:"health_interval"`
	SessionDB        string         `json:"session_db"`
	SessionScope     string         `json:"session_scope"`
	SessionRetention timex.Duration `json:"session_retention"`
	PageSize         int            `json:"page_size"`
	MaxUploadBytes   int64          `json:"max_upload_bytes"`
	LogLevel         string         `json:"log_level"`
	LogFormat        string         `json:"log_format"`
	LogFile          string         `json:"log_file"`
	S3Region         string         `json:"s3_region"`
	S3Endpoint       string         `json:"s3_endpoint"`
	S3AccessKey      string         `json:"s3_access_key"`
	S3SecretKey      string         `json:"s3_secret_key"`
}

// parseJson overlays cfg with the JSON file named by -c/-config in args.
// Without such a flag it does nothing.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	setString(&cfg.APIURL, jc.APIURL)
	setDuration(&cfg.RequestTimeout, jc.RequestTimeout)
	setDuration(&cfg.HealthInterval, jc.HealthInterval)
	setString(&cfg.SessionDB, jc.SessionDB)
	setString(&cfg.SessionScope, jc.SessionScope)
	setDuration(&cfg.SessionRetention, jc.SessionRetention)
	if jc.PageSize != 0 {
		cfg.PageSize = jc.PageSize
	}
	if jc.MaxUploadBytes != 0 {
		cfg.MaxUploadBytes = jc.MaxUploadBytes
	}
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.LogFormat, jc.LogFormat)
	setString(&cfg.LogFile, jc.LogFile)
	setString(&cfg.S3Region, jc.S3Region)
	setString(&cfg.S3Endpoint, jc.S3Endpoint)
	setString(&cfg.S3AccessKey, jc.S3AccessKey)
	setString(&cfg.S3SecretKey, jc.S3SecretKey)
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v timex.Duration) {
	if v.Duration != 0 {
		*dst = v.Duration
	}
}

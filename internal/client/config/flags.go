package config

import (
	"flag"
	"io"
	"time"

	"github.com/sabastianrafa/powergym-ag-system/internal/flagx"
)

var ownFlags = []string{
	"-a", "-t", "-i", "-db", "-scope", "-page-size",
	"-log-level", "-log-format", "-log-file",
}

// parseFlags overlays cfg with the flags it owns. Other flags in args are
// skipped, using flagx.Pick, so they never cause parse errors here.
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("gymadmin", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.APIURL, "a", cfg.APIURL, "base URL of the gym API")
	fs.DurationVar(&cfg.RequestTimeout, "t", cfg.RequestTimeout, "request timeout")
	healthInterval := fs.Int("i", int(cfg.HealthInterval.Seconds()), "online check interval (in seconds)")
	fs.StringVar(&cfg.SessionDB, "db", cfg.SessionDB, "session database path")
	fs.StringVar(&cfg.SessionScope, "scope", cfg.SessionScope, "session scope")
	fs.IntVar(&cfg.PageSize, "page-size", cfg.PageSize, "default rows per page")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format: text, json or zap")
	fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "log file, empty for stderr")

	if err := fs.Parse(flagx.Pick(args, ownFlags...)); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "i" {
			cfg.HealthInterval = time.Duration(*healthInterval) * time.Second
		}
	})
	return nil
}

// Package config holds runtime settings for the fleet client and loads them
// from defaults, an optional JSON file, and command-line flags, in that
// order. Later sources take precedence over earlier ones.
package config

import (
	"flag"
	"os"
	"time"
)

// Config holds runtime settings for the fleetcli binary.
//
// Fields:
//   - BaseURL: scheme://host:port of the fleet API.
//   - RequestTimeout: client-side deadline applied to every API call.
//   - SessionDBPath: sqlite file the session is persisted in.
//   - LogFile: structured log destination (the TUI owns stdout).
//   - LeaseWarnDays: window for the lease-ending-soon view and badge.
type Config struct {
	BaseURL        string
	RequestTimeout time.Duration
	SessionDBPath  string
	LogFile        string
	LeaseWarnDays  int
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "http://127.0.0.1:8080"
	c.RequestTimeout = 10 * time.Second
	c.SessionDBPath = "fleet.db"
	c.LogFile = "fleetcli.log"
	c.LeaseWarnDays = 30
}

// LoadConfig constructs a Config from os.Args.
func LoadConfig() (*Config, error) {
	return load(os.Args[1:])
}

// load applies defaults, then the JSON file named by -c/-config (if any),
// then explicitly passed flags.
func load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	fs := flag.NewFlagSet("fleetcli", flag.ContinueOnError)

	var configPath string
	fs.StringVar(&configPath, "c", "", "path to JSON config file")
	fs.StringVar(&configPath, "config", "", "path to JSON config file")

	baseURL := fs.String("a", cfg.BaseURL, "base URL of the fleet API")
	timeoutSec := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	dbPath := fs.String("d", cfg.SessionDBPath, "path to the local session database")
	logFile := fs.String("l", cfg.LogFile, "path to the log file")
	warnDays := fs.Int("w", cfg.LeaseWarnDays, "lease warning window (in days)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if configPath != "" {
		if err := applyJSON(cfg, configPath); err != nil {
			return nil, err
		}
	}

	// Flags the user actually passed win over the JSON file.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "a":
			cfg.BaseURL = *baseURL
		case "t":
			cfg.RequestTimeout = time.Duration(*timeoutSec) * time.Second
		case "d":
			cfg.SessionDBPath = *dbPath
		case "l":
			cfg.LogFile = *logFile
		case "w":
			cfg.LeaseWarnDays = *warnDays
		}
	})

	return cfg, nil
}

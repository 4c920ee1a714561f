// Package config loads screenctl settings.
//
// Precedence (highest to lowest):
//  1. Environment variables (SCREENCTL_*, OTEL_EXPORTER_OTLP_*)
//  2. Config file (~/.config/screenctl/config.yaml or --config)
//  3. Built-in defaults
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Screen  string `yaml:"screen"`   // screen binary name or path
	Shell   string `yaml:"shell"`    // shell that runs command lines
	Refresh string `yaml:"refresh"`  // TUI poll interval, Go duration; "0"/"off" disables
	LogFile string `yaml:"log_file"` // empty means the XDG state dir

	DesktopNotifications bool `yaml:"desktop_notifications"`

	OTELEndpoint string `yaml:"otel_endpoint"`
	OTELHeaders  string `yaml:"otel_headers"`

	RefreshDuration time.Duration `yaml:"-"`

	// ConfigFile is the file that was loaded, empty if none.
	ConfigFile string `yaml:"-"`
}

// Defaults returns a Config with all default values.
func Defaults() *Config {
	return &Config{
		Screen:  "screen",
		Shell:   "/bin/sh",
		Refresh: "5s",
	}
}

// DefaultPath returns ~/.config/screenctl/config.yaml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "screenctl", "config.yaml")
}

// Load reads the config file at path (DefaultPath when empty) and applies
// environment overrides. A missing default file is not an error; a missing
// explicit path is.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			var fileCfg Config
			if err := yaml.Unmarshal(data, &fileCfg); err != nil {
				return nil, fmt.Errorf("parsing config file %s: %w", path, err)
			}
			cfg.ConfigFile = path
			mergeFile(cfg, &fileCfg)
		case os.IsNotExist(err) && !explicit:
		default:
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	mergeEnv(cfg)

	cfg.Screen = expandHome(cfg.Screen)
	cfg.LogFile = expandHome(cfg.LogFile)

	var err error
	cfg.RefreshDuration, err = parseDurationOrDisable(cfg.Refresh, 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh interval %q: %w", cfg.Refresh, err)
	}

	return cfg, nil
}

// mergeFile applies non-zero file values onto cfg.
func mergeFile(cfg *Config, file *Config) {
	if file.Screen != "" {
		cfg.Screen = file.Screen
	}
	if file.Shell != "" {
		cfg.Shell = file.Shell
	}
	if file.Refresh != "" {
		cfg.Refresh = file.Refresh
	}
	if file.LogFile != "" {
		cfg.LogFile = file.LogFile
	}
	if file.DesktopNotifications {
		cfg.DesktopNotifications = true
	}
	if file.OTELEndpoint != "" {
		cfg.OTELEndpoint = file.OTELEndpoint
	}
	if file.OTELHeaders != "" {
		cfg.OTELHeaders = file.OTELHeaders
	}
}

// mergeEnv applies environment variables onto cfg. Env always wins.
func mergeEnv(cfg *Config) {
	if v := os.Getenv("SCREENCTL_SCREEN"); v != "" {
		cfg.Screen = v
	}
	if v := os.Getenv("SCREENCTL_SHELL"); v != "" {
		cfg.Shell = v
	}
	if v := os.Getenv("SCREENCTL_REFRESH"); v != "" {
		cfg.Refresh = v
	}
	if v := os.Getenv("SCREENCTL_LOG"); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv("SCREENCTL_DESKTOP_NOTIFICATIONS"); v == "true" || v == "1" {
		cfg.DesktopNotifications = true
	}
	if v := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); v != "" {
		cfg.OTELEndpoint = v
	}
	if v := os.Getenv("OTEL_EXPORTER_OTLP_HEADERS"); v != "" {
		cfg.OTELHeaders = v
	}
}

// parseDurationOrDisable parses a duration string. "0", "off" and "disable"
// return 0; an empty string returns fallback.
func parseDurationOrDisable(s string, fallback time.Duration) (time.Duration, error) {
	if s == "" {
		return fallback, nil
	}
	if s == "0" || s == "off" || s == "disable" {
		return 0, nil
	}
	return time.ParseDuration(s)
}

// expandHome expands a leading ~ to the home directory.
func expandHome(p string) string {
	if len(p) == 0 || p[0] != '~' {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, p[1:])
}

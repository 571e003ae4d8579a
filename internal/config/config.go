package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"connectivity-monitor/internal/models"
)

// Probe kinds
const (
	ProbeExec = "exec"
	ProbeICMP = "icmp"
)

// Config holds all configuration for the connectivity monitor
type Config struct {
	Target           string        `yaml:"target"`
	PingInterval     time.Duration `yaml:"ping_interval"`
	PingTimeout      time.Duration `yaml:"ping_timeout"`
	SpeedInterval    time.Duration `yaml:"speed_interval"`
	SpeedURL         string        `yaml:"speed_url"`
	SpeedBytes       int64         `yaml:"speed_bytes"`
	SpeedDuration    time.Duration `yaml:"speed_duration"`
	SpeedTimeout     time.Duration `yaml:"speed_timeout"`
	FailureThreshold int           `yaml:"failure_threshold"`
	Probe            string        `yaml:"probe"`
	Privileged       bool          `yaml:"privileged"`
	SessionsDir      string        `yaml:"sessions_dir"`
	ArchivePath      string        `yaml:"archive_path"`
	Retention        time.Duration `yaml:"retention"`
	ReportDir        string        `yaml:"report_dir"`
	Port             int           `yaml:"port"`
	Duration         time.Duration `yaml:"duration"`
}

// Default returns the configuration used when nothing else is given
func Default() Config {
	return Config{
		Target:           "1.1.1.1",
		PingInterval:     1 * time.Second,
		PingTimeout:      1 * time.Second,
		SpeedInterval:    30 * time.Second,
		SpeedBytes:       512 * 1024,
		SpeedTimeout:     10 * time.Second,
		FailureThreshold: 3,
		Probe:            ProbeExec,
		Retention:        30 * 24 * time.Hour,
	}
}

// Load reads a YAML configuration file on top of the defaults. An empty path
// returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Normalize clamps values that have a documented minimum
func (c *Config) Normalize() {
	if c.FailureThreshold < 1 {
		c.FailureThreshold = 1
	}
	if c.SpeedDuration > 0 && c.SpeedDuration < 100*time.Millisecond {
		c.SpeedDuration = 100 * time.Millisecond
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Target == "" {
		return errors.New("target must be specified")
	}
	if c.PingInterval <= 0 {
		return errors.New("ping interval must be positive")
	}
	if c.PingTimeout <= 0 {
		return errors.New("ping timeout must be positive")
	}
	if c.SpeedURL != "" {
		if c.SpeedInterval <= 0 {
			return errors.New("speed interval must be positive")
		}
		if c.SpeedTimeout <= 0 {
			return errors.New("speed timeout must be positive")
		}
		if c.SpeedDuration < 0 {
			return errors.New("speed duration cannot be negative")
		}
		if c.SpeedDuration == 0 && c.SpeedBytes <= 0 {
			return errors.New("speed bytes must be positive when no speed duration is set")
		}
	}
	if c.Probe != ProbeExec && c.Probe != ProbeICMP {
		return fmt.Errorf("unknown probe %q (want %s or %s)", c.Probe, ProbeExec, ProbeICMP)
	}
	if c.Port < 0 || c.Port > 65535 {
		return errors.New("port must be between 0 and 65535")
	}
	if c.Duration < 0 {
		return errors.New("duration cannot be negative")
	}
	return nil
}

// Budget returns the transfer budget for one throughput probe
func (c *Config) Budget() models.TransferBudget {
	return models.TransferBudget{
		Bytes:    c.SpeedBytes,
		Duration: c.SpeedDuration,
	}
}

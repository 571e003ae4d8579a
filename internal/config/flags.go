package config

import (
	"flag"
	"io"
)

// ParseFlags parses command-line flags and returns a Config. When -config
// names a YAML file its values replace the defaults and explicit flags still
// take precedence.
func ParseFlags(args []string) (Config, error) {
	cfg := Default()
	path, err := parseInto(&cfg, args)
	if err != nil {
		return Config{}, err
	}
	if path == "" {
		return cfg, nil
	}

	cfg, err = Load(path)
	if err != nil {
		return Config{}, err
	}
	if _, err := parseInto(&cfg, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func parseInto(cfg *Config, args []string) (string, error) {
	fs := flag.NewFlagSet("monitor", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var path string
	fs.StringVar(&path, "config", "", "Path to a YAML configuration file")
	fs.StringVar(&cfg.Target, "target", cfg.Target, "Host or IP to ping")
	fs.DurationVar(&cfg.PingInterval, "interval", cfg.PingInterval, "Ping interval")
	fs.DurationVar(&cfg.PingTimeout, "timeout", cfg.PingTimeout, "Ping timeout")
	fs.DurationVar(&cfg.SpeedInterval, "speed-interval", cfg.SpeedInterval, "Speed check interval")
	fs.StringVar(&cfg.SpeedURL, "speed-url", cfg.SpeedURL, "Download URL for speed checks (empty disables them)")
	fs.Int64Var(&cfg.SpeedBytes, "speed-bytes", cfg.SpeedBytes, "Bytes to download per speed check")
	fs.DurationVar(&cfg.SpeedDuration, "speed-duration", cfg.SpeedDuration, "Time-boxed speed check length (0 uses -speed-bytes)")
	fs.DurationVar(&cfg.SpeedTimeout, "speed-timeout", cfg.SpeedTimeout, "Connection and stall timeout for speed checks")
	fs.IntVar(&cfg.FailureThreshold, "threshold", cfg.FailureThreshold, "Consecutive failures before an outage is recorded")
	fs.StringVar(&cfg.Probe, "probe", cfg.Probe, "Probe implementation: exec or icmp")
	fs.BoolVar(&cfg.Privileged, "privileged", cfg.Privileged, "Use raw ICMP sockets with -probe icmp")
	fs.StringVar(&cfg.SessionsDir, "sessions", cfg.SessionsDir, "Session directory (default: platform data directory)")
	fs.StringVar(&cfg.ArchivePath, "db", cfg.ArchivePath, "SQLite archive path (empty disables the archive)")
	fs.DurationVar(&cfg.Retention, "retention", cfg.Retention, "Keep raw samples in the archive for this long")
	fs.StringVar(&cfg.ReportDir, "report", cfg.ReportDir, "Write a chart report for the session into this directory")
	fs.IntVar(&cfg.Port, "port", cfg.Port, "Web server port (0 disables it)")
	fs.DurationVar(&cfg.Duration, "duration", cfg.Duration, "Stop automatically after this long (0 runs until interrupted)")

	if err := fs.Parse(args); err != nil {
		return "", err
	}
	return path, nil
}

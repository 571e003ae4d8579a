package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(c *Config) {}},
		{name: "empty target", mutate: func(c *Config) { c.Target = "" }, wantErr: true},
		{name: "zero interval", mutate: func(c *Config) { c.PingInterval = 0 }, wantErr: true},
		{name: "negative timeout", mutate: func(c *Config) { c.PingTimeout = -time.Second }, wantErr: true},
		{name: "unknown probe", mutate: func(c *Config) { c.Probe = "tcp" }, wantErr: true},
		{name: "bad port", mutate: func(c *Config) { c.Port = 70000 }, wantErr: true},
		{
			name: "speed without budget",
			mutate: func(c *Config) {
				c.SpeedURL = "http://example.com/blob"
				c.SpeedBytes = 0
			},
			wantErr: true,
		},
		{
			name: "time-boxed speed",
			mutate: func(c *Config) {
				c.SpeedURL = "http://example.com/blob"
				c.SpeedBytes = 0
				c.SpeedDuration = 5 * time.Second
			},
		},
		{
			name: "speed interval ignored when disabled",
			mutate: func(c *Config) {
				c.SpeedInterval = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNormalizeClampsThreshold(t *testing.T) {
	for _, in := range []int{-4, 0, 1} {
		cfg := Default()
		cfg.FailureThreshold = in
		cfg.Normalize()
		if cfg.FailureThreshold != 1 {
			t.Errorf("threshold %d normalized to %d, want 1", in, cfg.FailureThreshold)
		}
	}

	cfg := Default()
	cfg.SpeedDuration = time.Millisecond
	cfg.Normalize()
	if cfg.SpeedDuration != 100*time.Millisecond {
		t.Errorf("speed duration = %v, want 100ms", cfg.SpeedDuration)
	}
}

func TestParseFlags(t *testing.T) {
	cfg, err := ParseFlags([]string{"-target", "8.8.8.8", "-interval", "2s", "-threshold", "5"})
	if err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	if cfg.Target != "8.8.8.8" {
		t.Errorf("target = %q", cfg.Target)
	}
	if cfg.PingInterval != 2*time.Second {
		t.Errorf("interval = %v", cfg.PingInterval)
	}
	if cfg.FailureThreshold != 5 {
		t.Errorf("threshold = %d", cfg.FailureThreshold)
	}
	if cfg.PingTimeout != Default().PingTimeout {
		t.Errorf("timeout = %v, want default", cfg.PingTimeout)
	}
}

func TestParseFlagsRejectsMalformedDuration(t *testing.T) {
	if _, err := ParseFlags([]string{"-interval", "often"}); err == nil {
		t.Fatal("expected error for non-numeric interval")
	}
}

func TestParseFlagsWithConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "monitor.yaml")
	content := `
target: 9.9.9.9
ping_interval: 3s
speed_url: http://speed.example/blob
speed_duration: 10s
failure_threshold: 4
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := ParseFlags([]string{"-config", path, "-threshold", "2"})
	if err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	if cfg.Target != "9.9.9.9" {
		t.Errorf("target = %q, want value from file", cfg.Target)
	}
	if cfg.PingInterval != 3*time.Second {
		t.Errorf("interval = %v", cfg.PingInterval)
	}
	if cfg.SpeedDuration != 10*time.Second {
		t.Errorf("speed duration = %v", cfg.SpeedDuration)
	}
	if cfg.FailureThreshold != 2 {
		t.Errorf("threshold = %d, want flag to override file", cfg.FailureThreshold)
	}
	if cfg.SpeedBytes != Default().SpeedBytes {
		t.Errorf("speed bytes = %d, want default", cfg.SpeedBytes)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

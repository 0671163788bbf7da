package config

import (
	"testing"
	"time"
)

func TestGetEnvAsList(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  []string
	}{
		{"comma separated", "person,car,dog", []string{"person", "car", "dog"}},
		{"semicolon separated", "person;car", []string{"person", "car"}},
		{"padded entries", " person , car ", []string{"person", "car"}},
		{"empty entries skipped", "person,,car,", []string{"person", "car"}},
		{"empty value", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_LIST", tt.value)
			got := getEnvAsList("TEST_LIST", "")
			if len(got) != len(tt.want) {
				t.Fatalf("getEnvAsList(%q) = %v, want %v", tt.value, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("getEnvAsList(%q)[%d] = %q, want %q", tt.value, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.ConfidenceThreshold != 0.5 {
		t.Errorf("ConfidenceThreshold = %v, want 0.5", cfg.ConfidenceThreshold)
	}
	if cfg.DwellThreshold != 2*time.Second {
		t.Errorf("DwellThreshold = %v, want 2s", cfg.DwellThreshold)
	}
	if cfg.RateLimitWindow != 60*time.Second {
		t.Errorf("RateLimitWindow = %v, want 60s", cfg.RateLimitWindow)
	}
	if cfg.ZoneMargin != 50 {
		t.Errorf("ZoneMargin = %v, want 50", cfg.ZoneMargin)
	}
	if len(cfg.AlertClasses) != 1 || cfg.AlertClasses[0] != "person" {
		t.Errorf("AlertClasses = %v, want [person]", cfg.AlertClasses)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DWELL_THRESHOLD_MS", "5000")
	t.Setenv("ALERT_CLASSES", "person;dog")
	t.Setenv("EMAIL_ENABLED", "true")

	cfg := Load()

	if cfg.DwellThreshold != 5*time.Second {
		t.Errorf("DwellThreshold = %v, want 5s", cfg.DwellThreshold)
	}
	if len(cfg.AlertClasses) != 2 {
		t.Errorf("AlertClasses = %v, want [person dog]", cfg.AlertClasses)
	}
	if !cfg.EmailEnabled {
		t.Error("EmailEnabled = false, want true")
	}
}

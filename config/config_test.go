package config

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}

	if cfg.Pasture.MaxGrazers != 7 {
		t.Errorf("MaxGrazers = %d, want 7", cfg.Pasture.MaxGrazers)
	}
	if cfg.Physics.Gravity != 0.4 {
		t.Errorf("Gravity = %v, want 0.4", cfg.Physics.Gravity)
	}
	if cfg.Behavior.Day.SpeedMultiplier <= cfg.Behavior.Night.SpeedMultiplier {
		t.Errorf("day speed %v should exceed night speed %v",
			cfg.Behavior.Day.SpeedMultiplier, cfg.Behavior.Night.SpeedMultiplier)
	}
	if cfg.Clock.RefreshTicks != 180 {
		t.Errorf("RefreshTicks = %d, want 180", cfg.Clock.RefreshTicks)
	}
}

func TestComputeDerived(t *testing.T) {
	cfg := Default()

	if got, want := cfg.Derived.GroundY, 375.0; got != want {
		t.Errorf("GroundY = %v, want %v", got, want)
	}
	if got, want := cfg.Derived.BaseY, 290.0; got != want {
		t.Errorf("BaseY = %v, want %v", got, want)
	}
	if got, want := cfg.Derived.MinX, 20.0; got != want {
		t.Errorf("MinX = %v, want %v", got, want)
	}
	if got, want := cfg.Derived.MaxX, 700.0; got != want {
		t.Errorf("MaxX = %v, want %v", got, want)
	}
}

func TestLoadMergesUserFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pasture.yaml")
	data := []byte("pasture:\n  max_grazers: 3\nbehavior:\n  night:\n    speed_multiplier: 0.25\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Pasture.MaxGrazers != 3 {
		t.Errorf("MaxGrazers = %d, want 3", cfg.Pasture.MaxGrazers)
	}
	if cfg.Behavior.Night.SpeedMultiplier != 0.25 {
		t.Errorf("night SpeedMultiplier = %v, want 0.25", cfg.Behavior.Night.SpeedMultiplier)
	}
	// Untouched keys keep their defaults
	if cfg.Pasture.InitialGrazers != 1 {
		t.Errorf("InitialGrazers = %d, want default 1", cfg.Pasture.InitialGrazers)
	}
	if cfg.Behavior.Night.AnimPeriod != 50 {
		t.Errorf("night AnimPeriod = %d, want default 50", cfg.Behavior.Night.AnimPeriod)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"zero width", "screen:\n  width: 0\n"},
		{"ground fraction", "pasture:\n  ground_fraction: 1.5\n"},
		{"narrow screen", "screen:\n  width: 100\n"},
		{"grass spacing", "grass:\n  spacing: 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Errorf("Load accepted %q", tt.yaml)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestRangeDraw(t *testing.T) {
	r := Range{Min: 120, Span: 300}
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 1000; i++ {
		v := r.Draw(rng)
		if v < r.Min || v >= r.Max() {
			t.Fatalf("Draw = %v, outside [%v, %v)", v, r.Min, r.Max())
		}
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Pasture.MaxGrazers = 5
	path := filepath.Join(t.TempDir(), "snapshot.yaml")

	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML error: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load snapshot error: %v", err)
	}
	if loaded.Pasture.MaxGrazers != 5 {
		t.Errorf("MaxGrazers = %d, want 5", loaded.Pasture.MaxGrazers)
	}
}

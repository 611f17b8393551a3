package config

import (
	"path/filepath"
	"testing"
)

func TestMergeRespectsExplicitFlags(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RenderDistance = 12 // set via flag
	cfg.Seed = 99           // set via flag

	fromFile := DefaultConfig()
	fromFile.RenderDistance = 4
	fromFile.Seed = 1
	fromFile.GeneratorType = "flat"
	fromFile.MaxRetries = 7
	fromFile.GenQueue = 128

	Merge(cfg, fromFile, map[string]bool{"render-distance": true, "seed": true})

	if cfg.RenderDistance != 12 {
		t.Errorf("RenderDistance = %d, want flag value 12", cfg.RenderDistance)
	}
	if cfg.Seed != 99 {
		t.Errorf("Seed = %d, want flag value 99", cfg.Seed)
	}
	if cfg.GeneratorType != "flat" {
		t.Errorf("GeneratorType = %q, want file value %q", cfg.GeneratorType, "flat")
	}
	if cfg.MaxRetries != 7 {
		t.Errorf("MaxRetries = %d, want file value 7", cfg.MaxRetries)
	}
	if cfg.GenQueue != 128 {
		t.Errorf("GenQueue = %d, want file value 128", cfg.GenQueue)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg := DefaultConfig()
	cfg.Seed = 12345
	cfg.Directional = true
	if err := SaveFile(path, cfg); err != nil {
		t.Fatalf("SaveFile() error = %v", err)
	}

	loaded := DefaultConfig()
	if err := LoadFile(path, loaded); err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if loaded.Seed != 12345 {
		t.Errorf("Seed = %d, want 12345", loaded.Seed)
	}
	if !loaded.Directional {
		t.Error("Directional lost in round trip")
	}
}

func TestLoadFileMissing(t *testing.T) {
	cfg := DefaultConfig()
	if err := LoadFile(filepath.Join(t.TempDir(), "nope.json"), cfg); err != nil {
		t.Errorf("LoadFile on missing file returned %v, want nil", err)
	}
	if cfg.RenderDistance != DefaultConfig().RenderDistance {
		t.Error("missing file mutated defaults")
	}
}

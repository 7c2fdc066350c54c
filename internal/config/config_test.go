package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Simulation defaults
	if cfg.Simulation.FrameRate != 60 {
		t.Errorf("expected frame rate 60, got %d", cfg.Simulation.FrameRate)
	}
	if cfg.Simulation.Substeps != 2 {
		t.Errorf("expected 2 substeps, got %d", cfg.Simulation.Substeps)
	}
	if cfg.Simulation.Shape != "cube" {
		t.Errorf("expected shape 'cube', got %s", cfg.Simulation.Shape)
	}

	// Body defaults (the documented configuration surface)
	if cfg.Body.Type != "pressure" {
		t.Errorf("expected type 'pressure', got %s", cfg.Body.Type)
	}
	if cfg.Body.Pressure != 50 {
		t.Errorf("expected pressure 50, got %f", cfg.Body.Pressure)
	}
	if cfg.Body.Stiffness != 200 {
		t.Errorf("expected stiffness 200, got %f", cfg.Body.Stiffness)
	}
	if cfg.Body.Damping != 0.4 {
		t.Errorf("expected damping 0.4, got %f", cfg.Body.Damping)
	}
	if cfg.Body.PointMass != 0.05 {
		t.Errorf("expected point mass 0.05, got %f", cfg.Body.PointMass)
	}
	if cfg.Body.PointRadius != 0.01 {
		t.Errorf("expected point radius 0.01, got %f", cfg.Body.PointRadius)
	}
	if cfg.Body.PointDamping != 0.3 {
		t.Errorf("expected point damping 0.3, got %f", cfg.Body.PointDamping)
	}
	if cfg.Body.Offset != 0.2 {
		t.Errorf("expected offset 0.2, got %f", cfg.Body.Offset)
	}
	if cfg.Body.PressureMode != "legacy" {
		t.Errorf("expected pressure mode 'legacy', got %s", cfg.Body.PressureMode)
	}

	// Logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "softmesh.yaml")

	cfg := Default()
	cfg.Body.Type = "hybrid_shell"
	cfg.Body.Pressure = 80
	cfg.Simulation.Substeps = 4
	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, configPath); err != nil {
		t.Fatalf("loadFromFile failed: %v", err)
	}

	if loaded.Body.Type != "hybrid_shell" {
		t.Errorf("expected type 'hybrid_shell', got %s", loaded.Body.Type)
	}
	if loaded.Body.Pressure != 80 {
		t.Errorf("expected pressure 80, got %f", loaded.Body.Pressure)
	}
	if loaded.Simulation.Substeps != 4 {
		t.Errorf("expected 4 substeps, got %d", loaded.Simulation.Substeps)
	}
	// Untouched sections keep defaults
	if loaded.Body.Stiffness != 200 {
		t.Errorf("expected stiffness 200 preserved, got %f", loaded.Body.Stiffness)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "softmesh.yaml")

	partial := []byte("body:\n  pressure: 10\n")
	if err := os.WriteFile(configPath, partial, 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("loadFromFile failed: %v", err)
	}

	if cfg.Body.Pressure != 10 {
		t.Errorf("expected pressure 10, got %f", cfg.Body.Pressure)
	}
	if cfg.Body.Type != "pressure" {
		t.Errorf("partial file must not clear defaults, got type %q", cfg.Body.Type)
	}
}

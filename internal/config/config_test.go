package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Track.Version != "NFS_3" {
		t.Errorf("expected track version NFS_3, got %s", cfg.Track.Version)
	}
	if cfg.Atlas.MaxLayers != 2048 {
		t.Errorf("expected max layers 2048, got %d", cfg.Atlas.MaxLayers)
	}
	if !cfg.Atlas.Repeatable {
		t.Error("expected repeatable atlas by default")
	}
	if cfg.UV.Workers != 0 {
		t.Errorf("expected 0 workers (auto), got %d", cfg.UV.Workers)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nfstex.yaml")

	yamlContent := `
track:
  version: "NFS_4"

atlas:
  max_layers: 512
  repeatable: false

uv:
  workers: 4

logging:
  level: "debug"
  log_file: "nfstex.log"
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Track.Version != "NFS_4" {
		t.Errorf("expected version NFS_4, got %s", cfg.Track.Version)
	}
	if cfg.Atlas.MaxLayers != 512 {
		t.Errorf("expected max layers 512, got %d", cfg.Atlas.MaxLayers)
	}
	if cfg.Atlas.Repeatable {
		t.Error("expected repeatable to be false")
	}
	if cfg.UV.Workers != 4 {
		t.Errorf("expected 4 workers, got %d", cfg.UV.Workers)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "nfstex.log" {
		t.Errorf("expected log file 'nfstex.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "invalid.yaml")

	invalidYAML := `
atlas:
  max_layers: not a number
  invalid syntax here
`
	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if err := loadFromFile(Default(), configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load("/nonexistent/path/nfstex.yaml", Overrides{}); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	if err := os.WriteFile("nfstex.yaml", []byte("uv:\n  workers: 2\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find nfstex.yaml in current directory")
	}
}

func TestApplyOverrides(t *testing.T) {
	tests := []struct {
		name   string
		ov     Overrides
		verify func(t *testing.T, cfg *Config)
	}{
		{
			name: "debug",
			ov:   Overrides{Debug: true},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
		},
		{
			name: "log file",
			ov:   Overrides{LogFile: "out.log"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.LogFile != "out.log" {
					t.Errorf("expected log file out.log, got %s", cfg.Logging.LogFile)
				}
			},
		},
		{
			name: "version",
			ov:   Overrides{Version: "NFS_2_SE"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Track.Version != "NFS_2_SE" {
					t.Errorf("expected version NFS_2_SE, got %s", cfg.Track.Version)
				}
			},
		},
		{
			name: "workers and layers",
			ov:   Overrides{Workers: 8, MaxLayers: 64},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.UV.Workers != 8 {
					t.Errorf("expected 8 workers, got %d", cfg.UV.Workers)
				}
				if cfg.Atlas.MaxLayers != 64 {
					t.Errorf("expected 64 layers, got %d", cfg.Atlas.MaxLayers)
				}
			},
		},
		{
			name: "zero values keep defaults",
			ov:   Overrides{},
			verify: func(t *testing.T, cfg *Config) {
				if *cfg != *Default() {
					t.Errorf("expected defaults, got %+v", cfg)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.ov.apply(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nfstex.yaml")

	yamlContent := `
uv:
  workers: 2
atlas:
  max_layers: 100
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(configPath, Overrides{Workers: 6})
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Workers from override, layers from file
	if cfg.UV.Workers != 6 {
		t.Errorf("expected 6 workers from override, got %d", cfg.UV.Workers)
	}
	if cfg.Atlas.MaxLayers != 100 {
		t.Errorf("expected 100 layers from file, got %d", cfg.Atlas.MaxLayers)
	}
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nfstex.yaml")
	if err := os.WriteFile(configPath, []byte("atlas:\n  max_layers: 0\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if _, err := Load(configPath, Overrides{}); err == nil {
		t.Error("expected error for zero max_layers")
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Track.Version = "NFS_4"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload: %v", err)
	}
	if loaded.Track.Version != "NFS_4" {
		t.Errorf("expected saved version NFS_4, got %s", loaded.Track.Version)
	}
}

// Package config handles nfstex configuration loading and management.
package config

// Config holds all tool settings.
type Config struct {
	Track   TrackConfig   `yaml:"track"`
	Atlas   AtlasConfig   `yaml:"atlas"`
	UV      UVConfig      `yaml:"uv"`
	Logging LoggingConfig `yaml:"logging"`
}

// TrackConfig holds track input settings.
type TrackConfig struct {
	Version string `yaml:"version"` // Origin format assumed when a command does not name one
}

// AtlasConfig holds atlas placement settings.
type AtlasConfig struct {
	MaxLayers  int  `yaml:"max_layers"`
	Repeatable bool `yaml:"repeatable"` // Textures sample with wrap instead of clamp
}

// UVConfig holds UV generation settings.
type UVConfig struct {
	Workers int `yaml:"workers"` // 0 = one per CPU
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Track: TrackConfig{
			Version: "NFS_3",
		},
		Atlas: AtlasConfig{
			MaxLayers:  2048,
			Repeatable: true,
		},
		UV: UVConfig{
			Workers: 0,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

package config

// Overrides holds command-line values that take priority over the config file.
// Zero values leave the loaded setting untouched.
type Overrides struct {
	Debug     bool
	LogFile   string
	Version   string
	Workers   int
	MaxLayers int
}

// apply applies CLI overrides to the config.
func (o Overrides) apply(cfg *Config) {
	if o.Debug {
		cfg.Logging.Level = "debug"
	}
	if o.LogFile != "" {
		cfg.Logging.LogFile = o.LogFile
	}
	if o.Version != "" {
		cfg.Track.Version = o.Version
	}
	if o.Workers > 0 {
		cfg.UV.Workers = o.Workers
	}
	if o.MaxLayers > 0 {
		cfg.Atlas.MaxLayers = o.MaxLayers
	}
}

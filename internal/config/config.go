package config

// Config represents the application configuration
type Config struct {
	Manifest string        `mapstructure:"manifest" yaml:"manifest"`
	Output   OutputConfig  `mapstructure:"output" yaml:"output"`
	Pack     PackConfig    `mapstructure:"pack" yaml:"pack"`
	Logging  LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	Directory string `mapstructure:"directory" yaml:"directory"`
	Overwrite bool   `mapstructure:"overwrite" yaml:"overwrite"`
}

// PackConfig contains packing settings
type PackConfig struct {
	Root    string `mapstructure:"root" yaml:"root"`
	Workers int    `mapstructure:"workers" yaml:"workers"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Validate checks the configuration and falls back to defaults for invalid
// values rather than failing.
func (c *Config) Validate() error {
	defaults := DefaultConfig()

	if c.Manifest == "" {
		c.Manifest = defaults.Manifest
	}
	if c.Output.Directory == "" {
		c.Output.Directory = defaults.Output.Directory
	}
	if c.Pack.Root == "" {
		c.Pack.Root = defaults.Pack.Root
	}
	if c.Pack.Workers <= 0 {
		c.Pack.Workers = defaults.Pack.Workers
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		c.Logging.Level = defaults.Logging.Level
	}

	switch c.Logging.Format {
	case "pretty", "json":
	default:
		c.Logging.Format = defaults.Logging.Format
	}

	return nil
}

package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// DefaultManifestName is the manifest looked for when none is given.
const DefaultManifestName = "nasher.cfg"

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Manifest: DefaultManifestName,
		Output: OutputConfig{
			Directory: "./dist",
		},
		Pack: PackConfig{
			Root:    ".",
			Workers: 4,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "pretty",
		},
	}
}

// ConfigDir returns the user configuration directory
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".nasher")
}

// setDefaults registers default values on a viper instance
func setDefaults(v *viper.Viper) {
	defaults := DefaultConfig()

	v.SetDefault("manifest", defaults.Manifest)
	v.SetDefault("output.directory", defaults.Output.Directory)
	v.SetDefault("output.overwrite", defaults.Output.Overwrite)
	v.SetDefault("pack.root", defaults.Pack.Root)
	v.SetDefault("pack.workers", defaults.Pack.Workers)
	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("logging.format", defaults.Logging.Format)
}

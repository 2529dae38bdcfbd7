package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "nasher.cfg", cfg.Manifest)
	assert.Equal(t, "./dist", cfg.Output.Directory)
	assert.Equal(t, ".", cfg.Pack.Root)
	assert.Equal(t, 4, cfg.Pack.Workers)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "pretty", cfg.Logging.Format)
}

func TestConfig_Validate_FillsEmptyFields(t *testing.T) {
	cfg := &Config{}

	err := cfg.Validate()

	require.NoError(t, err)
	assert.Equal(t, "nasher.cfg", cfg.Manifest)
	assert.Equal(t, "./dist", cfg.Output.Directory)
	assert.Equal(t, 4, cfg.Pack.Workers)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestConfig_Validate_CorrectsInvalidValues(t *testing.T) {
	cfg := &Config{
		Pack:    PackConfig{Workers: -1},
		Logging: LoggingConfig{Level: "loud", Format: "xml"},
	}

	err := cfg.Validate()

	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Pack.Workers)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "pretty", cfg.Logging.Format)
}

func TestConfig_Validate_KeepsValidValues(t *testing.T) {
	cfg := &Config{
		Manifest: "custom.cfg",
		Output:   OutputConfig{Directory: "/tmp/out", Overwrite: true},
		Pack:     PackConfig{Root: "src", Workers: 8},
		Logging:  LoggingConfig{Level: "debug", Format: "json"},
	}

	err := cfg.Validate()

	require.NoError(t, err)
	assert.Equal(t, "custom.cfg", cfg.Manifest)
	assert.Equal(t, "/tmp/out", cfg.Output.Directory)
	assert.Equal(t, 8, cfg.Pack.Workers)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadWith_UsesDefaults(t *testing.T) {
	v := viper.New()

	cfg, err := LoadWith(v)

	require.NoError(t, err)
	assert.Equal(t, "nasher.cfg", cfg.Manifest)
	assert.Equal(t, 4, cfg.Pack.Workers)
}

func TestLoadWith_OverridesFromViper(t *testing.T) {
	v := viper.New()
	v.Set("output.directory", "/custom")
	v.Set("pack.workers", 2)

	cfg, err := LoadWith(v)

	require.NoError(t, err)
	assert.Equal(t, "/custom", cfg.Output.Directory)
	assert.Equal(t, 2, cfg.Pack.Workers)
}

package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/brandkit/pkg/config"
)

type testConfig struct {
	Port         int      `env:"TEST_PORT" envDefault:"8080"`
	Debug        bool     `env:"TEST_DEBUG" envDefault:"false"`
	AllowedTypes []string `env:"TEST_ALLOWED_TYPES" envSeparator:"," envDefault:"application/pdf,image/*"`
	Required     string   `env:"TEST_REQUIRED,required"`
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TEST_REQUIRED", "present")

	var cfg testConfig
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, 8080, cfg.Port)
	assert.False(t, cfg.Debug)
	assert.Equal(t, []string{"application/pdf", "image/*"}, cfg.AllowedTypes)
	assert.Equal(t, "present", cfg.Required)
}

func TestLoadOverridesFromEnvironment(t *testing.T) {
	t.Setenv("TEST_REQUIRED", "present")
	t.Setenv("TEST_PORT", "9090")
	t.Setenv("TEST_DEBUG", "true")
	t.Setenv("TEST_ALLOWED_TYPES", "text/plain,text/csv")

	var cfg testConfig
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, 9090, cfg.Port)
	assert.True(t, cfg.Debug)
	assert.Equal(t, []string{"text/plain", "text/csv"}, cfg.AllowedTypes)
}

func TestLoadMissingRequiredVariable(t *testing.T) {
	var cfg testConfig
	err := config.Load(&cfg)
	assert.ErrorIs(t, err, config.ErrParsingConfig)
}

func TestLoadNilPointer(t *testing.T) {
	err := config.Load[testConfig](nil)
	assert.ErrorIs(t, err, config.ErrNilPointer)
}

func TestLoadInvalidValue(t *testing.T) {
	t.Setenv("TEST_REQUIRED", "present")
	t.Setenv("TEST_PORT", "not-a-number")

	var cfg testConfig
	err := config.Load(&cfg)
	assert.ErrorIs(t, err, config.ErrParsingConfig)
}

func TestMustLoadPanicsOnFailure(t *testing.T) {
	assert.Panics(t, func() {
		var cfg testConfig
		config.MustLoad(&cfg)
	})
}

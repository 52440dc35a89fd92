package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dbConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

func (c *dbConfig) ApplyDefault() {
	if c.Port == 0 {
		c.Port = 5432
	}
}

type appConfig struct {
	Name     string `mapstructure:"name"`
	LogLevel string `mapstructure:"logLevel"`
	DB       *dbConfig
}

func TestLoad(t *testing.T) {
	t.Run("it should load flat values from the environment", func(t *testing.T) {
		// GIVEN
		t.Setenv("APP_NAME", "wheatgrass")

		// WHEN
		cfg, err := Load[appConfig](WithEnvPrefix("app"))

		// THEN
		require.NoError(t, err)
		assert.Equal(t, "wheatgrass", cfg.Name)
	})

	t.Run("it should map camelCase field names to SCREAMING_SNAKE_CASE variables", func(t *testing.T) {
		// GIVEN
		t.Setenv("APP_LOG_LEVEL", "debug")

		// WHEN
		cfg, err := Load[appConfig](WithEnvPrefix("app"))

		// THEN
		require.NoError(t, err)
		assert.Equal(t, "debug", cfg.LogLevel)
	})

	t.Run("it should load nested values through struct pointers", func(t *testing.T) {
		// GIVEN
		t.Setenv("APP_DB_HOST", "db.internal")

		// WHEN
		cfg, err := Load[appConfig](WithEnvPrefix("app"))

		// THEN
		require.NoError(t, err)
		require.NotNil(t, cfg.DB)
		assert.Equal(t, "db.internal", cfg.DB.Host)
	})

	t.Run("it should allocate nested structs and apply their defaults", func(t *testing.T) {
		// WHEN
		cfg, err := Load[appConfig](WithEnvPrefix("app"))

		// THEN
		require.NoError(t, err)
		require.NotNil(t, cfg.DB)
		assert.Equal(t, 5432, cfg.DB.Port)
	})

	t.Run("it should work without an environment prefix", func(t *testing.T) {
		// GIVEN
		t.Setenv("NAME", "bare")

		// WHEN
		cfg, err := Load[appConfig]()

		// THEN
		require.NoError(t, err)
		assert.Equal(t, "bare", cfg.Name)
	})
}

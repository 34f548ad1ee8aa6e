package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, 5, cfg.Database.PoolSize)
	assert.Equal(t, 10, cfg.Database.MaxOverflow)
	assert.Equal(t, "HS256", cfg.Auth.Algorithm)
	assert.Equal(t, 30, cfg.Auth.AccessTokenExpireMinutes)
	assert.Equal(t, "gemini", cfg.AI.Provider)
	assert.Equal(t, "gemini-2.0-flash", cfg.AI.GeminiModel)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:5173"}, cfg.Server.CORSOrigins)
	assert.True(t, cfg.Auth.UsesDefaultSecret())
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_POOL_SIZE", "8")
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "90")
	t.Setenv("AI_PROVIDER", "openai")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("CORS_ORIGINS", " https://app.example.com , ,https://admin.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 8, cfg.Database.PoolSize)
	assert.Equal(t, 90, cfg.Auth.AccessTokenExpireMinutes)
	assert.Equal(t, "sk-test", cfg.AI.APIKey())
	assert.Equal(t, "OPENAI_API_KEY", cfg.AI.APIKeyName())
	assert.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.Server.CORSOrigins)
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("db_driver: sqlite\ndb_name: tasks.db\n"), 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("DB_NAME", "override.db")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "override.db", cfg.Database.Name)
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Setenv("DB_DRIVER", "oracle")
	t.Setenv("ALGORITHM", "RS256")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Driver")
	assert.Contains(t, err.Error(), "Algorithm")
}

func TestAIConfig_GeminiKey(t *testing.T) {
	cfg := AIConfig{Provider: "gemini", GeminiAPIKey: "g-key", OpenAIAPIKey: "o-key"}

	assert.Equal(t, "g-key", cfg.APIKey())
	assert.Equal(t, "GEMINI_API_KEY", cfg.APIKeyName())
}

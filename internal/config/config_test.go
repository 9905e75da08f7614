package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scholar-ai/backend/internal/config"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		cfg, err := config.LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, 8000, cfg.AppPort)
		assert.Equal(t, "/data/scholar.db", cfg.DatabasePath)
		assert.Equal(t, "gemini-3-flash-preview", cfg.GeminiModel)
		assert.Equal(t, 10, cfg.HistoryWindow)
		assert.Equal(t, "AI-RESEARCH-2025", cfg.DeveloperCode)
		assert.Equal(t, "INFO", cfg.LogLevel)
	})

	t.Run("EnvironmentOverrides", func(t *testing.T) {
		t.Setenv("APP_PORT", "9100")
		t.Setenv("HISTORY_WINDOW", "4")
		t.Setenv("DEVELOPER_CODE", "OTHER-CODE")

		cfg, err := config.LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, 9100, cfg.AppPort)
		assert.Equal(t, 4, cfg.HistoryWindow)
		assert.Equal(t, "OTHER-CODE", cfg.DeveloperCode)
	})
}

package app_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scholar-ai/backend/internal/app"
	"scholar-ai/backend/internal/config"
)

func TestNewApp(t *testing.T) {
	cfg := &config.Config{
		AppPort:       8000,
		DatabasePath:  filepath.Join(t.TempDir(), "test.db"),
		GeminiAPIKey:  "test-key",
		GeminiModel:   "gemini-3-flash-preview",
		HistoryWindow: 10,
		DeveloperCode: "TEST-CODE",
		LogLevel:      "ERROR",
	}

	a, err := app.NewApp(cfg)
	require.NoError(t, err)
	defer a.DB.Close()

	assert.NotNil(t, a.Server)
	assert.Equal(t, ":8000", a.Server.Addr)
	require.NoError(t, a.DB.Ping())

	// Migrations ran: core tables exist.
	for _, table := range []string{"conversations", "messages", "settings"} {
		var name string
		err := a.DB.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name = ?", table).Scan(&name)
		require.NoError(t, err, table)
		assert.Equal(t, table, name)
	}
}

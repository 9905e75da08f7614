package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"scholar-ai/backend/internal/api"
	"scholar-ai/backend/internal/config"
	"scholar-ai/backend/internal/database"
	"scholar-ai/backend/internal/llm"
	"scholar-ai/backend/internal/repository"
	"scholar-ai/backend/internal/service"
)

// App bundles the wired application for startup and tests.
type App struct {
	DB     *sql.DB
	Server *http.Server
}

// NewApp wires all dependencies in order: storage, engine provider,
// services, handlers, router.
func NewApp(cfg *config.Config) (*App, error) {
	db, err := database.InitDB(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	provider, err := llm.NewGeminiProvider(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		return nil, fmt.Errorf("failed to create engine provider: %w", err)
	}

	repo := repository.NewSQLiteRepository(db)
	store := repository.NewSettingsStore(db)

	instructionService := service.NewInstructionService(store)
	chatService := service.NewChatService(repo, provider, instructionService, cfg.HistoryWindow)
	exportService := service.NewExportService()

	chatHandler := api.NewChatHandler(chatService, exportService)
	devHandler := api.NewDevHandler(instructionService, cfg.DeveloperCode)
	router := api.NewRouter(chatHandler, devHandler)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.AppPort),
		Handler:           router,
		ReadHeaderTimeout: 20 * time.Second,
		WriteTimeout:      0, // Disabled: engine-call routes hold the connection.
		IdleTimeout:       120 * time.Second,
	}

	return &App{DB: db, Server: server}, nil
}

func Run() int {
	cfg, err := config.LoadConfig()
	if err != nil {
		// slog is not yet configured, so use the default logger for this
		// critical error.
		slog.Error("Failed to load configuration", "error", err)
		return 1
	}

	setupLogger(cfg.LogLevel)
	logConfigSource()

	if cfg.GeminiAPIKey == "" {
		slog.Warn("GEMINI_API_KEY is not set; engine calls will fail until it is configured.")
	}

	a, err := NewApp(cfg)
	if err != nil {
		slog.Error("Failed to build application", "error", err)
		return 1
	}
	defer func() {
		if err := a.DB.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()
	slog.Info("Successfully connected to SQLite database.", "path", cfg.DatabasePath)

	slog.Info("Starting server", "port", cfg.AppPort, "model", cfg.GeminiModel)
	if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server failed", "error", err)
		return 1
	}

	return 0
}

func logConfigSource() {
	configFileUsed := viper.ConfigFileUsed()
	if configFileUsed != "" {
		slog.Info("Successfully loaded configuration from file.", "file", configFileUsed)
	} else {
		slog.Info("Configuration file not found. Using environment variables and defaults.")
	}
}

func setupLogger(logLevel string) {
	var level slog.Level
	switch strings.ToUpper(logLevel) {
	case "DEBUG":
		level = slog.LevelDebug
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}

package main

import (
	"os"

	"scholar-ai/backend/internal/app"
)

// @title           Scholar AI Backend API
// @version         1.0
// @description     Academic research chat backend: mode-driven conversations with a remote engine, instruction overrides and spreadsheet export.
// @BasePath        /api
func main() {
	os.Exit(app.Run())
}

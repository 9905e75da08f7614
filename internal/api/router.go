package api

import (
	"net/http"
	"time"

	// This blank import is required by swaggo to find the API definitions.
	_ "scholar-ai/backend/docs"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

// NewRouter creates and configures a chi router with all application routes.
func NewRouter(chatHandler *ChatHandler, devHandler *DevHandler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Serves the auto-generated Swagger UI for API documentation.
	r.Get("/api/swagger/*", httpSwagger.WrapHandler)

	// Liveness probe for container orchestration.
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {

		// Standard JSON routes get a request timeout so client connections
		// cannot hang indefinitely.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(60 * time.Second))

			r.Get("/modes", devHandler.HandleListModes)

			r.Get("/conversations", chatHandler.GetConversations)
			r.Get("/conversations/{conversationID}", chatHandler.GetConversation)
			r.Put("/conversations/{conversationID}/title", chatHandler.UpdateConversationTitle)
			r.Delete("/conversations/{conversationID}/messages", chatHandler.HandleClearConversation)
			r.Delete("/conversations/{conversationID}", chatHandler.HandleDeleteConversation)

			r.Get("/conversations/{conversationID}/messages/{messageID}/export/xlsx", chatHandler.HandleExportXLSX)

			r.Post("/developer/unlock", devHandler.HandleUnlock)
			r.Group(func(r chi.Router) {
				r.Use(devHandler.RequireCode)
				r.Get("/developer/modes/{modeID}/instruction", devHandler.HandleGetInstruction)
				r.Put("/developer/modes/{modeID}/instruction", devHandler.HandleSaveInstruction)
				r.Delete("/developer/modes/{modeID}/instruction", devHandler.HandleResetInstruction)
			})
		})

		// Engine-call routes hold the connection for the whole model round
		// trip and must NOT have a timeout middleware; the server-level
		// write timeout is disabled for the same reason.
		r.Group(func(r chi.Router) {
			r.Post("/conversations/messages", chatHandler.HandleSendMessage)
			r.Post("/conversations/{conversationID}/messages/{messageID}/humanize", chatHandler.HandleHumanize)
		})
	})

	return r
}

package interfaces

import (
	"context"
	"io"

	"scholar-ai/backend/internal/model"
	"scholar-ai/backend/internal/modes"
	"scholar-ai/backend/internal/service"
)

// This file defines the interfaces for our core services. The API layer
// depends on these instead of concrete implementations, which decouples the
// layers and makes handler tests a matter of mocking.

// ChatService defines the contract for the conversation orchestrator.
type ChatService interface {
	SendMessage(ctx context.Context, req *service.SendMessageRequest) (*service.Exchange, error)
	Humanize(ctx context.Context, conversationID, messageID string) (*model.Message, error)
	GetMessage(ctx context.Context, conversationID, messageID string) (*model.Message, error)
	ListConversations(ctx context.Context) ([]*model.Conversation, error)
	GetFullConversation(ctx context.Context, conversationID string) (*model.FullConversation, error)
	UpdateConversationTitle(ctx context.Context, conversationID, newTitle string) error
	ClearConversation(ctx context.Context, conversationID string) error
	DeleteConversation(ctx context.Context, conversationID string) error
}

// InstructionService defines the contract for mode listing and per-mode
// instruction overrides.
type InstructionService interface {
	Modes() []modes.Config
	Resolve(ctx context.Context, mode modes.ID) (string, error)
	View(ctx context.Context, mode modes.ID) (*service.InstructionView, error)
	Save(ctx context.Context, mode modes.ID, text string) error
	Reset(ctx context.Context, mode modes.ID) error
}

// ExportService defines the contract for spreadsheet export of message
// content.
type ExportService interface {
	TableGrid(content string) [][]string
	WriteWorkbook(content string, w io.Writer) error
}

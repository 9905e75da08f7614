package repository

import (
	"context"

	"scholar-ai/backend/internal/model"
)

// Repository defines the interface for conversation state storage. The chat
// service is the only writer; conversations are append-only apart from
// ClearMessages and DeleteConversation, which discard as a unit.
type Repository interface {
	CreateConversation(ctx context.Context, conv *model.Conversation) error
	GetConversation(ctx context.Context, conversationID string) (*model.Conversation, error)
	GetConversations(ctx context.Context) ([]*model.Conversation, error)
	UpdateConversationTitle(ctx context.Context, conversationID, newTitle string) error
	UpdateConversationMode(ctx context.Context, conversationID string, mode string) error
	DeleteConversation(ctx context.Context, conversationID string) error

	AddMessage(ctx context.Context, message *model.Message, conversationID string) error
	GetMessages(ctx context.Context, conversationID string) ([]model.Message, error)
	GetMessage(ctx context.Context, conversationID, messageID string) (*model.Message, error)
	ClearMessages(ctx context.Context, conversationID string) error
}

// SettingsStore is the narrow key-value interface backing instruction
// overrides. Keeping it this small lets tests substitute an in-memory map.
type SettingsStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

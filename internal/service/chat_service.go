package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"scholar-ai/backend/internal/attachment"
	app_errors "scholar-ai/backend/internal/errors"
	"scholar-ai/backend/internal/llm"
	"scholar-ai/backend/internal/model"
	"scholar-ai/backend/internal/modes"
	"scholar-ai/backend/internal/repository"
)

const (
	defaultHistoryWindow = 10
	topP                 = 0.95
	titleMaxRunes        = 50

	humanizePromptPrefix = "Rewrite the following text in a natural, hand-written human style and strip away any machine-generated patterns:\n\n"

	filePlaceholderPrompt      = "Please analyze the attached file."
	recordingPlaceholderPrompt = "Please analyze the attached recording."
)

// User-facing error turns, one per failure variant. Every engine failure
// becomes a visible assistant message so the conversation stays a complete
// audit trail of attempts.
const (
	errTurnCredential   = "The academic engine rejected the configured API credential. Check the key in your developer settings."
	errTurnConnectivity = "Could not reach the academic engine. Check your connection and try again."
	errTurnEmpty        = "The academic engine returned an empty response. Please try again."
	errTurnGeneric      = "Something went wrong while contacting the academic engine. Please try again."
)

// ChatService is the request orchestrator: it composes prompt, bounded
// history, mode instruction and optional attachment into one engine call and
// maps the result back into conversation state.
type ChatService struct {
	repo         repository.Repository
	llm          llm.Provider
	instructions *InstructionService
	window       int

	// inflight holds conversation IDs with an outstanding engine call.
	// At most one call per conversation; a second send is rejected, not
	// queued, and there is no cancellation.
	inflight sync.Map
}

// SendMessageRequest is a new user turn. ConversationID is empty for the
// first turn of a new conversation.
type SendMessageRequest struct {
	ConversationID string                   `json:"conversation_id"`
	Content        string                   `json:"content"`
	Mode           modes.ID                 `json:"mode"`
	Attachment     *model.AttachmentPayload `json:"attachment,omitempty"`
}

// Exchange is one completed request/response cycle. The assistant message is
// the engine's reply, or the error turn standing in for it.
type Exchange struct {
	ConversationID   string        `json:"conversation_id"`
	UserMessage      model.Message `json:"user_message"`
	AssistantMessage model.Message `json:"assistant_message"`
}

func NewChatService(repo repository.Repository, provider llm.Provider, instructions *InstructionService, historyWindow int) *ChatService {
	if historyWindow <= 0 {
		historyWindow = defaultHistoryWindow
	}
	return &ChatService{repo: repo, llm: provider, instructions: instructions, window: historyWindow}
}

// SendMessage processes one user turn end to end. The user message is
// appended before the engine call starts; the assistant message (reply or
// error turn) strictly after it settles. An engine failure is not an error
// return — it is recorded in the conversation.
func (s *ChatService) SendMessage(ctx context.Context, req *SendMessageRequest) (*Exchange, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" && req.Attachment == nil {
		return nil, fmt.Errorf("%w: message needs text or an attachment", app_errors.ErrValidation)
	}

	mode := req.Mode
	if mode == "" {
		mode = modes.Reviewer
	}
	modeCfg, err := modes.Lookup(mode)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown mode %q", app_errors.ErrValidation, mode)
	}

	if content == "" {
		if attachment.IsAudio(req.Attachment) {
			content = recordingPlaceholderPrompt
		} else {
			content = filePlaceholderPrompt
		}
	}

	conv, err := s.getOrCreateConversation(ctx, req.ConversationID, content, mode)
	if err != nil {
		return nil, err
	}

	if unlock, ok := s.acquire(conv.ID); ok {
		defer unlock()
	} else {
		return nil, fmt.Errorf("%w: a request is already in flight for this conversation", app_errors.ErrConflict)
	}

	// History is the bounded suffix of the conversation as it stood before
	// this turn.
	prior, err := s.repo.GetMessages(ctx, conv.ID)
	if err != nil {
		return nil, fmt.Errorf("could not load conversation history: %w", err)
	}
	history := s.windowed(prior)

	// The instruction is captured by value here; a developer edit mid-flight
	// only affects the next request.
	instruction := s.resolveInstruction(ctx, mode, modeCfg)

	userMsg := model.Message{
		ID:        uuid.NewString(),
		Role:      model.RoleUser,
		Content:   content,
		Mode:      mode,
		Timestamp: time.Now(),
	}
	if err := s.repo.AddMessage(ctx, &userMsg, conv.ID); err != nil {
		return nil, fmt.Errorf("could not save user message: %w", err)
	}

	assistantMsg := s.generateTurn(ctx, &llm.GenerateRequest{
		SystemInstruction: instruction,
		History:           history,
		Prompt:            content,
		Attachment:        req.Attachment,
		Temperature:       modeCfg.Temperature,
		TopP:              topP,
		EnableSearch:      true,
	}, mode, false)

	if err := s.repo.AddMessage(ctx, assistantMsg, conv.ID); err != nil {
		return nil, fmt.Errorf("could not save assistant message: %w", err)
	}

	return &Exchange{ConversationID: conv.ID, UserMessage: userMsg, AssistantMessage: *assistantMsg}, nil
}

// Humanize re-enters the same pipeline for an existing assistant message:
// the prompt wraps that message's text in a rewrite instruction and the mode
// is forced to humanizer regardless of the conversation's mode. The result
// is appended as a new assistant message flagged IsHumanized.
func (s *ChatService) Humanize(ctx context.Context, conversationID, messageID string) (*model.Message, error) {
	if _, err := s.getConversation(ctx, conversationID); err != nil {
		return nil, err
	}

	target, err := s.repo.GetMessage(ctx, conversationID, messageID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: message %s", app_errors.ErrNotFound, messageID)
		}
		return nil, err
	}
	if target.Role != model.RoleAssistant {
		return nil, fmt.Errorf("%w: only assistant messages can be humanized", app_errors.ErrValidation)
	}

	if unlock, ok := s.acquire(conversationID); ok {
		defer unlock()
	} else {
		return nil, fmt.Errorf("%w: a request is already in flight for this conversation", app_errors.ErrConflict)
	}

	modeCfg, err := modes.Lookup(modes.Humanizer)
	if err != nil {
		return nil, err
	}
	instruction := s.resolveInstruction(ctx, modes.Humanizer, modeCfg)

	assistantMsg := s.generateTurn(ctx, &llm.GenerateRequest{
		SystemInstruction: instruction,
		Prompt:            humanizePromptPrefix + target.Content,
		Temperature:       modeCfg.Temperature,
		TopP:              topP,
		EnableSearch:      true,
	}, modes.Humanizer, true)

	if err := s.repo.AddMessage(ctx, assistantMsg, conversationID); err != nil {
		return nil, fmt.Errorf("could not save humanized message: %w", err)
	}

	return assistantMsg, nil
}

// GetMessage retrieves a single message from a conversation.
func (s *ChatService) GetMessage(ctx context.Context, conversationID, messageID string) (*model.Message, error) {
	msg, err := s.repo.GetMessage(ctx, conversationID, messageID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: message %s", app_errors.ErrNotFound, messageID)
		}
		return nil, err
	}
	return msg, nil
}

// ListConversations retrieves all conversations, most recent first.
func (s *ChatService) ListConversations(ctx context.Context) ([]*model.Conversation, error) {
	return s.repo.GetConversations(ctx)
}

// GetFullConversation retrieves a conversation's metadata and all messages.
func (s *ChatService) GetFullConversation(ctx context.Context, conversationID string) (*model.FullConversation, error) {
	conv, err := s.getConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	messages, err := s.repo.GetMessages(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("could not get messages: %w", err)
	}
	return &model.FullConversation{Conversation: *conv, Messages: messages}, nil
}

// UpdateConversationTitle handles a manual title edit.
func (s *ChatService) UpdateConversationTitle(ctx context.Context, conversationID, newTitle string) error {
	if newTitle == "" {
		return fmt.Errorf("%w: title cannot be empty", app_errors.ErrValidation)
	}
	if err := s.repo.UpdateConversationTitle(ctx, conversationID, newTitle); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: conversation %s", app_errors.ErrNotFound, conversationID)
		}
		return err
	}
	return nil
}

// ClearConversation discards all messages unconditionally. No undo.
func (s *ChatService) ClearConversation(ctx context.Context, conversationID string) error {
	if _, err := s.getConversation(ctx, conversationID); err != nil {
		return err
	}
	slog.Info("Clearing conversation", "conversation_id", conversationID)
	return s.repo.ClearMessages(ctx, conversationID)
}

// DeleteConversation removes the conversation and all its messages.
func (s *ChatService) DeleteConversation(ctx context.Context, conversationID string) error {
	if err := s.repo.DeleteConversation(ctx, conversationID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: conversation %s", app_errors.ErrNotFound, conversationID)
		}
		return err
	}
	return nil
}

// generateTurn invokes the engine and shapes the assistant message, folding
// any failure into a visible error turn.
func (s *ChatService) generateTurn(ctx context.Context, req *llm.GenerateRequest, mode modes.ID, humanized bool) *model.Message {
	msg := &model.Message{
		ID:        uuid.NewString(),
		Role:      model.RoleAssistant,
		Mode:      mode,
		Timestamp: time.Now(),
	}

	resp, err := s.llm.Generate(ctx, req)
	if err != nil {
		slog.Warn("Engine call failed", "mode", mode, "error", err)
		msg.Content = errorTurnContent(err)
		return msg
	}

	msg.Content = resp.Text
	msg.GroundingURLs = resp.GroundingURLs
	msg.IsHumanized = humanized
	return msg
}

func (s *ChatService) getOrCreateConversation(ctx context.Context, conversationID, firstContent string, mode modes.ID) (*model.Conversation, error) {
	if conversationID == "" {
		conv := &model.Conversation{
			ID:        uuid.NewString(),
			Title:     truncate(firstContent, titleMaxRunes),
			Mode:      mode,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		if err := s.repo.CreateConversation(ctx, conv); err != nil {
			return nil, fmt.Errorf("could not create conversation: %w", err)
		}
		return conv, nil
	}

	conv, err := s.getConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if conv.Mode != mode {
		if err := s.repo.UpdateConversationMode(ctx, conversationID, string(mode)); err != nil {
			slog.Warn("Could not update conversation mode", "conversation_id", conversationID, "error", err)
		}
		conv.Mode = mode
	}
	return conv, nil
}

func (s *ChatService) getConversation(ctx context.Context, conversationID string) (*model.Conversation, error) {
	conv, err := s.repo.GetConversation(ctx, conversationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: conversation %s", app_errors.ErrNotFound, conversationID)
		}
		return nil, err
	}
	return conv, nil
}

// resolveInstruction never blocks a turn on the override store: a read
// failure falls back to the registry default.
func (s *ChatService) resolveInstruction(ctx context.Context, mode modes.ID, cfg modes.Config) string {
	instruction, err := s.instructions.Resolve(ctx, mode)
	if err != nil {
		slog.Warn("Could not resolve instruction override, using default", "mode", mode, "error", err)
		return cfg.DefaultInstruction
	}
	return instruction
}

// windowed returns the bounded suffix of prior messages sent to the engine,
// mapped to history entries in original order.
func (s *ChatService) windowed(prior []model.Message) []llm.Message {
	if len(prior) > s.window {
		prior = prior[len(prior)-s.window:]
	}
	history := make([]llm.Message, 0, len(prior))
	for _, m := range prior {
		history = append(history, llm.Message{Role: m.Role, Content: m.Content})
	}
	return history
}

// acquire marks a conversation as having an in-flight engine call. The
// returned unlock must be deferred by the winner; ok is false when another
// call already holds the slot.
func (s *ChatService) acquire(conversationID string) (func(), bool) {
	if _, loaded := s.inflight.LoadOrStore(conversationID, struct{}{}); loaded {
		return nil, false
	}
	return func() { s.inflight.Delete(conversationID) }, true
}

func errorTurnContent(err error) string {
	switch {
	case errors.Is(err, llm.ErrCredential):
		return errTurnCredential
	case errors.Is(err, llm.ErrConnectivity):
		return errTurnConnectivity
	case errors.Is(err, llm.ErrEmptyResponse):
		return errTurnEmpty
	default:
		return errTurnGeneric
	}
}

// truncate shortens a string to a specified number of runes.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

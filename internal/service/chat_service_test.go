package service_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	app_errors "scholar-ai/backend/internal/errors"
	"scholar-ai/backend/internal/llm"
	llmMocks "scholar-ai/backend/internal/llm/mocks"
	"scholar-ai/backend/internal/model"
	"scholar-ai/backend/internal/modes"
	"scholar-ai/backend/internal/repository"
	repoMocks "scholar-ai/backend/internal/repository/mocks"
	"scholar-ai/backend/internal/service"
)

type chatFixture struct {
	repo     *repoMocks.MockRepository
	provider *llmMocks.MockProvider
	store    *repoMocks.MockSettingsStore
	svc      *service.ChatService
}

func newChatFixture(t *testing.T, window int) *chatFixture {
	t.Helper()

	repo := repoMocks.NewMockRepository(t)
	provider := llmMocks.NewMockProvider(t)
	store := repoMocks.NewMockSettingsStore(t)
	store.On("Get", mock.Anything, mock.Anything).Return("", repository.ErrNotFound).Maybe()

	return &chatFixture{
		repo:     repo,
		provider: provider,
		store:    store,
		svc:      service.NewChatService(repo, provider, service.NewInstructionService(store), window),
	}
}

func existingConversation(id string, mode modes.ID) *model.Conversation {
	return &model.Conversation{
		ID:        id,
		Title:     "Existing research",
		Mode:      mode,
		CreatedAt: time.Now().Add(-time.Hour),
		UpdatedAt: time.Now().Add(-time.Minute),
	}
}

func priorMessages(n int) []model.Message {
	msgs := make([]model.Message, 0, n)
	for i := 0; i < n; i++ {
		role := model.RoleUser
		if i%2 == 1 {
			role = model.RoleAssistant
		}
		msgs = append(msgs, model.Message{
			ID:      fmt.Sprintf("msg-%d", i),
			Role:    role,
			Content: fmt.Sprintf("turn %d", i),
		})
	}
	return msgs
}

func TestChatService_SendMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("NewConversationSuccess", func(t *testing.T) {
		f := newChatFixture(t, 10)

		f.repo.On("CreateConversation", ctx, mock.AnythingOfType("*model.Conversation")).Return(nil)
		f.repo.On("GetMessages", ctx, mock.Anything).Return([]model.Message{}, nil)
		f.repo.On("AddMessage", ctx, mock.AnythingOfType("*model.Message"), mock.Anything).Return(nil).Twice()
		f.provider.On("Generate", ctx, mock.AnythingOfType("*llm.GenerateRequest")).
			Return(&llm.GenerateResponse{Text: "the engine replies"}, nil)

		exchange, err := f.svc.SendMessage(ctx, &service.SendMessageRequest{
			Content: "what makes a good literature review?",
			Mode:    modes.Reviewer,
		})

		require.NoError(t, err)
		assert.NotEmpty(t, exchange.ConversationID)
		assert.Equal(t, model.RoleUser, exchange.UserMessage.Role)
		assert.Equal(t, "what makes a good literature review?", exchange.UserMessage.Content)
		assert.Equal(t, model.RoleAssistant, exchange.AssistantMessage.Role)
		assert.Equal(t, "the engine replies", exchange.AssistantMessage.Content)
		assert.False(t, exchange.AssistantMessage.IsHumanized)
	})

	t.Run("EmptyInputIsRejectedWithNoStateChange", func(t *testing.T) {
		f := newChatFixture(t, 10)

		_, err := f.svc.SendMessage(ctx, &service.SendMessageRequest{Content: "   "})

		require.Error(t, err)
		assert.True(t, errors.Is(err, app_errors.ErrValidation))
		f.repo.AssertNotCalled(t, "CreateConversation")
		f.repo.AssertNotCalled(t, "AddMessage")
		f.provider.AssertNotCalled(t, "Generate")
	})

	t.Run("UnknownModeIsRejected", func(t *testing.T) {
		f := newChatFixture(t, 10)

		_, err := f.svc.SendMessage(ctx, &service.SendMessageRequest{
			Content: "hello",
			Mode:    "poet",
		})

		require.Error(t, err)
		assert.True(t, errors.Is(err, app_errors.ErrValidation))
		f.provider.AssertNotCalled(t, "Generate")
	})

	t.Run("HistoryIsBoundedToLastWindowInOrder", func(t *testing.T) {
		f := newChatFixture(t, 10)
		prior := priorMessages(15)

		f.repo.On("GetConversation", ctx, "conv-1").Return(existingConversation("conv-1", modes.Reviewer), nil)
		f.repo.On("GetMessages", ctx, "conv-1").Return(prior, nil)
		f.repo.On("AddMessage", ctx, mock.Anything, "conv-1").Return(nil).Twice()

		var captured *llm.GenerateRequest
		f.provider.On("Generate", ctx, mock.AnythingOfType("*llm.GenerateRequest")).
			Run(func(args mock.Arguments) {
				captured = args.Get(1).(*llm.GenerateRequest)
			}).
			Return(&llm.GenerateResponse{Text: "ok"}, nil)

		_, err := f.svc.SendMessage(ctx, &service.SendMessageRequest{
			ConversationID: "conv-1",
			Content:        "turn 15",
			Mode:           modes.Reviewer,
		})

		require.NoError(t, err)
		require.NotNil(t, captured)
		require.Len(t, captured.History, 10)
		for i, h := range captured.History {
			assert.Equal(t, prior[5+i].Content, h.Content)
			assert.Equal(t, prior[5+i].Role, h.Role)
		}
		assert.Equal(t, "turn 15", captured.Prompt)
	})

	t.Run("UserMessageIsSavedBeforeEngineCall", func(t *testing.T) {
		f := newChatFixture(t, 10)
		var calls []string

		f.repo.On("GetConversation", ctx, "conv-1").Return(existingConversation("conv-1", modes.Reviewer), nil)
		f.repo.On("GetMessages", ctx, "conv-1").Return([]model.Message{}, nil)
		f.repo.On("AddMessage", ctx, mock.Anything, "conv-1").
			Run(func(args mock.Arguments) {
				msg := args.Get(1).(*model.Message)
				calls = append(calls, "add:"+string(msg.Role))
			}).
			Return(nil).Twice()
		f.provider.On("Generate", ctx, mock.Anything).
			Run(func(mock.Arguments) { calls = append(calls, "generate") }).
			Return(&llm.GenerateResponse{Text: "ok"}, nil)

		_, err := f.svc.SendMessage(ctx, &service.SendMessageRequest{
			ConversationID: "conv-1",
			Content:        "question",
			Mode:           modes.Reviewer,
		})

		require.NoError(t, err)
		assert.Equal(t, []string{"add:user", "generate", "add:assistant"}, calls)
	})

	t.Run("EngineFailureBecomesVisibleErrorTurn", func(t *testing.T) {
		f := newChatFixture(t, 10)

		f.repo.On("GetConversation", ctx, "conv-1").Return(existingConversation("conv-1", modes.Reviewer), nil)
		f.repo.On("GetMessages", ctx, "conv-1").Return([]model.Message{}, nil)
		f.repo.On("AddMessage", ctx, mock.Anything, "conv-1").Return(nil).Twice()
		f.provider.On("Generate", ctx, mock.Anything).
			Return(nil, fmt.Errorf("%w: API_KEY_INVALID", llm.ErrCredential))

		exchange, err := f.svc.SendMessage(ctx, &service.SendMessageRequest{
			ConversationID: "conv-1",
			Content:        "question",
			Mode:           modes.Reviewer,
		})

		require.NoError(t, err)
		assert.Equal(t, model.RoleAssistant, exchange.AssistantMessage.Role)
		assert.Contains(t, exchange.AssistantMessage.Content, "rejected the configured API credential")
	})

	t.Run("ConnectivityFailureHasItsOwnErrorTurn", func(t *testing.T) {
		f := newChatFixture(t, 10)

		f.repo.On("GetConversation", ctx, "conv-1").Return(existingConversation("conv-1", modes.Reviewer), nil)
		f.repo.On("GetMessages", ctx, "conv-1").Return([]model.Message{}, nil)
		f.repo.On("AddMessage", ctx, mock.Anything, "conv-1").Return(nil).Twice()
		f.provider.On("Generate", ctx, mock.Anything).
			Return(nil, fmt.Errorf("%w: dial tcp", llm.ErrConnectivity))

		exchange, err := f.svc.SendMessage(ctx, &service.SendMessageRequest{
			ConversationID: "conv-1",
			Content:        "question",
			Mode:           modes.Reviewer,
		})

		require.NoError(t, err)
		assert.Contains(t, exchange.AssistantMessage.Content, "Could not reach the academic engine")
	})

	t.Run("AttachmentOnlyUsesFilePlaceholder", func(t *testing.T) {
		f := newChatFixture(t, 10)

		f.repo.On("CreateConversation", ctx, mock.Anything).Return(nil)
		f.repo.On("GetMessages", ctx, mock.Anything).Return([]model.Message{}, nil)
		f.repo.On("AddMessage", ctx, mock.Anything, mock.Anything).Return(nil).Twice()

		var captured *llm.GenerateRequest
		f.provider.On("Generate", ctx, mock.Anything).
			Run(func(args mock.Arguments) { captured = args.Get(1).(*llm.GenerateRequest) }).
			Return(&llm.GenerateResponse{Text: "summary"}, nil)

		exchange, err := f.svc.SendMessage(ctx, &service.SendMessageRequest{
			Mode:       modes.Analyst,
			Attachment: &model.AttachmentPayload{Data: "AAAA", MIMEType: "application/pdf"},
		})

		require.NoError(t, err)
		assert.Equal(t, "Please analyze the attached file.", exchange.UserMessage.Content)
		require.NotNil(t, captured)
		require.NotNil(t, captured.Attachment)
		assert.Equal(t, "application/pdf", captured.Attachment.MIMEType)
	})

	t.Run("AudioAttachmentUsesRecordingPlaceholder", func(t *testing.T) {
		f := newChatFixture(t, 10)

		f.repo.On("CreateConversation", ctx, mock.Anything).Return(nil)
		f.repo.On("GetMessages", ctx, mock.Anything).Return([]model.Message{}, nil)
		f.repo.On("AddMessage", ctx, mock.Anything, mock.Anything).Return(nil).Twice()
		f.provider.On("Generate", ctx, mock.Anything).
			Return(&llm.GenerateResponse{Text: "transcript"}, nil)

		exchange, err := f.svc.SendMessage(ctx, &service.SendMessageRequest{
			Mode:       modes.Analyst,
			Attachment: &model.AttachmentPayload{Data: "AAAA", MIMEType: "audio/webm"},
		})

		require.NoError(t, err)
		assert.Equal(t, "Please analyze the attached recording.", exchange.UserMessage.Content)
	})

	t.Run("DefaultModeIsReviewer", func(t *testing.T) {
		f := newChatFixture(t, 10)

		f.repo.On("CreateConversation", ctx, mock.Anything).Return(nil)
		f.repo.On("GetMessages", ctx, mock.Anything).Return([]model.Message{}, nil)
		f.repo.On("AddMessage", ctx, mock.Anything, mock.Anything).Return(nil).Twice()
		f.provider.On("Generate", ctx, mock.Anything).
			Return(&llm.GenerateResponse{Text: "ok"}, nil)

		exchange, err := f.svc.SendMessage(ctx, &service.SendMessageRequest{Content: "hello"})

		require.NoError(t, err)
		assert.Equal(t, modes.Reviewer, exchange.UserMessage.Mode)
	})

	t.Run("LongFirstMessageTruncatesTitle", func(t *testing.T) {
		f := newChatFixture(t, 10)

		var created *model.Conversation
		f.repo.On("CreateConversation", ctx, mock.Anything).
			Run(func(args mock.Arguments) { created = args.Get(1).(*model.Conversation) }).
			Return(nil)
		f.repo.On("GetMessages", ctx, mock.Anything).Return([]model.Message{}, nil)
		f.repo.On("AddMessage", ctx, mock.Anything, mock.Anything).Return(nil).Twice()
		f.provider.On("Generate", ctx, mock.Anything).
			Return(&llm.GenerateResponse{Text: "ok"}, nil)

		long := strings.Repeat("a", 120)
		_, err := f.svc.SendMessage(ctx, &service.SendMessageRequest{Content: long, Mode: modes.General})

		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Len(t, []rune(created.Title), 50)
	})

	t.Run("SecondConcurrentSendIsRejected", func(t *testing.T) {
		f := newChatFixture(t, 10)

		started := make(chan struct{})
		release := make(chan struct{})
		done := make(chan error, 1)

		f.repo.On("GetConversation", mock.Anything, "conv-1").Return(existingConversation("conv-1", modes.Reviewer), nil)
		f.repo.On("GetMessages", mock.Anything, "conv-1").Return([]model.Message{}, nil)
		f.repo.On("AddMessage", mock.Anything, mock.Anything, "conv-1").Return(nil)
		f.provider.On("Generate", mock.Anything, mock.Anything).
			Run(func(mock.Arguments) {
				close(started)
				<-release
			}).
			Return(&llm.GenerateResponse{Text: "ok"}, nil)

		go func() {
			_, err := f.svc.SendMessage(context.Background(), &service.SendMessageRequest{
				ConversationID: "conv-1",
				Content:        "first",
				Mode:           modes.Reviewer,
			})
			done <- err
		}()

		<-started
		_, err := f.svc.SendMessage(context.Background(), &service.SendMessageRequest{
			ConversationID: "conv-1",
			Content:        "second",
			Mode:           modes.Reviewer,
		})
		assert.True(t, errors.Is(err, app_errors.ErrConflict))

		close(release)
		require.NoError(t, <-done)
	})

	t.Run("SendAfterSettleSucceeds", func(t *testing.T) {
		f := newChatFixture(t, 10)

		f.repo.On("GetConversation", ctx, "conv-1").Return(existingConversation("conv-1", modes.Reviewer), nil)
		f.repo.On("GetMessages", ctx, "conv-1").Return([]model.Message{}, nil)
		f.repo.On("AddMessage", ctx, mock.Anything, "conv-1").Return(nil)
		f.provider.On("Generate", ctx, mock.Anything).
			Return(&llm.GenerateResponse{Text: "ok"}, nil)

		for i := 0; i < 2; i++ {
			_, err := f.svc.SendMessage(ctx, &service.SendMessageRequest{
				ConversationID: "conv-1",
				Content:        "again",
				Mode:           modes.Reviewer,
			})
			require.NoError(t, err)
		}
	})
}

func TestChatService_Humanize(t *testing.T) {
	ctx := context.Background()

	target := &model.Message{
		ID:      "msg-2",
		Role:    model.RoleAssistant,
		Content: "a perfectly mechanical paragraph",
		Mode:    modes.Reviewer,
	}

	t.Run("ForcesHumanizerModeWithNoHistory", func(t *testing.T) {
		f := newChatFixture(t, 10)

		f.repo.On("GetConversation", ctx, "conv-1").Return(existingConversation("conv-1", modes.Reviewer), nil)
		f.repo.On("GetMessage", ctx, "conv-1", "msg-2").Return(target, nil)
		f.repo.On("AddMessage", ctx, mock.Anything, "conv-1").Return(nil)

		var captured *llm.GenerateRequest
		f.provider.On("Generate", ctx, mock.Anything).
			Run(func(args mock.Arguments) { captured = args.Get(1).(*llm.GenerateRequest) }).
			Return(&llm.GenerateResponse{Text: "a warm, human paragraph"}, nil)

		msg, err := f.svc.Humanize(ctx, "conv-1", "msg-2")

		require.NoError(t, err)
		assert.True(t, msg.IsHumanized)
		assert.Equal(t, modes.Humanizer, msg.Mode)
		assert.Equal(t, model.RoleAssistant, msg.Role)
		assert.Equal(t, "a warm, human paragraph", msg.Content)

		require.NotNil(t, captured)
		assert.Empty(t, captured.History)
		assert.Contains(t, captured.Prompt, target.Content)
		assert.InDelta(t, 0.9, captured.Temperature, 0.001)
		f.repo.AssertNotCalled(t, "GetMessages")
	})

	t.Run("UserMessageCannotBeHumanized", func(t *testing.T) {
		f := newChatFixture(t, 10)

		f.repo.On("GetConversation", ctx, "conv-1").Return(existingConversation("conv-1", modes.Reviewer), nil)
		f.repo.On("GetMessage", ctx, "conv-1", "msg-1").
			Return(&model.Message{ID: "msg-1", Role: model.RoleUser, Content: "mine"}, nil)

		_, err := f.svc.Humanize(ctx, "conv-1", "msg-1")

		require.Error(t, err)
		assert.True(t, errors.Is(err, app_errors.ErrValidation))
		f.provider.AssertNotCalled(t, "Generate")
	})

	t.Run("MissingMessageIsNotFound", func(t *testing.T) {
		f := newChatFixture(t, 10)

		f.repo.On("GetConversation", ctx, "conv-1").Return(existingConversation("conv-1", modes.Reviewer), nil)
		f.repo.On("GetMessage", ctx, "conv-1", "ghost").Return(nil, repository.ErrNotFound)

		_, err := f.svc.Humanize(ctx, "conv-1", "ghost")

		assert.True(t, errors.Is(err, app_errors.ErrNotFound))
	})

	t.Run("MissingConversationIsNotFound", func(t *testing.T) {
		f := newChatFixture(t, 10)

		f.repo.On("GetConversation", ctx, "ghost").Return(nil, repository.ErrNotFound)

		_, err := f.svc.Humanize(ctx, "ghost", "msg-2")

		assert.True(t, errors.Is(err, app_errors.ErrNotFound))
	})

	t.Run("EngineFailureStillAppendsErrorTurn", func(t *testing.T) {
		f := newChatFixture(t, 10)

		f.repo.On("GetConversation", ctx, "conv-1").Return(existingConversation("conv-1", modes.Reviewer), nil)
		f.repo.On("GetMessage", ctx, "conv-1", "msg-2").Return(target, nil)
		f.repo.On("AddMessage", ctx, mock.Anything, "conv-1").Return(nil)
		f.provider.On("Generate", ctx, mock.Anything).Return(nil, llm.ErrEmptyResponse)

		msg, err := f.svc.Humanize(ctx, "conv-1", "msg-2")

		require.NoError(t, err)
		assert.Contains(t, msg.Content, "empty response")
		assert.False(t, msg.IsHumanized)
	})
}

func TestChatService_ConversationManagement(t *testing.T) {
	ctx := context.Background()

	t.Run("UpdateTitleRejectsEmpty", func(t *testing.T) {
		f := newChatFixture(t, 10)

		err := f.svc.UpdateConversationTitle(ctx, "conv-1", "")

		assert.True(t, errors.Is(err, app_errors.ErrValidation))
		f.repo.AssertNotCalled(t, "UpdateConversationTitle")
	})

	t.Run("UpdateTitleMapsMissingConversation", func(t *testing.T) {
		f := newChatFixture(t, 10)
		f.repo.On("UpdateConversationTitle", ctx, "ghost", "New title").Return(repository.ErrNotFound)

		err := f.svc.UpdateConversationTitle(ctx, "ghost", "New title")

		assert.True(t, errors.Is(err, app_errors.ErrNotFound))
	})

	t.Run("ClearRequiresExistingConversation", func(t *testing.T) {
		f := newChatFixture(t, 10)
		f.repo.On("GetConversation", ctx, "ghost").Return(nil, repository.ErrNotFound)

		err := f.svc.ClearConversation(ctx, "ghost")

		assert.True(t, errors.Is(err, app_errors.ErrNotFound))
		f.repo.AssertNotCalled(t, "ClearMessages")
	})

	t.Run("ClearDropsMessages", func(t *testing.T) {
		f := newChatFixture(t, 10)
		f.repo.On("GetConversation", ctx, "conv-1").Return(existingConversation("conv-1", modes.Reviewer), nil)
		f.repo.On("ClearMessages", ctx, "conv-1").Return(nil)

		require.NoError(t, f.svc.ClearConversation(ctx, "conv-1"))
	})

	t.Run("GetFullConversation", func(t *testing.T) {
		f := newChatFixture(t, 10)
		f.repo.On("GetConversation", ctx, "conv-1").Return(existingConversation("conv-1", modes.Reviewer), nil)
		f.repo.On("GetMessages", ctx, "conv-1").Return(priorMessages(3), nil)

		full, err := f.svc.GetFullConversation(ctx, "conv-1")

		require.NoError(t, err)
		assert.Equal(t, "conv-1", full.Conversation.ID)
		assert.Len(t, full.Messages, 3)
	})

	t.Run("DeleteMapsMissingConversation", func(t *testing.T) {
		f := newChatFixture(t, 10)
		f.repo.On("DeleteConversation", ctx, "ghost").Return(repository.ErrNotFound)

		err := f.svc.DeleteConversation(ctx, "ghost")

		assert.True(t, errors.Is(err, app_errors.ErrNotFound))
	})
}

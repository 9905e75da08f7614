package repository_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scholar-ai/backend/internal/model"
	"scholar-ai/backend/internal/modes"
	"scholar-ai/backend/internal/repository"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return db, mock
}

func TestSQLiteRepository_Conversations(t *testing.T) {
	ctx := context.Background()

	t.Run("CreateConversation", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewSQLiteRepository(db)

		conv := &model.Conversation{
			ID:        "conv-1",
			Title:     "New research",
			Mode:      modes.Reviewer,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}

		mock.ExpectExec("INSERT INTO conversations").
			WithArgs(conv.ID, conv.Title, "reviewer", conv.CreatedAt, conv.UpdatedAt).
			WillReturnResult(sqlmock.NewResult(1, 1))

		require.NoError(t, repo.CreateConversation(ctx, conv))
	})

	t.Run("GetConversation", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewSQLiteRepository(db)

		now := time.Now()
		rows := sqlmock.NewRows([]string{"id", "title", "mode", "created_at", "updated_at"}).
			AddRow("conv-1", "New research", "analyst", now, now)
		mock.ExpectQuery("SELECT id, title, mode, created_at, updated_at FROM conversations WHERE id").
			WithArgs("conv-1").
			WillReturnRows(rows)

		conv, err := repo.GetConversation(ctx, "conv-1")

		require.NoError(t, err)
		assert.Equal(t, "conv-1", conv.ID)
		assert.Equal(t, modes.Analyst, conv.Mode)
	})

	t.Run("GetConversationNotFound", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewSQLiteRepository(db)

		mock.ExpectQuery("SELECT id, title, mode, created_at, updated_at FROM conversations WHERE id").
			WithArgs("ghost").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetConversation(ctx, "ghost")

		assert.True(t, errors.Is(err, repository.ErrNotFound))
	})

	t.Run("GetConversationsOrderedByRecency", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewSQLiteRepository(db)

		now := time.Now()
		rows := sqlmock.NewRows([]string{"id", "title", "mode", "created_at", "updated_at"}).
			AddRow("conv-2", "Newer", "general", now, now).
			AddRow("conv-1", "Older", "reviewer", now.Add(-time.Hour), now.Add(-time.Hour))
		mock.ExpectQuery("SELECT id, title, mode, created_at, updated_at FROM conversations ORDER BY updated_at DESC").
			WillReturnRows(rows)

		convs, err := repo.GetConversations(ctx)

		require.NoError(t, err)
		require.Len(t, convs, 2)
		assert.Equal(t, "conv-2", convs[0].ID)
	})

	t.Run("UpdateTitleMissingRowIsNotFound", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewSQLiteRepository(db)

		mock.ExpectExec("UPDATE conversations SET title").
			WithArgs("New title", sqlmock.AnyArg(), "ghost").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateConversationTitle(ctx, "ghost", "New title")

		assert.True(t, errors.Is(err, repository.ErrNotFound))
	})

	t.Run("DeleteConversation", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewSQLiteRepository(db)

		mock.ExpectExec("DELETE FROM conversations WHERE id").
			WithArgs("conv-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.DeleteConversation(ctx, "conv-1"))
	})
}

func TestSQLiteRepository_Messages(t *testing.T) {
	ctx := context.Background()

	t.Run("AddMessageTouchesConversationInOneTransaction", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewSQLiteRepository(db)

		msg := &model.Message{
			ID:        "msg-1",
			Role:      model.RoleUser,
			Content:   "a question",
			Mode:      modes.Reviewer,
			Timestamp: time.Now(),
		}

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO messages").
			WithArgs(msg.ID, "conv-1", "user", msg.Content, "reviewer", msg.Timestamp, nil, false).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec("UPDATE conversations SET updated_at").
			WithArgs(sqlmock.AnyArg(), "conv-1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, repo.AddMessage(ctx, msg, "conv-1"))
	})

	t.Run("AddMessageEncodesGrounding", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewSQLiteRepository(db)

		msg := &model.Message{
			ID:        "msg-2",
			Role:      model.RoleAssistant,
			Content:   "an answer",
			Mode:      modes.Reviewer,
			Timestamp: time.Now(),
			GroundingURLs: []model.GroundingURL{
				{URI: "https://a.example", Title: "A"},
			},
		}

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO messages").
			WithArgs(msg.ID, "conv-1", "assistant", msg.Content, "reviewer", msg.Timestamp,
				`[{"uri":"https://a.example","title":"A"}]`, false).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec("UPDATE conversations SET updated_at").
			WithArgs(sqlmock.AnyArg(), "conv-1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, repo.AddMessage(ctx, msg, "conv-1"))
	})

	t.Run("AddMessageRollsBackOnInsertFailure", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewSQLiteRepository(db)

		msg := &model.Message{ID: "msg-3", Role: model.RoleUser, Content: "x", Mode: modes.General, Timestamp: time.Now()}

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO messages").
			WillReturnError(errors.New("constraint failed"))
		mock.ExpectRollback()

		assert.Error(t, repo.AddMessage(ctx, msg, "conv-1"))
	})

	t.Run("GetMessagesDecodesGrounding", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewSQLiteRepository(db)

		now := time.Now()
		rows := sqlmock.NewRows([]string{"id", "role", "content", "mode", "timestamp", "grounding_urls", "is_humanized"}).
			AddRow("msg-1", "user", "a question", "reviewer", now, nil, false).
			AddRow("msg-2", "assistant", "an answer", "reviewer", now,
				`[{"uri":"https://a.example","title":"A"}]`, false)
		mock.ExpectQuery("SELECT id, role, content, mode, timestamp, grounding_urls, is_humanized").
			WithArgs("conv-1").
			WillReturnRows(rows)

		msgs, err := repo.GetMessages(ctx, "conv-1")

		require.NoError(t, err)
		require.Len(t, msgs, 2)
		assert.Nil(t, msgs[0].GroundingURLs)
		require.Len(t, msgs[1].GroundingURLs, 1)
		assert.Equal(t, "https://a.example", msgs[1].GroundingURLs[0].URI)
	})

	t.Run("GetMessageNotFound", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewSQLiteRepository(db)

		mock.ExpectQuery("SELECT id, role, content, mode, timestamp, grounding_urls, is_humanized").
			WithArgs("conv-1", "ghost").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetMessage(ctx, "conv-1", "ghost")

		assert.True(t, errors.Is(err, repository.ErrNotFound))
	})

	t.Run("ClearMessages", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewSQLiteRepository(db)

		mock.ExpectExec("DELETE FROM messages WHERE conversation_id").
			WithArgs("conv-1").
			WillReturnResult(sqlmock.NewResult(0, 4))

		require.NoError(t, repo.ClearMessages(ctx, "conv-1"))
	})
}

func TestSettingsStore(t *testing.T) {
	ctx := context.Background()

	t.Run("GetReturnsValue", func(t *testing.T) {
		db, mock := newMockDB(t)
		store := repository.NewSettingsStore(db)

		mock.ExpectQuery("SELECT value FROM settings WHERE key").
			WithArgs("custom_instruction_general").
			WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("override text"))

		value, err := store.Get(ctx, "custom_instruction_general")

		require.NoError(t, err)
		assert.Equal(t, "override text", value)
	})

	t.Run("GetMissingKeyIsNotFound", func(t *testing.T) {
		db, mock := newMockDB(t)
		store := repository.NewSettingsStore(db)

		mock.ExpectQuery("SELECT value FROM settings WHERE key").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		_, err := store.Get(ctx, "missing")

		assert.True(t, errors.Is(err, repository.ErrNotFound))
	})

	t.Run("SetUpserts", func(t *testing.T) {
		db, mock := newMockDB(t)
		store := repository.NewSettingsStore(db)

		mock.ExpectExec("INSERT INTO settings").
			WithArgs("custom_instruction_general", "new text").
			WillReturnResult(sqlmock.NewResult(1, 1))

		require.NoError(t, store.Set(ctx, "custom_instruction_general", "new text"))
	})

	t.Run("DeleteIsIdempotent", func(t *testing.T) {
		db, mock := newMockDB(t)
		store := repository.NewSettingsStore(db)

		mock.ExpectExec("DELETE FROM settings WHERE key").
			WithArgs("custom_instruction_general").
			WillReturnResult(sqlmock.NewResult(0, 0))

		require.NoError(t, store.Delete(ctx, "custom_instruction_general"))
	})
}

package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"scholar-ai/backend/internal/model"
	"scholar-ai/backend/internal/modes"
)

type sqliteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository returns a Repository backed by the given SQLite handle.
func NewSQLiteRepository(db *sql.DB) Repository {
	return &sqliteRepository{db: db}
}

// NewSettingsStore returns the key-value SettingsStore view over the same
// database.
func NewSettingsStore(db *sql.DB) SettingsStore {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) CreateConversation(ctx context.Context, conv *model.Conversation) error {
	query := "INSERT INTO conversations (id, title, mode, created_at, updated_at) VALUES (?, ?, ?, ?, ?)"
	_, err := r.db.ExecContext(ctx, query, conv.ID, conv.Title, string(conv.Mode), conv.CreatedAt, conv.UpdatedAt)
	return err
}

func (r *sqliteRepository) GetConversation(ctx context.Context, conversationID string) (*model.Conversation, error) {
	query := "SELECT id, title, mode, created_at, updated_at FROM conversations WHERE id = ?"
	row := r.db.QueryRowContext(ctx, query, conversationID)

	var conv model.Conversation
	var mode string
	err := row.Scan(&conv.ID, &conv.Title, &mode, &conv.CreatedAt, &conv.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	conv.Mode = modes.ID(mode)
	return &conv, nil
}

func (r *sqliteRepository) GetConversations(ctx context.Context) ([]*model.Conversation, error) {
	query := "SELECT id, title, mode, created_at, updated_at FROM conversations ORDER BY updated_at DESC"
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var convs []*model.Conversation
	for rows.Next() {
		var conv model.Conversation
		var mode string
		if err := rows.Scan(&conv.ID, &conv.Title, &mode, &conv.CreatedAt, &conv.UpdatedAt); err != nil {
			return nil, err
		}
		conv.Mode = modes.ID(mode)
		convs = append(convs, &conv)
	}
	return convs, rows.Err()
}

func (r *sqliteRepository) UpdateConversationTitle(ctx context.Context, conversationID, newTitle string) error {
	query := "UPDATE conversations SET title = ?, updated_at = ? WHERE id = ?"
	res, err := r.db.ExecContext(ctx, query, newTitle, time.Now().UTC(), conversationID)
	if err != nil {
		return err
	}
	return requireRows(res)
}

func (r *sqliteRepository) UpdateConversationMode(ctx context.Context, conversationID string, mode string) error {
	query := "UPDATE conversations SET mode = ?, updated_at = ? WHERE id = ?"
	res, err := r.db.ExecContext(ctx, query, mode, time.Now().UTC(), conversationID)
	if err != nil {
		return err
	}
	return requireRows(res)
}

func (r *sqliteRepository) DeleteConversation(ctx context.Context, conversationID string) error {
	query := "DELETE FROM conversations WHERE id = ?"
	res, err := r.db.ExecContext(ctx, query, conversationID)
	if err != nil {
		return err
	}
	return requireRows(res)
}

// AddMessage inserts the message and touches the conversation's updated_at in
// one transaction, so a conversation's recency always reflects its last turn.
func (r *sqliteRepository) AddMessage(ctx context.Context, message *model.Message, conversationID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	var grounding sql.NullString
	if len(message.GroundingURLs) > 0 {
		encoded, err := json.Marshal(message.GroundingURLs)
		if err != nil {
			return fmt.Errorf("could not encode grounding urls: %w", err)
		}
		grounding = sql.NullString{String: string(encoded), Valid: true}
	}

	insertQuery := `
		INSERT INTO messages (id, conversation_id, role, content, mode, timestamp, grounding_urls, is_humanized)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = tx.ExecContext(ctx, insertQuery,
		message.ID,
		conversationID,
		string(message.Role),
		message.Content,
		string(message.Mode),
		message.Timestamp,
		grounding,
		message.IsHumanized,
	)
	if err != nil {
		return fmt.Errorf("could not insert message: %w", err)
	}

	touchQuery := "UPDATE conversations SET updated_at = ? WHERE id = ?"
	if _, err = tx.ExecContext(ctx, touchQuery, time.Now().UTC(), conversationID); err != nil {
		return fmt.Errorf("could not update conversation timestamp: %w", err)
	}

	return tx.Commit()
}

func (r *sqliteRepository) GetMessages(ctx context.Context, conversationID string) ([]model.Message, error) {
	query := `
		SELECT id, role, content, mode, timestamp, grounding_urls, is_humanized
		FROM messages
		WHERE conversation_id = ?
		ORDER BY timestamp ASC, id ASC
	`
	rows, err := r.db.QueryContext(ctx, query, conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []model.Message
	for rows.Next() {
		msg, err := scanMessage(rows.Scan)
		if err != nil {
			return nil, err
		}
		messages = append(messages, *msg)
	}
	return messages, rows.Err()
}

func (r *sqliteRepository) GetMessage(ctx context.Context, conversationID, messageID string) (*model.Message, error) {
	query := `
		SELECT id, role, content, mode, timestamp, grounding_urls, is_humanized
		FROM messages
		WHERE conversation_id = ? AND id = ?
	`
	row := r.db.QueryRowContext(ctx, query, conversationID, messageID)
	msg, err := scanMessage(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return msg, nil
}

func (r *sqliteRepository) ClearMessages(ctx context.Context, conversationID string) error {
	query := "DELETE FROM messages WHERE conversation_id = ?"
	_, err := r.db.ExecContext(ctx, query, conversationID)
	return err
}

func scanMessage(scan func(dest ...any) error) (*model.Message, error) {
	var msg model.Message
	var role, mode string
	var grounding sql.NullString

	if err := scan(&msg.ID, &role, &msg.Content, &mode, &msg.Timestamp, &grounding, &msg.IsHumanized); err != nil {
		return nil, err
	}
	msg.Role = model.Role(role)
	msg.Mode = modes.ID(mode)
	if grounding.Valid {
		if err := json.Unmarshal([]byte(grounding.String), &msg.GroundingURLs); err != nil {
			return nil, fmt.Errorf("could not decode grounding urls: %w", err)
		}
	}
	return &msg, nil
}

func requireRows(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// --- SettingsStore ---

func (r *sqliteRepository) Get(ctx context.Context, key string) (string, error) {
	query := "SELECT value FROM settings WHERE key = ?"
	var value string
	err := r.db.QueryRowContext(ctx, query, key).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", ErrNotFound
		}
		return "", err
	}
	return value, nil
}

func (r *sqliteRepository) Set(ctx context.Context, key, value string) error {
	query := "INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value"
	_, err := r.db.ExecContext(ctx, query, key, value)
	return err
}

func (r *sqliteRepository) Delete(ctx context.Context, key string) error {
	query := "DELETE FROM settings WHERE key = ?"
	_, err := r.db.ExecContext(ctx, query, key)
	return err
}

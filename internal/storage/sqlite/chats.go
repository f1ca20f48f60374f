package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sandevgo/musebot/internal/core"
	"github.com/sandevgo/musebot/pkg/log"
)

type ChatRepo struct {
	db *sql.DB
}

func NewChatRepo(db *sql.DB) *ChatRepo {
	return &ChatRepo{db: db}
}

func (r *ChatRepo) CreateChat(ctx context.Context, chat core.Chat) error {
	query := `INSERT INTO chats (id, session_id, title, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		chat.ID, chat.SessionID, chat.Title, chat.CreatedAt.UTC(), chat.UpdatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to insert chat: %w", err)
	}
	return nil
}

func (r *ChatRepo) ListChats(ctx context.Context, sessionID string) ([]core.ChatSummary, error) {
	query := `
		SELECT c.id, c.title, c.created_at, c.updated_at, COUNT(e.id)
		FROM chats c
		LEFT JOIN exchanges e ON e.chat_id = c.id
		WHERE c.session_id = ?
		GROUP BY c.id
		ORDER BY c.updated_at DESC`

	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query chats: %w", err)
	}
	defer rows.Close()

	var chats []core.ChatSummary
	for rows.Next() {
		var c core.ChatSummary
		if err := rows.Scan(&c.ID, &c.Title, &c.CreatedAt, &c.UpdatedAt, &c.ExchangeCount); err != nil {
			return nil, fmt.Errorf("failed to scan chat: %w", err)
		}
		chats = append(chats, c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	log.FromCtx(ctx).Debug().Int("count", len(chats)).Msg("listed chats")
	return chats, nil
}

func (r *ChatRepo) GetHistory(ctx context.Context, chatID string) ([]core.Exchange, error) {
	query := `SELECT prompt, response, created_at FROM exchanges WHERE chat_id = ? ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query, chatID)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var history []core.Exchange
	for rows.Next() {
		var ex core.Exchange
		if err := rows.Scan(&ex.Prompt, &ex.Response, &ex.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan exchange: %w", err)
		}
		history = append(history, ex)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return history, nil
}

func (r *ChatRepo) RenameChat(ctx context.Context, chatID, title string) error {
	query := `UPDATE chats SET title = ?, updated_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, title, time.Now().UTC(), chatID)
	if err != nil {
		return fmt.Errorf("failed to rename chat: %w", err)
	}
	return nil
}

// DeleteChat removes the chat and its exchanges in one transaction.
// Deleting an absent chat is a no-op.
func (r *ChatRepo) DeleteChat(ctx context.Context, chatID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM exchanges WHERE chat_id = ?`, chatID); err != nil {
		return fmt.Errorf("failed to delete exchanges: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM chats WHERE id = ?`, chatID); err != nil {
		return fmt.Errorf("failed to delete chat: %w", err)
	}

	return tx.Commit()
}

// AppendExchange records one finished turn and bumps the chat's
// updated_at, all-or-nothing.
func (r *ChatRepo) AppendExchange(ctx context.Context, chatID string, ex core.Exchange) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	insert := `INSERT INTO exchanges (chat_id, prompt, response, created_at) VALUES (?, ?, ?, ?)`
	if _, err := tx.ExecContext(ctx, insert, chatID, ex.Prompt, ex.Response, ex.CreatedAt.UTC()); err != nil {
		return fmt.Errorf("failed to insert exchange: %w", err)
	}

	// MAX keeps updated_at monotonically non-decreasing even if clocks
	// hand us an older timestamp.
	bump := `UPDATE chats SET updated_at = MAX(updated_at, ?) WHERE id = ?`
	res, err := tx.ExecContext(ctx, bump, ex.CreatedAt.UTC(), chatID)
	if err != nil {
		return fmt.Errorf("failed to bump chat: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("chat not found: %s", chatID)
	}

	return tx.Commit()
}

func (r *ChatRepo) PruneIdleChats(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-olderThan)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	del := `DELETE FROM exchanges WHERE chat_id IN (SELECT id FROM chats WHERE updated_at < ?)`
	if _, err := tx.ExecContext(ctx, del, cutoff); err != nil {
		return 0, fmt.Errorf("failed to prune exchanges: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM chats WHERE updated_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune chats: %w", err)
	}

	pruned, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return pruned, tx.Commit()
}

package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sandevgo/musebot/internal/core"
	"github.com/sandevgo/musebot/pkg/log"
)

type CentralRepo struct {
	db    *sql.DB
	limit int
}

func NewCentralRepo(db *sql.DB) *CentralRepo {
	return &CentralRepo{db: db, limit: core.CentralMemoryLimit}
}

// Append inserts the exchange and evicts the oldest entries past the
// ring-buffer limit inside the same transaction.
func (r *CentralRepo) Append(ctx context.Context, sessionID string, ex core.Exchange) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	insert := `INSERT INTO central_memory (session_id, prompt, response, created_at) VALUES (?, ?, ?, ?)`
	if _, err := tx.ExecContext(ctx, insert, sessionID, ex.Prompt, ex.Response, ex.CreatedAt.UTC()); err != nil {
		return fmt.Errorf("failed to insert central memory entry: %w", err)
	}

	evict := `
		DELETE FROM central_memory
		WHERE session_id = ?
		  AND id NOT IN (
			SELECT id FROM central_memory WHERE session_id = ? ORDER BY id DESC LIMIT ?
		  )`
	if _, err := tx.ExecContext(ctx, evict, sessionID, sessionID, r.limit); err != nil {
		return fmt.Errorf("failed to evict central memory overflow: %w", err)
	}

	return tx.Commit()
}

func (r *CentralRepo) Load(ctx context.Context, sessionID string) ([]core.Exchange, error) {
	query := `SELECT prompt, response, created_at FROM central_memory WHERE session_id = ? ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query central memory: %w", err)
	}
	defer rows.Close()

	var entries []core.Exchange
	for rows.Next() {
		var ex core.Exchange
		if err := rows.Scan(&ex.Prompt, &ex.Response, &ex.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan central memory entry: %w", err)
		}
		entries = append(entries, ex)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	log.FromCtx(ctx).Debug().Int("count", len(entries)).Msg("loaded central memory")
	return entries, nil
}

func (r *CentralRepo) Clear(ctx context.Context, sessionID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM central_memory WHERE session_id = ?`, sessionID); err != nil {
		return fmt.Errorf("failed to clear central memory: %w", err)
	}
	return nil
}

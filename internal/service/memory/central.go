package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/sandevgo/musebot/internal/core"
)

// Central fronts the per-session cross-chat memory store.
type Central struct {
	repo core.CentralRepository
}

func NewCentral(repo core.CentralRepository) *Central {
	return &Central{repo: repo}
}

func (c *Central) Append(ctx context.Context, sessionID, prompt, response string) error {
	ex := core.Exchange{
		Prompt:    prompt,
		Response:  response,
		CreatedAt: time.Now().UTC(),
	}
	if err := c.repo.Append(ctx, sessionID, ex); err != nil {
		return fmt.Errorf("central memory append: %w", err)
	}
	return nil
}

func (c *Central) Load(ctx context.Context, sessionID string) ([]core.Exchange, error) {
	return c.repo.Load(ctx, sessionID)
}

// Recent returns the newest n entries, oldest first, ready for prompt
// rendering.
func (c *Central) Recent(ctx context.Context, sessionID string, n int) ([]core.Exchange, error) {
	entries, err := c.repo.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(entries) > n {
		entries = entries[len(entries)-n:]
	}
	return entries, nil
}

func (c *Central) Clear(ctx context.Context, sessionID string) error {
	return c.repo.Clear(ctx, sessionID)
}

package chats

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sandevgo/musebot/internal/core"
	"github.com/sandevgo/musebot/pkg/log"
)

// Controller manages the chat lifecycle and tracks each session's
// active chat. The active pointer is in-memory only: a restart simply
// starts every session without one.
type Controller struct {
	repo core.ChatRepository

	mu     sync.Mutex
	active map[string]string // sessionID -> chatID
}

func NewController(repo core.ChatRepository) *Controller {
	return &Controller{
		repo:   repo,
		active: make(map[string]string),
	}
}

// Create opens a new chat with the default title and makes it the
// session's active chat.
func (c *Controller) Create(ctx context.Context, sessionID string) (core.Chat, error) {
	now := time.Now().UTC()
	chat := core.Chat{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Title:     core.DefaultChatTitle,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := c.repo.CreateChat(ctx, chat); err != nil {
		return core.Chat{}, fmt.Errorf("create chat: %w", err)
	}

	c.SetActive(sessionID, chat.ID)
	return chat, nil
}

// List returns the session's chats, most recently updated first.
// Listing is best-effort: on storage failure it logs and shows an
// empty list rather than breaking the shell.
func (c *Controller) List(ctx context.Context, sessionID string) []core.ChatSummary {
	summaries, err := c.repo.ListChats(ctx, sessionID)
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("failed to list chats")
		return nil
	}
	return summaries
}

func (c *Controller) History(ctx context.Context, chatID string) ([]core.Exchange, error) {
	return c.repo.GetHistory(ctx, chatID)
}

func (c *Controller) Rename(ctx context.Context, chatID, title string) error {
	return c.repo.RenameChat(ctx, chatID, title)
}

// Delete removes a chat and clears any active pointer referencing it.
// Deleting an unknown chat is a no-op.
func (c *Controller) Delete(ctx context.Context, chatID string) error {
	if err := c.repo.DeleteChat(ctx, chatID); err != nil {
		return fmt.Errorf("delete chat: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for session, active := range c.active {
		if active == chatID {
			delete(c.active, session)
		}
	}
	return nil
}

func (c *Controller) SetActive(sessionID, chatID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active[sessionID] = chatID
}

func (c *Controller) Active(sessionID string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id, ok := c.active[sessionID]
	return id, ok
}

// EnsureActive returns the session's active chat, creating one first
// when the session has none.
func (c *Controller) EnsureActive(ctx context.Context, sessionID string) (string, error) {
	if id, ok := c.Active(sessionID); ok {
		return id, nil
	}

	chat, err := c.Create(ctx, sessionID)
	if err != nil {
		return "", err
	}
	return chat.ID, nil
}

func (c *Controller) Append(ctx context.Context, chatID string, ex core.Exchange) error {
	return c.repo.AppendExchange(ctx, chatID, ex)
}

// AutoTitle renames a chat after its first exchange. It only fires on
// the zero-to-one transition, so user renames are never overwritten.
func (c *Controller) AutoTitle(ctx context.Context, chatID, firstMessage string) error {
	history, err := c.repo.GetHistory(ctx, chatID)
	if err != nil {
		return fmt.Errorf("auto-title: %w", err)
	}
	if len(history) != 1 {
		return nil
	}
	return c.repo.RenameChat(ctx, chatID, Title(firstMessage))
}

package chats

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/sandevgo/musebot/internal/core"
	"github.com/sandevgo/musebot/internal/storage/sqlite"
	"github.com/stretchr/testify/require"
)

func newTestController(t *testing.T) *Controller {
	t.Helper()

	db, err := sqlite.NewDB(context.Background(), filepath.Join(t.TempDir(), "musebot.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewController(sqlite.NewChatRepo(db))
}

func TestController_CreateSetsActive(t *testing.T) {
	c := newTestController(t)
	ctx := context.Background()

	chat, err := c.Create(ctx, "s1")
	require.NoError(t, err)
	require.Equal(t, core.DefaultChatTitle, chat.Title)

	active, ok := c.Active("s1")
	require.True(t, ok)
	require.Equal(t, chat.ID, active)
}

func TestController_EnsureActive(t *testing.T) {
	c := newTestController(t)
	ctx := context.Background()

	first, err := c.EnsureActive(ctx, "s1")
	require.NoError(t, err)
	require.NotEmpty(t, first)

	// A second call must not create another chat.
	again, err := c.EnsureActive(ctx, "s1")
	require.NoError(t, err)
	require.Equal(t, first, again)
	require.Len(t, c.List(ctx, "s1"), 1)

	// Sessions do not share active chats.
	other, err := c.EnsureActive(ctx, "s2")
	require.NoError(t, err)
	require.NotEqual(t, first, other)
}

func TestController_AutoTitle(t *testing.T) {
	c := newTestController(t)
	ctx := context.Background()

	chat, err := c.Create(ctx, "s1")
	require.NoError(t, err)

	require.NoError(t, c.Append(ctx, chat.ID, core.Exchange{
		Prompt:    "what is the capital of France exactly",
		Response:  "Paris",
		CreatedAt: time.Now().UTC(),
	}))
	require.NoError(t, c.AutoTitle(ctx, chat.ID, "what is the capital of France exactly"))

	chats := c.List(ctx, "s1")
	require.Len(t, chats, 1)
	require.Equal(t, "what is the capital of France...", chats[0].Title)

	// Later exchanges must not retitle the chat.
	require.NoError(t, c.Rename(ctx, chat.ID, "My Chat"))
	require.NoError(t, c.Append(ctx, chat.ID, core.Exchange{
		Prompt:    "and of Germany",
		Response:  "Berlin",
		CreatedAt: time.Now().UTC(),
	}))
	require.NoError(t, c.AutoTitle(ctx, chat.ID, "and of Germany"))

	chats = c.List(ctx, "s1")
	require.Equal(t, "My Chat", chats[0].Title)
}

func TestController_DeleteClearsActive(t *testing.T) {
	c := newTestController(t)
	ctx := context.Background()

	chat, err := c.Create(ctx, "s1")
	require.NoError(t, err)

	require.NoError(t, c.Delete(ctx, chat.ID))

	_, ok := c.Active("s1")
	require.False(t, ok)

	// Deleting again is a no-op.
	require.NoError(t, c.Delete(ctx, chat.ID))
}

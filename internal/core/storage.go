package core

import (
	"context"
	"time"
)

type ChatRepository interface {
	CreateChat(ctx context.Context, chat Chat) error
	ListChats(ctx context.Context, sessionID string) ([]ChatSummary, error)
	GetHistory(ctx context.Context, chatID string) ([]Exchange, error)
	RenameChat(ctx context.Context, chatID, title string) error
	DeleteChat(ctx context.Context, chatID string) error
	AppendExchange(ctx context.Context, chatID string, ex Exchange) error
	PruneIdleChats(ctx context.Context, olderThan time.Duration) (int64, error)
}

type CentralRepository interface {
	Append(ctx context.Context, sessionID string, ex Exchange) error
	Load(ctx context.Context, sessionID string) ([]Exchange, error)
	Clear(ctx context.Context, sessionID string) error
}

package maintenance

import (
	"context"
	"time"

	"github.com/sandevgo/musebot/internal/core"
	"github.com/sandevgo/musebot/pkg/log"
)

const defaultPruneInterval = time.Hour

// Pruner periodically deletes chats whose last activity is older than
// the configured TTL.
type Pruner struct {
	repo     core.ChatRepository
	ttl      time.Duration
	interval time.Duration
	done     chan struct{}
}

func NewPruner(repo core.ChatRepository, ttl time.Duration) *Pruner {
	return &Pruner{
		repo:     repo,
		ttl:      ttl,
		interval: defaultPruneInterval,
		done:     make(chan struct{}),
	}
}

func (p *Pruner) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx)
	logger.Info().Dur("ttl", p.ttl).Msg("chat pruner started")

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.prune(ctx)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-p.done:
			return nil
		case <-ticker.C:
			p.prune(ctx)
		}
	}
}

func (p *Pruner) Shutdown(_ context.Context) error {
	close(p.done)
	return nil
}

func (p *Pruner) prune(ctx context.Context) {
	logger := log.FromCtx(ctx)

	pruned, err := p.repo.PruneIdleChats(ctx, p.ttl)
	if err != nil {
		logger.Error().Err(err).Msg("chat pruning failed")
		return
	}
	if pruned > 0 {
		logger.Info().Int64("chats", pruned).Msg("pruned idle chats")
	}
}

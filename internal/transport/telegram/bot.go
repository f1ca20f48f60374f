package telegram

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sandevgo/musebot/internal/config"
	"github.com/sandevgo/musebot/internal/core"
	"github.com/sandevgo/musebot/internal/service/chats"
	"github.com/sandevgo/musebot/internal/service/memory"
	"github.com/sandevgo/musebot/internal/service/orchestrator"
	"github.com/sandevgo/musebot/pkg/log"
	tele "gopkg.in/telebot.v3"
)

const baseContextKey = "base_context"

// Bot is the owner-gated Telegram front end. Each Telegram chat maps
// to its own session, so memories never leak between chats.
type Bot struct {
	bot     *tele.Bot
	cfg     *config.TelegramConfig
	orch    *orchestrator.Orchestrator
	chats   *chats.Controller
	mem     *memory.Central
	sender  *sender
	ownerID int64
}

func NewBot(
	ctx context.Context,
	cfg *config.TelegramConfig,
	orch *orchestrator.Orchestrator,
	chatCtl *chats.Controller,
	mem *memory.Central,
) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.Token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	bot := &Bot{
		bot:     b,
		cfg:     cfg,
		orch:    orch,
		chats:   chatCtl,
		mem:     mem,
		sender:  newSender(b),
		ownerID: cfg.OwnerID,
	}

	// Use context from Signal with logger
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			c.Set(baseContextKey, ctx)
			return next(c)
		}
	})

	// Middleware: Only allow the owner
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if c.Sender().ID != bot.ownerID {
				return nil // Ignore unauthorized users
			}
			return next(c)
		}
	})

	b.Handle("/new", bot.handleNew)
	b.Handle("/chats", bot.handleChats)
	b.Handle("/clear", bot.handleClear)
	b.Handle(tele.OnText, bot.handleMessage)

	return bot, nil
}

func (b *Bot) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Msg("starting telegram bot")
	b.bot.Start()
	return nil
}

func (b *Bot) Shutdown(_ context.Context) error {
	b.bot.Stop()
	return nil
}

func sessionID(c tele.Context) string {
	return fmt.Sprintf("telegram-%d", c.Chat().ID)
}

func (b *Bot) handleNew(c tele.Context) error {
	ctx := c.Get(baseContextKey).(context.Context)

	chat, err := b.chats.Create(ctx, sessionID(c))
	if err != nil {
		return c.Send(fmt.Sprintf("error: %v", err))
	}
	return c.Send(fmt.Sprintf("started a new chat (%s)", chat.ID))
}

func (b *Bot) handleChats(c tele.Context) error {
	ctx := c.Get(baseContextKey).(context.Context)

	summaries := b.chats.List(ctx, sessionID(c))
	if len(summaries) == 0 {
		return c.Send("no chats yet")
	}

	var sb strings.Builder
	for _, s := range summaries {
		fmt.Fprintf(&sb, "%s  %s  (%d exchanges)\n", s.ID, s.Title, s.ExchangeCount)
	}
	return c.Send(sb.String())
}

func (b *Bot) handleClear(c tele.Context) error {
	ctx := c.Get(baseContextKey).(context.Context)

	if err := b.mem.Clear(ctx, sessionID(c)); err != nil {
		return c.Send(fmt.Sprintf("error: %v", err))
	}
	return c.Send("central memory cleared")
}

func (b *Bot) handleMessage(c tele.Context) error {
	ctx := c.Get(baseContextKey).(context.Context)
	logger := log.FromCtx(ctx)
	session := sessionID(c)

	chatID, err := b.chats.EnsureActive(ctx, session)
	if err != nil {
		logger.Error().Err(err).Msg("failed to ensure active chat")
		return c.Send(fmt.Sprintf("error: %v", err))
	}

	// Notify user we are working
	_ = c.Notify(tele.Typing)

	message := c.Text()
	response, err := b.orch.HandleTurn(ctx, orchestrator.TurnRequest{
		SessionID: session,
		ChatID:    chatID,
		Message:   message,
		Flags:     core.TurnFlags{UseCurrentMemory: true, UseCentralMemory: true},
	})

	switch {
	case err == nil:
	case core.IsValidation(err):
		return c.Send(err.Error())
	default:
		if warn, ok := core.AsStoreWarning(err); ok {
			logger.Warn().Err(warn).Msg("exchange not persisted")
			break
		}
		logger.Error().Err(err).Msg("turn failed")
		return c.Send(fmt.Sprintf("error: %v", err))
	}

	if err := b.sender.sendMarkdown(ctx, c.Chat(), response, false); err != nil {
		return err
	}

	if err := b.chats.AutoTitle(ctx, chatID, message); err != nil {
		logger.Warn().Err(err).Msg("auto-title failed")
	}
	return nil
}

package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sandevgo/musebot/internal/core"
	"github.com/sandevgo/musebot/internal/providers/scrape"
	"github.com/sandevgo/musebot/pkg/log"
)

// ChatHistory is the slice of the chat controller a turn needs: the
// current chat's full history going in, and the finished exchange
// going back out.
type ChatHistory interface {
	History(ctx context.Context, chatID string) ([]core.Exchange, error)
	Append(ctx context.Context, chatID string, ex core.Exchange) error
}

// CentralMemory is the cross-chat store scoped per session.
type CentralMemory interface {
	Recent(ctx context.Context, sessionID string, n int) ([]core.Exchange, error)
	Append(ctx context.Context, sessionID, prompt, response string) error
}

type Deps struct {
	Model   core.ModelBackend
	Chats   ChatHistory
	Central CentralMemory

	Scrapers *scrape.Registry
	Cache    *scrape.ResultCache

	News    core.NewsProvider
	Search  core.SearchProvider
	Weather core.WeatherProvider

	// ExtractCity pulls a city name out of a weather question. Empty
	// means "use the provider's default city".
	ExtractCity func(message string) string
}

type Config struct {
	AssistantName string
	PersonaPath   string
	Timezone      string
	BudgetTokens  int
}

// Orchestrator runs the per-turn pipeline: validate, gather context,
// assemble the prompt, invoke the model, persist the exchange.
type Orchestrator struct {
	deps        Deps
	cfg         Config
	budget      *promptBudget
	extractCity func(string) string
	now         func() time.Time
}

func New(cfg Config, deps Deps) *Orchestrator {
	if cfg.AssistantName == "" {
		cfg.AssistantName = core.MuseName
	}
	extract := deps.ExtractCity
	if extract == nil {
		extract = func(string) string { return "" }
	}
	return &Orchestrator{
		deps:        deps,
		cfg:         cfg,
		budget:      newPromptBudget(cfg.BudgetTokens),
		extractCity: extract,
		now:         time.Now,
	}
}

// TurnRequest carries everything one turn needs. URL is only consulted
// when Flags.UseURLContext is set.
type TurnRequest struct {
	SessionID string
	ChatID    string
	Message   string
	URL       string
	Flags     core.TurnFlags
}

// HandleTurn executes one conversational turn and returns the model
// response. A *core.StoreWarning return still carries the response:
// the model call succeeded and only persistence failed.
func (o *Orchestrator) HandleTurn(ctx context.Context, req TurnRequest) (string, error) {
	logger := log.FromCtx(ctx)

	if strings.TrimSpace(req.Message) == "" {
		return "", core.ErrEmptyMessage
	}
	if req.Flags.UseURLContext && strings.TrimSpace(req.URL) == "" {
		return "", core.ErrMissingURL
	}

	parts := promptParts{
		liveDigest: o.buildLiveDigest(ctx, req.Message),
		persona:    loadPersona(o.cfg.PersonaPath, o.cfg.AssistantName),
		message:    req.Message,
	}

	if req.Flags.UseCentralMemory {
		excerpt, err := o.deps.Central.Recent(ctx, req.SessionID, core.CentralExcerptSize)
		if err != nil {
			logger.Warn().Err(err).Msg("central memory unavailable, continuing without excerpt")
		} else {
			parts.centralExcerpt = excerpt
		}
	}

	if req.Flags.UseCurrentMemory {
		history, err := o.deps.Chats.History(ctx, req.ChatID)
		if err != nil {
			logger.Warn().Err(err).Str("chat_id", req.ChatID).Msg("chat history unavailable, continuing without it")
		} else {
			parts.currentExcerpt = history
		}
	}

	if req.Flags.UseURLContext {
		text, err := o.scrapeWithCache(ctx, req.URL)
		if err != nil {
			logger.Warn().Err(err).Str("url", req.URL).Msg("scrape failed, continuing without url context")
		} else {
			parts.scrapedURL = req.URL
			parts.scrapedText = text
		}
	}

	prompt := o.assemblePrompt(parts)

	response, err := o.deps.Model.Complete(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("model completion failed: %w", err)
	}

	if storeErr := o.persist(ctx, req, response); storeErr != nil {
		return response, &core.StoreWarning{Response: response, Err: storeErr}
	}
	return response, nil
}

func (o *Orchestrator) scrapeWithCache(ctx context.Context, url string) (string, error) {
	if text, ok := o.deps.Cache.Get(url); ok {
		return text, nil
	}

	kind, scraper, err := o.deps.Scrapers.Resolve(url)
	if err != nil {
		return "", err
	}

	text, err := scraper.Scrape(ctx, url)
	if err != nil {
		return "", fmt.Errorf("scrape %s page: %w", kind, err)
	}

	o.deps.Cache.Put(url, text)
	return text, nil
}

// persist writes the finished exchange to every enabled store. Both
// writes are attempted even when the first fails.
func (o *Orchestrator) persist(ctx context.Context, req TurnRequest, response string) error {
	var errs []error

	if req.Flags.UseCurrentMemory {
		ex := core.Exchange{Prompt: req.Message, Response: response, CreatedAt: o.now().UTC()}
		if err := o.deps.Chats.Append(ctx, req.ChatID, ex); err != nil {
			errs = append(errs, fmt.Errorf("chat history: %w", err))
		}
	}
	if req.Flags.UseCentralMemory {
		if err := o.deps.Central.Append(ctx, req.SessionID, req.Message, response); err != nil {
			errs = append(errs, fmt.Errorf("central memory: %w", err))
		}
	}

	return errors.Join(errs...)
}

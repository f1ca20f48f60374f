package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sandevgo/musebot/internal/config"
	"github.com/sandevgo/musebot/internal/providers/live"
	"github.com/sandevgo/musebot/internal/providers/llm"
	"github.com/sandevgo/musebot/internal/providers/scrape"
	"github.com/sandevgo/musebot/internal/service/chats"
	"github.com/sandevgo/musebot/internal/service/maintenance"
	"github.com/sandevgo/musebot/internal/service/memory"
	"github.com/sandevgo/musebot/internal/service/orchestrator"
	"github.com/sandevgo/musebot/internal/storage/sqlite"
	"github.com/sandevgo/musebot/internal/transport/cli"
	"github.com/sandevgo/musebot/internal/transport/telegram"
	"github.com/sandevgo/musebot/pkg/log"
	"github.com/sandevgo/musebot/pkg/srv"
)

func NewServices(ctx context.Context) []srv.Service {
	logger := log.FromCtx(ctx)
	services := make([]srv.Service, 0)

	// init env
	if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
		logger.Fatal().Err(err).Msg("failed to init env")
	}

	// 1. Configuration
	appCfg := config.NewAppConfig(ctx)
	ollamaCfg := config.NewOllamaConfig(ctx)
	liveCfg := config.NewLiveDataConfig(ctx)

	// 2. Storage
	db, err := sqlite.NewDB(ctx, appCfg.GetDatabasePath())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize storage")
	}
	services = append(services, srv.NewCleanup(db.Close))

	chatRepo := sqlite.NewChatRepo(db)
	centralRepo := sqlite.NewCentralRepo(db)

	// 3. Controllers
	chatCtl := chats.NewController(chatRepo)
	central := memory.NewCentral(centralRepo)

	// 4. Providers
	model := llm.NewOllama(ollamaCfg.BaseURL, ollamaCfg.Model)
	registry, cleanup := initScrapers(ctx, appCfg)
	if cleanup != nil {
		services = append(services, srv.NewCleanup(cleanup))
	}

	// 5. Orchestrator
	orch := orchestrator.New(
		orchestrator.Config{
			AssistantName: appCfg.AssistantName,
			PersonaPath:   appCfg.GetPersonaPath(),
			Timezone:      appCfg.Timezone,
			BudgetTokens:  appCfg.PromptBudgetTokens,
		},
		orchestrator.Deps{
			Model:       model,
			Chats:       chatCtl,
			Central:     central,
			Scrapers:    registry,
			Cache:       scrape.NewResultCache(),
			News:        live.NewNews(liveCfg.NewsAPIKey),
			Search:      live.NewSearch(liveCfg.SerpAPIKey),
			Weather:     live.NewWeather(liveCfg.OpenWeatherAPIKey, liveCfg.DefaultCity),
			ExtractCity: live.ExtractCity,
		},
	)

	// 6. Background workers
	if appCfg.ChatTTL > 0 {
		services = append(services, maintenance.NewPruner(chatRepo, appCfg.ChatTTL))
	}

	// 7. Transports
	transports, err := initTransports(ctx, appCfg, orch, chatCtl, central)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize transports")
	}
	services = append(services, transports...)

	return services
}

// initScrapers always registers the HTTP scraper for generic pages.
// Profile scrapers come from an optional MCP server config; without
// one, profile URLs fall back to the generic scraper.
func initScrapers(ctx context.Context, cfg *config.AppConfig) (*scrape.Registry, func() error) {
	logger := log.FromCtx(ctx)

	registry := scrape.NewRegistry()
	registry.Register(scrape.KindGenericPage, scrape.NewHTTPScraper())

	mcpPath := cfg.GetScraperMCPPath()
	if _, err := os.Stat(mcpPath); err != nil {
		return registry, nil
	}

	mcpCfg, err := scrape.LoadMCPConfig(mcpPath)
	if err != nil {
		logger.Warn().Err(err).Str("path", mcpPath).Msg("invalid scraper mcp config, using http scraper only")
		return registry, nil
	}

	cli, err := scrape.NewMCPClient(ctx, mcpCfg)
	if err != nil {
		logger.Warn().Err(err).Msg("scraper mcp server unavailable, using http scraper only")
		return registry, nil
	}

	for kind, tool := range mcpCfg.Tools {
		registry.Register(kind, scrape.NewMCPScraper(cli, tool))
	}
	logger.Info().Int("tools", len(mcpCfg.Tools)).Msg("scraper mcp server connected")

	return registry, cli.Close
}

func initTransports(
	ctx context.Context,
	cfg *config.AppConfig,
	orch *orchestrator.Orchestrator,
	chatCtl *chats.Controller,
	central *memory.Central,
) ([]srv.Service, error) {
	var services []srv.Service

	if cfg.EnableCLI {
		shell, err := cli.NewReadLine(cfg, orch, chatCtl, central)
		if err != nil {
			return nil, err
		}
		services = append(services, shell)
	}

	if cfg.EnableTelegram {
		tgCfg := config.NewTelegramConfig(ctx)
		bot, err := telegram.NewBot(ctx, tgCfg, orch, chatCtl, central)
		if err != nil {
			return nil, err
		}
		services = append(services, bot)
	}

	return services, nil
}

func initEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)
	envFile := filepath.Join(runtimePath, ".env")

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}

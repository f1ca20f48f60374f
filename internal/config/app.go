package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/musebot/pkg/log"
)

type AppConfig struct {
	RuntimePath string `env:"MUSE_RUNTIME_PATH" envDefault:".musebot"`

	// Transport Flags
	EnableTelegram bool `env:"ENABLE_TELEGRAM" envDefault:"false"`
	EnableCLI      bool `env:"ENABLE_CLI" envDefault:"true"`

	// Persona / prompt assembly
	AssistantName      string `env:"MUSE_ASSISTANT_NAME" envDefault:"Muse"`
	Timezone           string `env:"MUSE_TIMEZONE" envDefault:"Local"`
	PromptBudgetTokens int    `env:"MUSE_PROMPT_BUDGET_TOKENS" envDefault:"6000"`

	// Session scoping for the CLI shell. Transports may derive their own.
	SessionID string `env:"MUSE_SESSION_ID" envDefault:"cli-local"`

	// ChatTTL enables the background chat pruner when > 0.
	ChatTTL time.Duration `env:"MUSE_CHAT_TTL"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	// Relative runtime paths live under the user's home directory.
	c.RuntimePath = GetRuntimePath()
	return c
}

func (c AppConfig) GetRuntimePath() string {
	return c.RuntimePath
}

func (c AppConfig) GetDatabasePath() string {
	return filepath.Join(c.RuntimePath, "musebot.db")
}

func (c AppConfig) GetPersonaPath() string {
	return filepath.Join(c.RuntimePath, "PERSONA.md")
}

func (c AppConfig) GetScraperMCPPath() string {
	return filepath.Join(c.RuntimePath, "scraper_mcp.json")
}

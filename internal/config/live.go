package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/musebot/pkg/log"
)

// LiveDataConfig holds credentials for the news/search/weather
// providers. Empty keys are allowed: a provider without a key simply
// fails its fetches and the turn degrades to an empty digest section.
type LiveDataConfig struct {
	NewsAPIKey        string `env:"NEWSAPI_KEY"`
	SerpAPIKey        string `env:"SEARCHAPI_KEY"`
	OpenWeatherAPIKey string `env:"OPENWEATHER_API_KEY"`
	DefaultCity       string `env:"MUSE_DEFAULT_CITY" envDefault:"Coimbatore"`
}

func NewLiveDataConfig(ctx context.Context) *LiveDataConfig {
	c := &LiveDataConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse LiveData config")
	}
	return c
}

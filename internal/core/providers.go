package core

import "context"

// ModelBackend is the opaque text-completion service: one assembled
// prompt in, one response out, no streaming.
type ModelBackend interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Scraper turns a URL into plain text.
type Scraper interface {
	Scrape(ctx context.Context, url string) (string, error)
}

type NewsProvider interface {
	FetchNews(ctx context.Context, query string, limit int) ([]NewsItem, error)
}

type SearchProvider interface {
	FetchWebSearch(ctx context.Context, query string, limit int) ([]SearchResult, error)
}

type WeatherProvider interface {
	FetchWeather(ctx context.Context, city string, forecastDays int) (WeatherReport, error)
}

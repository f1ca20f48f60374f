package orchestrator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sandevgo/musebot/internal/core"
	"github.com/sandevgo/musebot/pkg/log"
)

type liveIntent int

const (
	liveNone liveIntent = iota
	liveNews
	liveWeather
	liveSearch
)

var (
	newsKeywords    = []string{"news", "headline", "update", "latest"}
	weatherKeywords = []string{"weather", "forecast", "temperature"}
	searchKeywords  = []string{"search", "google", "look up"}
)

// classify routes a message to at most one live-data intent. Matching
// is plain substring on the lowercased message, and the branches are
// checked in fixed priority: news, then weather, then search.
func classify(message string) liveIntent {
	lower := strings.ToLower(message)

	for _, kw := range newsKeywords {
		if strings.Contains(lower, kw) {
			return liveNews
		}
	}
	for _, kw := range weatherKeywords {
		if strings.Contains(lower, kw) {
			return liveWeather
		}
	}
	for _, kw := range searchKeywords {
		if strings.Contains(lower, kw) {
			return liveSearch
		}
	}
	return liveNone
}

// buildLiveDigest produces the live-data block for one turn. Provider
// failures never fail the turn: the affected section is dropped and a
// warning is logged.
func (o *Orchestrator) buildLiveDigest(ctx context.Context, message string) string {
	logger := log.FromCtx(ctx)

	var b strings.Builder
	b.WriteString("Current time: ")
	b.WriteString(o.now().In(o.location()).Format("2006-01-02 15:04:05 MST"))
	b.WriteString("\n")

	switch classify(message) {
	case liveNews:
		items, err := o.deps.News.FetchNews(ctx, message, core.LiveResultLimit)
		if err != nil {
			logger.Warn().Err(err).Msg("news fetch failed, dropping digest section")
		} else if len(items) > 0 {
			b.WriteString("\nTop headlines:\n")
			for _, item := range items {
				fmt.Fprintf(&b, "- %s (%s) - %s\n", item.Title, item.Source, item.URL)
			}
		}

		results, err := o.deps.Search.FetchWebSearch(ctx, message, core.LiveResultLimit)
		if err != nil {
			logger.Warn().Err(err).Msg("news search fetch failed, dropping digest section")
		} else if len(results) > 0 {
			b.WriteString("\nNews search results:\n")
			for _, r := range results {
				fmt.Fprintf(&b, "- %s: %s (%s)\n", r.Title, r.Snippet, r.Link)
			}
		}

	case liveWeather:
		city := o.extractCity(message)
		report, err := o.deps.Weather.FetchWeather(ctx, city, 3)
		if err != nil {
			logger.Warn().Err(err).Str("city", city).Msg("weather fetch failed, dropping digest section")
			break
		}
		fmt.Fprintf(&b, "\nWeather in %s: %s, %.1f°C\n", report.City, report.Description, report.TempC)
		if len(report.Forecast) > 0 {
			b.WriteString("3-day forecast:\n")
			for _, day := range report.Forecast {
				fmt.Fprintf(&b, "%s: %s, %.1f°C to %.1f°C\n", day.Date, day.Summary, day.MinC, day.MaxC)
			}
		}

	case liveSearch:
		o.appendSearchSection(ctx, &b, message, "Web search results:")

	case liveNone:
		// No keyword matched: a general web search still backs the answer.
		o.appendSearchSection(ctx, &b, message, "Search results for your question:")
	}

	return b.String()
}

func (o *Orchestrator) appendSearchSection(ctx context.Context, b *strings.Builder, message, header string) {
	results, err := o.deps.Search.FetchWebSearch(ctx, message, core.LiveResultLimit)
	if err != nil {
		log.FromCtx(ctx).Warn().Err(err).Msg("web search fetch failed, dropping digest section")
		return
	}
	if len(results) == 0 {
		return
	}
	b.WriteString("\n" + header + "\n")
	for _, r := range results {
		fmt.Fprintf(b, "- %s: %s (%s)\n", r.Title, r.Snippet, r.Link)
	}
}

func (o *Orchestrator) location() *time.Location {
	if o.cfg.Timezone == "" || strings.EqualFold(o.cfg.Timezone, "Local") {
		return time.Local
	}
	loc, err := time.LoadLocation(o.cfg.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

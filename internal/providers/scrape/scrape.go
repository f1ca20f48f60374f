package scrape

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/inbucket/html2text"
	"github.com/microcosm-cc/bluemonday"
	"github.com/sandevgo/musebot/internal/core"
	"github.com/sandevgo/musebot/pkg/retry"
)

// Scraper kinds, as resolved by the URL dispatch table.
const (
	KindGenericPage         = "generic-page"
	KindSocialProfile       = "social-profile"
	KindProfessionalProfile = "professional-profile"
)

const maxScrapeBytes = 1 << 20 // 1 MiB is plenty for a text extract

// HTTPScraper fetches a page and reduces it to plain text.
type HTTPScraper struct {
	client  *http.Client
	retrier *retry.Retrier
	policy  *bluemonday.Policy
}

func NewHTTPScraper() *HTTPScraper {
	return &HTTPScraper{
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
		retrier: retry.NewDefaultRetrier(),
		policy:  bluemonday.UGCPolicy(),
	}
}

func (s *HTTPScraper) Scrape(ctx context.Context, url string) (string, error) {
	var body []byte

	err := s.retrier.Do(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("User-Agent", core.MuseUserAgent)

		resp, err := s.client.Do(req)
		if err != nil {
			return fmt.Errorf("fetch url: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("unexpected status %d", resp.StatusCode)
		}

		body, err = io.ReadAll(io.LimitReader(resp.Body, maxScrapeBytes))
		if err != nil {
			return fmt.Errorf("read body: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	sanitized := s.policy.Sanitize(string(body))
	text, err := html2text.FromString(sanitized)
	if err != nil {
		// Fall back to the sanitized markup rather than losing the page.
		return strings.TrimSpace(sanitized), nil
	}
	return strings.TrimSpace(text), nil
}

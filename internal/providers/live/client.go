package live

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sandevgo/musebot/internal/core"
	"github.com/sandevgo/musebot/pkg/retry"
)

// client is the shared HTTP plumbing for the live-data providers.
// Every fetch goes through a short retry loop; callers treat any
// remaining error as "no data".
type client struct {
	http    *http.Client
	retrier *retry.Retrier
}

func newClient() client {
	return client{
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
		retrier: retry.NewDefaultRetrier(),
	}
}

func (c *client) getJSON(ctx context.Context, rawURL string, params url.Values, out any) error {
	return c.retrier.Do(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL+"?"+params.Encode(), nil)
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("User-Agent", core.MuseUserAgent)

		resp, err := c.http.Do(req)
		if err != nil {
			return fmt.Errorf("request: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
		}

		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	})
}

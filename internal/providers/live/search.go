package live

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/sandevgo/musebot/internal/core"
)

const defaultSearchBaseURL = "https://serpapi.com"

// Search fetches organic web-search results from SerpAPI.
type Search struct {
	client
	apiKey  string
	baseURL string
}

func NewSearch(apiKey string) *Search {
	return &Search{client: newClient(), apiKey: apiKey, baseURL: defaultSearchBaseURL}
}

func NewSearchWithBaseURL(apiKey, baseURL string) *Search {
	return &Search{client: newClient(), apiKey: apiKey, baseURL: baseURL}
}

func (s *Search) FetchWebSearch(ctx context.Context, query string, limit int) ([]core.SearchResult, error) {
	params := url.Values{}
	params.Set("engine", "google")
	params.Set("q", query)
	params.Set("api_key", s.apiKey)
	params.Set("num", strconv.Itoa(limit))

	var result struct {
		OrganicResults []struct {
			Title   string `json:"title"`
			Link    string `json:"link"`
			Snippet string `json:"snippet"`
		} `json:"organic_results"`
	}
	if err := s.getJSON(ctx, s.baseURL+"/search.json", params, &result); err != nil {
		return nil, fmt.Errorf("serpapi: %w", err)
	}

	results := make([]core.SearchResult, 0, limit)
	for i, r := range result.OrganicResults {
		if i >= limit {
			break
		}
		results = append(results, core.SearchResult{
			Title:   r.Title,
			Link:    r.Link,
			Snippet: r.Snippet,
		})
	}
	return results, nil
}

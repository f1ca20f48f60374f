package live

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/sandevgo/musebot/internal/core"
)

const defaultNewsBaseURL = "https://newsapi.org"

// News fetches top headlines from NewsAPI.
type News struct {
	client
	apiKey  string
	baseURL string
}

func NewNews(apiKey string) *News {
	return &News{client: newClient(), apiKey: apiKey, baseURL: defaultNewsBaseURL}
}

func NewNewsWithBaseURL(apiKey, baseURL string) *News {
	return &News{client: newClient(), apiKey: apiKey, baseURL: baseURL}
}

func (n *News) FetchNews(ctx context.Context, query string, limit int) ([]core.NewsItem, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("apiKey", n.apiKey)
	params.Set("pageSize", strconv.Itoa(limit))
	params.Set("language", "en")

	var result struct {
		Articles []struct {
			Title  string `json:"title"`
			URL    string `json:"url"`
			Source struct {
				Name string `json:"name"`
			} `json:"source"`
		} `json:"articles"`
	}
	if err := n.getJSON(ctx, n.baseURL+"/v2/top-headlines", params, &result); err != nil {
		return nil, fmt.Errorf("newsapi: %w", err)
	}

	items := make([]core.NewsItem, 0, len(result.Articles))
	for _, a := range result.Articles {
		items = append(items, core.NewsItem{
			Title:  a.Title,
			Source: a.Source.Name,
			URL:    a.URL,
		})
	}
	return items, nil
}

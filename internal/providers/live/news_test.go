package live

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNews_FetchNews(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v2/top-headlines", r.URL.Path)
		require.Equal(t, "3", r.URL.Query().Get("pageSize"))
		fmt.Fprint(w, `{"articles":[
			{"title":"First","url":"https://example.com/1","source":{"name":"Example"}},
			{"title":"Second","url":"https://example.com/2","source":{"name":"Example"}}
		]}`)
	}))
	defer srv.Close()

	provider := NewNewsWithBaseURL("key", srv.URL)

	items, err := provider.FetchNews(context.Background(), "global", 3)
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, "First", items[0].Title)
	require.Equal(t, "Example", items[0].Source)
}

func TestNews_FetchNews_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	provider := NewNewsWithBaseURL("key", srv.URL)

	_, err := provider.FetchNews(context.Background(), "global", 3)
	require.Error(t, err)
}

func TestSearch_FetchWebSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/search.json", r.URL.Path)
		require.Equal(t, "google", r.URL.Query().Get("engine"))
		fmt.Fprint(w, `{"organic_results":[
			{"title":"A","link":"https://a.example","snippet":"about a"},
			{"title":"B","link":"https://b.example","snippet":"about b"},
			{"title":"C","link":"https://c.example","snippet":"about c"},
			{"title":"D","link":"https://d.example","snippet":"about d"}
		]}`)
	}))
	defer srv.Close()

	provider := NewSearchWithBaseURL("key", srv.URL)

	results, err := provider.FetchWebSearch(context.Background(), "query", 3)
	require.NoError(t, err)
	require.Len(t, results, 3)
	require.Equal(t, "A", results[0].Title)
	require.Equal(t, "about c", results[2].Snippet)
}

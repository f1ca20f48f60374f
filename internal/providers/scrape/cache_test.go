package scrape

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResultCache(t *testing.T) {
	cache := NewResultCache()

	_, ok := cache.Get("https://example.com")
	require.False(t, ok, "empty cache should miss")

	cache.Put("https://example.com", "first page")

	text, ok := cache.Get("https://example.com")
	require.True(t, ok)
	require.Equal(t, "first page", text)

	_, ok = cache.Get("https://other.example")
	require.False(t, ok, "different url should miss")

	// A new URL displaces the previous entry entirely.
	cache.Put("https://other.example", "second page")

	_, ok = cache.Get("https://example.com")
	require.False(t, ok)

	text, ok = cache.Get("https://other.example")
	require.True(t, ok)
	require.Equal(t, "second page", text)
}

package scrape

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

type stubScraper struct {
	text string
}

func (s *stubScraper) Scrape(_ context.Context, _ string) (string, error) {
	return s.text, nil
}

func TestRegistry_Resolve(t *testing.T) {
	generic := &stubScraper{text: "generic"}
	social := &stubScraper{text: "social"}
	professional := &stubScraper{text: "professional"}

	reg := NewRegistry()
	reg.Register(KindGenericPage, generic)
	reg.Register(KindSocialProfile, social)
	reg.Register(KindProfessionalProfile, professional)

	tests := []struct {
		name     string
		url      string
		wantKind string
		want     *stubScraper
	}{
		{
			name:     "x profile",
			url:      "https://x.com/someone",
			wantKind: KindSocialProfile,
			want:     social,
		},
		{
			name:     "linkedin profile",
			url:      "https://www.linkedin.com/in/someone",
			wantKind: KindProfessionalProfile,
			want:     professional,
		},
		{
			name:     "linkedin company page is generic",
			url:      "https://www.linkedin.com/company/acme",
			wantKind: KindGenericPage,
			want:     generic,
		},
		{
			name:     "arbitrary page",
			url:      "https://example.com/article",
			wantKind: KindGenericPage,
			want:     generic,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, s, err := reg.Resolve(tt.url)
			require.NoError(t, err)
			require.Equal(t, tt.wantKind, kind)
			require.Same(t, tt.want, s)
		})
	}
}

func TestRegistry_Resolve_FallsBackToGeneric(t *testing.T) {
	generic := &stubScraper{text: "generic"}

	reg := NewRegistry()
	reg.Register(KindGenericPage, generic)

	kind, s, err := reg.Resolve("https://x.com/someone")
	require.NoError(t, err)
	require.Equal(t, KindSocialProfile, kind)
	require.Same(t, generic, s)
}

func TestRegistry_Resolve_NothingRegistered(t *testing.T) {
	reg := NewRegistry()

	_, _, err := reg.Resolve("https://example.com")
	require.Error(t, err)
}

package scrape

import (
	"fmt"
	"strings"
	"sync"

	"github.com/sandevgo/musebot/internal/core"
)

type rule struct {
	prefix string
	kind   string
}

// Registry maps URL prefixes to named scrapers. Rules are evaluated in
// order, first match wins, with a catch-all generic kind last. Kinds
// without a registered scraper fall back to the generic one.
type Registry struct {
	mu       sync.RWMutex
	scrapers map[string]core.Scraper
	rules    []rule
	fallback string
}

func NewRegistry() *Registry {
	return &Registry{
		scrapers: make(map[string]core.Scraper),
		rules: []rule{
			{prefix: "https://x.com/", kind: KindSocialProfile},
			{prefix: "https://www.linkedin.com/in/", kind: KindProfessionalProfile},
		},
		fallback: KindGenericPage,
	}
}

func (r *Registry) Register(kind string, s core.Scraper) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scrapers[kind] = s
}

// Resolve picks the scraper kind for a URL and returns its handle.
func (r *Registry) Resolve(url string) (string, core.Scraper, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kind := r.fallback
	for _, rule := range r.rules {
		if strings.HasPrefix(url, rule.prefix) {
			kind = rule.kind
			break
		}
	}

	if s, ok := r.scrapers[kind]; ok {
		return kind, s, nil
	}
	if s, ok := r.scrapers[r.fallback]; ok {
		return kind, s, nil
	}
	return kind, nil, fmt.Errorf("no scraper registered for kind %q", kind)
}

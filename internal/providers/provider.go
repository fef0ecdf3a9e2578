package providers

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"subplot/internal/language"
	"subplot/internal/scoring"
)

// Query describes one search against a provider.
type Query struct {
	Video     scoring.Video
	Languages []language.Selector
	Hash      string
}

// Candidate is a subtitle descriptor returned by a provider. It lives only
// for the duration of one query/download cycle.
type Candidate struct {
	Provider        string
	Language        language.Selector
	ReleaseInfo     string
	PageLink        string
	ID              string
	FPS             float64
	HearingImpaired bool
	MatchHash       bool
}

// Provider is the capability interface for subtitle sources. Network
// behavior is the implementation's concern; errors should wrap the typed
// sentinels in this package so the ledger can classify them.
type Provider interface {
	Name() string
	Search(ctx context.Context, query Query) ([]Candidate, error)
}

// Registry holds the known provider implementations.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]Provider
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{providers: make(map[string]Provider)}
}

// Register adds a provider. Registering the same name twice is a
// programming error.
func (r *Registry) Register(p Provider) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	name := p.Name()
	if _, exists := r.providers[name]; exists {
		return fmt.Errorf("provider %q already registered", name)
	}
	r.providers[name] = p
	return nil
}

// Get returns the provider with the given name.
func (r *Registry) Get(name string) (Provider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.providers[name]
	return p, ok
}

// Names returns the registered provider names in lexical order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

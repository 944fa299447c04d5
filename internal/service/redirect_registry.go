package service

import (
	"fmt"
	"sync"

	"ecommerce-transactions/internal/core/ports"
	"ecommerce-transactions/pkg/apperror"
)

// RedirectPSP is the static configuration of one redirect PSP.
type RedirectPSP struct {
	PspID  string
	URL    string
	APIKey string
	Logo   string
}

// RedirectClientFactory builds the client of one PSP.
type RedirectClientFactory func(psp RedirectPSP) (ports.RedirectClient, error)

// RedirectRegistry implements ports.RedirectClientRegistry. Clients are built
// on first use, at most once per PSP, and cached for the process lifetime.
// Building one PSP's client does not hold up lookups for the others.
type RedirectRegistry struct {
	psps  map[string]RedirectPSP
	build RedirectClientFactory

	mu      sync.Mutex
	clients map[string]*redirectEntry
}

// redirectEntry is a client being built or already built. done is closed
// once client and err are set.
type redirectEntry struct {
	done   chan struct{}
	client ports.RedirectClient
	err    error
}

func NewRedirectRegistry(psps []RedirectPSP, build RedirectClientFactory) *RedirectRegistry {
	byID := make(map[string]RedirectPSP, len(psps))
	for _, p := range psps {
		byID[p.PspID] = p
	}
	return &RedirectRegistry{
		psps:    byID,
		clients: make(map[string]*redirectEntry),
		build:   build,
	}
}

// ClientFor returns the cached client for pspID. A PSP without configuration
// yields a MissingPSPConfiguration error and nothing is cached. A failed build
// is reported to every caller waiting on it and retried on the next call.
func (r *RedirectRegistry) ClientFor(pspID string) (ports.RedirectClient, error) {
	psp, ok := r.psps[pspID]
	if !ok {
		return nil, apperror.MissingPSPConfiguration(pspID)
	}

	r.mu.Lock()
	e, found := r.clients[pspID]
	if !found {
		e = &redirectEntry{done: make(chan struct{})}
		r.clients[pspID] = e
	}
	r.mu.Unlock()

	if found {
		<-e.done
	} else {
		e.client, e.err = r.build(psp)
		if e.err != nil {
			r.mu.Lock()
			delete(r.clients, pspID)
			r.mu.Unlock()
		}
		close(e.done)
	}

	if e.err != nil {
		return nil, fmt.Errorf("building redirect client for %s: %w", pspID, e.err)
	}
	return e.client, nil
}

package tagmap

import (
	"context"

	"github.com/ignite/constituent-reconciler/internal/pkg/logger"
)

// Fetcher fetches the mapping table from somewhere.
type Fetcher interface {
	FetchMapping(ctx context.Context) (map[string]string, error)
}

// Service combines the API client with the optional last-known-good cache.
// It satisfies the pipeline's TagMapper contract: an error return means "no
// mappings available" and the pipeline falls back to identity mapping.
type Service struct {
	client Fetcher
	cache  *Cache
}

// NewService wires a client and an optional cache (nil disables caching).
func NewService(client Fetcher, cache *Cache) *Service {
	return &Service{client: client, cache: cache}
}

// FetchMapping fetches from the service, refreshing the cache on success.
// On failure it serves the last-known-good table when one exists; otherwise
// the fetch error propagates and the caller degrades to identity mapping.
func (s *Service) FetchMapping(ctx context.Context) (map[string]string, error) {
	mapping, err := s.client.FetchMapping(ctx)
	if err == nil {
		if s.cache != nil {
			if cacheErr := s.cache.Store(ctx, mapping); cacheErr != nil {
				logger.Warn("tag mapping cache store failed", "error", cacheErr.Error())
			}
		}
		return mapping, nil
	}

	if s.cache != nil {
		cached, ok, cacheErr := s.cache.Load(ctx)
		if cacheErr != nil {
			logger.Warn("tag mapping cache load failed", "error", cacheErr.Error())
		} else if ok {
			logger.Warn("tag mapping fetch failed, serving last-known-good table",
				"error", err.Error(), "entries", len(cached))
			return cached, nil
		}
	}

	return nil, err
}

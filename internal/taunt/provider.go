package taunt

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/WhackALawyer_Go/internal/domain"
	"github.com/osse101/WhackALawyer_Go/internal/logger"
	"github.com/osse101/WhackALawyer_Go/internal/metrics"
	"github.com/osse101/WhackALawyer_Go/internal/utils"
	"github.com/osse101/WhackALawyer_Go/internal/validation"
)

// Provider supplies the per-archetype taunt pools
type Provider interface {
	FetchTaunts(ctx context.Context) (domain.TauntTable, error)
}

// Purger is implemented by providers holding a cache
type Purger interface {
	Purge()
}

// Config selects and tunes the provider chain
type Config struct {
	APIKey   string
	BaseURL  string
	Model    string
	Timeout  time.Duration
	CacheTTL time.Duration
	// File, when set, loads the table from a JSON file instead of the remote API
	File string
}

// New builds the configured provider. Every returned chain recovers failures
// with the built-in table, so FetchTaunts never fails.
func New(cfg Config) Provider {
	switch {
	case cfg.File != "":
		return NewFallbackProvider(NewFileProvider(cfg.File), SourceFile)
	case cfg.APIKey != "":
		remote := NewRemoteProvider(RemoteConfig{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
			Timeout: cfg.Timeout,
		})
		return NewFallbackProvider(NewCachedProvider(remote, cfg.CacheTTL), SourceRemote)
	default:
		slog.Info(LogMsgMissingCredential)
		return StaticProvider{}
	}
}

// StaticProvider returns the built-in table
type StaticProvider struct{}

// FetchTaunts returns a fresh copy of the built-in table
func (StaticProvider) FetchTaunts(context.Context) (domain.TauntTable, error) {
	metrics.TauntFetches.WithLabelValues(SourceStatic, metrics.ResultSuccess).Inc()
	return domain.FallbackTaunts(), nil
}

// FileProvider reads the table from a JSON file on every fetch
type FileProvider struct {
	path   string
	schema validation.SchemaValidator
}

// NewFileProvider creates a provider for a JSON file shaped like {"BILLER": [...], ...}
func NewFileProvider(path string) *FileProvider {
	return &FileProvider{path: path, schema: validation.NewSchemaValidator()}
}

// FetchTaunts loads the file and checks it against the taunt table schema
func (p *FileProvider) FetchTaunts(context.Context) (domain.TauntTable, error) {
	if err := p.schema.ValidateFile(p.path, validation.TauntTableSchema); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrTauntProviderUnavailable, err)
	}

	var raw map[string][]string
	if err := utils.LoadJSON(p.path, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrTauntProviderUnavailable, err)
	}
	return tableFromRaw(raw)
}

// FallbackProvider substitutes the built-in table for any failure of the
// wrapped provider. It never returns an error and never retries.
type FallbackProvider struct {
	inner  Provider
	source string
}

// NewFallbackProvider wraps inner; source labels logs and metrics
func NewFallbackProvider(inner Provider, source string) *FallbackProvider {
	return &FallbackProvider{inner: inner, source: source}
}

// FetchTaunts returns the inner table with per-key fallback, or the built-in table
func (p *FallbackProvider) FetchTaunts(ctx context.Context) (domain.TauntTable, error) {
	table, err := p.inner.FetchTaunts(ctx)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgFetchFailed, "source", p.source, "error", err)
		metrics.TauntFetches.WithLabelValues(p.source, metrics.ResultFallback).Inc()
		return domain.FallbackTaunts(), nil
	}
	return table.WithFallback(), nil
}

// Purge forwards to the wrapped provider when it caches
func (p *FallbackProvider) Purge() {
	if purger, ok := p.inner.(Purger); ok {
		purger.Purge()
	}
}

// CachedProvider memoizes successful fetches for a TTL. Concurrent misses
// share one upstream call.
type CachedProvider struct {
	inner Provider
	cache *expirable.LRU[string, domain.TauntTable]
	mu    sync.Mutex
}

// NewCachedProvider wraps inner with an expiring cache
func NewCachedProvider(inner Provider, ttl time.Duration) *CachedProvider {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedProvider{
		inner: inner,
		cache: expirable.NewLRU[string, domain.TauntTable](1, nil, ttl),
	}
}

// FetchTaunts returns the cached table or fetches a new one. Errors are not cached.
func (p *CachedProvider) FetchTaunts(ctx context.Context) (domain.TauntTable, error) {
	if table, ok := p.cache.Get(cacheKey); ok {
		metrics.TauntFetches.WithLabelValues(SourceRemote, metrics.ResultCached).Inc()
		return table, nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if table, ok := p.cache.Get(cacheKey); ok {
		logger.FromContext(ctx).Debug(LogMsgServedFromCache)
		return table, nil
	}

	table, err := p.inner.FetchTaunts(ctx)
	if err != nil {
		return nil, err
	}
	p.cache.Add(cacheKey, table)
	return table, nil
}

// Purge drops the cached table so the next fetch goes upstream
func (p *CachedProvider) Purge() {
	p.cache.Purge()
	slog.Info(LogMsgCachePurged)
}

// tableFromRaw keeps the known archetype keys. A table with none of them is malformed.
func tableFromRaw(raw map[string][]string) (domain.TauntTable, error) {
	table := make(domain.TauntTable, len(domain.Archetypes))
	for _, a := range domain.Archetypes {
		if pool, ok := raw[string(a)]; ok {
			table[a] = pool
		}
	}
	if len(table) == 0 {
		return nil, fmt.Errorf("%w: no archetype keys in taunt table", domain.ErrTauntProviderUnavailable)
	}
	return table, nil
}

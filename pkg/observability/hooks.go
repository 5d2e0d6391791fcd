// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers can register
// hooks at startup to receive events about search runs, cache operations,
// and GitHub API calls.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetSearchHooks(&mySearchHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Search().OnRunStart(ctx, query)
//	// ... fetch and aggregate ...
//	observability.Search().OnRunComplete(ctx, query, repoCount, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// SearchHooks receives events from the search engine.
type SearchHooks interface {
	// OnRunStart fires when a search run begins.
	OnRunStart(ctx context.Context, query string)

	// OnPageFetched fires after each result page, with the item count
	// for that page and the provider's total match count.
	OnPageFetched(ctx context.Context, page, items, totalCount int)

	// OnRecordSkipped fires when a malformed record is dropped.
	OnRecordSkipped(ctx context.Context, reason string)

	// OnRunComplete fires when a run ends, successfully or not.
	OnRunComplete(ctx context.Context, query string, repoCount int, duration time.Duration, err error)
}

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks receives events from HTTP client operations.
type HTTPHooks interface {
	// OnRequest records an outgoing HTTP request.
	OnRequest(ctx context.Context, method, host, path string)

	// OnResponse records an HTTP response.
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)

	// OnError records an HTTP error (network failure, timeout).
	OnError(ctx context.Context, method, host, path string, err error)
}

// NoopSearchHooks is a no-op implementation of SearchHooks.
type NoopSearchHooks struct{}

func (NoopSearchHooks) OnRunStart(context.Context, string)                                {}
func (NoopSearchHooks) OnPageFetched(context.Context, int, int, int)                      {}
func (NoopSearchHooks) OnRecordSkipped(context.Context, string)                           {}
func (NoopSearchHooks) OnRunComplete(context.Context, string, int, time.Duration, error)  {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

var (
	mu          sync.RWMutex
	searchHooks SearchHooks = NoopSearchHooks{}
	cacheHooks  CacheHooks  = NoopCacheHooks{}
	httpHooks   HTTPHooks   = NoopHTTPHooks{}
)

// SetSearchHooks registers search hooks. Call at startup, before any searches.
func SetSearchHooks(h SearchHooks) {
	mu.Lock()
	defer mu.Unlock()
	if h == nil {
		h = NoopSearchHooks{}
	}
	searchHooks = h
}

// SetCacheHooks registers cache hooks.
func SetCacheHooks(h CacheHooks) {
	mu.Lock()
	defer mu.Unlock()
	if h == nil {
		h = NoopCacheHooks{}
	}
	cacheHooks = h
}

// SetHTTPHooks registers HTTP hooks.
func SetHTTPHooks(h HTTPHooks) {
	mu.Lock()
	defer mu.Unlock()
	if h == nil {
		h = NoopHTTPHooks{}
	}
	httpHooks = h
}

// Search returns the registered search hooks.
func Search() SearchHooks {
	mu.RLock()
	defer mu.RUnlock()
	return searchHooks
}

// CacheEvents returns the registered cache hooks.
func CacheEvents() CacheHooks {
	mu.RLock()
	defer mu.RUnlock()
	return cacheHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	mu.RLock()
	defer mu.RUnlock()
	return httpHooks
}

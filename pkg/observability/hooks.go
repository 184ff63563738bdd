// Package observability provides hooks for tracing fetch cycles and HTTP calls.
//
// Libraries in this module call the registered hooks; main registers real
// implementations at startup. The defaults are no-ops, so nothing here
// depends on a particular backend.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetCycleHooks(&myCycleHooks{})
//	    observability.SetHTTPHooks(&myHTTPHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Cycle().OnCycleStart(ctx, seq)
//	// ... request A, request B ...
//	observability.Cycle().OnCycleComplete(ctx, seq, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Cycle Hooks
// =============================================================================

// CycleHooks receives events from card fetch cycles.
type CycleHooks interface {
	// OnCycleStart records the start of fetch cycle seq.
	OnCycleStart(ctx context.Context, seq uint64)

	// OnCycleComplete records the end of fetch cycle seq. err is nil on success.
	OnCycleComplete(ctx context.Context, seq uint64, duration time.Duration, err error)

	// OnCycleDiscarded records a result dropped because a newer cycle was issued.
	OnCycleDiscarded(ctx context.Context, seq, latest uint64)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from HTTP client operations.
type HTTPHooks interface {
	// OnRequest records an outgoing HTTP request.
	OnRequest(ctx context.Context, method, host, path string)

	// OnResponse records an HTTP response.
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)

	// OnError records an HTTP error (network failure, timeout).
	OnError(ctx context.Context, method, host, path string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopCycleHooks is a no-op implementation of CycleHooks.
type NoopCycleHooks struct{}

func (NoopCycleHooks) OnCycleStart(context.Context, uint64)                          {}
func (NoopCycleHooks) OnCycleComplete(context.Context, uint64, time.Duration, error) {}
func (NoopCycleHooks) OnCycleDiscarded(context.Context, uint64, uint64)              {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	cycleHooks CycleHooks = NoopCycleHooks{}
	httpHooks  HTTPHooks  = NoopHTTPHooks{}
	hooksMu    sync.RWMutex
)

// SetCycleHooks registers custom fetch cycle hooks.
// This should be called once at application startup before any cycle runs.
func SetCycleHooks(h CycleHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cycleHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
// This should be called once at application startup before any HTTP operations.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Cycle returns the registered fetch cycle hooks.
func Cycle() CycleHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cycleHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	cycleHooks = NoopCycleHooks{}
	httpHooks = NoopHTTPHooks{}
}

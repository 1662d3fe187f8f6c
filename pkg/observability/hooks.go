// Package observability provides hooks for metrics and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers register hooks
// at startup to receive events about layout edits and publications.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// The layout engine stays free of logging and metrics imports; the CLI
// registers a logging hook and the HTTP server registers a Prometheus hook.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetLayoutHooks(&myLayoutHooks{})
//	    observability.SetStoreHooks(&myStoreHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Layout().OnCommit("move", id)
//	observability.Layout().OnReject("move", id, "OVERLAP")
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Layout Hooks
// =============================================================================

// LayoutHooks receives events from layout state mutations.
// op is the operation name ("add", "move", "rotate", "relabel", "remove",
// "resize", "accept"). spotID is 0 for operations that do not target a spot.
type LayoutHooks interface {
	// OnCommit records a mutation that was applied.
	OnCommit(op string, spotID int)

	// OnReject records a mutation that left the layout unchanged.
	OnReject(op string, spotID int, code string)
}

// =============================================================================
// Store Hooks
// =============================================================================

// StoreHooks receives events from publication stores.
type StoreHooks interface {
	// OnSave records a publication write.
	OnSave(ctx context.Context, backend string, spots int, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopLayoutHooks is a no-op implementation of LayoutHooks.
type NoopLayoutHooks struct{}

func (NoopLayoutHooks) OnCommit(string, int)         {}
func (NoopLayoutHooks) OnReject(string, int, string) {}

// NoopStoreHooks is a no-op implementation of StoreHooks.
type NoopStoreHooks struct{}

func (NoopStoreHooks) OnSave(context.Context, string, int, time.Duration, error) {}

// =============================================================================
// Fan-out
// =============================================================================

// MultiLayoutHooks forwards every event to each of its members in order.
type MultiLayoutHooks []LayoutHooks

func (m MultiLayoutHooks) OnCommit(op string, spotID int) {
	for _, h := range m {
		h.OnCommit(op, spotID)
	}
}

func (m MultiLayoutHooks) OnReject(op string, spotID int, code string) {
	for _, h := range m {
		h.OnReject(op, spotID, code)
	}
}

// MultiStoreHooks forwards every event to each of its members in order.
type MultiStoreHooks []StoreHooks

func (m MultiStoreHooks) OnSave(ctx context.Context, backend string, spots int, duration time.Duration, err error) {
	for _, h := range m {
		h.OnSave(ctx, backend, spots, duration, err)
	}
}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	layoutHooks LayoutHooks = NoopLayoutHooks{}
	storeHooks  StoreHooks  = NoopStoreHooks{}
	hooksMu     sync.RWMutex
)

// SetLayoutHooks registers custom layout hooks.
// This should be called once at application startup before any edits.
func SetLayoutHooks(h LayoutHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		layoutHooks = h
	}
}

// SetStoreHooks registers custom store hooks.
func SetStoreHooks(h StoreHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		storeHooks = h
	}
}

// Layout returns the registered layout hooks.
func Layout() LayoutHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return layoutHooks
}

// Store returns the registered store hooks.
func Store() StoreHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return storeHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	layoutHooks = NoopLayoutHooks{}
	storeHooks = NoopStoreHooks{}
}

// Package pipeline implements the build engine's middleware-composed
// event chain: every compile and the final link run through the same
// layered Timing → Cache → Logging → Statistics chain, in that runtime
// order (outermost first, so attached in the reverse order), before
// reaching the handler that actually does the work.
package pipeline

import (
	"context"
	"sync"

	"github.com/RPDevJesco/EventChains-BuildSystem/internal/core/domain"
)

// EventKind distinguishes what an Event carries, so middleware that only
// cares about compiles (the cache middleware, for one) can skip
// everything else without type-asserting.
type EventKind string

const (
	EventCompile EventKind = "compile"
	EventLink    EventKind = "link"
)

// Event is one unit of work flowing through the chain.
type Event struct {
	Kind    EventKind
	Name    string
	Compile *domain.CompilePayload
	Link    *domain.LinkPayload

	// ObjectPath is the object file a compile event would produce, known
	// ahead of running the compiler since it is pure path derivation.
	ObjectPath string
}

// Context carries data between middleware layers and the terminal
// handler, keyed by string — the same role the original's EventContext
// hash map plays, rebuilt here as a mutex-guarded map since Go handlers
// aren't necessarily run on a single thread the way the sequential C
// chain was.
type Context struct {
	mu   sync.RWMutex
	data map[string]any
}

// NewContext creates an empty Context.
func NewContext() *Context {
	return &Context{data: make(map[string]any)}
}

// Set stores value under key.
func (c *Context) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
}

// Get retrieves the value stored under key, if any.
func (c *Context) Get(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.data[key]
	return v, ok
}

// Result is what a handler or middleware leaves behind after processing
// an Event.
type Result struct {
	Success    bool
	Err        error
	CacheHit   bool
	ObjectPath string
}

// Handler processes one Event and returns a Result.
type Handler func(ctx context.Context, event *Event, ectx *Context) *Result

// Middleware wraps a Handler to produce another Handler, observing or
// altering behavior around the call to next — the Go equivalent of the
// original's (next, next_data) continuation pointer pair.
type Middleware func(next Handler) Handler

// Chain composes middlewares around terminal in attachment order. The
// last middleware passed is the outermost layer — attaching M1, M2, M3
// in that order yields runtime invocation order M3 -> M2 -> M1 -> task,
// the same "attach late, run early" rule the original event chain uses.
func Chain(terminal Handler, middlewares ...Middleware) Handler {
	h := terminal
	for _, mw := range middlewares {
		h = mw(h)
	}
	return h
}

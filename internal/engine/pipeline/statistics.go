package pipeline

import (
	"context"
	"sync"
	"time"
)

// Statistics accumulates per-run counters across every event that passes
// through NewStatisticsMiddleware's handler.
type Statistics struct {
	mu sync.Mutex

	CompiledFiles   int
	CachedFiles     int
	FailedFiles     int
	CompilationTime time.Duration
}

// NewStatisticsMiddleware is innermost in the default attachment order,
// so its timer measures only the handler's own work — compilation or
// linking — never cache-check overhead from layers above it.
func NewStatisticsMiddleware(stats *Statistics) Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, event *Event, ectx *Context) *Result {
			start := time.Now()
			result := next(ctx, event, ectx)
			elapsed := time.Since(start)

			if event.Kind != EventCompile {
				return result
			}

			stats.mu.Lock()
			defer stats.mu.Unlock()
			switch {
			case !result.Success:
				stats.FailedFiles++
			case result.CacheHit:
				stats.CachedFiles++
			default:
				stats.CompiledFiles++
				stats.CompilationTime += elapsed
			}
			return result
		}
	}
}

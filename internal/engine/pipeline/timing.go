package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/RPDevJesco/EventChains-BuildSystem/internal/core/ports"
)

// NewTimingMiddleware wraps next with a stopwatch. When verbose is set it
// opens a telemetry vertex per event — named after the task, exactly as
// spec.md's "Compile:<path>" / "Link:FinalBinary" naming — and reports
// start/elapsed lines and the final cached/failed/success state onto it
// (SPEC_FULL.md §4.13). With verbose off, telemetry is never touched, so
// an ordinary run pays no recorder overhead.
func NewTimingMiddleware(verbose bool, telemetry ports.Telemetry, out func(string)) Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, event *Event, ectx *Context) *Result {
			if !verbose {
				return next(ctx, event, ectx)
			}

			out(fmt.Sprintf("starting: %s", event.Name))

			var vertex ports.Vertex
			if telemetry != nil {
				ctx, vertex = telemetry.Record(ctx, event.Name)
			}

			start := time.Now()
			result := next(ctx, event, ectx)
			elapsed := time.Since(start)

			out(fmt.Sprintf("completed: %s (%s)", event.Name, elapsed))

			if vertex != nil {
				switch {
				case result.CacheHit:
					vertex.Cached()
				case !result.Success:
					vertex.Complete(result.Err)
				default:
					fmt.Fprintf(vertex.Stdout(), "completed in %s\n", elapsed) //nolint:errcheck
					vertex.Complete(nil)
				}
			}
			return result
		}
	}
}

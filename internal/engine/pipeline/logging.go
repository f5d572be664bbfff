package pipeline

import (
	"context"

	"github.com/RPDevJesco/EventChains-BuildSystem/internal/core/ports"
)

// NewLoggingMiddleware reports what it ran and how it finished. Errors
// always reach the logger, quiet mode or not — quiet only suppresses the
// success-path noise.
func NewLoggingMiddleware(quiet bool, logger ports.Logger) Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, event *Event, ectx *Context) *Result {
			if !quiet && event.Kind == EventCompile && event.Compile != nil {
				logger.Info("compile", "source", event.Compile.Source.Path.String())
			}

			result := next(ctx, event, ectx)

			switch {
			case result.Success && event.Kind == EventCompile && result.CacheHit:
				if !quiet {
					logger.Info("cached", "source", event.Compile.Source.Path.String())
				}
			case result.Success:
				if !quiet {
					logger.Info("success", "event", event.Name)
				}
			default:
				logger.Error(result.Err, "event", event.Name)
			}
			return result
		}
	}
}

// Package service holds the application operations behind the HTTP layer.
// Services wrap the in-memory stores, validate input, publish change events
// and record metrics.
package service

import (
	"context"
	"log/slog"

	"nexcos/internal/middleware"
)

// publishOrLog runs publish and logs a failure. Events are best effort; the
// store mutation has already happened.
func publishOrLog(ctx context.Context, topic string, publish func() error) {
	if err := publish(); err != nil {
		middleware.Logger.WarnContext(ctx, "event publish failed",
			slog.String("topic", topic),
			slog.String("error", err.Error()),
		)
	}
}

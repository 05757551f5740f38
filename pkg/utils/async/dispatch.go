package async

import (
	"context"

	"github.com/standup-lab/cadence/pkg/utils/logging"
)

// Dispatch runs handler in a new goroutine, detached from the caller's
// cancellation but keeping its logger. Panics and errors are logged under
// the given name; they never propagate to the caller.
func Dispatch(ctx context.Context, name string, handler func(ctx context.Context) error) {
	bgCtx := logging.With(context.Background(), logging.From(ctx))

	go func() {
		defer func() {
			if r := recover(); r != nil {
				logging.From(bgCtx).Error("panic in async handler", "name", name, "panic", r)
			}
		}()

		if err := handler(bgCtx); err != nil {
			logging.From(bgCtx).Error("async handler failed", "name", name, "error", err.Error())
		}
	}()
}

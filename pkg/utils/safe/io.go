package safe

import (
	"context"
	"io"

	"github.com/standup-lab/cadence/pkg/utils/logging"
)

// Close closes c and logs the error instead of returning it. Meant for
// defer sites where the close error cannot change the outcome.
func Close(ctx context.Context, c io.Closer) {
	if err := c.Close(); err != nil {
		logging.From(ctx).Error("failed to close", "error", err.Error())
	}
}

package slack

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/standup-lab/cadence/pkg/domain/model"
)

// ErrDeliveryFailed is returned once all delivery attempts are exhausted.
// Callers log it; it never rolls back stored updates.
var ErrDeliveryFailed = goerr.New("report delivery failed")

// Service delivers reports and single updates to the configured messaging
// channel. Both trigger paths (immediate per-submission and scheduled daily)
// go through the same contract.
type Service interface {
	// PostReport delivers a full period report. text is the formatted
	// plain-text rendering, used as the notification fallback.
	PostReport(ctx context.Context, report *model.Report, text string) error

	// PostUpdate delivers a minimal single-member note right after intake.
	PostUpdate(ctx context.Context, update *model.Update) error
}

package summary

import (
	"context"

	"github.com/standup-lab/cadence/pkg/domain/model"
)

// NoUpdatesText is returned when there is nothing to summarize. The external
// model is not called in that case.
const NoUpdatesText = "No updates were submitted for this period."

// Service compresses a period's updates into a short narrative. The external
// text model sits behind this interface so tests can swap in a deterministic
// stub.
type Service interface {
	Summarize(ctx context.Context, updates []*model.Update) (string, error)
}

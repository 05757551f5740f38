package interfaces

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/standup-lab/cadence/pkg/domain/model"
	"github.com/standup-lab/cadence/pkg/domain/types"
)

// ErrUpdateNotFound is returned when no update exists for the requested
// (author, period).
var ErrUpdateNotFound = goerr.New("update not found")

// Repository is the persistence boundary of the service
type Repository interface {
	Update() UpdateRepository
	Close() error
}

// UpdateRepository stores update submissions with append-only semantics.
// Records are never deleted; resubmission appends a new revision.
type UpdateRepository interface {
	// Put persists the update, assigning Revision, Latest and SubmittedAt.
	// Writes for the same (author, period) are serialized so revision
	// numbers and the latest flag stay consistent under concurrent
	// submissions.
	Put(ctx context.Context, u *model.Update) (*model.Update, error)

	// ListByPeriod returns every revision submitted for the period,
	// ordered by submission time. Empty slice when none.
	ListByPeriod(ctx context.Context, p types.Period) ([]*model.Update, error)

	// ListLatestByPeriod returns the latest revision per author for the
	// period, ordered by submission time. Empty slice when none.
	ListLatestByPeriod(ctx context.Context, p types.Period) ([]*model.Update, error)

	// GetLatest returns the latest revision for (author, period), or
	// ErrUpdateNotFound.
	GetLatest(ctx context.Context, author types.AuthorID, p types.Period) (*model.Update, error)
}

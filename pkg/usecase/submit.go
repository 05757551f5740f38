package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/standup-lab/cadence/pkg/domain/model"
	"github.com/standup-lab/cadence/pkg/domain/types"
	"github.com/standup-lab/cadence/pkg/utils/async"
	"github.com/standup-lab/cadence/pkg/utils/logging"
)

// SubmitUpdate validates and persists one member's update, then posts it to
// the messaging channel in the background. Delivery failures are logged and
// never fail the intake.
func (uc *UseCases) SubmitUpdate(ctx context.Context, author types.AuthorID, period types.Period, content string) (*model.Update, error) {
	u := model.NewUpdate(author, period, content)
	if err := u.Validate(); err != nil {
		return nil, goerr.Wrap(ErrInvalidUpdate, err.Error())
	}
	if !uc.roster.Contains(author) {
		return nil, goerr.Wrap(ErrUnknownAuthor, "unknown author", goerr.V("author", author))
	}

	stored, err := uc.repo.Update().Put(ctx, u)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to store update",
			goerr.V("author", author), goerr.V("period", period))
	}

	logging.From(ctx).Info("update stored",
		"author", stored.Author,
		"period", stored.Period,
		"revision", stored.Revision,
	)

	if uc.dispatcher != nil {
		posted := *stored
		async.Dispatch(ctx, "immediate update delivery", func(ctx context.Context) error {
			return uc.dispatcher.PostUpdate(ctx, &posted)
		})
	}

	return stored, nil
}

// ListUpdates returns the latest revision per author for the period
func (uc *UseCases) ListUpdates(ctx context.Context, period types.Period) ([]*model.Update, error) {
	updates, err := uc.repo.Update().ListLatestByPeriod(ctx, period)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list updates", goerr.V("period", period))
	}
	return updates, nil
}

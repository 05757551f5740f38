package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/standup-lab/cadence/pkg/domain/interfaces"
	"github.com/standup-lab/cadence/pkg/domain/model"
	"github.com/standup-lab/cadence/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type updateRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newUpdateRepository(client *firestore.Client) *updateRepository {
	return &updateRepository{
		client: client,
	}
}

func (r *updateRepository) updatesCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_updates"
	}
	return "updates"
}

func (r *updateRepository) headsCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_update_heads"
	}
	return "update_heads"
}

// headDoc tracks the latest revision per (author, period) so revision
// assignment and latest-flag handover happen inside one transaction.
type headDoc struct {
	Revision int    `firestore:"revision"`
	UpdateID string `firestore:"update_id"`
}

func headDocID(author types.AuthorID, p types.Period) string {
	return fmt.Sprintf("%s__%s", p, author)
}

func (r *updateRepository) Put(ctx context.Context, u *model.Update) (*model.Update, error) {
	if u == nil {
		return nil, goerr.New("update is nil")
	}

	stored := *u
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	if stored.SubmittedAt.IsZero() {
		stored.SubmittedAt = time.Now().UTC()
	}
	stored.Latest = true

	headRef := r.client.Collection(r.headsCollection()).Doc(headDocID(stored.Author, stored.Period))

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		prevID := ""
		revision := 1

		doc, err := tx.Get(headRef)
		if err != nil {
			if status.Code(err) != codes.NotFound {
				return goerr.Wrap(err, "failed to get update head")
			}
		} else {
			var head headDoc
			if err := doc.DataTo(&head); err != nil {
				return goerr.Wrap(err, "failed to decode update head")
			}
			revision = head.Revision + 1
			prevID = head.UpdateID
		}

		stored.Revision = revision

		if err := tx.Set(headRef, headDoc{Revision: revision, UpdateID: stored.ID}); err != nil {
			return goerr.Wrap(err, "failed to set update head")
		}

		updateRef := r.client.Collection(r.updatesCollection()).Doc(stored.ID)
		if err := tx.Set(updateRef, &stored); err != nil {
			return goerr.Wrap(err, "failed to store update")
		}

		if prevID != "" {
			prevRef := r.client.Collection(r.updatesCollection()).Doc(prevID)
			if err := tx.Update(prevRef, []firestore.Update{
				{Path: "latest", Value: false},
			}); err != nil {
				return goerr.Wrap(err, "failed to clear latest flag", goerr.V("prev_id", prevID))
			}
		}

		return nil
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to put update",
			goerr.V("author", stored.Author), goerr.V("period", stored.Period))
	}

	return &stored, nil
}

func (r *updateRepository) ListByPeriod(ctx context.Context, p types.Period) ([]*model.Update, error) {
	query := r.client.Collection(r.updatesCollection()).
		Where("period", "==", p.String()).
		OrderBy("submitted_at", firestore.Asc)

	return r.runQuery(ctx, query, p)
}

func (r *updateRepository) ListLatestByPeriod(ctx context.Context, p types.Period) ([]*model.Update, error) {
	query := r.client.Collection(r.updatesCollection()).
		Where("period", "==", p.String()).
		Where("latest", "==", true).
		OrderBy("submitted_at", firestore.Asc)

	return r.runQuery(ctx, query, p)
}

func (r *updateRepository) runQuery(ctx context.Context, query firestore.Query, p types.Period) ([]*model.Update, error) {
	iter := query.Documents(ctx)
	defer iter.Stop()

	updates := []*model.Update{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate updates", goerr.V("period", p))
		}

		var u model.Update
		if err := doc.DataTo(&u); err != nil {
			return nil, goerr.Wrap(err, "failed to decode update", goerr.V("doc", doc.Ref.ID))
		}
		updates = append(updates, &u)
	}

	return updates, nil
}

func (r *updateRepository) GetLatest(ctx context.Context, author types.AuthorID, p types.Period) (*model.Update, error) {
	headRef := r.client.Collection(r.headsCollection()).Doc(headDocID(author, p))

	doc, err := headRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(interfaces.ErrUpdateNotFound, "no update for author and period",
				goerr.V("author", author), goerr.V("period", p))
		}
		return nil, goerr.Wrap(err, "failed to get update head")
	}

	var head headDoc
	if err := doc.DataTo(&head); err != nil {
		return nil, goerr.Wrap(err, "failed to decode update head")
	}

	updateDoc, err := r.client.Collection(r.updatesCollection()).Doc(head.UpdateID).Get(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get update", goerr.V("update_id", head.UpdateID))
	}

	var u model.Update
	if err := updateDoc.DataTo(&u); err != nil {
		return nil, goerr.Wrap(err, "failed to decode update", goerr.V("update_id", head.UpdateID))
	}

	return &u, nil
}

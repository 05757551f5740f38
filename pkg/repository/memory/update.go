package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/standup-lab/cadence/pkg/domain/interfaces"
	"github.com/standup-lab/cadence/pkg/domain/model"
	"github.com/standup-lab/cadence/pkg/domain/types"
)

type authorPeriodKey struct {
	author types.AuthorID
	period types.Period
}

type updateRepository struct {
	mu       sync.RWMutex
	byPeriod map[types.Period][]*model.Update
	heads    map[authorPeriodKey]*model.Update
}

func newUpdateRepository() *updateRepository {
	return &updateRepository{
		byPeriod: make(map[types.Period][]*model.Update),
		heads:    make(map[authorPeriodKey]*model.Update),
	}
}

func copyUpdate(u *model.Update) *model.Update {
	copied := *u
	return &copied
}

func (r *updateRepository) Put(ctx context.Context, u *model.Update) (*model.Update, error) {
	if u == nil {
		return nil, goerr.New("update is nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored := copyUpdate(u)
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	if stored.SubmittedAt.IsZero() {
		stored.SubmittedAt = time.Now().UTC()
	}

	key := authorPeriodKey{author: stored.Author, period: stored.Period}
	if head, exists := r.heads[key]; exists {
		head.Latest = false
		stored.Revision = head.Revision + 1
	} else {
		stored.Revision = 1
	}
	stored.Latest = true

	r.byPeriod[stored.Period] = append(r.byPeriod[stored.Period], stored)
	r.heads[key] = stored

	return copyUpdate(stored), nil
}

func (r *updateRepository) ListByPeriod(ctx context.Context, p types.Period) ([]*model.Update, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.byPeriod[p]
	updates := make([]*model.Update, 0, len(stored))
	for _, u := range stored {
		updates = append(updates, copyUpdate(u))
	}

	sortBySubmission(updates)
	return updates, nil
}

func (r *updateRepository) ListLatestByPeriod(ctx context.Context, p types.Period) ([]*model.Update, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var updates []*model.Update
	for _, u := range r.byPeriod[p] {
		if u.Latest {
			updates = append(updates, copyUpdate(u))
		}
	}
	if updates == nil {
		updates = []*model.Update{}
	}

	sortBySubmission(updates)
	return updates, nil
}

func (r *updateRepository) GetLatest(ctx context.Context, author types.AuthorID, p types.Period) (*model.Update, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	head, exists := r.heads[authorPeriodKey{author: author, period: p}]
	if !exists {
		return nil, goerr.Wrap(interfaces.ErrUpdateNotFound, "no update for author and period",
			goerr.V("author", author), goerr.V("period", p))
	}

	return copyUpdate(head), nil
}

func sortBySubmission(updates []*model.Update) {
	sort.SliceStable(updates, func(i, j int) bool {
		if updates[i].SubmittedAt.Equal(updates[j].SubmittedAt) {
			return updates[i].Revision < updates[j].Revision
		}
		return updates[i].SubmittedAt.Before(updates[j].SubmittedAt)
	})
}

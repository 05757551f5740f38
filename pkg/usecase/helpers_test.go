package usecase_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/standup-lab/cadence/pkg/domain/interfaces"
	"github.com/standup-lab/cadence/pkg/domain/model"
	"github.com/standup-lab/cadence/pkg/domain/types"
)

// mockSummarizer is a deterministic stand-in for the text model
type mockSummarizer struct {
	summarizeFn func(ctx context.Context, updates []*model.Update) (string, error)
	calls       int
}

func (m *mockSummarizer) Summarize(ctx context.Context, updates []*model.Update) (string, error) {
	m.calls++
	if m.summarizeFn != nil {
		return m.summarizeFn(ctx, updates)
	}
	return "Everything is on track.", nil
}

// mockDispatcher records posted reports and updates
type mockDispatcher struct {
	postReportFn  func(ctx context.Context, report *model.Report, text string) error
	postUpdateFn  func(ctx context.Context, update *model.Update) error
	postedReports []*model.Report
	postedUpdates []*model.Update
}

func (m *mockDispatcher) PostReport(ctx context.Context, report *model.Report, text string) error {
	if m.postReportFn != nil {
		return m.postReportFn(ctx, report, text)
	}
	m.postedReports = append(m.postedReports, report)
	return nil
}

func (m *mockDispatcher) PostUpdate(ctx context.Context, update *model.Update) error {
	if m.postUpdateFn != nil {
		return m.postUpdateFn(ctx, update)
	}
	m.postedUpdates = append(m.postedUpdates, update)
	return nil
}

func testRoster(t *testing.T, ids ...types.AuthorID) *model.Roster {
	t.Helper()

	members := make([]model.Member, len(ids))
	for i, id := range ids {
		members[i] = model.Member{ID: id, Name: string(id)}
	}

	roster, err := model.NewRoster(members)
	gt.NoError(t, err).Required()
	return roster
}

func seedUpdate(t *testing.T, repo interfaces.Repository, author types.AuthorID, period types.Period, content string) *model.Update {
	t.Helper()

	stored, err := repo.Update().Put(context.Background(), model.NewUpdate(author, period, content))
	gt.NoError(t, err).Required()
	return stored
}

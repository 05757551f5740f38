package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/standup-lab/cadence/pkg/domain/model"
	"github.com/standup-lab/cadence/pkg/domain/types"
)

func TestNewRoster(t *testing.T) {
	t.Run("orders members by ID", func(t *testing.T) {
		roster, err := model.NewRoster([]model.Member{
			{ID: "carol", Name: "Carol"},
			{ID: "alice", Name: "Alice"},
			{ID: "bob", Name: "Bob"},
		})
		gt.NoError(t, err).Required()

		expected := roster.Expected()
		gt.Array(t, expected).Length(3)
		gt.Value(t, expected[0]).Equal(types.AuthorID("alice"))
		gt.Value(t, expected[1]).Equal(types.AuthorID("bob"))
		gt.Value(t, expected[2]).Equal(types.AuthorID("carol"))
	})

	t.Run("rejects duplicate member", func(t *testing.T) {
		_, err := model.NewRoster([]model.Member{
			{ID: "alice", Name: "Alice"},
			{ID: "alice", Name: "Other Alice"},
		})
		gt.Error(t, err)
	})

	t.Run("rejects invalid member ID", func(t *testing.T) {
		_, err := model.NewRoster([]model.Member{
			{ID: "Alice Smith", Name: "Alice"},
		})
		gt.Error(t, err)
	})
}

func TestRosterContains(t *testing.T) {
	roster, err := model.NewRoster([]model.Member{
		{ID: "alice", Name: "Alice"},
		{ID: "bob", Name: "Bob"},
	})
	gt.NoError(t, err).Required()

	gt.Bool(t, roster.Contains("alice")).True()
	gt.Bool(t, roster.Contains("mallory")).False()
	gt.Value(t, roster.Size()).Equal(2)
}

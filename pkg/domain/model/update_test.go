package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/standup-lab/cadence/pkg/domain/model"
)

func TestUpdateValidate(t *testing.T) {
	t.Run("valid update", func(t *testing.T) {
		u := model.NewUpdate("alice", "2026-08-28", "Shipped the importer, starting on retries.")
		gt.NoError(t, u.Validate())
		gt.Value(t, u.ID).NotEqual("")
	})

	t.Run("rejects empty content", func(t *testing.T) {
		u := model.NewUpdate("alice", "2026-08-28", "   \n\t ")
		gt.Error(t, u.Validate())
	})

	t.Run("rejects invalid author", func(t *testing.T) {
		u := model.NewUpdate("Alice Smith", "2026-08-28", "some progress")
		gt.Error(t, u.Validate())
	})

	t.Run("rejects malformed period", func(t *testing.T) {
		u := model.NewUpdate("alice", "yesterday", "some progress")
		gt.Error(t, u.Validate())
	})
}

func TestUpdateExcerpt(t *testing.T) {
	t.Run("folds whitespace onto one line", func(t *testing.T) {
		u := model.NewUpdate("alice", "2026-08-28", "line one\n  line two\t\tend")
		gt.Value(t, u.Excerpt(120)).Equal("line one line two end")
	})

	t.Run("truncates long content", func(t *testing.T) {
		u := model.NewUpdate("alice", "2026-08-28", "abcdefghij")
		gt.Value(t, u.Excerpt(5)).Equal("abcde…")
	})

	t.Run("counts runes, not bytes", func(t *testing.T) {
		u := model.NewUpdate("alice", "2026-08-28", "待機中のタスクが多い")
		gt.Value(t, u.Excerpt(3)).Equal("待機中…")
	})
}

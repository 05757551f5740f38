package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/standup-lab/cadence/pkg/domain/types"
)

// Update is one member's free-text progress submission for a period.
// Updates are append-only: resubmitting for the same (author, period)
// stores a new revision and marks it as the latest, keeping the old
// revisions as an audit trail.
type Update struct {
	ID          string         `json:"id" firestore:"id"`
	Author      types.AuthorID `json:"author" firestore:"author"`
	Period      types.Period   `json:"period" firestore:"period"`
	Content     string         `json:"content" firestore:"content"`
	Revision    int            `json:"revision" firestore:"revision"`
	Latest      bool           `json:"latest" firestore:"latest"`
	SubmittedAt time.Time      `json:"submitted_at" firestore:"submitted_at"`
}

// NewUpdate creates an Update with a fresh ID. Revision, Latest and
// SubmittedAt are assigned by the repository on Put.
func NewUpdate(author types.AuthorID, period types.Period, content string) *Update {
	return &Update{
		ID:      uuid.NewString(),
		Author:  author,
		Period:  period,
		Content: content,
	}
}

// Validate checks if the update is acceptable for submission
func (u *Update) Validate() error {
	if err := u.Author.Validate(); err != nil {
		return goerr.Wrap(err, "invalid author")
	}
	if err := u.Period.Validate(); err != nil {
		return goerr.Wrap(err, "invalid period")
	}
	if strings.TrimSpace(u.Content) == "" {
		return goerr.New("update content cannot be empty", goerr.V("author", u.Author))
	}
	return nil
}

// Excerpt returns the first n runes of the content on a single line,
// used when citing the update as finding evidence.
func (u *Update) Excerpt(n int) string {
	text := strings.Join(strings.Fields(u.Content), " ")
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n]) + "…"
}

package summary

import (
	"context"
	_ "embed"
	"fmt"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/standup-lab/cadence/pkg/domain/model"
)

//go:embed prompt/summarize_system.md
var systemPrompt string

// DefaultTimeout bounds a single summarization call
const DefaultTimeout = 30 * time.Second

// client implements Service on top of a gollem LLM client
type client struct {
	llm     gollem.LLMClient
	timeout time.Duration
}

// Option is a functional option for client configuration
type Option func(*client)

// WithTimeout sets the per-call timeout for the text model
func WithTimeout(d time.Duration) Option {
	return func(c *client) {
		c.timeout = d
	}
}

// New creates a summarizer backed by the given LLM client
func New(llm gollem.LLMClient, opts ...Option) (Service, error) {
	if llm == nil {
		return nil, goerr.New("LLM client is required")
	}

	c := &client{
		llm:     llm,
		timeout: DefaultTimeout,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

func (c *client) Summarize(ctx context.Context, updates []*model.Update) (string, error) {
	if len(updates) == 0 {
		return NoUpdatesText, nil
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	session, err := c.llm.NewSession(ctx,
		gollem.WithSessionSystemPrompt(systemPrompt),
	)
	if err != nil {
		return "", goerr.Wrap(err, "failed to create LLM session")
	}

	resp, err := session.GenerateContent(ctx, gollem.Text(buildPrompt(updates)))
	if err != nil {
		return "", goerr.Wrap(err, "failed to generate summary",
			goerr.V("updates", len(updates)))
	}

	if len(resp.Texts) == 0 {
		return "", goerr.New("text model returned an empty summary")
	}

	return strings.TrimSpace(strings.Join(resp.Texts, "\n")), nil
}

// buildPrompt renders the updates as one block per member
func buildPrompt(updates []*model.Update) string {
	var b strings.Builder
	b.WriteString("Stand-up updates:\n")
	for _, u := range updates {
		fmt.Fprintf(&b, "\nMember: %s\n%s\n", u.Author, strings.TrimSpace(u.Content))
	}
	return b.String()
}

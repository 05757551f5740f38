package summary_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/gt"
	"github.com/standup-lab/cadence/pkg/domain/model"
	"github.com/standup-lab/cadence/pkg/domain/types"
	"github.com/standup-lab/cadence/pkg/service/summary"
)

// mockLLMSession is a mock gollem session for testing
type mockLLMSession struct {
	generateContentFn func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error)
}

func (s *mockLLMSession) Generate(ctx context.Context, input []gollem.Input, opts ...gollem.GenerateOption) (*gollem.Response, error) {
	return s.GenerateContent(ctx, input...)
}

func (s *mockLLMSession) Stream(ctx context.Context, input []gollem.Input, opts ...gollem.GenerateOption) (<-chan *gollem.Response, error) {
	return nil, nil
}

func (s *mockLLMSession) GenerateContent(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
	if s.generateContentFn != nil {
		return s.generateContentFn(ctx, input...)
	}
	return &gollem.Response{Texts: []string{"The team made steady progress."}}, nil
}

func (s *mockLLMSession) GenerateStream(ctx context.Context, input ...gollem.Input) (<-chan *gollem.Response, error) {
	return nil, nil
}

func (s *mockLLMSession) History() (*gollem.History, error) {
	return nil, nil
}

func (s *mockLLMSession) AppendHistory(*gollem.History) error {
	return nil
}

func (s *mockLLMSession) CountToken(ctx context.Context, input ...gollem.Input) (int, error) {
	return 0, nil
}

// mockLLMClient is a mock gollem LLMClient for testing
type mockLLMClient struct {
	newSessionFn func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error)
	sessions     int
}

func (c *mockLLMClient) NewSession(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
	c.sessions++
	if c.newSessionFn != nil {
		return c.newSessionFn(ctx, options...)
	}
	return &mockLLMSession{}, nil
}

func (c *mockLLMClient) GenerateEmbedding(ctx context.Context, dimension int, input []string) ([][]float64, error) {
	return nil, nil
}

func testUpdates() []*model.Update {
	return []*model.Update{
		model.NewUpdate(types.AuthorID("alice"), "2026-08-28", "Shipped the importer."),
		model.NewUpdate(types.AuthorID("bob"), "2026-08-28", "Testing edge cases."),
	}
}

func TestSummarize(t *testing.T) {
	t.Run("returns the model output", func(t *testing.T) {
		llm := &mockLLMClient{}
		svc, err := summary.New(llm)
		gt.NoError(t, err).Required()

		text, err := svc.Summarize(context.Background(), testUpdates())
		gt.NoError(t, err).Required()
		gt.Value(t, text).Equal("The team made steady progress.")
		gt.Value(t, llm.sessions).Equal(1)
	})

	t.Run("empty input skips the model", func(t *testing.T) {
		llm := &mockLLMClient{}
		svc, err := summary.New(llm)
		gt.NoError(t, err).Required()

		text, err := svc.Summarize(context.Background(), nil)
		gt.NoError(t, err).Required()
		gt.Value(t, text).Equal(summary.NoUpdatesText)
		gt.Value(t, llm.sessions).Equal(0)
	})

	t.Run("model failure is surfaced", func(t *testing.T) {
		llm := &mockLLMClient{
			newSessionFn: func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
				return &mockLLMSession{
					generateContentFn: func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
						return nil, errors.New("quota exceeded")
					},
				}, nil
			},
		}
		svc, err := summary.New(llm)
		gt.NoError(t, err).Required()

		_, err = svc.Summarize(context.Background(), testUpdates())
		gt.Error(t, err)
	})

	t.Run("empty model response is an error", func(t *testing.T) {
		llm := &mockLLMClient{
			newSessionFn: func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
				return &mockLLMSession{
					generateContentFn: func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
						return &gollem.Response{}, nil
					},
				}, nil
			},
		}
		svc, err := summary.New(llm)
		gt.NoError(t, err).Required()

		_, err = svc.Summarize(context.Background(), testUpdates())
		gt.Error(t, err)
	})

	t.Run("requires an LLM client", func(t *testing.T) {
		_, err := summary.New(nil)
		gt.Error(t, err)
	})
}

func TestBuildPrompt(t *testing.T) {
	prompt := summary.BuildPrompt(testUpdates())

	gt.Bool(t, strings.Contains(prompt, "Member: alice")).True()
	gt.Bool(t, strings.Contains(prompt, "Shipped the importer.")).True()
	gt.Bool(t, strings.Contains(prompt, "Member: bob")).True()
	gt.Bool(t, strings.Contains(prompt, "Testing edge cases.")).True()
}

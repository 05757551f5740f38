package slack

import (
	"context"
	"net/http"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"
	"github.com/standup-lab/cadence/pkg/domain/model"
	"github.com/standup-lab/cadence/pkg/utils/logging"
)

const (
	// DefaultMaxAttempts is the default number of delivery attempts
	DefaultMaxAttempts = 3
	// DefaultBackoff is the initial retry backoff, doubled per attempt
	DefaultBackoff = 1 * time.Second
	// DefaultTimeout bounds a single webhook request
	DefaultTimeout = 10 * time.Second
)

// client implements Service via a Slack incoming webhook
type client struct {
	webhookURL  string
	httpClient  *http.Client
	maxAttempts int
	backoff     time.Duration
}

// Option is a functional option for client configuration
type Option func(*client)

// WithHTTPClient replaces the HTTP client used for webhook posts
func WithHTTPClient(hc *http.Client) Option {
	return func(c *client) {
		c.httpClient = hc
	}
}

// WithRetry sets the attempt count and initial backoff
func WithRetry(maxAttempts int, backoff time.Duration) Option {
	return func(c *client) {
		c.maxAttempts = maxAttempts
		c.backoff = backoff
	}
}

// New creates a delivery service posting to the given webhook URL
func New(webhookURL string, opts ...Option) (Service, error) {
	if webhookURL == "" {
		return nil, goerr.New("webhook URL is required")
	}

	c := &client{
		webhookURL:  webhookURL,
		httpClient:  &http.Client{Timeout: DefaultTimeout},
		maxAttempts: DefaultMaxAttempts,
		backoff:     DefaultBackoff,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.maxAttempts < 1 {
		return nil, goerr.New("max attempts must be at least 1", goerr.V("attempts", c.maxAttempts))
	}

	return c, nil
}

func (c *client) PostReport(ctx context.Context, report *model.Report, text string) error {
	msg := &slack.WebhookMessage{
		Text:   text,
		Blocks: buildReportBlocks(report),
	}
	return c.post(ctx, msg)
}

func (c *client) PostUpdate(ctx context.Context, update *model.Update) error {
	msg := &slack.WebhookMessage{
		Text:   update.Content,
		Blocks: buildUpdateBlocks(update),
	}
	return c.post(ctx, msg)
}

// post sends the message with bounded exponential backoff. Every attempt is
// logged; exhaustion surfaces ErrDeliveryFailed to the caller.
func (c *client) post(ctx context.Context, msg *slack.WebhookMessage) error {
	logger := logging.From(ctx)

	var lastErr error
	backoff := c.backoff

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		lastErr = slack.PostWebhookCustomHTTPContext(ctx, c.webhookURL, c.httpClient, msg)
		if lastErr == nil {
			return nil
		}

		logger.Warn("webhook delivery attempt failed",
			"attempt", attempt,
			"max_attempts", c.maxAttempts,
			"error", lastErr.Error(),
		)

		if attempt == c.maxAttempts {
			break
		}

		select {
		case <-time.After(backoff):
			backoff *= 2
		case <-ctx.Done():
			return goerr.Wrap(ErrDeliveryFailed, "delivery cancelled",
				goerr.V("attempt", attempt), goerr.V("cause", ctx.Err().Error()))
		}
	}

	return goerr.Wrap(ErrDeliveryFailed, "webhook unreachable",
		goerr.V("attempts", c.maxAttempts),
		goerr.V("last_error", lastErr.Error()),
	)
}

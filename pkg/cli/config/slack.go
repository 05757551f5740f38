package config

import (
	"log/slog"
	"time"

	"github.com/m-mizutani/goerr/v2"
	slacksvc "github.com/standup-lab/cadence/pkg/service/slack"
	"github.com/urfave/cli/v3"
)

// Slack holds CLI flags for report delivery configuration
type Slack struct {
	webhookURL  string
	maxAttempts int
	backoff     time.Duration
}

// Flags returns CLI flags for Slack delivery configuration
func (x *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-webhook-url",
			Usage:       "Slack incoming webhook URL for report delivery",
			Category:    "Slack",
			Sources:     cli.EnvVars("CADENCE_SLACK_WEBHOOK_URL"),
			Destination: &x.webhookURL,
		},
		&cli.IntFlag{
			Name:        "slack-max-attempts",
			Usage:       "Delivery attempts before giving up",
			Category:    "Slack",
			Value:       slacksvc.DefaultMaxAttempts,
			Sources:     cli.EnvVars("CADENCE_SLACK_MAX_ATTEMPTS"),
			Destination: &x.maxAttempts,
		},
		&cli.DurationFlag{
			Name:        "slack-backoff",
			Usage:       "Initial retry backoff, doubled per attempt",
			Category:    "Slack",
			Value:       slacksvc.DefaultBackoff,
			Sources:     cli.EnvVars("CADENCE_SLACK_BACKOFF"),
			Destination: &x.backoff,
		},
	}
}

// LogValue redacts the webhook URL, it embeds a credential
func (x Slack) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("webhook-url.len", len(x.webhookURL)),
		slog.Int("max-attempts", x.maxAttempts),
		slog.Duration("backoff", x.backoff),
	)
}

// IsConfigured reports whether a webhook URL was provided
func (x *Slack) IsConfigured() bool {
	return x.webhookURL != ""
}

// Configure creates the delivery service, or returns nil when no webhook is
// configured (delivery endpoints then respond with 503).
func (x *Slack) Configure() (slacksvc.Service, error) {
	if x.webhookURL == "" {
		return nil, nil
	}

	svc, err := slacksvc.New(x.webhookURL,
		slacksvc.WithRetry(x.maxAttempts, x.backoff),
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to initialize slack delivery")
	}

	return svc, nil
}

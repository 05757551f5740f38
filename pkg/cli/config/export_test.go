package config

import "time"

// NewTeamForTest creates a Team config for testing purposes
func NewTeamForTest(path string) *Team {
	return &Team{path: path}
}

// NewSlackForTest creates a Slack config for testing purposes
func NewSlackForTest(webhookURL string, maxAttempts int, backoff time.Duration) *Slack {
	return &Slack{
		webhookURL:  webhookURL,
		maxAttempts: maxAttempts,
		backoff:     backoff,
	}
}

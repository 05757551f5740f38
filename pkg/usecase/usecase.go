package usecase

import (
	"github.com/standup-lab/cadence/pkg/domain/interfaces"
	"github.com/standup-lab/cadence/pkg/domain/model"
	"github.com/standup-lab/cadence/pkg/domain/model/config"
	"github.com/standup-lab/cadence/pkg/service/archive"
	"github.com/standup-lab/cadence/pkg/service/slack"
	"github.com/standup-lab/cadence/pkg/service/summary"
)

// UseCases wires the intake, report and delivery pipeline
type UseCases struct {
	repo       interfaces.Repository
	roster     *model.Roster
	rules      *config.Rules
	summarizer summary.Service
	dispatcher slack.Service
	archive    archive.Service
}

type Option func(*UseCases)

// WithSummarizer sets the text-model summarizer. Without one, every report
// falls back to the raw update list.
func WithSummarizer(svc summary.Service) Option {
	return func(uc *UseCases) {
		uc.summarizer = svc
	}
}

// WithDispatcher sets the outbound delivery channel
func WithDispatcher(svc slack.Service) Option {
	return func(uc *UseCases) {
		uc.dispatcher = svc
	}
}

// WithArchive enables report archiving
func WithArchive(svc archive.Service) Option {
	return func(uc *UseCases) {
		uc.archive = svc
	}
}

// WithRules overrides the risk detection rules
func WithRules(rules *config.Rules) Option {
	return func(uc *UseCases) {
		uc.rules = rules
	}
}

func New(repo interfaces.Repository, roster *model.Roster, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:   repo,
		roster: roster,
		rules:  config.DefaultRules(),
	}

	for _, opt := range opts {
		opt(uc)
	}

	// Normalize a copy so construction never mutates the caller's rules
	uc.rules = uc.rules.Clone()
	uc.rules.Normalize()

	return uc
}

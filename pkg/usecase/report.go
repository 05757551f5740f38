package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/standup-lab/cadence/pkg/domain/model"
	"github.com/standup-lab/cadence/pkg/domain/types"
	"github.com/standup-lab/cadence/pkg/service/summary"
	"github.com/standup-lab/cadence/pkg/utils/errutil"
	"github.com/standup-lab/cadence/pkg/utils/logging"
	"golang.org/x/sync/errgroup"
)

// GenerateReport builds the report for a period: latest updates are
// summarized by the text model and scanned for risk signals, the two steps
// running concurrently. A summarizer failure degrades to a fallback summary
// and never fails the report; store failures do.
//
// Returns the report and its formatted text rendering.
func (uc *UseCases) GenerateReport(ctx context.Context, period types.Period) (*model.Report, string, error) {
	updates, err := uc.repo.Update().ListLatestByPeriod(ctx, period)
	if err != nil {
		return nil, "", goerr.Wrap(err, "failed to load updates", goerr.V("period", period))
	}

	history := make(map[types.Period][]*model.Update, uc.rules.Lookback)
	for _, p := range period.PrevN(uc.rules.Lookback) {
		prior, err := uc.repo.Update().ListLatestByPeriod(ctx, p)
		if err != nil {
			return nil, "", goerr.Wrap(err, "failed to load update history", goerr.V("period", p))
		}
		history[p] = prior
	}

	var summaryText string
	var degraded bool
	var findings []model.RiskFinding

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		summaryText, degraded = uc.summarize(egCtx, updates)
		return nil
	})
	eg.Go(func() error {
		findings = AnalyzeRisks(period, updates, uc.roster.Expected(), history, uc.rules)
		return nil
	})
	// Both tasks degrade internally instead of returning errors.
	_ = eg.Wait()

	report := &model.Report{
		Period:      period,
		Summary:     summaryText,
		Degraded:    degraded,
		Findings:    findings,
		UpdateCount: len(updates),
		GeneratedAt: time.Now().UTC(),
	}

	return report, FormatReport(report), nil
}

// DeliverReport generates the period's report, archives it when an archive
// is configured, and dispatches it to the messaging channel. A report that
// fails delivery is still generated (and archived): the error only reflects
// the delivery step.
func (uc *UseCases) DeliverReport(ctx context.Context, period types.Period) (*model.Report, error) {
	report, text, err := uc.GenerateReport(ctx, period)
	if err != nil {
		return nil, err
	}

	if uc.archive != nil {
		if err := uc.archive.Store(ctx, report, text); err != nil {
			// Archive failures must not block delivery.
			_ = errutil.Handle(ctx, err, "failed to archive report")
		}
	}

	if uc.dispatcher == nil {
		return report, goerr.Wrap(ErrNoDispatcher, "report generated but not delivered",
			goerr.V("period", period))
	}

	if err := uc.dispatcher.PostReport(ctx, report, text); err != nil {
		return report, errutil.Handle(ctx, err, "report generated but delivery failed")
	}

	logging.From(ctx).Info("report delivered",
		"period", period,
		"updates", report.UpdateCount,
		"findings", len(report.Findings),
		"degraded", report.Degraded,
	)

	return report, nil
}

// summarize calls the text model and degrades to the raw update list on any
// upstream failure, so risk analysis and delivery still complete.
func (uc *UseCases) summarize(ctx context.Context, updates []*model.Update) (string, bool) {
	if uc.summarizer == nil {
		if len(updates) == 0 {
			return summary.NoUpdatesText, false
		}
		return fallbackSummary(updates), true
	}

	text, err := uc.summarizer.Summarize(ctx, updates)
	if err != nil {
		_ = errutil.Handle(ctx, err, "summarizer unavailable, using fallback summary")
		return fallbackSummary(updates), true
	}

	return text, false
}

func fallbackSummary(updates []*model.Update) string {
	var b strings.Builder
	b.WriteString("Summary unavailable (text model unreachable). Raw updates:\n")
	for _, u := range updates {
		fmt.Fprintf(&b, "  - %s: %s\n", u.Author, u.Excerpt(160))
	}
	return strings.TrimRight(b.String(), "\n")
}

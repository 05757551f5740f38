package usecase_test

import (
	"strings"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/standup-lab/cadence/pkg/domain/model"
	"github.com/standup-lab/cadence/pkg/domain/types"
	"github.com/standup-lab/cadence/pkg/usecase"
)

func TestFormatReport(t *testing.T) {
	generatedAt := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)

	t.Run("renders header, summary and footer", func(t *testing.T) {
		report := &model.Report{
			Period:      "2026-08-28",
			Summary:     "Everything on track.",
			UpdateCount: 3,
			GeneratedAt: generatedAt,
		}

		text := usecase.FormatReport(report)

		gt.Bool(t, strings.HasPrefix(text, "Daily Stand-up Report — 2026-08-28\n")).True()
		gt.Bool(t, strings.Contains(text, "Summary:\nEverything on track.\n")).True()
		gt.Bool(t, strings.Contains(text, "3 update(s) · generated 2026-08-28 10:00:00 UTC")).True()
	})

	t.Run("omits the risk section without findings", func(t *testing.T) {
		report := &model.Report{
			Period:      "2026-08-28",
			Summary:     "Quiet day.",
			GeneratedAt: generatedAt,
		}

		text := usecase.FormatReport(report)
		gt.Bool(t, strings.Contains(text, "Risks:")).False()
	})

	t.Run("groups findings by kind in fixed order", func(t *testing.T) {
		report := &model.Report{
			Period:  "2026-08-28",
			Summary: "Mixed day.",
			Findings: []model.RiskFinding{
				{Kind: types.FindingStalledTask, Author: "bob", Message: "update unchanged for 2 consecutive periods"},
				{Kind: types.FindingMissingUpdate, Author: "carol", Message: "no update submitted for 2026-08-28"},
				{Kind: types.FindingRepeatedBlocker, Author: "alice", Message: `"blocked on api access" reported in 2 consecutive periods`},
			},
			UpdateCount: 2,
			GeneratedAt: generatedAt,
		}

		text := usecase.FormatReport(report)

		gt.Bool(t, strings.Contains(text, "Risks:")).True()

		missingAt := strings.Index(text, "[Missing Update] carol:")
		blockerAt := strings.Index(text, "[Repeated Blocker] alice:")
		stalledAt := strings.Index(text, "[Stalled Task] bob:")

		gt.Bool(t, missingAt >= 0).True()
		gt.Bool(t, blockerAt > missingAt).True()
		gt.Bool(t, stalledAt > blockerAt).True()
	})

	t.Run("stable output for identical input", func(t *testing.T) {
		report := &model.Report{
			Period:  "2026-08-28",
			Summary: "Stable.",
			Findings: []model.RiskFinding{
				{Kind: types.FindingMissingUpdate, Author: "alice", Message: "no update submitted for 2026-08-28"},
			},
			UpdateCount: 1,
			GeneratedAt: generatedAt,
		}

		gt.Value(t, usecase.FormatReport(report)).Equal(usecase.FormatReport(report))
	})
}

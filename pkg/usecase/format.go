package usecase

import (
	"fmt"
	"strings"

	"github.com/standup-lab/cadence/pkg/domain/model"
	"github.com/standup-lab/cadence/pkg/domain/types"
)

// FormatReport renders the fixed plain-text report layout. It is a pure,
// total function: header with the period, summary block, then a risk section
// grouped by kind. The risk section is omitted entirely when there are no
// findings.
func FormatReport(report *model.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Daily Stand-up Report — %s\n\n", report.Period)

	b.WriteString("Summary:\n")
	b.WriteString(strings.TrimSpace(report.Summary))
	b.WriteString("\n")

	if len(report.Findings) > 0 {
		b.WriteString("\nRisks:\n")
		for _, kind := range types.AllFindingKinds() {
			for _, f := range report.Findings {
				if f.Kind != kind {
					continue
				}
				b.WriteString("  - " + findingSentence(f) + "\n")
			}
		}
	}

	fmt.Fprintf(&b, "\n%d update(s) · generated %s\n",
		report.UpdateCount, report.GeneratedAt.UTC().Format("2006-01-02 15:04:05 UTC"))

	return b.String()
}

func findingSentence(f model.RiskFinding) string {
	if f.Author != "" {
		return fmt.Sprintf("[%s] %s: %s", f.Kind.Label(), f.Author, f.Message)
	}
	return fmt.Sprintf("[%s] %s", f.Kind.Label(), f.Message)
}

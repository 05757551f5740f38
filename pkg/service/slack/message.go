package slack

import (
	"fmt"
	"strings"

	"github.com/slack-go/slack"
	"github.com/standup-lab/cadence/pkg/domain/model"
)

const footerText = "Generated automatically by cadence"

// buildReportBlocks renders a full period report as Block Kit blocks
func buildReportBlocks(report *model.Report) *slack.Blocks {
	blocks := []slack.Block{
		slack.NewHeaderBlock(slack.NewTextBlockObject(slack.PlainTextType,
			fmt.Sprintf("Daily Stand-up Report — %s", report.Period), false, false)),
		slack.NewSectionBlock(slack.NewTextBlockObject(slack.MarkdownType,
			fmt.Sprintf("*Summary*\n%s", report.Summary), false, false), nil, nil),
	}

	if report.Degraded {
		blocks = append(blocks, slack.NewContextBlock("",
			slack.NewTextBlockObject(slack.MarkdownType,
				"_Summary model unavailable; raw updates shown instead._", false, false)))
	}

	if len(report.Findings) > 0 {
		var lines []string
		for _, f := range report.Findings {
			lines = append(lines, "• "+findingLine(f))
		}
		blocks = append(blocks,
			slack.NewDividerBlock(),
			slack.NewSectionBlock(slack.NewTextBlockObject(slack.MarkdownType,
				"*Risks*\n"+strings.Join(lines, "\n"), false, false), nil, nil),
		)
	}

	blocks = append(blocks,
		slack.NewDividerBlock(),
		slack.NewContextBlock("",
			slack.NewTextBlockObject(slack.MarkdownType, footerText, false, false)),
	)

	return &slack.Blocks{BlockSet: blocks}
}

// buildUpdateBlocks renders a single-member update note
func buildUpdateBlocks(update *model.Update) *slack.Blocks {
	return &slack.Blocks{
		BlockSet: []slack.Block{
			slack.NewHeaderBlock(slack.NewTextBlockObject(slack.PlainTextType,
				fmt.Sprintf("Stand-up Update — %s", update.Author), false, false)),
			slack.NewSectionBlock(slack.NewTextBlockObject(slack.MarkdownType,
				update.Content, false, false), nil, nil),
			slack.NewContextBlock("",
				slack.NewTextBlockObject(slack.MarkdownType,
					fmt.Sprintf("%s · %s", update.Period, footerText), false, false)),
		},
	}
}

func findingLine(f model.RiskFinding) string {
	if f.Author != "" {
		return fmt.Sprintf("*%s* — %s: %s", f.Author, f.Kind.Label(), f.Message)
	}
	return fmt.Sprintf("%s: %s", f.Kind.Label(), f.Message)
}

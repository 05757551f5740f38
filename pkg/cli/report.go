package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"

	"github.com/standup-lab/cadence/pkg/cli/config"
	"github.com/standup-lab/cadence/pkg/domain/model"
	"github.com/standup-lab/cadence/pkg/domain/types"
	"github.com/standup-lab/cadence/pkg/service/summary"
	"github.com/standup-lab/cadence/pkg/usecase"
	"github.com/standup-lab/cadence/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdReport() *cli.Command {
	var date string
	var deliver bool
	var summaryTimeout time.Duration
	var teamCfg config.Team
	var repoCfg config.Repository
	var geminiCfg config.Gemini
	var slackCfg config.Slack

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "date",
			Usage:       "Report period (YYYY-MM-DD, defaults to today)",
			Destination: &date,
		},
		&cli.BoolFlag{
			Name:        "deliver",
			Usage:       "Also deliver the report to the configured Slack webhook",
			Destination: &deliver,
		},
		&cli.DurationFlag{
			Name:        "summary-timeout",
			Usage:       "Timeout for a single text model call",
			Value:       summary.DefaultTimeout,
			Destination: &summaryTimeout,
		},
	}

	flags = append(flags, teamCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, geminiCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)

	return &cli.Command{
		Name:    "report",
		Aliases: []string{"r"},
		Usage:   "Generate the report for a period and print it",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			period := types.Today()
			if date != "" {
				var err error
				period, err = types.ParsePeriod(date)
				if err != nil {
					return err
				}
			}

			roster, rules, err := teamCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load team configuration")
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			ucOpts := []usecase.Option{usecase.WithRules(rules)}

			llmClient, err := geminiCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to configure Gemini client")
			}
			if llmClient != nil {
				summarizer, err := summary.New(llmClient, summary.WithTimeout(summaryTimeout))
				if err != nil {
					return goerr.Wrap(err, "failed to initialize summarizer")
				}
				ucOpts = append(ucOpts, usecase.WithSummarizer(summarizer))
			}

			dispatcher, err := slackCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure Slack delivery")
			}
			if dispatcher != nil {
				ucOpts = append(ucOpts, usecase.WithDispatcher(dispatcher))
			}

			uc := usecase.New(repo, roster, ucOpts...)

			report, _, err := uc.GenerateReport(ctx, period)
			if err != nil {
				return goerr.Wrap(err, "failed to generate report")
			}

			printReport(report)

			if deliver {
				if _, err := uc.DeliverReport(ctx, period); err != nil {
					return goerr.Wrap(err, "failed to deliver report")
				}
				fmt.Fprintln(os.Stdout)
				color.Green("Report delivered.")
			}

			return nil
		},
	}
}

// printReport writes a colorized rendering of the report to stdout
func printReport(report *model.Report) {
	header := color.New(color.FgCyan, color.Bold)
	section := color.New(color.Bold)

	header.Printf("Daily Stand-up Report — %s\n\n", report.Period)

	section.Println("Summary:")
	fmt.Println(report.Summary)
	if report.Degraded {
		color.Yellow("(text model unavailable, fallback summary shown)")
	}

	if len(report.Findings) > 0 {
		fmt.Println()
		section.Println("Risks:")
		for _, f := range report.Findings {
			if f.Author != "" {
				color.Red("  [%s] %s: %s", f.Kind.Label(), f.Author, f.Message)
			} else {
				color.Red("  [%s] %s", f.Kind.Label(), f.Message)
			}
		}
	}

	fmt.Printf("\n%d update(s) · generated %s\n",
		report.UpdateCount, report.GeneratedAt.UTC().Format(time.RFC3339))
}

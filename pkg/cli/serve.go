package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/standup-lab/cadence/pkg/cli/config"
	httpctrl "github.com/standup-lab/cadence/pkg/controller/http"
	"github.com/standup-lab/cadence/pkg/domain/types"
	"github.com/standup-lab/cadence/pkg/service/archive"
	"github.com/standup-lab/cadence/pkg/service/scheduler"
	"github.com/standup-lab/cadence/pkg/service/summary"
	"github.com/standup-lab/cadence/pkg/usecase"
	"github.com/standup-lab/cadence/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var addr string
	var scheduleAt string
	var scheduleEnabled bool
	var summaryTimeout time.Duration
	var archiveBucket string
	var teamCfg config.Team
	var repoCfg config.Repository
	var geminiCfg config.Gemini
	var slackCfg config.Slack

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("CADENCE_ADDR"),
			Destination: &addr,
		},
		&cli.StringFlag{
			Name:        "schedule-at",
			Usage:       "Time of day (HH:MM, UTC) for the scheduled daily report",
			Value:       "10:00",
			Sources:     cli.EnvVars("CADENCE_SCHEDULE_AT"),
			Destination: &scheduleAt,
		},
		&cli.BoolFlag{
			Name:        "schedule",
			Usage:       "Enable the scheduled daily report",
			Value:       true,
			Sources:     cli.EnvVars("CADENCE_SCHEDULE"),
			Destination: &scheduleEnabled,
		},
		&cli.DurationFlag{
			Name:        "summary-timeout",
			Usage:       "Timeout for a single text model call",
			Value:       summary.DefaultTimeout,
			Sources:     cli.EnvVars("CADENCE_SUMMARY_TIMEOUT"),
			Destination: &summaryTimeout,
		},
		&cli.StringFlag{
			Name:        "archive-bucket",
			Usage:       "GCS bucket for report archiving (disabled when empty)",
			Sources:     cli.EnvVars("CADENCE_ARCHIVE_BUCKET"),
			Destination: &archiveBucket,
		},
	}

	// Add shared config flags
	flags = append(flags, teamCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, geminiCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			roster, rules, err := teamCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load team configuration")
			}
			logging.Default().Info("Team configuration loaded",
				"members", roster.Size(),
				"lookback", rules.Lookback,
			)

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			ucOpts := []usecase.Option{
				usecase.WithRules(rules),
			}

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
				logging.Default().Info("Summarizer enabled")
			} else {
				logging.Default().Info("Gemini not configured, reports will use the fallback summary")
			}

			dispatcher, err := slackCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure Slack delivery")
			}
			if dispatcher != nil {
				ucOpts = append(ucOpts, usecase.WithDispatcher(dispatcher))
				logging.Default().Info("Slack delivery enabled", "slack", slackCfg)
			} else {
				logging.Default().Info("Slack webhook not configured, delivery endpoints will respond 503")
			}

			if archiveBucket != "" {
				archiveSvc, err := archive.New(ctx, archiveBucket)
				if err != nil {
					return goerr.Wrap(err, "failed to initialize report archive")
				}
				defer func() {
					if err := archiveSvc.Close(); err != nil {
						logging.Default().Error("failed to close report archive", "error", err.Error())
					}
				}()
				ucOpts = append(ucOpts, usecase.WithArchive(archiveSvc))
				logging.Default().Info("Report archive enabled", "bucket", archiveBucket)
			}

			uc := usecase.New(repo, roster, ucOpts...)

			// Schedule registry fires the daily report through the same
			// path as the on-demand API.
			var registry *scheduler.Registry
			if scheduleEnabled && dispatcher != nil {
				registry, err = scheduler.New(scheduleAt, func(ctx context.Context, period types.Period) error {
					_, err := uc.DeliverReport(ctx, period)
					return err
				})
				if err != nil {
					return goerr.Wrap(err, "failed to create schedule registry")
				}
				registry.Start(ctx)
				logging.Default().Info("Daily report scheduled", "at", scheduleAt)
			} else {
				logging.Default().Info("Scheduled daily report disabled")
			}

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(uc),
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				if registry != nil {
					registry.Stop()
				}

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}

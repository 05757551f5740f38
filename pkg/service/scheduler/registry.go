package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/robfig/cron/v3"
	"github.com/standup-lab/cadence/pkg/domain/types"
	"github.com/standup-lab/cadence/pkg/utils/logging"
)

// JobFunc generates and delivers the report for a period
type JobFunc func(ctx context.Context, period types.Period) error

// Registry owns the recurring daily-report job. It is created explicitly and
// injected where needed, so tests trigger ticks through Trigger instead of
// waiting for the cron clock.
//
// Single server instance assumed: the in-flight guard is process-local.
type Registry struct {
	cron *cron.Cron
	job  JobFunc

	mu       sync.Mutex
	inFlight map[types.Period]struct{}
}

// New creates a registry firing job daily at the given time of day ("HH:MM")
func New(timeOfDay string, job JobFunc) (*Registry, error) {
	if job == nil {
		return nil, goerr.New("job func is required")
	}

	at, err := time.Parse("15:04", timeOfDay)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid schedule time, expected HH:MM", goerr.V("time", timeOfDay))
	}

	// Periods are UTC dates, so the clock ticks in UTC as well
	r := &Registry{
		cron:     cron.New(cron.WithLocation(time.UTC)),
		job:      job,
		inFlight: make(map[types.Period]struct{}),
	}

	spec := fmt.Sprintf("%d %d * * *", at.Minute(), at.Hour())
	if _, err := r.cron.AddFunc(spec, func() {
		r.Trigger(context.Background(), types.Today())
	}); err != nil {
		return nil, goerr.Wrap(err, "failed to register cron job", goerr.V("spec", spec))
	}

	return r, nil
}

// Start begins firing scheduled ticks
func (r *Registry) Start(ctx context.Context) {
	logging.From(ctx).Info("schedule registry starting")
	r.cron.Start()
}

// Stop stops the cron clock and waits for a running job to finish
func (r *Registry) Stop() {
	logging.Default().Info("schedule registry stopping")
	stopCtx := r.cron.Stop()

	select {
	case <-stopCtx.Done():
	case <-time.After(30 * time.Second):
		logging.Default().Warn("schedule registry stop timed out with a job still running")
	}

	logging.Default().Info("schedule registry stopped")
}

// Trigger runs the job for the period synchronously. If a run for the same
// period is already in flight the call is a logged no-op and returns false.
func (r *Registry) Trigger(ctx context.Context, period types.Period) bool {
	r.mu.Lock()
	if _, running := r.inFlight[period]; running {
		r.mu.Unlock()
		logging.From(ctx).Warn("report job already in flight, skipping", "period", period)
		return false
	}
	r.inFlight[period] = struct{}{}
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		delete(r.inFlight, period)
		r.mu.Unlock()
	}()

	logging.From(ctx).Info("scheduled report job starting", "period", period)
	if err := r.job(ctx, period); err != nil {
		logging.From(ctx).Error("scheduled report job failed", "period", period, "error", err.Error())
		return true
	}

	logging.From(ctx).Info("scheduled report job completed", "period", period)
	return true
}

package worker

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"agromart/config"
	"agromart/internal/delivery"
	deliverycontext "agromart/internal/delivery/context"
	"agromart/internal/domain/lifecycle"
	"agromart/internal/domain/policy"
	"agromart/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"go.uber.org/fx"
)

const jobTimeout = 10 * time.Minute

// job is one periodic task run with the service role.
type job struct {
	name     string
	schedule string
	run      func(ctx context.Context) error
}

type scheduler struct {
	cron   *cron.Cron
	jobs   []job
	logger *slog.Logger
}

// SchedulerParams holds dependencies for the job scheduler
type SchedulerParams struct {
	fx.In

	Lc        fx.Lifecycle
	Cfg       *config.Config
	Logger    *slog.Logger
	MetricsUC usecase.MetricsUsecase
	TipUC     usecase.TipUsecase
}

// NewScheduler registers the periodic jobs enabled in config:
// metrics reconciliation and seller tip catalog sync.
func NewScheduler(params SchedulerParams) (delivery.Delivery, error) {
	cronLogger := cronSlogLogger{logger: params.Logger}
	s := &scheduler{
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithLogger(cronLogger),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
		logger: params.Logger,
	}

	if params.Cfg.Reconcile != nil && params.Cfg.Reconcile.Enabled {
		s.jobs = append(s.jobs, job{
			name:     "reconcile-metrics",
			schedule: params.Cfg.Reconcile.Schedule,
			run: func(ctx context.Context) error {
				result, err := params.MetricsUC.ReconcileAll(ctx)
				if err != nil {
					return err
				}
				if len(result.Failed) > 0 {
					return errors.Errorf("%d of %d sellers failed to reconcile", len(result.Failed), result.Sellers)
				}

				return nil
			},
		})
	}

	if params.Cfg.Tips != nil && strings.TrimSpace(params.Cfg.Tips.SyncSchedule) != "" {
		s.jobs = append(s.jobs, job{
			name:     "sync-tips",
			schedule: params.Cfg.Tips.SyncSchedule,
			run: func(ctx context.Context) error {
				_, err := params.TipUC.ImportTips(ctx)

				return err
			},
		})
	}

	for _, j := range s.jobs {
		if _, err := s.cron.AddFunc(j.schedule, func() { s.execute(context.Background(), j) }); err != nil {
			return nil, errors.Wrapf(err, "invalid schedule %q for job %s", j.schedule, j.name)
		}
	}

	params.Lc.Append(fx.Hook{
		OnStop: s.stop,
	})

	return s, nil
}

// Serve starts the cron loop. It returns immediately; jobs run on cron's goroutines.
func (s *scheduler) Serve(_ context.Context) error {
	if len(s.jobs) == 0 {
		s.logger.Info("No scheduled jobs enabled")

		return nil
	}

	s.cron.Start()
	for _, j := range s.jobs {
		s.logger.Info("Scheduled job registered", slog.String("job", j.name), slog.String("schedule", j.schedule))
	}

	return nil
}

// execute runs j once with its own request ID and deadline.
func (s *scheduler) execute(parent context.Context, j job) {
	ctx, cancel := context.WithTimeout(parent, jobTimeout)
	defer cancel()

	runID := uuid.New().String()
	logger := s.logger.With(slog.String("job", j.name), slog.String("request_id", runID))
	ctx = deliverycontext.WithRequest(ctx, runID, logger)
	ctx = policy.AsService(ctx)

	start := time.Now()
	if err := j.run(ctx); err != nil {
		logger.Error("Scheduled job failed", slog.Any("error", err), slog.Duration("elapsed", time.Since(start)))

		return
	}

	logger.Info("Scheduled job finished", slog.Duration("elapsed", time.Since(start)))
}

func (s *scheduler) stop(ctx context.Context) error {
	stopCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
	defer cancel()

	s.logger.Info("Stopping job scheduler")

	select {
	case <-s.cron.Stop().Done():
		return nil
	case <-stopCtx.Done():
		return errors.Wrap(stopCtx.Err(), "scheduled jobs still running")
	}
}

// cronSlogLogger routes cron's own logging into slog.
type cronSlogLogger struct {
	logger *slog.Logger
}

func (l cronSlogLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug("[cron] "+msg, keysAndValues...)
}

func (l cronSlogLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error("[cron] "+msg, append(keysAndValues, "error", err)...)
}

package worker

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"agromart/config"
	"agromart/internal/domain/policy"
	"agromart/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

type mockMetricsUsecase struct {
	mock.Mock
	usecase.MetricsUsecase
}

func (m *mockMetricsUsecase) ReconcileAll(ctx context.Context) (*usecase.ReconcileResult, error) {
	args := m.Called(ctx)
	result, _ := args.Get(0).(*usecase.ReconcileResult)

	return result, args.Error(1)
}

type mockTipUsecase struct {
	mock.Mock
	usecase.TipUsecase
}

func (m *mockTipUsecase) ImportTips(ctx context.Context) (int, error) {
	args := m.Called(ctx)

	return args.Int(0), args.Error(1)
}

func newSchedulerParams(t *testing.T, cfg *config.Config) (SchedulerParams, *mockMetricsUsecase, *mockTipUsecase) {
	t.Helper()

	metrics := &mockMetricsUsecase{}
	tips := &mockTipUsecase{}
	t.Cleanup(func() {
		metrics.AssertExpectations(t)
		tips.AssertExpectations(t)
	})

	return SchedulerParams{
		Lc:        fxtest.NewLifecycle(t),
		Cfg:       cfg,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		MetricsUC: metrics,
		TipUC:     tips,
	}, metrics, tips
}

func enabledConfig() *config.Config {
	return &config.Config{
		Reconcile: &config.ReconcileConfig{Enabled: true, Schedule: "0 0 3 * * *"},
		Tips:      &config.TipsConfig{BucketURL: "file:///tmp/tips", Key: "tips.yaml", SyncSchedule: "0 */30 * * * *"},
	}
}

func TestNewScheduler_RegistersEnabledJobs(t *testing.T) {
	params, _, _ := newSchedulerParams(t, enabledConfig())

	d, err := NewScheduler(params)
	require.NoError(t, err)

	s := d.(*scheduler)
	require.Len(t, s.jobs, 2)
	assert.Equal(t, "reconcile-metrics", s.jobs[0].name)
	assert.Equal(t, "sync-tips", s.jobs[1].name)
	assert.Len(t, s.cron.Entries(), 2)
}

func TestNewScheduler_NothingEnabled(t *testing.T) {
	params, _, _ := newSchedulerParams(t, &config.Config{Reconcile: &config.ReconcileConfig{Schedule: "0 0 3 * * *"}})

	d, err := NewScheduler(params)
	require.NoError(t, err)
	assert.Empty(t, d.(*scheduler).jobs)
	assert.NoError(t, d.Serve(context.Background()))
}

func TestNewScheduler_RejectsBadSchedule(t *testing.T) {
	cfg := enabledConfig()
	cfg.Reconcile.Schedule = "every night"
	params, _, _ := newSchedulerParams(t, cfg)

	_, err := NewScheduler(params)
	assert.Error(t, err)
}

func TestScheduler_JobsRunAsService(t *testing.T) {
	params, metrics, tips := newSchedulerParams(t, enabledConfig())
	d, err := NewScheduler(params)
	require.NoError(t, err)
	s := d.(*scheduler)

	asService := mock.MatchedBy(func(ctx context.Context) bool {
		_, hasDeadline := ctx.Deadline()

		return policy.IsService(ctx) && hasDeadline
	})
	metrics.On("ReconcileAll", asService).Return(&usecase.ReconcileResult{Sellers: 2}, nil).Once()
	tips.On("ImportTips", asService).Return(4, nil).Once()

	for _, j := range s.jobs {
		s.execute(context.Background(), j)
	}
}

func TestScheduler_ReconcileReportsFailedSellers(t *testing.T) {
	params, metrics, _ := newSchedulerParams(t, enabledConfig())
	d, err := NewScheduler(params)
	require.NoError(t, err)
	s := d.(*scheduler)

	metrics.On("ReconcileAll", mock.Anything).
		Return(&usecase.ReconcileResult{Sellers: 3, Failed: []uuid.UUID{uuid.New()}}, nil).Once()

	err = s.jobs[0].run(policy.AsService(context.Background()))
	assert.ErrorContains(t, err, "1 of 3 sellers")

	metrics.On("ReconcileAll", mock.Anything).Return(nil, errors.New("db down")).Once()
	assert.Error(t, s.jobs[0].run(policy.AsService(context.Background())))
}

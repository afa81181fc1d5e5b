package main

import (
	"context"
	"log/slog"
	"os"

	"agromart/config"
	"agromart/internal/delivery"
	"agromart/internal/delivery/worker"
	"agromart/internal/delivery/worker/handler"
	"agromart/internal/domain/policy"
	logs "agromart/internal/infra/log"
	"agromart/internal/infra/persistence/postgres"
	"agromart/internal/infra/tips"
	"agromart/internal/usecase/aggregate"
	"agromart/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle
	fx.Shutdowner

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectService(),
		injectUsecase(),
		injectHandler(),
		injectDelivery(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		policy.NewEvaluator,
		postgres.New,
		postgres.NewTransactionManager,
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			tips.NewTipSource,
			aggregate.NewAggregator,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewProvisioningService,
			impl.NewNotificationService,
			impl.NewMetricsService,
			impl.NewTipService,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewPushHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				worker.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
			fx.Annotate(
				worker.NewScheduler,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))

				// Trigger graceful shutdown to execute all OnStop hooks
				if shutdownErr := params.Shutdown(); shutdownErr != nil {
					slog.Error("Failed to shutdown gracefully", slog.Any("error", shutdownErr))
					os.Exit(1)
				}
			}
		}()
	}
}

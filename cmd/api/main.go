package main

import (
	"context"
	"log/slog"
	"os"

	"agromart/config"
	"agromart/internal/delivery"
	"agromart/internal/delivery/api"
	"agromart/internal/delivery/api/middleware"
	"agromart/internal/delivery/api/router/handler"
	"agromart/internal/domain/policy"
	"agromart/internal/domain/service"
	"agromart/internal/infra/auth"
	logs "agromart/internal/infra/log"
	"agromart/internal/infra/persistence/postgres"
	"agromart/internal/infra/pubsub"
	"agromart/internal/infra/qrcode"
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
		injectMiddleware(),
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
		pubsub.Module,
		fx.Provide(
			auth.NewJWTService,
			newQRCodeService,
			tips.NewTipSource,
			aggregate.NewAggregator,
		),
	)
}

// newQRCodeService creates a QR code service with dependency injection
func newQRCodeService(cfg *config.Config) service.QRCodeService {
	if cfg.QRCode == nil {
		// Use default values if not configured
		return qrcode.NewQRCodeService(256, "M", "")
	}

	return qrcode.NewQRCodeService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel, cfg.QRCode.BaseURL)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewProvisioningService,
			impl.NewProfileService,
			impl.NewAddressService,
			impl.NewProductService,
			impl.NewOrderService,
			impl.NewTodoService,
			impl.NewMetricsService,
			impl.NewNotificationService,
			impl.NewTipService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewServiceKeyMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewProfileHandler,
			handler.NewAddressHandler,
			handler.NewProductHandler,
			handler.NewOrderHandler,
			handler.NewTodoHandler,
			handler.NewMetricsHandler,
			handler.NewNotificationHandler,
			handler.NewTipHandler,
			handler.NewInternalHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				api.NewServer,
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

package main

import (
	"context"
	"fmt"
	"os"

	"agromart/config"
	"agromart/internal/delivery/cli"
	"agromart/internal/domain/lifecycle"
	"agromart/internal/domain/policy"
	"agromart/internal/domain/service"
	"agromart/internal/infra/auth"
	logs "agromart/internal/infra/log"
	"agromart/internal/infra/persistence/migration"
	"agromart/internal/infra/persistence/postgres"
	"agromart/internal/infra/tips"
	"agromart/internal/usecase"
	"agromart/internal/usecase/aggregate"
	"agromart/internal/usecase/impl"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

func main() {
	if err := cli.NewRootCommand(bootstrap).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// bootstrap starts the database and services the commands need.
func bootstrap(ctx context.Context) (*cli.Services, func(), error) {
	var (
		db           *gorm.DB
		provisioning usecase.ProvisioningUsecase
		metrics      usecase.MetricsUsecase
		tipUC        usecase.TipUsecase
		tokens       service.TokenService
	)

	app := fx.New(
		fx.NopLogger,
		fx.Provide(
			config.New,
			logs.New,
			func() context.Context { return ctx },
			policy.NewEvaluator,
			postgres.New,
			postgres.NewTransactionManager,
			auth.NewJWTService,
			tips.NewTipSource,
			aggregate.NewAggregator,
			impl.NewProvisioningService,
			impl.NewMetricsService,
			impl.NewTipService,
		),
		fx.Populate(&db, &provisioning, &metrics, &tipUC, &tokens),
	)
	if err := app.Err(); err != nil {
		return nil, nil, errors.Wrap(err, "failed to build services")
	}
	if err := app.Start(ctx); err != nil {
		return nil, nil, errors.Wrap(err, "failed to start services")
	}

	release := func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
		defer cancel()
		if err := app.Stop(stopCtx); err != nil {
			fmt.Fprintln(os.Stderr, "Warning: failed to stop services:", err)
		}
	}

	return &cli.Services{
		Migrate: func(ctx context.Context, reset bool) error {
			if reset {
				return migration.Reset(ctx, db)
			}

			return migration.Run(ctx, db)
		},
		Provisioning: provisioning,
		Metrics:      metrics,
		Tips:         tipUC,
		Tokens:       tokens,
	}, release, nil
}

package postgres

import (
	"context"
	"log/slog"

	"agromart/config"
	"agromart/internal/domain/lifecycle"
	"agromart/internal/domain/policy"
	"agromart/internal/errors"
	"agromart/internal/infra/persistence/rls"

	pgLib "github.com/slighter12/go-lib/database/postgres"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config    *config.Config
	Logger    *slog.Logger
	Evaluator *policy.Evaluator
}

// New opens the marketplace database. Every statement issued through the
// returned handle is scoped by the ownership plugin.
func New(params Params) (*gorm.DB, error) {
	if params.Config.Postgres == nil {
		return nil, errors.New("postgres configuration is missing")
	}

	conn, err := pgLib.New(params.Config.Postgres)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create PostgreSQL client")
	}

	db, err := prepare(conn, params.Logger, params.Config, params.Evaluator)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get PostgreSQL sql.DB")
	}

	monitor := newPoolMonitor(params.Logger, sqlDB)
	monitorCtx, cancelMonitor := context.WithCancel(context.Background())

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := sqlDB.PingContext(ctx); err != nil {
				return errors.Wrap(err, "failed to ping PostgreSQL")
			}

			go monitor.run(monitorCtx, dbPoolMonitorInterval)

			return nil
		},
		OnStop: func(_ context.Context) error {
			cancelMonitor()

			return errors.Wrap(sqlDB.Close(), "failed to close PostgreSQL")
		},
	})

	return db, nil
}

// prepare applies the session settings every marketplace connection shares.
func prepare(conn *gorm.DB, logger *slog.Logger, cfg *config.Config, evaluator *policy.Evaluator) (*gorm.DB, error) {
	db := conn.Session(&gorm.Session{
		// Multi-step writes use txManager.Execute; single statements need no implicit transaction.
		SkipDefaultTransaction: true,
		Logger:                 newGormSlogLogger(logger, cfg),
	})
	// Surfaces unique, foreign key and check violations as gorm sentinel errors.
	db.Config.TranslateError = true

	if err := db.Use(rls.New(evaluator)); err != nil {
		return nil, errors.Wrap(err, "failed to install ownership plugin")
	}

	return db, nil
}

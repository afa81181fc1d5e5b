// Package sqlitetest opens throwaway SQLite databases with the production
// schema and ownership plugin installed.
package sqlitetest

import (
	"context"
	"fmt"
	"testing"

	"agromart/internal/domain/policy"
	"agromart/internal/infra/persistence/migration"
	"agromart/internal/infra/persistence/rls"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// New returns a migrated in-memory database private to the test.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		TranslateError:         true,
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A shared-cache memory database lives as long as one connection holds it.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.Use(rls.New(policy.NewEvaluator())))
	require.NoError(t, migration.Run(context.Background(), db))

	return db
}

// Exec runs raw SQL with the service role.
func Exec(t testing.TB, db *gorm.DB, sql string, values ...any) {
	t.Helper()
	require.NoError(t, db.WithContext(policy.AsService(context.Background())).Exec(sql, values...).Error)
}

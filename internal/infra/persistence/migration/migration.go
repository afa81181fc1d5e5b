// Package migration creates and resets the marketplace schema.
package migration

import (
	"context"

	"agromart/internal/domain/policy"
	"agromart/internal/errors"
	"agromart/internal/infra/persistence/model"

	"gorm.io/gorm"
)

// Run creates missing tables, columns, indexes and constraints.
func Run(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(policy.AsService(ctx)).AutoMigrate(model.All()...); err != nil {
		return errors.Wrap(err, "failed to migrate database schema")
	}

	return nil
}

// Reset drops every table and recreates the schema. All data is lost.
func Reset(ctx context.Context, db *gorm.DB) error {
	tx := db.WithContext(policy.AsService(ctx))

	models := model.All()
	// Children first so foreign keys never block the drop.
	reversed := make([]any, 0, len(models))
	for i := len(models) - 1; i >= 0; i-- {
		reversed = append(reversed, models[i])
	}
	if err := tx.Migrator().DropTable(reversed...); err != nil {
		return errors.Wrap(err, "failed to drop tables")
	}

	return Run(ctx, db)
}

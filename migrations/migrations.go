// SPDX-License-Identifier: GPL-3.0-only

package migrations

import (
	"fmt"

	"bootstrapper-server/commons"
	"bootstrapper-server/models"

	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

func List() []*gormigrate.Migration {
	return []*gormigrate.Migration{
		{
			ID: "202509010001_backfill_user_tier",
			Migrate: func(tx *gorm.DB) error {
				return tx.Model(&models.User{}).
					Where("tier = '' OR tier IS NULL").
					Update("tier", models.FreeTier).Error
			},
			Rollback: func(tx *gorm.DB) error { return nil },
		},
	}
}

// Migrate brings the schema up to date. Fresh databases are initialized from
// the model definitions; existing ones run the pending migrations.
func Migrate(conn *gorm.DB) error {
	commons.Logger.Info("Running database migrations")
	m := gormigrate.New(conn, gormigrate.DefaultOptions, List())
	m.InitSchema(func(tx *gorm.DB) error {
		commons.Logger.Debug("Initializing database schema from models")
		return tx.AutoMigrate(models.AllModels...)
	})
	if err := m.Migrate(); err != nil {
		return fmt.Errorf("database migration failed: %w", err)
	}
	commons.Logger.Info("Database migration completed")
	return nil
}

// SPDX-License-Identifier: GPL-3.0-only

package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"bootstrapper-server/db"
	"bootstrapper-server/migrations"
	"bootstrapper-server/models"

	"gorm.io/gorm"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	cfg := db.Config{
		Dialect:        "sqlite",
		DSN:            db.SQLiteDSN(filepath.Join(t.TempDir(), "storage_test.db")),
		MinConns:       2,
		MaxConns:       5,
		AcquireTimeout: 2 * time.Second,
	}
	pool, err := db.OpenPool(cfg)
	if err != nil {
		t.Fatalf("OpenPool failed: %v", err)
	}
	t.Cleanup(pool.Close)
	if err := pool.WithConn(context.Background(), migrations.Migrate); err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}
	return NewStore(pool)
}

func createTestUser(t *testing.T, s *Store, apiKey string) *models.User {
	t.Helper()
	user, err := s.CreateUser(context.Background(), "alice", "alice@x.com", apiKey, models.FreeTier)
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	return user
}

// usageRows reads the raw usage rows for a user, newest day last.
func usageRows(t *testing.T, s *Store, userID uint) []models.UsageLog {
	t.Helper()
	var rows []models.UsageLog
	err := s.pool.WithConn(context.Background(), func(conn *gorm.DB) error {
		return conn.Where("user_id = ?", userID).Order("log_date").Find(&rows).Error
	})
	if err != nil {
		t.Fatalf("Failed to read usage rows: %v", err)
	}
	return rows
}

// seedUsageRow inserts a usage row for an arbitrary date, bypassing the
// quota operations.
func seedUsageRow(t *testing.T, s *Store, row models.UsageLog) {
	t.Helper()
	err := s.pool.WithConn(context.Background(), func(conn *gorm.DB) error {
		return conn.Create(&row).Error
	})
	if err != nil {
		t.Fatalf("Failed to seed usage row: %v", err)
	}
}

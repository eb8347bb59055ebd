// SPDX-License-Identifier: GPL-3.0-only

package storage

import (
	"context"
	"errors"
	"time"

	"bootstrapper-server/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var usageConflictTarget = []clause.Column{{Name: "user_id"}, {Name: "log_date"}}

func today() string {
	return time.Now().UTC().Format(models.DateLayout)
}

// EnsureUsageRow creates the zero-initialized usage row for (userID, date) if
// it does not exist yet. Safe to call any number of times.
func (s *Store) EnsureUsageRow(ctx context.Context, userID uint, date time.Time) error {
	row := models.UsageLog{
		UserID:  userID,
		LogDate: date.UTC().Format(models.DateLayout),
	}
	return s.pool.WithConn(ctx, func(conn *gorm.DB) error {
		return conn.Clauses(clause.OnConflict{
			Columns:   usageConflictTarget,
			DoNothing: true,
		}).Create(&row).Error
	})
}

// IncrementCallAndCheckLimit counts one API call against today's quota and
// reports whether the call is allowed. The check and the increment are a
// single conditional UPDATE, so concurrent calls can never admit more than
// dailyLimit between them. A rejected call is not counted.
//
// The first call of a day inserts the row with calls_today = 1 and is always
// admitted, even when dailyLimit is 0.
func (s *Store) IncrementCallAndCheckLimit(ctx context.Context, userID uint, dailyLimit int) (bool, error) {
	logDate := today()
	allowed := false
	err := s.pool.WithConn(ctx, func(conn *gorm.DB) error {
		return conn.Transaction(func(tx *gorm.DB) error {
			bump := func() *gorm.DB {
				return tx.Model(&models.UsageLog{}).
					Where("user_id = ? AND log_date = ? AND calls_today < ?", userID, logDate, dailyLimit).
					Update("calls_today", gorm.Expr("calls_today + 1"))
			}

			res := bump()
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected > 0 {
				allowed = true
				return nil
			}

			// No row matched: either there is no row for today yet, or the
			// limit is reached.
			first := models.UsageLog{UserID: userID, LogDate: logDate, CallsToday: 1}
			ins := tx.Clauses(clause.OnConflict{
				Columns:   usageConflictTarget,
				DoNothing: true,
			}).Create(&first)
			if ins.Error != nil {
				return ins.Error
			}
			if ins.RowsAffected > 0 {
				allowed = true
				return nil
			}

			// Lost the insert race; the row exists now, so the conditional
			// update decides.
			res = bump()
			if res.Error != nil {
				return res.Error
			}
			allowed = res.RowsAffected > 0
			return nil
		})
	})
	if err != nil {
		return false, err
	}
	return allowed, nil
}

// IncrementProjectAndCheckLimit counts one project creation against the
// calendar-month quota. The monthly total is the sum of projects_this_month
// over this month's daily rows; the user row is locked for the duration of
// the transaction so concurrent checks for the same user serialize.
func (s *Store) IncrementProjectAndCheckLimit(ctx context.Context, userID uint, monthLimit int) (bool, error) {
	now := time.Now().UTC()
	logDate := now.Format(models.DateLayout)
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).Format(models.DateLayout)

	allowed := false
	err := s.pool.WithConn(ctx, func(conn *gorm.DB) error {
		return conn.Transaction(func(tx *gorm.DB) error {
			// The user row acts as the per-user lock for the month-wide
			// check. SQLite does not parse FOR UPDATE; its single-writer
			// transactions serialize on their own.
			userQuery := tx
			if tx.Dialector.Name() != "sqlite" {
				userQuery = tx.Clauses(clause.Locking{Strength: "UPDATE"})
			}
			var user models.User
			if err := userQuery.Select("id").First(&user, userID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrNotFound
				}
				return err
			}

			var total int64
			if err := tx.Model(&models.UsageLog{}).
				Where("user_id = ? AND log_date >= ?", userID, firstOfMonth).
				Select("COALESCE(SUM(projects_this_month), 0)").
				Scan(&total).Error; err != nil {
				return err
			}
			if total+1 > int64(monthLimit) {
				return nil
			}

			row := models.UsageLog{UserID: userID, LogDate: logDate, ProjectsThisMonth: 1}
			if err := tx.Clauses(clause.OnConflict{
				Columns: usageConflictTarget,
				DoUpdates: clause.Assignments(map[string]any{
					"projects_this_month": gorm.Expr("projects_this_month + 1"),
				}),
			}).Create(&row).Error; err != nil {
				return err
			}
			allowed = true
			return nil
		})
	})
	if err != nil {
		return false, err
	}
	return allowed, nil
}

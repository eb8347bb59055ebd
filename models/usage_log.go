// SPDX-License-Identifier: GPL-3.0-only

package models

import (
	"time"
)

// DateLayout is the calendar-date format of UsageLog.LogDate. Dates are
// stored as strings so equality and range comparisons behave the same on
// every supported dialect.
const DateLayout = "2006-01-02"

// UsageLog holds one row of usage counters per user and calendar day (UTC).
// The monthly project total is not stored anywhere; it is the sum of
// ProjectsThisMonth over the rows of the current month.
type UsageLog struct {
	ID                uint   `gorm:"primaryKey"`
	LogDate           string `gorm:"type:date;not null;uniqueIndex:idx_user_log_date"`
	CallsToday        int    `gorm:"not null;default:0"`
	ProjectsThisMonth int    `gorm:"not null;default:0"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
	UserID            uint `gorm:"not null;uniqueIndex:idx_user_log_date"`
	User              User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func init() {
	AllModels = append(AllModels, &UsageLog{})
}

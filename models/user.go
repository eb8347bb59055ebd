// SPDX-License-Identifier: GPL-3.0-only

package models

import (
	"time"

	"gorm.io/gorm"
)

var AllModels []any

type TierName string

const (
	FreeTier TierName = "free"
)

type User struct {
	ID        uint     `gorm:"primaryKey"`
	Username  string   `gorm:"size:50;not null"`
	Email     string   `gorm:"size:255;not null"`
	APIKey    string   `gorm:"size:64;not null;uniqueIndex"`
	Tier      TierName `gorm:"size:20;not null;default:'free'"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func init() {
	AllModels = append(AllModels, &User{})
}

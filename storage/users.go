// SPDX-License-Identifier: GPL-3.0-only

package storage

import (
	"context"
	"errors"
	"fmt"

	"bootstrapper-server/models"

	"gorm.io/gorm"
)

// CreateUser inserts a new user and returns the stored row, re-read by API
// key so autogenerated columns are reflected.
func (s *Store) CreateUser(ctx context.Context, username, email, apiKey string, tier models.TierName) (*models.User, error) {
	if tier == "" {
		tier = models.FreeTier
	}
	var created models.User
	err := s.pool.WithConn(ctx, func(conn *gorm.DB) error {
		return conn.Transaction(func(tx *gorm.DB) error {
			user := models.User{
				Username: username,
				Email:    email,
				APIKey:   apiKey,
				Tier:     tier,
			}
			if err := tx.Create(&user).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return fmt.Errorf("%w: duplicate api key", ErrConstraintViolation)
				}
				return err
			}
			return tx.Where("api_key = ?", apiKey).First(&created).Error
		})
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// GetUserByAPIKey resolves a user by exact API key match.
func (s *Store) GetUserByAPIKey(ctx context.Context, apiKey string) (*models.User, error) {
	var user models.User
	err := s.pool.WithConn(ctx, func(conn *gorm.DB) error {
		return conn.Where("api_key = ?", apiKey).First(&user).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

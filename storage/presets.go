// SPDX-License-Identifier: GPL-3.0-only

package storage

import (
	"context"
	"errors"

	"bootstrapper-server/models"

	"gorm.io/gorm"
)

// CreatePreset stores a new preset for the given owner and returns the
// stored row.
func (s *Store) CreatePreset(ctx context.Context, userID uint, name, template string, gitInit, useVenv bool, licenseType *string) (*models.Preset, error) {
	var created models.Preset
	err := s.pool.WithConn(ctx, func(conn *gorm.DB) error {
		return conn.Transaction(func(tx *gorm.DB) error {
			preset := models.Preset{
				Name:        name,
				Template:    template,
				GitInit:     gitInit,
				UseVenv:     useVenv,
				LicenseType: licenseType,
				UserID:      userID,
			}
			if err := tx.Create(&preset).Error; err != nil {
				return err
			}
			return tx.First(&created, preset.ID).Error
		})
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// ListPresets returns all presets owned by the given user.
func (s *Store) ListPresets(ctx context.Context, userID uint) ([]models.Preset, error) {
	var presets []models.Preset
	err := s.pool.WithConn(ctx, func(conn *gorm.DB) error {
		return conn.Where("user_id = ?", userID).Order("id").Find(&presets).Error
	})
	if err != nil {
		return nil, err
	}
	return presets, nil
}

// GetPreset returns the preset with the given id if the user owns it.
func (s *Store) GetPreset(ctx context.Context, userID, presetID uint) (*models.Preset, error) {
	var preset models.Preset
	err := s.pool.WithConn(ctx, func(conn *gorm.DB) error {
		return conn.Where("id = ? AND user_id = ?", presetID, userID).First(&preset).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &preset, nil
}

// UpdatePreset applies a partial field set to an owned preset and returns
// the post-update row. Fields not present in the map keep their prior
// values. Existence is decided by reading the row, not by affected-row
// counts; MySQL reports rows changed rather than rows matched, so a no-op
// update of an existing preset would otherwise look like a missing one.
func (s *Store) UpdatePreset(ctx context.Context, userID, presetID uint, fields map[string]any) (*models.Preset, error) {
	var updated models.Preset
	err := s.pool.WithConn(ctx, func(conn *gorm.DB) error {
		return conn.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("id = ? AND user_id = ?", presetID, userID).First(&updated).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrNotFound
				}
				return err
			}
			if len(fields) == 0 {
				return nil
			}
			if err := tx.Model(&updated).Updates(fields).Error; err != nil {
				return err
			}
			return tx.Where("id = ? AND user_id = ?", presetID, userID).First(&updated).Error
		})
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeletePreset removes an owned preset. Deleting a preset that does not
// exist or belongs to another user reports ErrNotFound and changes nothing.
func (s *Store) DeletePreset(ctx context.Context, userID, presetID uint) error {
	return s.pool.WithConn(ctx, func(conn *gorm.DB) error {
		res := conn.Where("id = ? AND user_id = ?", presetID, userID).Delete(&models.Preset{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

package store

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GetOrCreateStats returns the stats row for the user, creating the zeroed
// row on first use. Once any action exists the row is never absent.
func (s *Store) GetOrCreateStats(ctx context.Context, userID string) (*UserStats, error) {
	var stats UserStats
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&stats).Error
	if err == nil {
		return &stats, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	stats = UserStats{UserID: userID, Level: 1}
	// Concurrent first actions may race on the insert; the unique index on
	// user_id makes the loser re-read instead of duplicating.
	err = s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).
		Create(&stats).Error
	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&stats).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}

// UpdateStats applies a partial update to the user's stats row. The fields
// map uses column names.
func (s *Store) UpdateStats(ctx context.Context, userID string, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}

	return s.db.WithContext(ctx).
		Model(&UserStats{}).
		Where("user_id = ?", userID).
		Updates(fields).Error
}

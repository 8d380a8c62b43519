package store

import (
	"context"
	"time"

	"gorm.io/gorm/clause"
)

// HasAchievement reports whether the user already holds the badge.
func (s *Store) HasAchievement(ctx context.Context, userID, kind string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&Achievement{}).
		Where("user_id = ? AND kind = ?", userID, kind).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// InsertAchievementIfAbsent unlocks the badge exactly once. It reports
// whether this call inserted the row; a duplicate is a benign no-op.
func (s *Store) InsertAchievementIfAbsent(ctx context.Context, userID, kind string) (bool, error) {
	achievement := &Achievement{
		UserID:     userID,
		Kind:       kind,
		UnlockedAt: time.Now(),
	}

	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "kind"}},
			DoNothing: true,
		}).
		Create(achievement)
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

// ListAchievements returns the user's badges in unlock order.
func (s *Store) ListAchievements(ctx context.Context, userID string) ([]*Achievement, error) {
	var achievements []*Achievement
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("unlocked_at ASC").
		Find(&achievements).Error
	if err != nil {
		return nil, err
	}

	return achievements, nil
}

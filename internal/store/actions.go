package store

import (
	"context"
	"time"
)

// AppendAction inserts an action log row. The log is append-only: there are
// no update or delete accessors on purpose.
func (s *Store) AppendAction(ctx context.Context, action *UserAction) error {
	if action.OccurredAt.IsZero() {
		action.OccurredAt = time.Now()
	}
	if action.ActionDate == "" {
		action.ActionDate = action.OccurredAt.Format(DateKeyLayout)
	}

	return s.db.WithContext(ctx).Create(action).Error
}

// LastActionDate returns the calendar day of the most recent action of the
// given kinds, or an empty string when the user has none.
func (s *Store) LastActionDate(ctx context.Context, userID string, kinds []string) (string, error) {
	var action UserAction
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND kind IN ?", userID, kinds).
		Order("occurred_at DESC").
		Limit(1).
		Find(&action).Error
	if err != nil {
		return "", err
	}

	return action.ActionDate, nil
}

// ActionDates returns the distinct calendar days on or after sinceDate with
// at least one action of the given kinds, newest first.
func (s *Store) ActionDates(ctx context.Context, userID, sinceDate string, kinds []string) ([]string, error) {
	var dates []string
	err := s.db.WithContext(ctx).
		Model(&UserAction{}).
		Distinct("action_date").
		Where("user_id = ? AND kind IN ? AND action_date >= ?", userID, kinds, sinceDate).
		Order("action_date DESC").
		Pluck("action_date", &dates).Error
	if err != nil {
		return nil, err
	}

	return dates, nil
}

// DailyActivity aggregates action counts and XP per calendar day on or after
// sinceDate, newest first.
func (s *Store) DailyActivity(ctx context.Context, userID, sinceDate string) ([]DayActivity, error) {
	var days []DayActivity
	err := s.db.WithContext(ctx).
		Model(&UserAction{}).
		Select("action_date AS date, COUNT(*) AS actions, SUM(xp_awarded) AS xp").
		Where("user_id = ? AND action_date >= ?", userID, sinceDate).
		Group("action_date").
		Order("action_date DESC").
		Scan(&days).Error
	if err != nil {
		return nil, err
	}

	return days, nil
}

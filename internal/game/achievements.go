package game

import (
	"context"

	"go.uber.org/zap"

	"jobquest/internal/store"
)

// Achievement kinds.
const (
	AchievementFirstApplication = "first_application"
	AchievementActiveUser       = "active_user"
	AchievementMasterApplicant  = "master_applicant"
	AchievementWeekStreak       = "week_streak"
	AchievementMonthStreak      = "month_streak"
)

// CheckAchievements evaluates the threshold predicates against the user's
// live aggregates and returns only the achievements unlocked by this call.
// Safe to call repeatedly: already-recorded badges are never re-reported.
func (e *Engine) CheckAchievements(ctx context.Context, userID string) ([]string, error) {
	return e.checkAchievements(ctx, e.store, userID)
}

func (e *Engine) checkAchievements(ctx context.Context, s *store.Store, userID string) ([]string, error) {
	stats, err := s.GetOrCreateStats(ctx, userID)
	if err != nil {
		return nil, err
	}

	predicates := []struct {
		kind      string
		satisfied bool
	}{
		{AchievementFirstApplication, stats.Applications == 1},
		{AchievementActiveUser, stats.Applications >= 10},
		{AchievementMasterApplicant, stats.Applications >= 100},
		// Streak milestones fire on the exact transition only.
		{AchievementWeekStreak, stats.CurrentStreak == 7},
		{AchievementMonthStreak, stats.CurrentStreak == 30},
	}

	var unlocked []string
	for _, p := range predicates {
		if !p.satisfied {
			continue
		}
		inserted, err := s.InsertAchievementIfAbsent(ctx, userID, p.kind)
		if err != nil {
			return nil, err
		}
		if inserted {
			unlocked = append(unlocked, p.kind)
			e.logger.Info("achievement unlocked",
				zap.String("user", userID),
				zap.String("achievement", p.kind),
			)
		}
	}

	return unlocked, nil
}

package game

import (
	"context"

	"go.uber.org/zap"

	"jobquest/internal/store"
)

// streakWindowDays bounds how far back the recomputation scans the log.
const streakWindowDays = 365

// qualifyingKinds are the action kinds that keep a streak alive on the
// incremental write path.
var qualifyingKinds = []string{store.ActionApply, store.ActionView}

// UpdateStreak applies the incremental streak rule based on the most recent
// qualifying action before this call and returns the new streak length.
func (e *Engine) UpdateStreak(ctx context.Context, userID string) (int, error) {
	unlock := e.lockUser(userID)
	defer unlock()

	var streak int
	err := e.store.Transaction(ctx, func(tx *store.Store) error {
		var txErr error
		streak, txErr = e.updateStreak(ctx, tx, userID)
		return txErr
	})
	if err != nil {
		return 0, err
	}

	return streak, nil
}

func (e *Engine) updateStreak(ctx context.Context, s *store.Store, userID string) (int, error) {
	stats, err := s.GetOrCreateStats(ctx, userID)
	if err != nil {
		return 0, err
	}

	lastDate, err := s.LastActionDate(ctx, userID, qualifyingKinds)
	if err != nil {
		return 0, err
	}

	today := e.today().Format(store.DateKeyLayout)
	yesterday := e.today().AddDate(0, 0, -1).Format(store.DateKeyLayout)

	var streak int
	switch lastDate {
	case "":
		// First-ever activity.
		streak = 1
	case today:
		// Same-day repeat never double-increments, but it does repair a
		// zeroed streak.
		streak = stats.CurrentStreak
		if streak == 0 {
			streak = 1
		}
	case yesterday:
		streak = stats.CurrentStreak + 1
	default:
		// A missed day breaks the chain.
		streak = 1
	}

	longest := stats.LongestStreak
	if streak > longest {
		longest = streak
	}

	if err := s.UpdateStats(ctx, userID, map[string]any{
		"current_streak": streak,
		"longest_streak": longest,
	}); err != nil {
		return 0, err
	}

	// Milestones fire only when the counter lands exactly on the threshold,
	// which the one-day-at-a-time increment above guarantees.
	for _, milestone := range []struct {
		length int
		kind   string
	}{
		{7, AchievementWeekStreak},
		{30, AchievementMonthStreak},
	} {
		if streak != milestone.length {
			continue
		}
		inserted, err := s.InsertAchievementIfAbsent(ctx, userID, milestone.kind)
		if err != nil {
			return 0, err
		}
		if inserted {
			e.logger.Info("streak milestone unlocked",
				zap.String("user", userID),
				zap.String("achievement", milestone.kind),
			)
		}
	}

	return streak, nil
}

// CalculateCurrentStreak recomputes the streak from the action log: distinct
// calendar days with an application, walked backward from today until the
// first gap. A user inactive today gets 0 here even if yesterday continued a
// run; the read path's precedence rule compensates.
func (e *Engine) CalculateCurrentStreak(ctx context.Context, userID string) (int, error) {
	today := e.today()
	since := today.AddDate(0, 0, -streakWindowDays).Format(store.DateKeyLayout)

	dates, err := e.store.ActionDates(ctx, userID, since, []string{store.ActionApply})
	if err != nil {
		return 0, err
	}

	active := make(map[string]struct{}, len(dates))
	for _, d := range dates {
		active[d] = struct{}{}
	}

	streak := 0
	for day := today; ; day = day.AddDate(0, 0, -1) {
		if _, ok := active[day.Format(store.DateKeyLayout)]; !ok {
			break
		}
		streak++
	}

	return streak, nil
}

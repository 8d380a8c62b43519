package game

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"

	"jobquest/internal/store"
)

// activityFeedDays is how much of the daily activity log GetStats returns.
const activityFeedDays = 30

// UnlockedAchievement is one badge in the stats payload.
type UnlockedAchievement struct {
	Kind       string    `json:"kind"`
	UnlockedAt time.Time `json:"unlockedAt"`
}

// Stats is the full progression snapshot served to clients.
type Stats struct {
	TotalXP           int     `json:"totalXP"`
	Level             int     `json:"level"`
	XPProgress        int     `json:"xpProgress"`
	XPForNextLevel    int     `json:"xpForNextLevel"`
	XPProgressPercent float64 `json:"xpProgressPercent"`

	CurrentStreak int `json:"currentStreak"`
	LongestStreak int `json:"longestStreak"`

	Applications int `json:"applications"`
	Views        int `json:"views"`
	Interviews   int `json:"interviews"`

	Achievements     []UnlockedAchievement      `json:"achievements"`
	ApplicationStats *store.ApplicationCounters `json:"applicationStats"`
	DailyActivity    []store.DayActivity        `json:"dailyActivity"`
}

// SuccessForecast is the application-outcome forecast.
type SuccessForecast struct {
	SuccessRate int    `json:"successRate"`
	Message     string `json:"forecastMessage"`
}

// GetStats assembles the progression snapshot. The streak shown is the
// recomputed value when positive, else the stored incremental value; a
// recomputation that disagrees with storage is persisted back so drift
// self-heals.
func (e *Engine) GetStats(ctx context.Context, userID string) (*Stats, error) {
	recomputed, err := e.CalculateCurrentStreak(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats, err := e.store.GetOrCreateStats(ctx, userID)
	if err != nil {
		return nil, err
	}

	streak := recomputed
	if streak == 0 {
		streak = stats.CurrentStreak
	}

	if recomputed != stats.CurrentStreak {
		if err := e.store.UpdateStats(ctx, userID, map[string]any{
			"current_streak": recomputed,
		}); err != nil {
			return nil, err
		}
		e.logger.Debug("streak drift repaired",
			zap.String("user", userID),
			zap.Int("stored", stats.CurrentStreak),
			zap.Int("recomputed", recomputed),
		)
	}

	longest := stats.LongestStreak
	if streak > longest {
		longest = streak
	}

	counters, err := e.store.ApplicationCounters(ctx, userID)
	if err != nil {
		return nil, err
	}

	rows, err := e.store.ListAchievements(ctx, userID)
	if err != nil {
		return nil, err
	}
	achievements := make([]UnlockedAchievement, 0, len(rows))
	for _, row := range rows {
		achievements = append(achievements, UnlockedAchievement{
			Kind:       row.Kind,
			UnlockedAt: row.UnlockedAt,
		})
	}

	since := e.today().AddDate(0, 0, -(activityFeedDays - 1)).Format(store.DateKeyLayout)
	activity, err := e.store.DailyActivity(ctx, userID, since)
	if err != nil {
		return nil, err
	}

	progress := stats.TotalXP % e.cfg.XPPerLevel

	return &Stats{
		TotalXP:           stats.TotalXP,
		Level:             stats.Level,
		XPProgress:        progress,
		XPForNextLevel:    stats.Level * e.cfg.XPPerLevel,
		XPProgressPercent: float64(progress) / float64(e.cfg.XPPerLevel) * 100,
		CurrentStreak:     streak,
		LongestStreak:     longest,
		Applications:      stats.Applications,
		Views:             stats.Views,
		Interviews:        stats.Interviews,
		Achievements:      achievements,
		ApplicationStats:  counters,
		DailyActivity:     activity,
	}, nil
}

// CalculateSuccessForecast estimates how well applications are converting.
// Interviews are weighted double against plain views.
func (e *Engine) CalculateSuccessForecast(ctx context.Context, userID string) (*SuccessForecast, error) {
	counters, err := e.store.ApplicationCounters(ctx, userID)
	if err != nil {
		return nil, err
	}

	if counters.Total == 0 {
		return &SuccessForecast{SuccessRate: 0, Message: e.cfg.Forecast.NoApplications}, nil
	}

	total := float64(counters.Total)
	viewRate := float64(counters.Viewed) / total * 100
	interviewRate := float64(counters.Interviews) / total * 100
	rate := int(math.Round((viewRate + 2*interviewRate) / 3))

	message := ""
	for _, tier := range e.cfg.Forecast.Tiers {
		if rate >= tier.MinRate {
			message = tier.Message
			break
		}
	}

	return &SuccessForecast{SuccessRate: rate, Message: message}, nil
}

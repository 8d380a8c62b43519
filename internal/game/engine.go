// Package game converts raw user actions into durable progression state:
// XP, levels, activity streaks and achievements. All writes for one user are
// serialized through a per-user lock and applied transactionally, so a
// concurrent reader never observes a partially applied composite.
package game

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"jobquest/internal/store"
)

// Engine is the gamification engine. Safe for concurrent use.
type Engine struct {
	store  *store.Store
	logger *zap.Logger
	cfg    Config
	loc    *time.Location

	// now is swapped in tests to pin the calendar day.
	now func() time.Time

	locks sync.Map // user id -> *sync.Mutex
}

// New builds an engine bound to the given store. loc is the reference
// timezone for calendar-day math; nil means UTC.
func New(s *store.Store, logger *zap.Logger, cfg Config, loc *time.Location) *Engine {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Engine{
		store:  s,
		logger: logger,
		cfg:    cfg.withDefaults(),
		loc:    loc,
		now:    time.Now,
	}
}

// XPResult reports the outcome of an XP award.
type XPResult struct {
	TotalXP   int  `json:"totalXP"`
	Level     int  `json:"level"`
	LeveledUp bool `json:"leveledUp"`
}

// ApplicationResult reports the outcome of the composite application award.
type ApplicationResult struct {
	XPResult
	Streak   int      `json:"streak"`
	Unlocked []string `json:"unlocked"`
}

// AwardXP appends an action of the given kind, adds amount to the user's
// total XP and recomputes the level. Negative amounts are a caller bug.
func (e *Engine) AwardXP(ctx context.Context, userID, kind string, amount int) (*XPResult, error) {
	if amount < 0 {
		return nil, fmt.Errorf("negative xp amount %d for action %q", amount, kind)
	}

	unlock := e.lockUser(userID)
	defer unlock()

	var result *XPResult
	err := e.store.Transaction(ctx, func(tx *store.Store) error {
		var txErr error
		result, txErr = e.awardXP(ctx, tx, userID, kind, amount)
		return txErr
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// AwardApplicationXP is the composite invoked when the user applies to a
// vacancy: streak update, application XP, applications counter and
// achievement check, all-or-nothing.
func (e *Engine) AwardApplicationXP(ctx context.Context, userID string) (*ApplicationResult, error) {
	unlock := e.lockUser(userID)
	defer unlock()

	var result *ApplicationResult
	err := e.store.Transaction(ctx, func(tx *store.Store) error {
		// The streak reads the last qualifying action strictly before
		// this application, so it runs before the action is appended.
		streak, err := e.updateStreak(ctx, tx, userID)
		if err != nil {
			return err
		}

		xp, err := e.awardXP(ctx, tx, userID, store.ActionApply, e.cfg.Awards.Application)
		if err != nil {
			return err
		}

		stats, err := tx.GetOrCreateStats(ctx, userID)
		if err != nil {
			return err
		}
		if err := tx.UpdateStats(ctx, userID, map[string]any{
			"applications": stats.Applications + 1,
		}); err != nil {
			return err
		}

		unlocked, err := e.checkAchievements(ctx, tx, userID)
		if err != nil {
			return err
		}

		result = &ApplicationResult{XPResult: *xp, Streak: streak, Unlocked: unlocked}
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.logger.Info("application awarded",
		zap.String("user", userID),
		zap.Int("totalXP", result.TotalXP),
		zap.Int("level", result.Level),
		zap.Int("streak", result.Streak),
		zap.Strings("unlocked", result.Unlocked),
	)

	return result, nil
}

// AwardForKind returns the configured XP amount for an action kind.
func (e *Engine) AwardForKind(kind string) int {
	switch kind {
	case store.ActionApply:
		return e.cfg.Awards.Application
	case store.ActionView:
		return e.cfg.Awards.View
	case store.ActionLetter:
		return e.cfg.Awards.Letter
	case store.ActionRejection:
		return e.cfg.Awards.Rejection
	case store.ActionInterview:
		return e.cfg.Awards.Interview
	default:
		return 0
	}
}

func (e *Engine) awardXP(ctx context.Context, s *store.Store, userID, kind string, amount int) (*XPResult, error) {
	stats, err := s.GetOrCreateStats(ctx, userID)
	if err != nil {
		return nil, err
	}

	occurred := e.now().In(e.loc)
	if err := s.AppendAction(ctx, &store.UserAction{
		UserID:     userID,
		Kind:       kind,
		XPAwarded:  amount,
		OccurredAt: occurred,
		ActionDate: occurred.Format(store.DateKeyLayout),
	}); err != nil {
		return nil, err
	}

	totalXP := stats.TotalXP + amount
	level := totalXP/e.cfg.XPPerLevel + 1
	fields := map[string]any{
		"total_xp": totalXP,
		"level":    level,
	}
	// Engagement counters ride along with the XP update.
	switch kind {
	case store.ActionView:
		fields["views"] = stats.Views + 1
	case store.ActionInterview:
		fields["interviews"] = stats.Interviews + 1
	}
	if err := s.UpdateStats(ctx, userID, fields); err != nil {
		return nil, err
	}

	return &XPResult{
		TotalXP:   totalXP,
		Level:     level,
		LeveledUp: level > stats.Level,
	}, nil
}

// lockUser serializes writers for one user. Cross-user operations stay
// independent.
func (e *Engine) lockUser(userID string) func() {
	v, _ := e.locks.LoadOrStore(userID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func (e *Engine) today() time.Time {
	return e.now().In(e.loc)
}

package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(":memory:", zap.NewNop())
	require.NoError(t, err)

	return s
}

func TestGetOrCreateUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first, err := s.GetOrCreateUser(ctx, "hh-123")
	require.NoError(t, err)
	require.NotEmpty(t, first.ID)

	second, err := s.GetOrCreateUser(ctx, "hh-123")
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)

	_, err = s.GetOrCreateUser(ctx, "")
	require.Error(t, err)
}

func TestGetOrCreateStats(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	stats, err := s.GetOrCreateStats(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, 0, stats.TotalXP)
	require.Equal(t, 1, stats.Level)
	require.Equal(t, 0, stats.CurrentStreak)

	require.NoError(t, s.UpdateStats(ctx, "u1", map[string]any{
		"total_xp": 120,
		"level":    1,
	}))

	again, err := s.GetOrCreateStats(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, stats.ID, again.ID)
	require.Equal(t, 120, again.TotalXP)
}

func TestUpdateStatsPartial(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.GetOrCreateStats(ctx, "u1")
	require.NoError(t, err)

	require.NoError(t, s.UpdateStats(ctx, "u1", map[string]any{
		"total_xp":       510,
		"level":          2,
		"current_streak": 3,
	}))
	// An untouched field keeps its value across a partial update.
	require.NoError(t, s.UpdateStats(ctx, "u1", map[string]any{"applications": 1}))

	stats, err := s.GetOrCreateStats(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, 510, stats.TotalXP)
	require.Equal(t, 2, stats.Level)
	require.Equal(t, 3, stats.CurrentStreak)
	require.Equal(t, 1, stats.Applications)

	// Empty field map is a no-op, not an error.
	require.NoError(t, s.UpdateStats(ctx, "u1", nil))
}

func TestInsertAchievementIfAbsent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	inserted, err := s.InsertAchievementIfAbsent(ctx, "u1", "first_application")
	require.NoError(t, err)
	require.True(t, inserted)

	inserted, err = s.InsertAchievementIfAbsent(ctx, "u1", "first_application")
	require.NoError(t, err)
	require.False(t, inserted)

	has, err := s.HasAchievement(ctx, "u1", "first_application")
	require.NoError(t, err)
	require.True(t, has)

	has, err = s.HasAchievement(ctx, "u1", "active_user")
	require.NoError(t, err)
	require.False(t, has)

	all, err := s.ListAchievements(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestActionLogQueries(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	day := func(offset int) time.Time {
		return time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
	}

	for _, a := range []*UserAction{
		{UserID: "u1", Kind: ActionApply, XPAwarded: 10, OccurredAt: day(0)},
		{UserID: "u1", Kind: ActionView, XPAwarded: 50, OccurredAt: day(0)},
		{UserID: "u1", Kind: ActionApply, XPAwarded: 10, OccurredAt: day(1)},
		{UserID: "u1", Kind: ActionSkip, XPAwarded: 0, OccurredAt: day(2)},
		{UserID: "u2", Kind: ActionApply, XPAwarded: 10, OccurredAt: day(2)},
	} {
		require.NoError(t, s.AppendAction(ctx, a))
	}

	last, err := s.LastActionDate(ctx, "u1", []string{ActionApply, ActionView})
	require.NoError(t, err)
	require.Equal(t, "2025-03-11", last)

	// Skips never count as qualifying activity.
	dates, err := s.ActionDates(ctx, "u1", "2025-03-01", []string{ActionApply, ActionView})
	require.NoError(t, err)
	require.Equal(t, []string{"2025-03-11", "2025-03-10"}, dates)

	// No qualifying actions yields an empty date, not an error.
	last, err = s.LastActionDate(ctx, "u3", []string{ActionApply})
	require.NoError(t, err)
	require.Empty(t, last)

	activity, err := s.DailyActivity(ctx, "u1", "2025-03-01")
	require.NoError(t, err)
	require.Len(t, activity, 3)
	require.Equal(t, DayActivity{Date: "2025-03-10", Actions: 2, XP: 60}, activity[2])
	require.Equal(t, DayActivity{Date: "2025-03-11", Actions: 1, XP: 10}, activity[1])
}

func TestAppendActionDefaults(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	action := &UserAction{UserID: "u1", Kind: ActionApply}
	require.NoError(t, s.AppendAction(ctx, action))
	require.False(t, action.OccurredAt.IsZero())
	require.Equal(t, action.OccurredAt.Format(DateKeyLayout), action.ActionDate)
}

func TestApplicationCounters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, app := range []*Application{
		{UserID: "u1", VacancyExternalID: "v1"},
		{UserID: "u1", VacancyExternalID: "v2", Status: ApplicationViewed},
		{UserID: "u1", VacancyExternalID: "v3", Status: ApplicationRejected},
		{UserID: "u1", VacancyExternalID: "v4", Status: ApplicationInterview},
		{UserID: "u2", VacancyExternalID: "v5", Status: ApplicationViewed},
	} {
		require.NoError(t, s.CreateApplication(ctx, app))
	}

	counters, err := s.ApplicationCounters(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, 4, counters.Total)
	// The interview row counts as viewed too.
	require.Equal(t, 2, counters.Viewed)
	require.Equal(t, 1, counters.Rejected)
	require.Equal(t, 1, counters.Interviews)
}

func TestUpdateApplicationStatus(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	app := &Application{UserID: "u1", VacancyExternalID: "v1"}
	require.NoError(t, s.CreateApplication(ctx, app))
	require.Equal(t, ApplicationApplied, app.Status)

	require.NoError(t, s.UpdateApplicationStatus(ctx, app.ID, ApplicationInterview))

	apps, err := s.ListApplications(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, apps, 1)
	require.Equal(t, ApplicationInterview, apps[0].Status)

	err = s.UpdateApplicationStatus(ctx, "missing", ApplicationViewed)
	require.ErrorContains(t, err, "not found")
}

func TestVacancyCache(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	vacancy := &Vacancy{
		ExternalID:   "12345",
		Title:        "Go Developer",
		Company:      "Acme",
		Description:  "snippet only",
		Requirements: []string{"Go", "PostgreSQL"},
	}
	require.NoError(t, s.UpsertVacancy(ctx, vacancy))

	// A second upsert of the same external id leaves the cached row alone.
	require.NoError(t, s.UpsertVacancy(ctx, &Vacancy{ExternalID: "12345", Title: "Other"}))

	got, err := s.GetVacancy(ctx, "12345")
	require.NoError(t, err)
	require.Equal(t, "Go Developer", got.Title)
	require.Equal(t, []string{"Go", "PostgreSQL"}, got.Requirements)

	require.NoError(t, s.BackfillDescription(ctx, "12345", "full description text"))
	got, err = s.GetVacancy(ctx, "12345")
	require.NoError(t, err)
	require.Equal(t, "full description text", got.Description)

	got, err = s.GetVacancy(ctx, "absent")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestResumeCache(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	resume := &Resume{
		UserID:     "u1",
		ExternalID: "r1",
		Title:      "Backend Developer",
		Skills:     []string{"Go", "Docker"},
		Published:  true,
	}
	require.NoError(t, s.UpsertResume(ctx, resume))
	require.NoError(t, s.UpsertResume(ctx, &Resume{
		UserID:     "u1",
		ExternalID: "r2",
		Title:      "Draft",
		Published:  false,
	}))

	// Re-upserting refreshes the mutable fields in place.
	require.NoError(t, s.UpsertResume(ctx, &Resume{
		UserID:     "u1",
		ExternalID: "r1",
		Title:      "Senior Backend Developer",
		Skills:     []string{"Go", "Docker", "Kubernetes"},
		Published:  true,
	}))

	published, err := s.ListPublishedResumes(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, published, 1)
	require.Equal(t, "Senior Backend Developer", published[0].Title)
	require.Equal(t, []string{"Go", "Docker", "Kubernetes"}, published[0].Skills)
}

func TestSearchFilters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveFilter(ctx, &SearchFilter{UserID: "u1", Name: "go remote", Params: `{"text":"golang"}`}))

	filters, err := s.ListFilters(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, filters, 1)
	require.Equal(t, "go remote", filters[0].Name)
}

func TestTransactionRollback(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.GetOrCreateStats(ctx, "u1")
	require.NoError(t, err)

	wantErr := context.Canceled
	err = s.Transaction(ctx, func(tx *Store) error {
		if err := tx.UpdateStats(ctx, "u1", map[string]any{"total_xp": 999}); err != nil {
			return err
		}
		if err := tx.AppendAction(ctx, &UserAction{UserID: "u1", Kind: ActionApply}); err != nil {
			return err
		}
		return wantErr
	})
	require.ErrorIs(t, err, wantErr)

	stats, err := s.GetOrCreateStats(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, 0, stats.TotalXP)

	last, err := s.LastActionDate(ctx, "u1", []string{ActionApply})
	require.NoError(t, err)
	require.Empty(t, last)
}

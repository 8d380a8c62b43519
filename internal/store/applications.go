package store

import (
	"context"
	"fmt"
)

// CreateApplication records a submitted negotiation.
func (s *Store) CreateApplication(ctx context.Context, app *Application) error {
	if app.Status == "" {
		app.Status = ApplicationApplied
	}

	return s.db.WithContext(ctx).Create(app).Error
}

// UpdateApplicationStatus moves an application to a new employer-response
// status.
func (s *Store) UpdateApplicationStatus(ctx context.Context, id, status string) error {
	result := s.db.WithContext(ctx).
		Model(&Application{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("application %s not found", id)
	}

	return nil
}

// ApplicationCounters aggregates the user's applications by response status.
func (s *Store) ApplicationCounters(ctx context.Context, userID string) (*ApplicationCounters, error) {
	type row struct {
		Status string
		Count  int
	}

	var rows []row
	err := s.db.WithContext(ctx).
		Model(&Application{}).
		Select("status, COUNT(*) AS count").
		Where("user_id = ?", userID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counters := &ApplicationCounters{}
	for _, r := range rows {
		counters.Total += r.Count
		switch r.Status {
		case ApplicationViewed:
			counters.Viewed += r.Count
		case ApplicationRejected:
			counters.Rejected += r.Count
		case ApplicationInterview:
			counters.Interviews += r.Count
			// An interview implies the employer viewed the application.
			counters.Viewed += r.Count
		}
	}

	return counters, nil
}

// ListApplications returns the user's applications, newest first.
func (s *Store) ListApplications(ctx context.Context, userID string) ([]*Application, error) {
	var apps []*Application
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&apps).Error
	if err != nil {
		return nil, err
	}

	return apps, nil
}

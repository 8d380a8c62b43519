package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UpsertVacancy caches a vacancy keyed by its external id. An existing row is
// left untouched except for the description backfill below.
func (s *Store) UpsertVacancy(ctx context.Context, vacancy *Vacancy) error {
	if vacancy.CachedAt.IsZero() {
		vacancy.CachedAt = time.Now()
	}

	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "external_id"}},
			DoNothing: true,
		}).
		Create(vacancy).Error
}

// GetVacancy returns the cached vacancy by external id, or nil when the
// vacancy is not cached.
func (s *Store) GetVacancy(ctx context.Context, externalID string) (*Vacancy, error) {
	var vacancy Vacancy
	err := s.db.WithContext(ctx).
		Where("external_id = ?", externalID).
		First(&vacancy).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &vacancy, nil
}

// BackfillDescription replaces a cached search snippet with the full vacancy
// text. This is the only mutation a cached vacancy ever receives.
func (s *Store) BackfillDescription(ctx context.Context, externalID, description string) error {
	return s.db.WithContext(ctx).
		Model(&Vacancy{}).
		Where("external_id = ?", externalID).
		Update("description", description).Error
}

// ListVacancies returns cached vacancies, newest first.
func (s *Store) ListVacancies(ctx context.Context, limit int) ([]*Vacancy, error) {
	var vacancies []*Vacancy
	q := s.db.WithContext(ctx).Order("cached_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	if err := q.Find(&vacancies).Error; err != nil {
		return nil, err
	}

	return vacancies, nil
}

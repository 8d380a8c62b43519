package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UpsertResume caches a resume copy, refreshing the mutable fields when the
// external id is already known.
func (s *Store) UpsertResume(ctx context.Context, resume *Resume) error {
	if resume.CachedAt.IsZero() {
		resume.CachedAt = time.Now()
	}

	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "external_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"title", "experience", "skills", "published", "cached_at"}),
		}).
		Create(resume).Error
}

// GetResume returns the cached resume by external id, or nil when unknown.
func (s *Store) GetResume(ctx context.Context, externalID string) (*Resume, error) {
	var resume Resume
	err := s.db.WithContext(ctx).
		Where("external_id = ?", externalID).
		First(&resume).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &resume, nil
}

// ListPublishedResumes returns the user's resumes that participate in
// relevance scoring.
func (s *Store) ListPublishedResumes(ctx context.Context, userID string) ([]*Resume, error) {
	var resumes []*Resume
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND published = ?", userID, true).
		Order("cached_at DESC").
		Find(&resumes).Error
	if err != nil {
		return nil, err
	}

	return resumes, nil
}

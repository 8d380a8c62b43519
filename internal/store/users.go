package store

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GetOrCreateUser resolves a local user row for an HH.ru account id.
func (s *Store) GetOrCreateUser(ctx context.Context, externalID string) (*User, error) {
	if externalID == "" {
		return nil, errors.New("external user id is required")
	}

	var user User
	err := s.db.WithContext(ctx).
		Where("external_id = ?", externalID).
		First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user = User{ExternalID: externalID}
	err = s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "external_id"}}, DoNothing: true}).
		Create(&user).Error
	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Where("external_id = ?", externalID).First(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

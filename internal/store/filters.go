package store

import "context"

// SaveFilter stores a named vacancy search for reuse.
func (s *Store) SaveFilter(ctx context.Context, filter *SearchFilter) error {
	return s.db.WithContext(ctx).Create(filter).Error
}

// ListFilters returns the user's saved searches, newest first.
func (s *Store) ListFilters(ctx context.Context, userID string) ([]*SearchFilter, error) {
	var filters []*SearchFilter
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&filters).Error
	if err != nil {
		return nil, err
	}

	return filters, nil
}

package store

import (
	"errors"
	"fmt"

	"clipvault/video-api/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (s *Store) GetUserByID(id string) (*model.User, error) {
	var user model.User

	err := s.DB.Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("failed to fetch user, %w", err)
	}

	return &user, nil
}

// UpsertUser inserts a user, ignores the insert on conflict and
// re-reads the row. Not atomic. Two concurrent upserts of the same ID
// can both succeed with only one insert landing, which is fine since
// the payload is idempotent identity data.
func (s *Store) UpsertUser(user *model.User) (*model.User, error) {
	err := s.DB.
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(user).
		Error
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user, %w", err)
	}

	return s.GetUserByID(user.ID)
}

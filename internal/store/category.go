package store

import (
	"errors"
	"fmt"

	"clipvault/video-api/internal/model"

	"gorm.io/gorm"
)

func (s *Store) InsertCategory(category *model.Category) error {
	err := s.DB.Create(category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrConstraint
		}

		return fmt.Errorf("failed to insert category, %w", err)
	}

	return nil
}

// ListCategories returns all categories alphabetically by name.
func (s *Store) ListCategories() ([]model.Category, error) {
	var categories []model.Category

	err := s.DB.Order("name").Find(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list categories, %w", err)
	}

	return categories, nil
}

func (s *Store) GetCategoryByID(id string) (*model.Category, error) {
	return s.getCategory("id = ?", id)
}

func (s *Store) GetCategoryBySlug(slug string) (*model.Category, error) {
	return s.getCategory("slug = ?", slug)
}

func (s *Store) getCategory(query string, arg string) (*model.Category, error) {
	var category model.Category

	err := s.DB.Where(query, arg).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("failed to fetch category, %w", err)
	}

	return &category, nil
}

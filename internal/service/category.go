package service

import (
	"errors"
	"strings"

	"clipvault/video-api/internal/model"
	"clipvault/video-api/internal/store"
	"clipvault/video-api/pkg/slug"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// ErrCategoryName is returned when a category is created with an empty
// or whitespace only name.
var ErrCategoryName = errors.New("category name is required")

// CreateCategory derives a slug from the trimmed name and creates the
// category unless one with that slug already exists, in which case the
// existing row is returned. Uniqueness is look-up-before-insert, best
// effort, there is no database constraint backing it.
func CreateCategory(s *store.Store, name string) (*model.Category, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, ErrCategoryName
	}

	categorySlug := slug.Make(trimmed)

	existing, err := s.GetCategoryBySlug(categorySlug)
	if err == nil {
		return existing, nil
	}

	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	id, err := gonanoid.New(11)
	if err != nil {
		return nil, err
	}

	category := &model.Category{
		ID:   id,
		Name: trimmed,
		Slug: categorySlug,
	}

	err = s.InsertCategory(category)
	if err != nil {
		return nil, err
	}

	return category, nil
}

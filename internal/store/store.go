// Package store is the persistence layer for the video catalog. It
// wraps gorm and translates driver errors into the small set of
// sentinel errors the handlers care about.
package store

import (
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a row does not exist
	ErrNotFound = errors.New("record not found")
	// ErrConstraint is returned on duplicate primary keys or storage
	// keys. Practically unreachable since both are randomly generated.
	ErrConstraint = errors.New("constraint violation")
)

type Store struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{DB: db}
}

package store

import (
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is returned when an entity does not exist or belongs to a
// different owner. The two cases are deliberately indistinguishable so
// that queries never reveal the existence of another user's data.
var ErrNotFound = errors.New("not found")

// asStoreError maps gorm's record-not-found onto ErrNotFound.
func asStoreError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

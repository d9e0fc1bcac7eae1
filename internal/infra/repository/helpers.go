package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// uuid columns reject malformed input with a syntax error; treat such ids
// as absent instead.
func checkID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return gorm.ErrRecordNotFound
	}
	return nil
}

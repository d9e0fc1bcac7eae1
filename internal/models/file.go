package models

import (
	"slices"
	"time"

	"gorm.io/gorm"
)

type File struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	OwnerID  string  `gorm:"type:uuid;index;not null" json:"owner"`
	DoctorID *string `gorm:"type:uuid;index" json:"doctor,omitempty"`

	Name        string `gorm:"size:255;not null" json:"name"`
	ContentType string `gorm:"size:100" json:"contentType"`
	Size        int64  `json:"size"`
	Key         string `gorm:"size:500;uniqueIndex;not null" json:"key"`

	Category   string   `gorm:"size:50;index" json:"category"`
	Tags       []string `gorm:"serializer:json;type:jsonb" json:"tags"`
	SharedWith []string `gorm:"serializer:json;type:jsonb" json:"sharedWith"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (f *File) BeforeCreate(*gorm.DB) error {
	assignID(&f.ID)
	if f.SharedWith == nil {
		f.SharedWith = []string{}
	}
	return nil
}

// CanRead reports whether userID owns the file or has it shared with them.
func (f *File) CanRead(userID string) bool {
	return f.OwnerID == userID || slices.Contains(f.SharedWith, userID)
}

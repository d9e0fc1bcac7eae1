package models

import (
	"time"

	"gorm.io/gorm"
)

// User is the login identity. Doctor and Hospital profiles are separate
// records linked by email; OnboardingStatus records whether that profile exists.
type User struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Phone        string `gorm:"size:20" json:"phone"`
	Image        string `gorm:"size:255" json:"image"`
	Role         string `gorm:"size:20;default:'user'" json:"role"`

	OnboardingStatus string `gorm:"size:20;default:'completed'" json:"onboardingStatus"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u *User) BeforeCreate(*gorm.DB) error {
	assignID(&u.ID)
	return nil
}

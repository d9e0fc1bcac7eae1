package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	VerificationPending  = "pending"
	VerificationVerified = "verified"
	VerificationRejected = "rejected"
)

type Doctor struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	Email          string  `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Name           string  `gorm:"size:100;not null" json:"name"`
	Specialization string  `gorm:"size:100;index" json:"specialization"`
	Qualification  string  `gorm:"size:150" json:"qualification"`
	Experience     int     `json:"experience"`
	Phone          string  `gorm:"size:20" json:"phone"`
	Bio            string  `gorm:"type:text" json:"bio"`
	Fee            float64 `json:"fee"`

	HospitalID *string   `gorm:"type:uuid;index" json:"hospital,omitempty"`
	Hospital   *Hospital `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"hospitalDetails,omitempty"`

	VerificationStatus string `gorm:"size:20;default:'pending'" json:"verificationStatus"`

	AverageRating float64 `gorm:"default:0" json:"averageRating"`
	TotalRatings  int     `gorm:"default:0" json:"totalRatings"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (d *Doctor) BeforeCreate(*gorm.DB) error {
	assignID(&d.ID)
	return nil
}

package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

const MaxHospitalImages = 4

type Address struct {
	Street     string  `gorm:"size:200" json:"street"`
	City       string  `gorm:"size:100;index" json:"city"`
	State      string  `gorm:"size:100" json:"state"`
	Country    string  `gorm:"size:100" json:"country"`
	PostalCode string  `gorm:"size:20" json:"postalCode"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
}

// OneLine renders the address the way geocoders expect it.
func (a Address) OneLine() string {
	parts := make([]string, 0, 5)
	for _, p := range []string{a.Street, a.City, a.State, a.PostalCode, a.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

type Hospital struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	Email       string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Name        string `gorm:"size:150;not null;index" json:"name"`
	Phone       string `gorm:"size:20" json:"phone"`
	Website     string `gorm:"size:255" json:"website"`
	Description string `gorm:"type:text" json:"description"`

	Address Address `gorm:"embedded;embeddedPrefix:address_" json:"address"`

	Specialties []string `gorm:"serializer:json;type:jsonb" json:"specialties"`
	Images      []string `gorm:"serializer:json;type:jsonb" json:"images"`

	AverageRating float64 `gorm:"default:0" json:"averageRating"`
	TotalRatings  int     `gorm:"default:0" json:"totalRatings"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (h *Hospital) BeforeCreate(*gorm.DB) error {
	assignID(&h.ID)
	return nil
}

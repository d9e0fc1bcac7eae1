package models

import (
	"time"

	"gorm.io/gorm"
)

type Rating struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	UserID     string `gorm:"type:uuid;not null;uniqueIndex:ux_ratings_identity" json:"userId"`
	TargetType string `gorm:"size:20;not null;uniqueIndex:ux_ratings_identity;index:idx_ratings_target" json:"targetType"`
	TargetID   string `gorm:"type:uuid;not null;uniqueIndex:ux_ratings_identity;index:idx_ratings_target" json:"targetId"`

	Rating int    `gorm:"not null" json:"rating"`
	Review string `gorm:"size:500" json:"review"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (r *Rating) BeforeCreate(*gorm.DB) error {
	assignID(&r.ID)
	return nil
}

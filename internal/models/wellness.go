package models

import (
	"time"

	"gorm.io/gorm"
)

type Journal struct {
	ID     string `gorm:"type:uuid;primaryKey" json:"id"`
	UserID string `gorm:"type:uuid;index;not null" json:"userId"`

	Title   string `gorm:"size:200;not null" json:"title"`
	Content string `gorm:"type:text;not null" json:"content"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (j *Journal) BeforeCreate(*gorm.DB) error {
	assignID(&j.ID)
	return nil
}

type Mood struct {
	ID     string `gorm:"type:uuid;primaryKey" json:"id"`
	UserID string `gorm:"type:uuid;index:idx_moods_user_date;not null" json:"userId"`

	Mood int    `gorm:"not null" json:"mood"`
	Note string `gorm:"size:500" json:"note"`
	Date string `gorm:"size:10;index:idx_moods_user_date" json:"date"`

	CreatedAt time.Time `json:"createdAt"`
}

func (m *Mood) BeforeCreate(*gorm.DB) error {
	assignID(&m.ID)
	return nil
}

package models

import (
	"time"

	"gorm.io/gorm"
)

type Appointment struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	UserID string `gorm:"type:uuid;index;not null" json:"user"`
	User   User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"userDetails"`

	DoctorID string `gorm:"type:uuid;index:idx_appointments_doctor_date;not null" json:"doctor"`
	Doctor   Doctor `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"doctorDetails"`

	Date string `gorm:"size:10;index:idx_appointments_doctor_date;not null" json:"date"`
	Time string `gorm:"size:5;not null" json:"time"`

	Status        string `gorm:"size:20;default:'booked'" json:"status"`
	Type          string `gorm:"size:20;default:'in-person'" json:"type"`
	PaymentStatus string `gorm:"size:20;default:'unpaid'" json:"paymentStatus"`

	Notes string `gorm:"size:500" json:"notes"`

	PaymentReference string `gorm:"size:100" json:"paymentReference,omitempty"`

	CancelledAt *time.Time `json:"cancelledAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (a *Appointment) BeforeCreate(*gorm.DB) error {
	assignID(&a.ID)
	return nil
}

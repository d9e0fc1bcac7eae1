package models

import (
	"time"

	"gorm.io/gorm"
)

type Medication struct {
	Name      string `json:"name"`
	Dosage    string `json:"dosage"`
	Frequency string `json:"frequency"`
	Duration  string `json:"duration"`
	Notes     string `json:"notes,omitempty"`
}

type Prescription struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	PatientID string `gorm:"type:uuid;index;not null" json:"patientId"`
	Patient   User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"patient"`

	DoctorID string `gorm:"type:uuid;index;not null" json:"doctorId"`
	Doctor   Doctor `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"doctor"`

	AppointmentID string `gorm:"type:uuid;uniqueIndex:ux_prescriptions_appointment;not null" json:"appointmentId"`

	Status       string       `gorm:"size:20;default:'Active';index" json:"status"`
	Notes        string       `gorm:"type:text" json:"notes"`
	FollowUpDate *string      `gorm:"size:10" json:"followUpDate,omitempty"`
	Medications  []Medication `gorm:"serializer:json;type:jsonb;not null" json:"medications"`

	CancelledAt *time.Time `json:"cancelledAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (p *Prescription) BeforeCreate(*gorm.DB) error {
	assignID(&p.ID)
	return nil
}

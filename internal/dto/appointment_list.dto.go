package dto

import (
	"time"

	"github.com/BruksfildServices01/health-portal/internal/models"
)

type PartyDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
	Image string `json:"image,omitempty"`
}

type DoctorDTO struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	Specialization string  `json:"specialization"`
	Fee            float64 `json:"fee"`
}

type AppointmentListDTO struct {
	ID            string    `json:"id"`
	Date          string    `json:"date"`
	Time          string    `json:"time"`
	Status        string    `json:"status"`
	Type          string    `json:"type"`
	PaymentStatus string    `json:"paymentStatus"`
	Notes         string    `json:"notes"`
	Patient       PartyDTO  `json:"user"`
	Doctor        DoctorDTO `json:"doctor"`
	CreatedAt     time.Time `json:"createdAt"`
}

func FromAppointment(ap *models.Appointment) AppointmentListDTO {
	return AppointmentListDTO{
		ID:            ap.ID,
		Date:          ap.Date,
		Time:          ap.Time,
		Status:        ap.Status,
		Type:          ap.Type,
		PaymentStatus: ap.PaymentStatus,
		Notes:         ap.Notes,
		Patient: PartyDTO{
			ID:    ap.UserID,
			Name:  ap.User.Name,
			Email: ap.User.Email,
			Phone: ap.User.Phone,
			Image: ap.User.Image,
		},
		Doctor: DoctorDTO{
			ID:             ap.DoctorID,
			Name:           ap.Doctor.Name,
			Email:          ap.Doctor.Email,
			Specialization: ap.Doctor.Specialization,
			Fee:            ap.Doctor.Fee,
		},
		CreatedAt: ap.CreatedAt,
	}
}

func FromAppointments(aps []models.Appointment) []AppointmentListDTO {
	out := make([]AppointmentListDTO, 0, len(aps))
	for i := range aps {
		out = append(out, FromAppointment(&aps[i]))
	}
	return out
}

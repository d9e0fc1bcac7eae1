package prescription

import (
	"context"

	"github.com/BruksfildServices01/health-portal/internal/models"
)

type ListFilter struct {
	DoctorID  string
	PatientID string
	Status    string
}

type Repository interface {
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetDoctorByEmail(ctx context.Context, email string) (*models.Doctor, error)
	GetAppointment(ctx context.Context, id string) (*models.Appointment, error)

	// FindByAppointment returns gorm.ErrRecordNotFound when none exists.
	FindByAppointment(ctx context.Context, appointmentID string) (*models.Prescription, error)

	// Create returns ErrDuplicate when the appointment already has one.
	Create(ctx context.Context, p *models.Prescription) error
	Get(ctx context.Context, id string) (*models.Prescription, error)
	Update(ctx context.Context, p *models.Prescription) error
	List(ctx context.Context, f ListFilter) ([]models.Prescription, error)
}

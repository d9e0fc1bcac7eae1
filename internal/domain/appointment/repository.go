package appointment

import (
	"context"

	"github.com/BruksfildServices01/health-portal/internal/models"
)

type Repository interface {
	// -------- Parties --------
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetDoctorByID(ctx context.Context, id string) (*models.Doctor, error)
	GetDoctorByEmail(ctx context.Context, email string) (*models.Doctor, error)
	GetHospitalByEmail(ctx context.Context, email string) (*models.Hospital, error)

	// -------- Appointment (create / conflict) --------
	AssertSlotAvailable(ctx context.Context, doctorID, date, slotTime string) error

	// CreateAppointment returns ErrSlotTaken when the storage layer rejects a
	// second active appointment for the same slot.
	CreateAppointment(ctx context.Context, ap *models.Appointment) error

	// -------- Appointment (state change) --------
	GetAppointment(ctx context.Context, id string) (*models.Appointment, error)

	// Each write touches only its own columns so status, payment and the
	// checkout reference can change concurrently without undoing each other.
	SaveStatus(ctx context.Context, ap *models.Appointment) error
	SavePaymentStatus(ctx context.Context, id, paymentStatus string) error
	SavePaymentReference(ctx context.Context, id, reference string) error

	// -------- Listing --------
	ListByDoctor(ctx context.Context, doctorID string, f ListFilter) ([]models.Appointment, error)
	ListByUser(ctx context.Context, userID string, f ListFilter) ([]models.Appointment, error)
	ListBookedTimes(ctx context.Context, doctorID, date string) ([]string, error)
	ListDoctorPatients(ctx context.Context, doctorID string) ([]PatientSummary, error)
}

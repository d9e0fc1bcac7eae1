package appointment

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/health-portal/internal/audit"
	domain "github.com/BruksfildServices01/health-portal/internal/domain/appointment"
	"github.com/BruksfildServices01/health-portal/internal/domain/identity"
	"github.com/BruksfildServices01/health-portal/internal/dto"
	"github.com/BruksfildServices01/health-portal/internal/httperr"
	"github.com/BruksfildServices01/health-portal/internal/models"
	"github.com/BruksfildServices01/health-portal/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type BookAppointmentInput struct {
	PatientEmail string
	DoctorID     string
	Date         string
	Time         string
	Type         string
	Notes        string
}

// ======================================================
// USE CASE
// ======================================================

type BookAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewBookAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *BookAppointment {
	return &BookAppointment{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *BookAppointment) Execute(
	ctx context.Context,
	actor identity.Actor,
	in BookAppointmentInput,
) (*dto.AppointmentListDTO, error) {

	// --------------------------------------------------
	// 1. Required fields, before touching storage
	// --------------------------------------------------
	in.PatientEmail = validators.NormalizeEmail(in.PatientEmail)
	in.DoctorID = strings.TrimSpace(in.DoctorID)
	if in.PatientEmail == "" || in.DoctorID == "" || in.Date == "" || in.Time == "" {
		return nil, httperr.ErrValidation("missing_fields", "userEmail, doctorId, date and time are required.")
	}

	if actor.IsPatient() && in.PatientEmail != actor.Email {
		return nil, httperr.ErrForbidden("access_denied", "Patients can only book for themselves.")
	}

	if err := domain.ValidateSlot(in.Date, in.Time); err != nil {
		return nil, err
	}

	apType, err := domain.ParseType(in.Type)
	if err != nil {
		return nil, err
	}

	in.Notes = strings.TrimSpace(in.Notes)
	if err := domain.ValidateNotes(in.Notes); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2. Parties
	// --------------------------------------------------
	patient, err := uc.repo.GetUserByEmail(ctx, in.PatientEmail)
	if err != nil {
		if httperr.IsNotFound(err) {
			return nil, httperr.ErrNotFound("patient_not_found", "Patient not found.")
		}
		return nil, err
	}

	doctor, err := uc.repo.GetDoctorByID(ctx, in.DoctorID)
	if err != nil {
		if httperr.IsNotFound(err) {
			return nil, httperr.ErrNotFound("doctor_not_found", "Doctor not found.")
		}
		return nil, err
	}

	// --------------------------------------------------
	// 3. Slot conflict. The partial unique index is the
	//    real guard; this lookup gives the common case a
	//    clean error without a failed insert.
	// --------------------------------------------------
	if err := uc.repo.AssertSlotAvailable(ctx, doctor.ID, in.Date, in.Time); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 4. Insert
	// --------------------------------------------------
	ap := &models.Appointment{
		UserID:        patient.ID,
		DoctorID:      doctor.ID,
		Date:          in.Date,
		Time:          in.Time,
		Status:        string(domain.InitialStatus()),
		Type:          string(apType),
		PaymentStatus: string(domain.InitialPaymentStatus()),
		Notes:         in.Notes,
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	ap.User = *patient
	ap.Doctor = *doctor

	uc.audit.Dispatch(audit.Event{
		ActorID:  actor.UserID,
		Action:   "appointment_booked",
		Entity:   "appointment",
		EntityID: ap.ID,
		Metadata: map[string]string{"doctor": doctor.ID, "date": ap.Date, "time": ap.Time},
	})

	out := dto.FromAppointment(ap)
	return &out, nil
}

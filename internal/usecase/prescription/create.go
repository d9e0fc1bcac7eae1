package prescription

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/health-portal/internal/audit"
	"github.com/BruksfildServices01/health-portal/internal/domain/identity"
	domain "github.com/BruksfildServices01/health-portal/internal/domain/prescription"
	"github.com/BruksfildServices01/health-portal/internal/httperr"
	"github.com/BruksfildServices01/health-portal/internal/models"
)

type CreateInput struct {
	PatientID     string
	AppointmentID string
	Medications   []models.Medication
	Notes         string
	FollowUpDate  *string
}

type CreatePrescription struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreatePrescription(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreatePrescription {
	return &CreatePrescription{
		repo:  repo,
		audit: audit,
	}
}

// Execute does not look at the appointment status: a prescription may be
// written for a booked, confirmed or completed appointment alike.
func (uc *CreatePrescription) Execute(
	ctx context.Context,
	actor identity.Actor,
	in CreateInput,
) (*models.Prescription, error) {

	// --------------------------------------------------
	// 1. Shape of the request, before any lookup
	// --------------------------------------------------
	in.PatientID = strings.TrimSpace(in.PatientID)
	in.AppointmentID = strings.TrimSpace(in.AppointmentID)
	if in.PatientID == "" || in.AppointmentID == "" {
		return nil, httperr.ErrValidation("missing_fields", "patientId and appointmentId are required.")
	}
	if err := domain.ValidateMedications(in.Medications); err != nil {
		return nil, err
	}
	if err := domain.ValidateFollowUp(in.FollowUpDate); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2. Author, patient and appointment
	// --------------------------------------------------
	doctor, err := uc.repo.GetDoctorByEmail(ctx, actor.Email)
	if err != nil {
		if httperr.IsNotFound(err) {
			return nil, identity.ErrDoctorProfileMissing
		}
		return nil, err
	}

	if _, err := uc.repo.GetUser(ctx, in.PatientID); err != nil {
		if httperr.IsNotFound(err) {
			return nil, domain.ErrPatientNotFound
		}
		return nil, err
	}

	ap, err := uc.repo.GetAppointment(ctx, in.AppointmentID)
	if err != nil {
		if httperr.IsNotFound(err) {
			return nil, httperr.ErrNotFound("appointment_not_found", "Appointment not found.")
		}
		return nil, err
	}
	if ap.UserID != in.PatientID {
		return nil, httperr.ErrValidation("appointment_patient_mismatch", "The appointment belongs to another patient.")
	}
	if ap.DoctorID != doctor.ID {
		return nil, httperr.ErrForbidden("access_denied", "You can only prescribe for your own appointments.")
	}

	// --------------------------------------------------
	// 3. One per appointment. The unique index backs this
	//    check when two creates race.
	// --------------------------------------------------
	if _, err := uc.repo.FindByAppointment(ctx, in.AppointmentID); err == nil {
		return nil, domain.ErrDuplicate
	} else if !httperr.IsNotFound(err) {
		return nil, err
	}

	p := &models.Prescription{
		PatientID:     in.PatientID,
		DoctorID:      doctor.ID,
		AppointmentID: in.AppointmentID,
		Status:        string(domain.InitialStatus()),
		Notes:         strings.TrimSpace(in.Notes),
		FollowUpDate:  in.FollowUpDate,
		Medications:   in.Medications,
	}

	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  actor.UserID,
		Action:   "prescription_created",
		Entity:   "prescription",
		EntityID: p.ID,
		Metadata: map[string]any{"appointment": p.AppointmentID, "medications": len(p.Medications)},
	})

	return p, nil
}

package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/health-portal/internal/domain/appointment"
	"github.com/BruksfildServices01/health-portal/internal/domain/identity"
	"github.com/BruksfildServices01/health-portal/internal/dto"
	"github.com/BruksfildServices01/health-portal/internal/httperr"
	"github.com/BruksfildServices01/health-portal/internal/validators"
)

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(
	repo domain.Repository,
) *ListAppointments {
	return &ListAppointments{
		repo: repo,
	}
}

// ForDoctor lists a doctor's schedule for that doctor or their hospital.
func (uc *ListAppointments) ForDoctor(
	ctx context.Context,
	actor identity.Actor,
	doctorID string,
	f domain.ListFilter,
) ([]dto.AppointmentListDTO, error) {

	if doctorID == "" {
		return nil, httperr.ErrValidation("missing_fields", "doctorId is required.")
	}

	if _, err := uc.repo.GetDoctorByID(ctx, doctorID); err != nil {
		if httperr.IsNotFound(err) {
			return nil, httperr.ErrNotFound("doctor_not_found", "Doctor not found.")
		}
		return nil, err
	}
	if err := authorizeSchedule(ctx, uc.repo, actor, doctorID); err != nil {
		return nil, err
	}

	aps, err := uc.repo.ListByDoctor(ctx, doctorID, f)
	if err != nil {
		return nil, err
	}
	return dto.FromAppointments(aps), nil
}

// ForUser lists a patient's appointments. Patients can only list their own.
func (uc *ListAppointments) ForUser(
	ctx context.Context,
	actor identity.Actor,
	email string,
	f domain.ListFilter,
) ([]dto.AppointmentListDTO, error) {

	email = validators.NormalizeEmail(email)
	if email == "" {
		email = actor.Email
	}
	if actor.IsPatient() && email != actor.Email {
		return nil, httperr.ErrForbidden("access_denied", "You can only list your own appointments.")
	}

	user, err := uc.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if httperr.IsNotFound(err) {
			return nil, httperr.ErrNotFound("patient_not_found", "Patient not found.")
		}
		return nil, err
	}

	aps, err := uc.repo.ListByUser(ctx, user.ID, f)
	if err != nil {
		return nil, err
	}
	return dto.FromAppointments(aps), nil
}

func (uc *ListAppointments) BookedSlots(
	ctx context.Context,
	in domain.BookedSlotsInput,
) ([]string, error) {

	if in.DoctorID == "" {
		return nil, httperr.ErrValidation("missing_fields", "doctorId is required.")
	}
	if err := domain.ValidateSlot(in.Date, "00:00"); err != nil {
		return nil, err
	}
	return uc.repo.ListBookedTimes(ctx, in.DoctorID, in.Date)
}

// PatientsOfDoctor lists the distinct patients who booked with the calling doctor.
func (uc *ListAppointments) PatientsOfDoctor(
	ctx context.Context,
	actor identity.Actor,
) ([]domain.PatientSummary, error) {

	doctor, err := uc.repo.GetDoctorByEmail(ctx, actor.Email)
	if err != nil {
		if httperr.IsNotFound(err) {
			return nil, identity.ErrDoctorProfileMissing
		}
		return nil, err
	}
	return uc.repo.ListDoctorPatients(ctx, doctor.ID)
}

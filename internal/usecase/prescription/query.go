package prescription

import (
	"context"

	"github.com/BruksfildServices01/health-portal/internal/domain/identity"
	domain "github.com/BruksfildServices01/health-portal/internal/domain/prescription"
	"github.com/BruksfildServices01/health-portal/internal/httperr"
	"github.com/BruksfildServices01/health-portal/internal/models"
)

type QueryPrescriptions struct {
	repo domain.Repository
}

func NewQueryPrescriptions(repo domain.Repository) *QueryPrescriptions {
	return &QueryPrescriptions{repo: repo}
}

// List is role sensitive: doctors see what they wrote, optionally for one
// patient; patients see their own.
func (uc *QueryPrescriptions) List(
	ctx context.Context,
	actor identity.Actor,
	patientID string,
	status string,
) ([]models.Prescription, error) {

	if status != "" {
		if _, err := domain.ParseStatus(status); err != nil {
			return nil, err
		}
	}

	f := domain.ListFilter{Status: status}

	switch {
	case actor.IsDoctor():
		doctor, err := uc.repo.GetDoctorByEmail(ctx, actor.Email)
		if err != nil {
			if httperr.IsNotFound(err) {
				return nil, identity.ErrDoctorProfileMissing
			}
			return nil, err
		}
		f.DoctorID = doctor.ID
		f.PatientID = patientID
	case actor.IsPatient():
		f.PatientID = actor.UserID
	default:
		return nil, httperr.ErrForbidden("access_denied", "Only doctors and patients can list prescriptions.")
	}

	return uc.repo.List(ctx, f)
}

// Get returns a prescription to its author or its patient.
func (uc *QueryPrescriptions) Get(
	ctx context.Context,
	actor identity.Actor,
	id string,
) (*models.Prescription, error) {

	p, err := uc.repo.Get(ctx, id)
	if err != nil {
		if httperr.IsNotFound(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	if err := uc.canRead(ctx, actor, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Check reports whether the appointment already has a prescription.
func (uc *QueryPrescriptions) Check(
	ctx context.Context,
	actor identity.Actor,
	appointmentID string,
) (bool, *models.Prescription, error) {

	if appointmentID == "" {
		return false, nil, httperr.ErrValidation("missing_fields", "appointmentId is required.")
	}

	p, err := uc.repo.FindByAppointment(ctx, appointmentID)
	if err != nil {
		if httperr.IsNotFound(err) {
			return false, nil, nil
		}
		return false, nil, err
	}

	if err := uc.canRead(ctx, actor, p); err != nil {
		return false, nil, err
	}
	return true, p, nil
}

func (uc *QueryPrescriptions) canRead(
	ctx context.Context,
	actor identity.Actor,
	p *models.Prescription,
) error {

	if p.PatientID == actor.UserID {
		return nil
	}

	doctor, err := uc.repo.GetDoctorByEmail(ctx, actor.Email)
	if err != nil {
		if httperr.IsNotFound(err) {
			return httperr.ErrForbidden("access_denied", "You do not have access to this prescription.")
		}
		return err
	}
	if p.DoctorID != doctor.ID {
		return httperr.ErrForbidden("access_denied", "You do not have access to this prescription.")
	}
	return nil
}

package prescription

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/health-portal/internal/audit"
	"github.com/BruksfildServices01/health-portal/internal/domain/identity"
	domain "github.com/BruksfildServices01/health-portal/internal/domain/prescription"
	"github.com/BruksfildServices01/health-portal/internal/httperr"
	"github.com/BruksfildServices01/health-portal/internal/models"
	"github.com/BruksfildServices01/health-portal/internal/timezone"
)

// UpdateInput carries only the fields the caller supplied; nil means untouched.
type UpdateInput struct {
	Notes        *string
	FollowUpDate *string
	Medications  *[]models.Medication
	Status       *string
}

type UpdatePrescription struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdatePrescription(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdatePrescription {
	return &UpdatePrescription{
		repo:  repo,
		audit: audit,
	}
}

func (uc *UpdatePrescription) Execute(
	ctx context.Context,
	actor identity.Actor,
	id string,
	in UpdateInput,
) (*models.Prescription, error) {

	var status domain.Status
	if in.Status != nil {
		st, err := domain.ParseStatus(*in.Status)
		if err != nil {
			return nil, err
		}
		status = st
	}
	if in.Medications != nil {
		if err := domain.ValidateMedications(*in.Medications); err != nil {
			return nil, err
		}
	}
	if err := domain.ValidateFollowUp(in.FollowUpDate); err != nil {
		return nil, err
	}

	p, err := loadAuthored(ctx, uc.repo, actor, id)
	if err != nil {
		return nil, err
	}

	if in.Notes != nil {
		p.Notes = strings.TrimSpace(*in.Notes)
	}
	if in.FollowUpDate != nil {
		if *in.FollowUpDate == "" {
			p.FollowUpDate = nil
		} else {
			p.FollowUpDate = in.FollowUpDate
		}
	}
	if in.Medications != nil {
		p.Medications = *in.Medications
	}
	if status != "" {
		if status == domain.StatusCancelled {
			domain.Cancel(p, timezone.Now())
		} else {
			p.Status = string(status)
			p.CancelledAt = nil
		}
	}

	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  actor.UserID,
		Action:   "prescription_updated",
		Entity:   "prescription",
		EntityID: p.ID,
	})

	return p, nil
}

type CancelPrescription struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCancelPrescription(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CancelPrescription {
	return &CancelPrescription{
		repo:  repo,
		audit: audit,
	}
}

// Execute is the soft delete. The row is kept with status Cancelled.
func (uc *CancelPrescription) Execute(
	ctx context.Context,
	actor identity.Actor,
	id string,
) error {

	p, err := loadAuthored(ctx, uc.repo, actor, id)
	if err != nil {
		return err
	}

	domain.Cancel(p, timezone.Now())

	if err := uc.repo.Update(ctx, p); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  actor.UserID,
		Action:   "prescription_cancelled",
		Entity:   "prescription",
		EntityID: p.ID,
	})
	return nil
}

// loadAuthored fetches a prescription and checks the caller wrote it.
func loadAuthored(
	ctx context.Context,
	repo domain.Repository,
	actor identity.Actor,
	id string,
) (*models.Prescription, error) {

	if id == "" {
		return nil, httperr.ErrValidation("missing_fields", "Prescription id is required.")
	}

	doctor, err := repo.GetDoctorByEmail(ctx, actor.Email)
	if err != nil {
		if httperr.IsNotFound(err) {
			return nil, domain.ErrAccessDenied
		}
		return nil, err
	}

	p, err := repo.Get(ctx, id)
	if err != nil {
		if httperr.IsNotFound(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	if err := domain.AuthoredBy(p, doctor.ID); err != nil {
		return nil, err
	}
	return p, nil
}

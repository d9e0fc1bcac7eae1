package appointment

import (
	"context"

	"github.com/BruksfildServices01/health-portal/internal/audit"
	domain "github.com/BruksfildServices01/health-portal/internal/domain/appointment"
	"github.com/BruksfildServices01/health-portal/internal/domain/identity"
	"github.com/BruksfildServices01/health-portal/internal/dto"
	"github.com/BruksfildServices01/health-portal/internal/httperr"
	"github.com/BruksfildServices01/health-portal/internal/timezone"
)

type UpdateStatus struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateStatus(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateStatus {
	return &UpdateStatus{
		repo:  repo,
		audit: audit,
	}
}

// Execute sets any of the four states directly. Payment and prescription
// state are left untouched.
func (uc *UpdateStatus) Execute(
	ctx context.Context,
	actor identity.Actor,
	appointmentID string,
	status string,
) (*dto.AppointmentListDTO, error) {

	if appointmentID == "" || status == "" {
		return nil, httperr.ErrValidation("missing_fields", "appointmentId and status are required.")
	}

	next, err := domain.ParseStatus(status)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		if httperr.IsNotFound(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	if err := authorizeSchedule(ctx, uc.repo, actor, ap.DoctorID); err != nil {
		return nil, err
	}

	previous := ap.Status
	domain.SetStatus(ap, next, timezone.Now())

	if err := uc.repo.SaveStatus(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  actor.UserID,
		Action:   "appointment_status_changed",
		Entity:   "appointment",
		EntityID: ap.ID,
		Metadata: map[string]string{"from": previous, "to": ap.Status},
	})

	out := dto.FromAppointment(ap)
	return &out, nil
}

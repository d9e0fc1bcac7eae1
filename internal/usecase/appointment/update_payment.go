package appointment

import (
	"context"

	"github.com/BruksfildServices01/health-portal/internal/audit"
	domain "github.com/BruksfildServices01/health-portal/internal/domain/appointment"
	"github.com/BruksfildServices01/health-portal/internal/domain/identity"
	"github.com/BruksfildServices01/health-portal/internal/dto"
	"github.com/BruksfildServices01/health-portal/internal/httperr"
)

type UpdatePayment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdatePayment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdatePayment {
	return &UpdatePayment{
		repo:  repo,
		audit: audit,
	}
}

// Execute is independent of the appointment status. Patients may only touch
// their own appointments; the system actor (payment webhook) may touch any.
func (uc *UpdatePayment) Execute(
	ctx context.Context,
	actor identity.Actor,
	appointmentID string,
	paymentStatus string,
) (*dto.AppointmentListDTO, error) {

	if appointmentID == "" || paymentStatus == "" {
		return nil, httperr.ErrValidation("missing_fields", "appointmentId and paymentStatus are required.")
	}

	next, err := domain.ParsePaymentStatus(paymentStatus)
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

	if !actor.IsSystem() && ap.UserID != actor.UserID {
		return nil, httperr.ErrForbidden("access_denied", "You can only pay for your own appointments.")
	}

	previous := ap.PaymentStatus
	domain.SetPaymentStatus(ap, next)

	if err := uc.repo.SavePaymentStatus(ctx, ap.ID, ap.PaymentStatus); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  actor.UserID,
		Action:   "appointment_payment_changed",
		Entity:   "appointment",
		EntityID: ap.ID,
		Metadata: map[string]string{"from": previous, "to": ap.PaymentStatus},
	})

	out := dto.FromAppointment(ap)
	return &out, nil
}

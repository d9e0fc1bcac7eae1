package appointment

import (
	"context"
	"fmt"

	"github.com/BruksfildServices01/health-portal/internal/audit"
	domain "github.com/BruksfildServices01/health-portal/internal/domain/appointment"
	"github.com/BruksfildServices01/health-portal/internal/domain/identity"
	"github.com/BruksfildServices01/health-portal/internal/httperr"
)

// CheckoutRequest describes a single consultation charge.
type CheckoutRequest struct {
	Title             string
	Amount            float64
	Currency          string
	ExternalReference string
	PayerEmail        string
}

type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// PaymentResult is the gateway's view of a single payment.
type PaymentResult struct {
	Status            string
	ExternalReference string
}

type PaymentGateway interface {
	CreateCheckout(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error)
	GetPayment(ctx context.Context, paymentID string) (*PaymentResult, error)
}

var (
	ErrAlreadyPaid = httperr.ErrConflict("already_paid", "This appointment is already paid.")
	ErrNoFee       = httperr.ErrValidation("no_fee", "This doctor has no consultation fee configured.")
	ErrNoGateway   = httperr.ErrValidation("payments_disabled", "Online payments are not configured.")

	// ErrInvalidPaymentID is returned by gateways for ids they can never resolve.
	ErrInvalidPaymentID = httperr.ErrValidation("invalid_payment_id", "The payment id is not valid.")
)

type Checkout struct {
	repo     domain.Repository
	gateway  PaymentGateway
	currency string
	audit    *audit.Dispatcher
}

func NewCheckout(
	repo domain.Repository,
	gateway PaymentGateway,
	currency string,
	audit *audit.Dispatcher,
) *Checkout {
	return &Checkout{
		repo:     repo,
		gateway:  gateway,
		currency: currency,
		audit:    audit,
	}
}

func (uc *Checkout) Execute(
	ctx context.Context,
	actor identity.Actor,
	appointmentID string,
) (*CheckoutSession, error) {

	if uc.gateway == nil {
		return nil, ErrNoGateway
	}
	if appointmentID == "" {
		return nil, httperr.ErrValidation("missing_fields", "appointmentId is required.")
	}

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		if httperr.IsNotFound(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	if ap.UserID != actor.UserID {
		return nil, httperr.ErrForbidden("access_denied", "You can only pay for your own appointments.")
	}
	if ap.PaymentStatus == string(domain.PaymentPaid) {
		return nil, ErrAlreadyPaid
	}
	if ap.Doctor.Fee <= 0 {
		return nil, ErrNoFee
	}

	session, err := uc.gateway.CreateCheckout(ctx, CheckoutRequest{
		Title:             fmt.Sprintf("Consultation with %s on %s %s", ap.Doctor.Name, ap.Date, ap.Time),
		Amount:            ap.Doctor.Fee,
		Currency:          uc.currency,
		ExternalReference: ap.ID,
		PayerEmail:        actor.Email,
	})
	if err != nil {
		return nil, fmt.Errorf("create checkout: %w", err)
	}

	if err := uc.repo.SavePaymentReference(ctx, ap.ID, session.ID); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  actor.UserID,
		Action:   "appointment_checkout_created",
		Entity:   "appointment",
		EntityID: ap.ID,
		Metadata: map[string]string{"preference": session.ID},
	})

	return session, nil
}

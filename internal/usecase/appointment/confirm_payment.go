package appointment

import (
	"context"
	"fmt"

	domain "github.com/BruksfildServices01/health-portal/internal/domain/appointment"
	"github.com/BruksfildServices01/health-portal/internal/domain/identity"
)

// ConfirmPayment applies a gateway notification to the referenced appointment.
type ConfirmPayment struct {
	gateway PaymentGateway
	update  *UpdatePayment
}

func NewConfirmPayment(
	gateway PaymentGateway,
	update *UpdatePayment,
) *ConfirmPayment {
	return &ConfirmPayment{
		gateway: gateway,
		update:  update,
	}
}

// gatewayStatus maps gateway payment states to ours. States missing from the
// map (pending, in_process, ...) leave the appointment untouched.
var gatewayStatus = map[string]domain.PaymentStatus{
	"approved":     domain.PaymentPaid,
	"rejected":     domain.PaymentFailed,
	"cancelled":    domain.PaymentFailed,
	"refunded":     domain.PaymentFailed,
	"charged_back": domain.PaymentFailed,
}

// Execute returns whether the appointment was changed.
func (uc *ConfirmPayment) Execute(ctx context.Context, paymentID string) (bool, error) {
	if uc.gateway == nil || paymentID == "" {
		return false, nil
	}

	res, err := uc.gateway.GetPayment(ctx, paymentID)
	if err != nil {
		return false, fmt.Errorf("fetch payment %s: %w", paymentID, err)
	}

	next, ok := gatewayStatus[res.Status]
	if !ok || res.ExternalReference == "" {
		return false, nil
	}

	if _, err := uc.update.Execute(ctx, identity.System(), res.ExternalReference, string(next)); err != nil {
		return false, err
	}
	return true, nil
}

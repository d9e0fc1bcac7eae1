package payment

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"

	"github.com/BruksfildServices01/health-portal/internal/usecase/appointment"
)

// MercadoPago creates checkout preferences and reads back payment results.
type MercadoPago struct {
	preferences     preference.Client
	payments        payment.Client
	notificationURL string
}

var _ appointment.PaymentGateway = (*MercadoPago)(nil)

func NewMercadoPago(accessToken, notificationURL string) (*MercadoPago, error) {
	cfg, err := config.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}
	return &MercadoPago{
		preferences:     preference.NewClient(cfg),
		payments:        payment.NewClient(cfg),
		notificationURL: notificationURL,
	}, nil
}

func (m *MercadoPago) CreateCheckout(ctx context.Context, in appointment.CheckoutRequest) (*appointment.CheckoutSession, error) {
	req := preference.Request{
		Items: []preference.ItemRequest{{
			ID:         in.ExternalReference,
			Title:      in.Title,
			Quantity:   1,
			UnitPrice:  in.Amount,
			CurrencyID: in.Currency,
		}},
		ExternalReference: in.ExternalReference,
		NotificationURL:   m.notificationURL,
	}
	if in.PayerEmail != "" {
		req.Payer = &preference.PayerRequest{Email: in.PayerEmail}
	}

	res, err := m.preferences.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create preference: %w", err)
	}
	return &appointment.CheckoutSession{ID: res.ID, URL: res.InitPoint}, nil
}

func (m *MercadoPago) GetPayment(ctx context.Context, paymentID string) (*appointment.PaymentResult, error) {
	id, err := strconv.Atoi(paymentID)
	if err != nil {
		return nil, appointment.ErrInvalidPaymentID
	}

	res, err := m.payments.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get payment %d: %w", id, err)
	}
	return &appointment.PaymentResult{
		Status:            res.Status,
		ExternalReference: res.ExternalReference,
	}, nil
}

package appointment

import (
	"testing"
	"time"

	"github.com/BruksfildServices01/health-portal/internal/httperr"
	"github.com/BruksfildServices01/health-portal/internal/models"
)

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"booked", "confirmed", "cancelled", "completed"} {
		if _, err := ParseStatus(s); err != nil {
			t.Errorf("expected %s to parse, got %v", s, err)
		}
	}
	if _, err := ParseStatus("no-show"); !httperr.IsBusiness(err, "invalid_status") {
		t.Errorf("expected invalid_status, got %v", err)
	}
}

func TestParsePaymentStatus(t *testing.T) {
	if ps, err := ParsePaymentStatus("paid"); err != nil || ps != PaymentPaid {
		t.Errorf("expected paid, got %s (%v)", ps, err)
	}
	if _, err := ParsePaymentStatus("refunded"); !httperr.IsBusiness(err, "invalid_payment_status") {
		t.Errorf("expected invalid_payment_status, got %v", err)
	}
}

func TestParseType_DefaultsToInPerson(t *testing.T) {
	if tp, err := ParseType(""); err != nil || tp != TypeInPerson {
		t.Errorf("expected in-person, got %s (%v)", tp, err)
	}
	if _, err := ParseType("house-call"); err == nil {
		t.Error("expected error for unknown type")
	}
}

func TestOccupiesSlot(t *testing.T) {
	if StatusCancelled.OccupiesSlot() {
		t.Error("expected cancelled to free the slot")
	}
	for _, s := range []Status{StatusBooked, StatusConfirmed, StatusCompleted} {
		if !s.OccupiesSlot() {
			t.Errorf("expected %s to hold the slot", s)
		}
	}
}

func TestSetStatus_StampsTerminalTimes(t *testing.T) {
	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	ap := &models.Appointment{Status: "booked"}

	SetStatus(ap, StatusConfirmed, now)
	if ap.CancelledAt != nil || ap.CompletedAt != nil {
		t.Error("expected no timestamps for confirmed")
	}

	SetStatus(ap, StatusCompleted, now)
	if ap.CompletedAt == nil || !ap.CompletedAt.Equal(now) {
		t.Errorf("expected CompletedAt=%v, got %v", now, ap.CompletedAt)
	}

	SetStatus(ap, StatusCancelled, now)
	if ap.Status != "cancelled" || ap.CancelledAt == nil {
		t.Errorf("expected cancelled with CancelledAt, got %s %v", ap.Status, ap.CancelledAt)
	}
}

func TestValidateSlot(t *testing.T) {
	if err := ValidateSlot("2024-06-01", "10:00"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidateSlot("06/01/2024", "10:00"); !httperr.IsBusiness(err, "invalid_date") {
		t.Errorf("expected invalid_date, got %v", err)
	}
	if err := ValidateSlot("2024-06-01", "ten"); !httperr.IsBusiness(err, "invalid_time") {
		t.Errorf("expected invalid_time, got %v", err)
	}
}

package appointment

import (
	"time"
	"unicode/utf8"

	"github.com/BruksfildServices01/health-portal/internal/httperr"
	"github.com/BruksfildServices01/health-portal/internal/models"
	"github.com/BruksfildServices01/health-portal/internal/timezone"
)

var (
	ErrSlotTaken = httperr.ErrConflict(
		"slot_taken",
		"This time slot is already booked for the selected doctor.",
	)
	ErrNotFound = httperr.ErrNotFound("appointment_not_found", "Appointment not found.")
)

// ===============================
// Domain Actions
// ===============================

func ValidateSlot(date, slotTime string) error {
	if !timezone.IsDate(date) {
		return httperr.ErrValidation("invalid_date", "Date must be in YYYY-MM-DD format.")
	}
	if !timezone.IsSlotTime(slotTime) {
		return httperr.ErrValidation("invalid_time", "Time must be in HH:MM format.")
	}
	return nil
}

const MaxNotesLength = 500

func ValidateNotes(notes string) error {
	if utf8.RuneCountInString(notes) > MaxNotesLength {
		return httperr.ErrValidation("notes_too_long", "Notes must be at most 500 characters.")
	}
	return nil
}

// SetStatus writes the new status and stamps the terminal timestamps.
func SetStatus(ap *models.Appointment, next Status, now time.Time) {
	ap.Status = string(next)

	switch next {
	case StatusCancelled:
		ap.CancelledAt = &now
	case StatusCompleted:
		ap.CompletedAt = &now
	}
}

func SetPaymentStatus(ap *models.Appointment, next PaymentStatus) {
	ap.PaymentStatus = string(next)
}

package appointment

import "github.com/BruksfildServices01/health-portal/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusBooked    Status = "booked"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// ParseStatus accepts any of the four states. There is no transition graph:
// every state is directly settable.
func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusBooked, StatusConfirmed, StatusCancelled, StatusCompleted:
		return st, nil
	}
	return "", httperr.ErrValidation("invalid_status", "Status must be one of booked, confirmed, cancelled, completed.")
}

func InitialStatus() Status {
	return StatusBooked
}

// OccupiesSlot reports whether an appointment in this state holds its slot.
func (s Status) OccupiesSlot() bool {
	return s != StatusCancelled
}

// ===============================
// Payment Status
// ===============================

type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "unpaid"
	PaymentPaid   PaymentStatus = "paid"
	PaymentFailed PaymentStatus = "failed"
)

func ParsePaymentStatus(s string) (PaymentStatus, error) {
	switch ps := PaymentStatus(s); ps {
	case PaymentUnpaid, PaymentPaid, PaymentFailed:
		return ps, nil
	}
	return "", httperr.ErrValidation("invalid_payment_status", "Payment status must be one of unpaid, paid, failed.")
}

func InitialPaymentStatus() PaymentStatus {
	return PaymentUnpaid
}

// ===============================
// Consultation Type
// ===============================

type Type string

const (
	TypeInPerson     Type = "in-person"
	TypeTelemedicine Type = "telemedicine"
)

func ParseType(s string) (Type, error) {
	switch t := Type(s); t {
	case TypeInPerson, TypeTelemedicine:
		return t, nil
	case "":
		return TypeInPerson, nil
	}
	return "", httperr.ErrValidation("invalid_type", "Type must be in-person or telemedicine.")
}

package prescription

import (
	"strings"
	"time"

	"github.com/BruksfildServices01/health-portal/internal/httperr"
	"github.com/BruksfildServices01/health-portal/internal/models"
	"github.com/BruksfildServices01/health-portal/internal/timezone"
)

var (
	ErrDuplicate = httperr.ErrConflict(
		"duplicate_prescription",
		"A prescription already exists for this appointment.",
	)
	ErrNotFound        = httperr.ErrNotFound("prescription_not_found", "Prescription not found.")
	ErrPatientNotFound = httperr.ErrNotFound("patient_not_found", "Patient not found.")
	ErrAccessDenied    = httperr.ErrForbidden("access_denied", "You can only modify prescriptions you wrote.")
)

// ValidateMedications requires at least one entry and name, dosage,
// frequency and duration on every entry. Values are trimmed in place.
func ValidateMedications(meds []models.Medication) error {
	if len(meds) == 0 {
		return httperr.ErrValidation("medications_required", "At least one medication is required.")
	}

	for i := range meds {
		m := &meds[i]
		m.Name = strings.TrimSpace(m.Name)
		m.Dosage = strings.TrimSpace(m.Dosage)
		m.Frequency = strings.TrimSpace(m.Frequency)
		m.Duration = strings.TrimSpace(m.Duration)
		m.Notes = strings.TrimSpace(m.Notes)

		if m.Name == "" || m.Dosage == "" || m.Frequency == "" || m.Duration == "" {
			return httperr.ErrValidation(
				"missing_fields",
				"Every medication needs a name, dosage, frequency and duration.",
			)
		}
	}
	return nil
}

func ValidateFollowUp(date *string) error {
	if date == nil || *date == "" {
		return nil
	}
	if !timezone.IsDate(*date) {
		return httperr.ErrValidation("invalid_follow_up_date", "Follow-up date must be in YYYY-MM-DD format.")
	}
	return nil
}

// Cancel is the soft delete: the row stays, only the status changes.
func Cancel(p *models.Prescription, now time.Time) {
	p.Status = string(StatusCancelled)
	p.CancelledAt = &now
}

func AuthoredBy(p *models.Prescription, doctorID string) error {
	if p.DoctorID != doctorID {
		return ErrAccessDenied
	}
	return nil
}

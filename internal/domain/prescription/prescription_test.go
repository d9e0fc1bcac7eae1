package prescription

import (
	"testing"
	"time"

	"github.com/BruksfildServices01/health-portal/internal/httperr"
	"github.com/BruksfildServices01/health-portal/internal/models"
)

func paracetamol() models.Medication {
	return models.Medication{Name: "Paracetamol", Dosage: "500mg", Frequency: "twice daily", Duration: "5 days"}
}

func TestValidateMedications(t *testing.T) {
	meds := []models.Medication{paracetamol()}
	if err := ValidateMedications(meds); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := ValidateMedications(nil); !httperr.IsBusiness(err, "medications_required") {
		t.Errorf("expected medications_required, got %v", err)
	}

	missing := []func(*models.Medication){
		func(m *models.Medication) { m.Name = "" },
		func(m *models.Medication) { m.Dosage = "  " },
		func(m *models.Medication) { m.Frequency = "" },
		func(m *models.Medication) { m.Duration = "" },
	}
	for i, mutate := range missing {
		m := paracetamol()
		mutate(&m)
		err := ValidateMedications([]models.Medication{paracetamol(), m})
		if !httperr.IsBusiness(err, "missing_fields") {
			t.Errorf("case %d: expected missing_fields, got %v", i, err)
		}
	}
}

func TestValidateMedications_Trims(t *testing.T) {
	meds := []models.Medication{{Name: " Ibuprofen ", Dosage: "200mg ", Frequency: " daily", Duration: "3 days"}}
	if err := ValidateMedications(meds); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if meds[0].Name != "Ibuprofen" || meds[0].Dosage != "200mg" {
		t.Errorf("expected trimmed values, got %+v", meds[0])
	}
}

func TestCancel_IsSoft(t *testing.T) {
	p := &models.Prescription{ID: "p1", Status: "Active"}
	now := time.Now()
	Cancel(p, now)
	if p.Status != "Cancelled" {
		t.Errorf("expected Cancelled, got %s", p.Status)
	}
	if p.CancelledAt == nil {
		t.Error("expected CancelledAt to be set")
	}
	if p.ID != "p1" {
		t.Error("expected record identity to be kept")
	}
}

func TestAuthoredBy(t *testing.T) {
	p := &models.Prescription{DoctorID: "d1"}
	if err := AuthoredBy(p, "d1"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := AuthoredBy(p, "d2"); !httperr.IsBusiness(err, "access_denied") {
		t.Errorf("expected access_denied, got %v", err)
	}
}

func TestValidateFollowUp(t *testing.T) {
	ok := "2024-07-01"
	bad := "next week"
	empty := ""
	if err := ValidateFollowUp(&ok); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateFollowUp(&empty); err != nil {
		t.Errorf("unexpected error for empty: %v", err)
	}
	if err := ValidateFollowUp(&bad); err == nil {
		t.Error("expected error for free-text date")
	}
}

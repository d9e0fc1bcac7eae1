package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/BruksfildServices01/health-portal/internal/models"
)

func TestRender_ProducesPDF(t *testing.T) {
	follow := "2024-07-01"
	p := &models.Prescription{
		ID:        "p1",
		Status:    "Active",
		Notes:     "Take with food. Avoid alcohol.",
		CreatedAt: time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
		Patient:   models.User{Name: "José Silva"},
		Doctor:    models.Doctor{Name: "Ana", Specialization: "Cardiology"},
		Medications: []models.Medication{
			{Name: "Amoxicillin", Dosage: "500mg", Frequency: "8/8h", Duration: "7 days", Notes: "finish the box"},
			{Name: "Ibuprofen", Dosage: "400mg", Frequency: "if needed", Duration: "3 days"},
		},
		FollowUpDate: &follow,
	}

	out, err := NewRenderer("").Render(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Fatalf("expected PDF header, got %q", out[:min(8, len(out))])
	}
	if len(out) < 500 {
		t.Errorf("expected a non-trivial document, got %d bytes", len(out))
	}
}

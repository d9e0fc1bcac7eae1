package profile

import (
	"math"
	"testing"

	"github.com/BruksfildServices01/health-portal/internal/httperr"
)

func TestDistanceKm(t *testing.T) {
	if d := DistanceKm(-8.05, -34.9, -8.05, -34.9); d != 0 {
		t.Errorf("expected 0 for same point, got %f", d)
	}

	// Recife to Olinda is roughly 5 km.
	d := DistanceKm(-8.0476, -34.8770, -8.0089, -34.8553)
	if d < 4 || d > 6 {
		t.Errorf("expected about 5 km, got %f", d)
	}

	// One degree of latitude is about 111 km.
	if d := DistanceKm(0, 0, 1, 0); math.Abs(d-111.19) > 0.5 {
		t.Errorf("expected ~111.19 km, got %f", d)
	}
}

func TestCheckImageQuota(t *testing.T) {
	if err := CheckImageQuota(2, 2); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := CheckImageQuota(3, 2); !httperr.IsBusiness(err, "too_many_images") {
		t.Errorf("expected too_many_images, got %v", err)
	}
	if err := CheckImageQuota(0, 0); !httperr.IsBusiness(err, "no_images") {
		t.Errorf("expected no_images, got %v", err)
	}
}

func TestParseVerificationStatus(t *testing.T) {
	if _, err := ParseVerificationStatus("verified"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if _, err := ParseVerificationStatus("approved"); err == nil {
		t.Error("expected error for unknown status")
	}
}

package profile

import (
	"context"
	"math"

	"github.com/BruksfildServices01/health-portal/internal/httperr"
	"github.com/BruksfildServices01/health-portal/internal/models"
)

var (
	ErrDoctorNotFound   = httperr.ErrNotFound("doctor_not_found", "Doctor not found.")
	ErrHospitalNotFound = httperr.ErrNotFound("hospital_not_found", "Hospital not found.")
	ErrUserNotFound     = httperr.ErrNotFound("user_not_found", "User not found.")
	ErrTooManyImages    = httperr.ErrValidation("too_many_images", "A hospital can have at most 4 images.")
	ErrNotOnRoster      = httperr.ErrForbidden("not_on_roster", "The doctor is not linked to your hospital.")
)

func ParseVerificationStatus(s string) (string, error) {
	switch s {
	case models.VerificationPending, models.VerificationVerified, models.VerificationRejected:
		return s, nil
	}
	return "", httperr.ErrValidation("invalid_verification_status", "Status must be pending, verified or rejected.")
}

// CheckImageQuota rejects an upload that would push the hospital past its image limit.
func CheckImageQuota(current, adding int) error {
	if adding <= 0 {
		return httperr.ErrValidation("no_images", "Upload at least one image.")
	}
	if current+adding > models.MaxHospitalImages {
		return ErrTooManyImages
	}
	return nil
}

const earthRadiusKm = 6371.0

// DistanceKm is the great-circle distance between two points.
func DistanceKm(lat1, lng1, lat2, lng2 float64) float64 {
	rad := func(d float64) float64 { return d * math.Pi / 180 }

	dLat := rad(lat2 - lat1)
	dLng := rad(lng2 - lng1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rad(lat1))*math.Cos(rad(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(a))
}

type DoctorFilter struct {
	Specialization string
	HospitalID     string
	VerifiedOnly   bool
}

type Repository interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	MarkOnboarded(ctx context.Context, userID string) error

	GetDoctor(ctx context.Context, id string) (*models.Doctor, error)
	GetDoctorByEmail(ctx context.Context, email string) (*models.Doctor, error)
	SaveDoctor(ctx context.Context, d *models.Doctor) error
	ListDoctors(ctx context.Context, f DoctorFilter) ([]models.Doctor, error)

	GetHospital(ctx context.Context, id string) (*models.Hospital, error)
	GetHospitalByEmail(ctx context.Context, email string) (*models.Hospital, error)
	SaveHospital(ctx context.Context, h *models.Hospital) error
	// AppendHospitalImages returns ErrTooManyImages when keys do not fit.
	AppendHospitalImages(ctx context.Context, id string, keys []string) error
	SearchHospitals(ctx context.Context, query, city string) ([]models.Hospital, error)
}

package identity

import (
	"github.com/BruksfildServices01/health-portal/internal/httperr"
	"github.com/BruksfildServices01/health-portal/internal/models"
)

// Actor is the authenticated caller as resolved from the session token.
type Actor struct {
	UserID string
	Email  string
	Role   string
}

const roleSystem = "system"

// System is the actor used for server-initiated changes such as payment webhooks.
func System() Actor {
	return Actor{Role: roleSystem}
}

func (a Actor) IsSystem() bool   { return a.Role == roleSystem }
func (a Actor) IsPatient() bool  { return a.Role == models.RoleUser }
func (a Actor) IsDoctor() bool   { return a.Role == models.RoleDoctor }
func (a Actor) IsHospital() bool { return a.Role == models.RoleHospital }

func ValidRole(role string) bool {
	switch role {
	case models.RoleUser, models.RoleDoctor, models.RoleHospital:
		return true
	}
	return false
}

var ErrDoctorProfileMissing = httperr.ErrForbidden("doctor_profile_required", "Complete your doctor profile first.")
var ErrHospitalProfileMissing = httperr.ErrForbidden("hospital_profile_required", "Complete your hospital profile first.")

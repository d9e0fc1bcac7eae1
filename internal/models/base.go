package models

import "github.com/google/uuid"

func assignID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}

const (
	RoleUser     = "user"
	RoleDoctor   = "doctor"
	RoleHospital = "hospital"
)

const (
	OnboardingPending   = "pending"
	OnboardingCompleted = "completed"
)

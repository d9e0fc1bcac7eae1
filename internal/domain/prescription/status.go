package prescription

import "github.com/BruksfildServices01/health-portal/internal/httperr"

type Status string

const (
	StatusActive    Status = "Active"
	StatusCompleted Status = "Completed"
	StatusCancelled Status = "Cancelled"
)

func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusActive, StatusCompleted, StatusCancelled:
		return st, nil
	}
	return "", httperr.ErrValidation("invalid_status", "Status must be one of Active, Completed, Cancelled.")
}

func InitialStatus() Status {
	return StatusActive
}

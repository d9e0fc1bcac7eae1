package rating

import (
	"context"

	"github.com/BruksfildServices01/health-portal/internal/models"
)

type Repository interface {
	// Transaction runs fn against a repository bound to one transaction.
	Transaction(ctx context.Context, fn func(tx Repository) error) error

	// LockTarget locks the doctor or hospital row for the rest of the
	// transaction; gorm.ErrRecordNotFound when it does not exist.
	LockTarget(ctx context.Context, t TargetType, id string) error
	TargetExists(ctx context.Context, t TargetType, id string) (bool, error)

	// Upsert inserts or overwrites the rating keyed by (user, type, target).
	Upsert(ctx context.Context, r *models.Rating) error
	ListForTarget(ctx context.Context, t TargetType, id string) ([]models.Rating, error)
	FindByUser(ctx context.Context, userID string, t TargetType, id string) (*models.Rating, error)
	UpdateTargetAggregate(ctx context.Context, t TargetType, id string, s Summary) error
}

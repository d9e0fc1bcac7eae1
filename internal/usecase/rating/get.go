package rating

import (
	"context"

	domain "github.com/BruksfildServices01/health-portal/internal/domain/rating"
	"github.com/BruksfildServices01/health-portal/internal/httperr"
	"github.com/BruksfildServices01/health-portal/internal/models"
)

type GetResult struct {
	Ratings    []models.Rating
	UserRating *models.Rating
	domain.Summary
}

type GetRatings struct {
	repo domain.Repository
}

func NewGetRatings(repo domain.Repository) *GetRatings {
	return &GetRatings{repo: repo}
}

// Execute returns every rating of the target. The summary is computed from
// those rows rather than read from the denormalized fields.
func (uc *GetRatings) Execute(
	ctx context.Context,
	targetTypeRaw, targetID, userID string,
) (*GetResult, error) {

	targetType, err := domain.ParseTargetType(targetTypeRaw)
	if err != nil {
		return nil, err
	}
	if targetID == "" {
		return nil, httperr.ErrValidation("missing_fields", "targetId is required.")
	}

	ok, err := uc.repo.TargetExists(ctx, targetType, targetID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrTargetNotFound
	}

	all, err := uc.repo.ListForTarget(ctx, targetType, targetID)
	if err != nil {
		return nil, err
	}

	res := &GetResult{
		Ratings: all,
		Summary: domain.Summarize(values(all)),
	}

	if userID != "" {
		mine, err := uc.repo.FindByUser(ctx, userID, targetType, targetID)
		switch {
		case err == nil:
			res.UserRating = mine
		case !httperr.IsNotFound(err):
			return nil, err
		}
	}

	return res, nil
}

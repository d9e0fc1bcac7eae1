package rating

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/health-portal/internal/audit"
	"github.com/BruksfildServices01/health-portal/internal/domain/identity"
	domain "github.com/BruksfildServices01/health-portal/internal/domain/rating"
	"github.com/BruksfildServices01/health-portal/internal/httperr"
	"github.com/BruksfildServices01/health-portal/internal/models"
)

type SubmitInput struct {
	UserID     string
	TargetType string
	TargetID   string
	Rating     int
	Review     string
}

type SubmitResult struct {
	Rating *models.Rating
	domain.Summary
}

type SubmitRating struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewSubmitRating(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *SubmitRating {
	return &SubmitRating{
		repo:  repo,
		audit: audit,
	}
}

// Execute upserts the caller's rating and rewrites the target's aggregate.
// The target row stays locked from the upsert to the aggregate write, so
// concurrent raters of one target are applied one after another.
func (uc *SubmitRating) Execute(
	ctx context.Context,
	actor identity.Actor,
	in SubmitInput,
) (*SubmitResult, error) {

	if in.UserID == "" {
		in.UserID = actor.UserID
	}
	if in.UserID != actor.UserID {
		return nil, httperr.ErrForbidden("access_denied", "You can only submit your own rating.")
	}

	targetType, err := domain.ParseTargetType(in.TargetType)
	if err != nil {
		return nil, err
	}
	if in.TargetID == "" {
		return nil, httperr.ErrValidation("missing_fields", "targetId is required.")
	}
	in.Review = strings.TrimSpace(in.Review)
	if err := domain.Validate(in.Rating, in.Review); err != nil {
		return nil, err
	}

	r := &models.Rating{
		UserID:     in.UserID,
		TargetType: string(targetType),
		TargetID:   in.TargetID,
		Rating:     in.Rating,
		Review:     in.Review,
	}

	var summary domain.Summary

	err = uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		if err := tx.LockTarget(ctx, targetType, in.TargetID); err != nil {
			if httperr.IsNotFound(err) {
				return domain.ErrTargetNotFound
			}
			return err
		}

		if err := tx.Upsert(ctx, r); err != nil {
			return err
		}

		all, err := tx.ListForTarget(ctx, targetType, in.TargetID)
		if err != nil {
			return err
		}

		summary = domain.Summarize(values(all))
		return tx.UpdateTargetAggregate(ctx, targetType, in.TargetID, summary)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  actor.UserID,
		Action:   "rating_submitted",
		Entity:   string(targetType),
		EntityID: in.TargetID,
		Metadata: map[string]int{"rating": in.Rating},
	})

	return &SubmitResult{Rating: r, Summary: summary}, nil
}

func values(rs []models.Rating) []int {
	out := make([]int, len(rs))
	for i, r := range rs {
		out[i] = r.Rating
	}
	return out
}

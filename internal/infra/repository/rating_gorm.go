package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/health-portal/internal/domain/rating"
	"github.com/BruksfildServices01/health-portal/internal/models"
)

type RatingGormRepository struct {
	db *gorm.DB
}

func NewRatingGormRepository(db *gorm.DB) *RatingGormRepository {
	return &RatingGormRepository{db: db}
}

func (r *RatingGormRepository) Transaction(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&RatingGormRepository{db: tx})
	})
}

func targetModel(t domain.TargetType) (any, error) {
	switch t {
	case domain.TargetDoctor:
		return &models.Doctor{}, nil
	case domain.TargetHospital:
		return &models.Hospital{}, nil
	}
	return nil, fmt.Errorf("unknown rating target %q", t)
}

// --------------------------------------------------
// Target
// --------------------------------------------------

func (r *RatingGormRepository) LockTarget(
	ctx context.Context,
	t domain.TargetType,
	id string,
) error {

	if err := checkID(id); err != nil {
		return err
	}
	model, err := targetModel(t)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		First(model, "id = ?", id).Error
}

func (r *RatingGormRepository) TargetExists(
	ctx context.Context,
	t domain.TargetType,
	id string,
) (bool, error) {

	if checkID(id) != nil {
		return false, nil
	}
	model, err := targetModel(t)
	if err != nil {
		return false, err
	}

	var count int64
	if err := r.db.WithContext(ctx).
		Model(model).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *RatingGormRepository) UpdateTargetAggregate(
	ctx context.Context,
	t domain.TargetType,
	id string,
	s domain.Summary,
) error {

	model, err := targetModel(t)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).
		Model(model).
		Where("id = ?", id).
		Updates(map[string]any{
			"average_rating": s.Average,
			"total_ratings":  s.Total,
		}).Error
}

// --------------------------------------------------
// Rating
// --------------------------------------------------

// Upsert relies on ux_ratings_identity. The row is re-read afterwards so the
// caller sees the stored id and timestamps.
func (r *RatingGormRepository) Upsert(ctx context.Context, rt *models.Rating) error {
	db := r.db.WithContext(ctx)

	if err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "user_id"},
			{Name: "target_type"},
			{Name: "target_id"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"rating", "review", "updated_at"}),
	}).Create(rt).Error; err != nil {
		return err
	}

	// on conflict the generated id was discarded
	rt.ID = ""
	return db.
		Where("user_id = ? AND target_type = ? AND target_id = ?", rt.UserID, rt.TargetType, rt.TargetID).
		First(rt).Error
}

func (r *RatingGormRepository) ListForTarget(
	ctx context.Context,
	t domain.TargetType,
	id string,
) ([]models.Rating, error) {

	out := []models.Rating{}
	if err := r.db.WithContext(ctx).
		Where("target_type = ? AND target_id = ?", t, id).
		Order("updated_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *RatingGormRepository) FindByUser(
	ctx context.Context,
	userID string,
	t domain.TargetType,
	id string,
) (*models.Rating, error) {

	if err := checkID(userID); err != nil {
		return nil, err
	}

	var rt models.Rating
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND target_type = ? AND target_id = ?", userID, t, id).
		First(&rt).Error; err != nil {
		return nil, err
	}
	return &rt, nil
}

var _ domain.Repository = (*RatingGormRepository)(nil)

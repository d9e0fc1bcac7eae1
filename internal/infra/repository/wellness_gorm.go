package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/health-portal/internal/domain/wellness"
	"github.com/BruksfildServices01/health-portal/internal/models"
)

type WellnessGormRepository struct {
	db *gorm.DB
}

func NewWellnessGormRepository(db *gorm.DB) *WellnessGormRepository {
	return &WellnessGormRepository{db: db}
}

func (r *WellnessGormRepository) CreateJournal(ctx context.Context, j *models.Journal) error {
	return r.db.WithContext(ctx).Create(j).Error
}

func (r *WellnessGormRepository) ListJournals(ctx context.Context, userID string) ([]models.Journal, error) {
	out := []models.Journal{}
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *WellnessGormRepository) GetJournal(ctx context.Context, id string) (*models.Journal, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	var j models.Journal
	if err := r.db.WithContext(ctx).First(&j, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &j, nil
}

func (r *WellnessGormRepository) DeleteJournal(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.Journal{}, "id = ?", id).Error
}

func (r *WellnessGormRepository) CreateMood(ctx context.Context, m *models.Mood) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *WellnessGormRepository) ListMoodsSince(
	ctx context.Context,
	userID, fromDate string,
) ([]models.Mood, error) {

	out := []models.Mood{}
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND date >= ?", userID, fromDate).
		Order("date ASC, created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

var _ domain.Repository = (*WellnessGormRepository)(nil)

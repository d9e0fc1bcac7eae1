package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/health-portal/internal/domain/file"
	"github.com/BruksfildServices01/health-portal/internal/models"
)

type FileGormRepository struct {
	db *gorm.DB
}

func NewFileGormRepository(db *gorm.DB) *FileGormRepository {
	return &FileGormRepository{db: db}
}

func (r *FileGormRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *FileGormRepository) Create(ctx context.Context, f *models.File) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *FileGormRepository) Get(ctx context.Context, id string) (*models.File, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	var f models.File
	if err := r.db.WithContext(ctx).First(&f, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *FileGormRepository) GetByKey(ctx context.Context, key string) (*models.File, error) {
	var f models.File
	if err := r.db.WithContext(ctx).Where(`"key" = ?`, key).First(&f).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

// AddShare appends userID to shared_with in a single statement.
func (r *FileGormRepository) AddShare(ctx context.Context, fileID, userID string) error {
	res := r.db.WithContext(ctx).
		Model(&models.File{}).
		Where("id = ? AND NOT COALESCE(shared_with, '[]'::jsonb) @> jsonb_build_array(?::text)", fileID, userID).
		Update("shared_with", gorm.Expr("COALESCE(shared_with, '[]'::jsonb) || jsonb_build_array(?::text)", userID))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrAlreadyShared
	}
	return nil
}

// ListAccessible returns files the user owns or that were shared with them.
func (r *FileGormRepository) ListAccessible(
	ctx context.Context,
	userID string,
	category string,
) ([]models.File, error) {

	q := r.db.WithContext(ctx).
		Where("owner_id = ? OR shared_with @> jsonb_build_array(?::text)", userID, userID)
	if category != "" {
		q = q.Where("category = ?", category)
	}

	out := []models.File{}
	if err := q.Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

var _ domain.Repository = (*FileGormRepository)(nil)

package repository

import (
	"context"
	"encoding/json"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/health-portal/internal/domain/profile"
	"github.com/BruksfildServices01/health-portal/internal/models"
)

type ProfileGormRepository struct {
	db *gorm.DB
}

func NewProfileGormRepository(db *gorm.DB) *ProfileGormRepository {
	return &ProfileGormRepository{db: db}
}

// --------------------------------------------------
// User
// --------------------------------------------------

func (r *ProfileGormRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *ProfileGormRepository) MarkOnboarded(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Update("onboarding_status", models.OnboardingCompleted).Error
}

// --------------------------------------------------
// Doctor
// --------------------------------------------------

func (r *ProfileGormRepository) GetDoctor(ctx context.Context, id string) (*models.Doctor, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	var d models.Doctor
	if err := r.db.WithContext(ctx).Preload("Hospital").First(&d, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *ProfileGormRepository) GetDoctorByEmail(ctx context.Context, email string) (*models.Doctor, error) {
	var d models.Doctor
	if err := r.db.WithContext(ctx).Preload("Hospital").Where("email = ?", email).First(&d).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

// ratingColumns belong to the rating recompute and are never written from a
// profile read.
var ratingColumns = []string{"average_rating", "total_ratings"}

func (r *ProfileGormRepository) SaveDoctor(ctx context.Context, d *models.Doctor) error {
	if d.ID == "" {
		return r.db.WithContext(ctx).Omit(clause.Associations).Create(d).Error
	}
	omit := append([]string{clause.Associations}, ratingColumns...)
	return r.db.WithContext(ctx).Omit(omit...).Save(d).Error
}

func (r *ProfileGormRepository) ListDoctors(
	ctx context.Context,
	f domain.DoctorFilter,
) ([]models.Doctor, error) {

	q := r.db.WithContext(ctx).Preload("Hospital")
	if f.Specialization != "" {
		q = q.Where("specialization ILIKE ?", "%"+f.Specialization+"%")
	}
	if f.HospitalID != "" {
		if checkID(f.HospitalID) != nil {
			return []models.Doctor{}, nil
		}
		q = q.Where("hospital_id = ?", f.HospitalID)
	}
	if f.VerifiedOnly {
		q = q.Where("verification_status = ?", models.VerificationVerified)
	}

	out := []models.Doctor{}
	if err := q.Order("average_rating DESC, name ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// --------------------------------------------------
// Hospital
// --------------------------------------------------

func (r *ProfileGormRepository) GetHospital(ctx context.Context, id string) (*models.Hospital, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	var h models.Hospital
	if err := r.db.WithContext(ctx).First(&h, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *ProfileGormRepository) GetHospitalByEmail(ctx context.Context, email string) (*models.Hospital, error) {
	var h models.Hospital
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&h).Error; err != nil {
		return nil, err
	}
	return &h, nil
}

// SaveHospital writes the profile fields. Images go through
// AppendHospitalImages only.
func (r *ProfileGormRepository) SaveHospital(ctx context.Context, h *models.Hospital) error {
	if h.ID == "" {
		return r.db.WithContext(ctx).Create(h).Error
	}
	omit := append([]string{"images"}, ratingColumns...)
	return r.db.WithContext(ctx).Omit(omit...).Save(h).Error
}

// AppendHospitalImages adds keys in one statement that also enforces the
// image limit, so concurrent uploads cannot overshoot it.
func (r *ProfileGormRepository) AppendHospitalImages(ctx context.Context, id string, keys []string) error {
	raw, err := json.Marshal(keys)
	if err != nil {
		return err
	}

	res := r.db.WithContext(ctx).
		Model(&models.Hospital{}).
		Where(
			"id = ? AND jsonb_array_length(COALESCE(images, '[]'::jsonb)) + ? <= ?",
			id, len(keys), models.MaxHospitalImages,
		).
		Update("images", gorm.Expr("COALESCE(images, '[]'::jsonb) || ?::jsonb", string(raw)))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrTooManyImages
	}
	return nil
}

func (r *ProfileGormRepository) SearchHospitals(
	ctx context.Context,
	query, city string,
) ([]models.Hospital, error) {

	q := r.db.WithContext(ctx)
	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"name ILIKE ? OR description ILIKE ? OR specialties::text ILIKE ?",
			like, like, like,
		)
	}
	if city != "" {
		q = q.Where("address_city ILIKE ?", city)
	}

	out := []models.Hospital{}
	if err := q.Order("average_rating DESC, name ASC").Limit(200).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

var _ domain.Repository = (*ProfileGormRepository)(nil)

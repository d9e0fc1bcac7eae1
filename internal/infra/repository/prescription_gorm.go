package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/health-portal/internal/domain/prescription"
	"github.com/BruksfildServices01/health-portal/internal/httperr"
	"github.com/BruksfildServices01/health-portal/internal/models"
)

const PrescriptionAppointmentIndex = "ux_prescriptions_appointment"

type PrescriptionGormRepository struct {
	db *gorm.DB
}

func NewPrescriptionGormRepository(db *gorm.DB) *PrescriptionGormRepository {
	return &PrescriptionGormRepository{db: db}
}

// --------------------------------------------------
// Lookups
// --------------------------------------------------

func (r *PrescriptionGormRepository) GetUser(ctx context.Context, id string) (*models.User, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *PrescriptionGormRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *PrescriptionGormRepository) GetDoctorByEmail(ctx context.Context, email string) (*models.Doctor, error) {
	var doctor models.Doctor
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&doctor).Error; err != nil {
		return nil, err
	}
	return &doctor, nil
}

func (r *PrescriptionGormRepository) GetAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	var ap models.Appointment
	if err := r.db.WithContext(ctx).First(&ap, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

// --------------------------------------------------
// Prescription
// --------------------------------------------------

func (r *PrescriptionGormRepository) FindByAppointment(
	ctx context.Context,
	appointmentID string,
) (*models.Prescription, error) {

	if err := checkID(appointmentID); err != nil {
		return nil, err
	}

	var p models.Prescription
	if err := r.withParties(ctx).
		Where("appointment_id = ?", appointmentID).
		First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PrescriptionGormRepository) Create(ctx context.Context, p *models.Prescription) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(p).Error
	if httperr.IsUniqueViolation(err, PrescriptionAppointmentIndex) {
		return domain.ErrDuplicate
	}
	return err
}

func (r *PrescriptionGormRepository) Get(ctx context.Context, id string) (*models.Prescription, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}

	var p models.Prescription
	if err := r.withParties(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PrescriptionGormRepository) Update(ctx context.Context, p *models.Prescription) error {
	return r.db.WithContext(ctx).
		Model(p).
		Select("status", "notes", "follow_up_date", "medications", "cancelled_at").
		Updates(p).Error
}

func (r *PrescriptionGormRepository) List(
	ctx context.Context,
	f domain.ListFilter,
) ([]models.Prescription, error) {

	q := r.withParties(ctx)
	if f.DoctorID != "" {
		q = q.Where("doctor_id = ?", f.DoctorID)
	}
	if f.PatientID != "" {
		if checkID(f.PatientID) != nil {
			return []models.Prescription{}, nil
		}
		q = q.Where("patient_id = ?", f.PatientID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	var out []models.Prescription
	if err := q.Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PrescriptionGormRepository) withParties(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Patient").Preload("Doctor")
}

var _ domain.Repository = (*PrescriptionGormRepository)(nil)

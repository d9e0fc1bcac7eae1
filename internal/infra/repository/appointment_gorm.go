package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/health-portal/internal/domain/appointment"
	"github.com/BruksfildServices01/health-portal/internal/httperr"
	"github.com/BruksfildServices01/health-portal/internal/models"
)

// ActiveSlotIndex is the partial unique index that makes slot exclusivity
// hold under concurrent bookings.
const ActiveSlotIndex = "ux_appointments_active_slot"

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Parties
// --------------------------------------------------

func (r *AppointmentGormRepository) GetUserByEmail(
	ctx context.Context,
	email string,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *AppointmentGormRepository) GetDoctorByID(
	ctx context.Context,
	id string,
) (*models.Doctor, error) {

	if err := checkID(id); err != nil {
		return nil, err
	}

	var doctor models.Doctor
	if err := r.db.WithContext(ctx).First(&doctor, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &doctor, nil
}

func (r *AppointmentGormRepository) GetDoctorByEmail(
	ctx context.Context,
	email string,
) (*models.Doctor, error) {

	var doctor models.Doctor
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&doctor).Error; err != nil {
		return nil, err
	}
	return &doctor, nil
}

func (r *AppointmentGormRepository) GetHospitalByEmail(
	ctx context.Context,
	email string,
) (*models.Hospital, error) {

	var hospital models.Hospital
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&hospital).Error; err != nil {
		return nil, err
	}
	return &hospital, nil
}

// --------------------------------------------------
// Appointment (create / conflict)
// --------------------------------------------------

func (r *AppointmentGormRepository) AssertSlotAvailable(
	ctx context.Context,
	doctorID, date, slotTime string,
) error {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			`doctor_id = ? AND date = ? AND "time" = ? AND status <> ?`,
			doctorID, date, slotTime, domain.StatusCancelled,
		).
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return domain.ErrSlotTaken
	}
	return nil
}

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(ap).Error
	if httperr.IsUniqueViolation(err, ActiveSlotIndex) {
		return domain.ErrSlotTaken
	}
	return err
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id string,
) (*models.Appointment, error) {

	if err := checkID(id); err != nil {
		return nil, err
	}

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Doctor").
		First(&ap, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

// SaveStatus writes the status and its stamps. Reopening a cancelled
// appointment can still collide with a newer booking on the same slot.
func (r *AppointmentGormRepository) SaveStatus(
	ctx context.Context,
	ap *models.Appointment,
) error {

	err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ?", ap.ID).
		Updates(map[string]any{
			"status":       ap.Status,
			"cancelled_at": ap.CancelledAt,
			"completed_at": ap.CompletedAt,
		}).Error
	if httperr.IsUniqueViolation(err, ActiveSlotIndex) {
		return domain.ErrSlotTaken
	}
	return err
}

func (r *AppointmentGormRepository) SavePaymentStatus(
	ctx context.Context,
	id, paymentStatus string,
) error {

	return r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ?", id).
		Update("payment_status", paymentStatus).Error
}

func (r *AppointmentGormRepository) SavePaymentReference(
	ctx context.Context,
	id, reference string,
) error {

	return r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ?", id).
		Update("payment_reference", reference).Error
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

func (r *AppointmentGormRepository) ListByDoctor(
	ctx context.Context,
	doctorID string,
	f domain.ListFilter,
) ([]models.Appointment, error) {

	if err := checkID(doctorID); err != nil {
		return []models.Appointment{}, nil
	}
	return r.list(ctx, r.db.Where("doctor_id = ?", doctorID), f)
}

func (r *AppointmentGormRepository) ListByUser(
	ctx context.Context,
	userID string,
	f domain.ListFilter,
) ([]models.Appointment, error) {
	return r.list(ctx, r.db.Where("user_id = ?", userID), f)
}

func (r *AppointmentGormRepository) list(
	ctx context.Context,
	q *gorm.DB,
	f domain.ListFilter,
) ([]models.Appointment, error) {

	q = q.WithContext(ctx).Preload("User").Preload("Doctor")
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Date != "" {
		q = q.Where("date = ?", f.Date)
	}

	var apps []models.Appointment
	if err := q.Order(`date DESC, "time" DESC`).Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *AppointmentGormRepository) ListBookedTimes(
	ctx context.Context,
	doctorID, date string,
) ([]string, error) {

	times := []string{}
	if err := checkID(doctorID); err != nil {
		return times, nil
	}

	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("doctor_id = ? AND date = ? AND status <> ?", doctorID, date, domain.StatusCancelled).
		Order(`"time" ASC`).
		Pluck(`"time"`, &times).Error; err != nil {
		return nil, err
	}
	return times, nil
}

func (r *AppointmentGormRepository) ListDoctorPatients(
	ctx context.Context,
	doctorID string,
) ([]domain.PatientSummary, error) {

	var out []domain.PatientSummary
	if err := r.db.WithContext(ctx).
		Table("appointments").
		Select(`users.id, users.name, users.email, users.phone,
			COUNT(appointments.id) AS appointments,
			MAX(appointments.date) AS last_appointment`).
		Joins("JOIN users ON users.id = appointments.user_id").
		Where("appointments.doctor_id = ?", doctorID).
		Group("users.id, users.name, users.email, users.phone").
		Order("last_appointment DESC").
		Scan(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)

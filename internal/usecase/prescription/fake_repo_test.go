package prescription

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/health-portal/internal/domain/prescription"
	"github.com/BruksfildServices01/health-portal/internal/models"
)

type fakeRepo struct {
	mu            sync.Mutex
	users         map[string]*models.User
	doctors       map[string]*models.Doctor
	appointments  map[string]*models.Appointment
	prescriptions map[string]*models.Prescription
	creates       int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		users:         map[string]*models.User{},
		doctors:       map[string]*models.Doctor{},
		appointments:  map[string]*models.Appointment{},
		prescriptions: map[string]*models.Prescription{},
	}
}

func (r *fakeRepo) GetUser(_ context.Context, id string) (*models.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) GetDoctorByEmail(_ context.Context, email string) (*models.Doctor, error) {
	for _, d := range r.doctors {
		if d.Email == email {
			return d, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) GetAppointment(_ context.Context, id string) (*models.Appointment, error) {
	if ap, ok := r.appointments[id]; ok {
		return ap, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) FindByAppointment(_ context.Context, appointmentID string) (*models.Prescription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.prescriptions {
		if p.AppointmentID == appointmentID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// Create mimics the unique index on appointment_id.
func (r *fakeRepo) Create(_ context.Context, p *models.Prescription) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.prescriptions {
		if existing.AppointmentID == p.AppointmentID {
			return domain.ErrDuplicate
		}
	}
	r.creates++
	p.ID = uuid.NewString()
	cp := *p
	r.prescriptions[p.ID] = &cp
	return nil
}

func (r *fakeRepo) Get(_ context.Context, id string) (*models.Prescription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.prescriptions[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) Update(_ context.Context, p *models.Prescription) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.prescriptions[p.ID] = &cp
	return nil
}

func (r *fakeRepo) List(_ context.Context, f domain.ListFilter) ([]models.Prescription, error) {
	var out []models.Prescription
	for _, p := range r.prescriptions {
		if f.DoctorID != "" && p.DoctorID != f.DoctorID {
			continue
		}
		if f.PatientID != "" && p.PatientID != f.PatientID {
			continue
		}
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

var _ domain.Repository = (*fakeRepo)(nil)

// seed builds doctor d1 (house@example.com), patient u1 and appointment a1 between them.
func seed() *fakeRepo {
	r := newFakeRepo()
	r.users["u1"] = &models.User{ID: "u1", Email: "ana@example.com", Role: models.RoleUser}
	r.doctors["d1"] = &models.Doctor{ID: "d1", Email: "house@example.com", Name: "Dr. House"}
	r.doctors["d2"] = &models.Doctor{ID: "d2", Email: "wilson@example.com", Name: "Dr. Wilson"}
	r.appointments["a1"] = &models.Appointment{ID: "a1", UserID: "u1", DoctorID: "d1", Status: "booked"}
	return r
}

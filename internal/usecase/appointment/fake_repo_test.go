package appointment

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/health-portal/internal/domain/appointment"
	"github.com/BruksfildServices01/health-portal/internal/models"
)

type fakeRepo struct {
	mu           sync.Mutex
	users        map[string]*models.User
	doctors      map[string]*models.Doctor
	hospitals    map[string]*models.Hospital
	appointments map[string]*models.Appointment

	// beforeWrite runs between a use case's read and its write.
	beforeWrite func()
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		users:        map[string]*models.User{},
		doctors:      map[string]*models.Doctor{},
		hospitals:    map[string]*models.Hospital{},
		appointments: map[string]*models.Appointment{},
	}
}

func (r *fakeRepo) addHospital(id, email string) *models.Hospital {
	h := &models.Hospital{ID: id, Email: email, Name: "Hospital " + id}
	r.hospitals[email] = h
	return h
}

func (r *fakeRepo) addUser(id, email string) *models.User {
	u := &models.User{ID: id, Email: email, Name: "Patient " + id, Role: models.RoleUser}
	r.users[email] = u
	return u
}

func (r *fakeRepo) addDoctor(id, email string, fee float64) *models.Doctor {
	d := &models.Doctor{ID: id, Email: email, Name: "Dr. " + id, Fee: fee}
	r.doctors[id] = d
	return d
}

func (r *fakeRepo) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	if u, ok := r.users[email]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) GetDoctorByID(_ context.Context, id string) (*models.Doctor, error) {
	if d, ok := r.doctors[id]; ok {
		return d, nil
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

func (r *fakeRepo) GetHospitalByEmail(_ context.Context, email string) (*models.Hospital, error) {
	if h, ok := r.hospitals[email]; ok {
		return h, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) AssertSlotAvailable(_ context.Context, doctorID, date, slotTime string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.occupied(doctorID, date, slotTime) {
		return domain.ErrSlotTaken
	}
	return nil
}

func (r *fakeRepo) occupied(doctorID, date, slotTime string) bool {
	for _, ap := range r.appointments {
		if ap.DoctorID == doctorID && ap.Date == date && ap.Time == slotTime &&
			domain.Status(ap.Status).OccupiesSlot() {
			return true
		}
	}
	return false
}

// CreateAppointment mimics the partial unique index.
func (r *fakeRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.occupied(ap.DoctorID, ap.Date, ap.Time) {
		return domain.ErrSlotTaken
	}
	ap.ID = uuid.NewString()
	cp := *ap
	r.appointments[ap.ID] = &cp
	return nil
}

func (r *fakeRepo) GetAppointment(_ context.Context, id string) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ap, ok := r.appointments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *ap
	if d, ok := r.doctors[ap.DoctorID]; ok {
		cp.Doctor = *d
	}
	return &cp, nil
}

func (r *fakeRepo) write(id string, apply func(*models.Appointment)) error {
	if r.beforeWrite != nil {
		r.beforeWrite()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	ap, ok := r.appointments[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	apply(ap)
	return nil
}

func (r *fakeRepo) SaveStatus(_ context.Context, in *models.Appointment) error {
	return r.write(in.ID, func(ap *models.Appointment) {
		ap.Status, ap.CancelledAt, ap.CompletedAt = in.Status, in.CancelledAt, in.CompletedAt
	})
}

func (r *fakeRepo) SavePaymentStatus(_ context.Context, id, paymentStatus string) error {
	return r.write(id, func(ap *models.Appointment) { ap.PaymentStatus = paymentStatus })
}

func (r *fakeRepo) SavePaymentReference(_ context.Context, id, reference string) error {
	return r.write(id, func(ap *models.Appointment) { ap.PaymentReference = reference })
}

func (r *fakeRepo) ListByDoctor(_ context.Context, doctorID string, f domain.ListFilter) ([]models.Appointment, error) {
	return r.filter(func(ap *models.Appointment) bool {
		return ap.DoctorID == doctorID && (f.Status == "" || ap.Status == f.Status)
	}), nil
}

func (r *fakeRepo) ListByUser(_ context.Context, userID string, f domain.ListFilter) ([]models.Appointment, error) {
	return r.filter(func(ap *models.Appointment) bool {
		return ap.UserID == userID && (f.Status == "" || ap.Status == f.Status)
	}), nil
}

func (r *fakeRepo) filter(keep func(*models.Appointment) bool) []models.Appointment {
	var out []models.Appointment
	for _, ap := range r.appointments {
		if keep(ap) {
			out = append(out, *ap)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date+out[i].Time < out[j].Date+out[j].Time })
	return out
}

func (r *fakeRepo) ListBookedTimes(_ context.Context, doctorID, date string) ([]string, error) {
	var out []string
	for _, ap := range r.filter(func(ap *models.Appointment) bool {
		return ap.DoctorID == doctorID && ap.Date == date && domain.Status(ap.Status).OccupiesSlot()
	}) {
		out = append(out, ap.Time)
	}
	return out, nil
}

func (r *fakeRepo) ListDoctorPatients(_ context.Context, doctorID string) ([]domain.PatientSummary, error) {
	counts := map[string]int{}
	for _, ap := range r.appointments {
		if ap.DoctorID == doctorID {
			counts[ap.UserID]++
		}
	}
	var out []domain.PatientSummary
	for _, u := range r.users {
		if n := counts[u.ID]; n > 0 {
			out = append(out, domain.PatientSummary{ID: u.ID, Email: u.Email, Appointments: n})
		}
	}
	return out, nil
}

var _ domain.Repository = (*fakeRepo)(nil)

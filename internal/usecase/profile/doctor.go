package profile

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/health-portal/internal/audit"
	"github.com/BruksfildServices01/health-portal/internal/domain/identity"
	domain "github.com/BruksfildServices01/health-portal/internal/domain/profile"
	"github.com/BruksfildServices01/health-portal/internal/httperr"
	"github.com/BruksfildServices01/health-portal/internal/models"
)

type DoctorInput struct {
	Name           string
	Specialization string
	Qualification  string
	Experience     int
	Phone          string
	Bio            string
	Fee            float64
	HospitalID     string
}

type Doctors struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDoctors(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *Doctors {
	return &Doctors{
		repo:  repo,
		audit: audit,
	}
}

// Save creates or updates the caller's doctor profile and completes onboarding.
// A new profile, or one moved to another hospital, goes back to pending.
func (uc *Doctors) Save(
	ctx context.Context,
	actor identity.Actor,
	in DoctorInput,
) (*models.Doctor, error) {

	in.Name = strings.TrimSpace(in.Name)
	in.Specialization = strings.TrimSpace(in.Specialization)
	if in.Name == "" || in.Specialization == "" {
		return nil, httperr.ErrValidation("missing_fields", "name and specialization are required.")
	}
	if in.Experience < 0 || in.Fee < 0 {
		return nil, httperr.ErrValidation("invalid_values", "experience and fee cannot be negative.")
	}

	user, err := uc.repo.GetUserByEmail(ctx, actor.Email)
	if err != nil {
		if httperr.IsNotFound(err) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	var hospitalID *string
	if id := strings.TrimSpace(in.HospitalID); id != "" {
		if _, err := uc.repo.GetHospital(ctx, id); err != nil {
			if httperr.IsNotFound(err) {
				return nil, domain.ErrHospitalNotFound
			}
			return nil, err
		}
		hospitalID = &id
	}

	d, err := uc.repo.GetDoctorByEmail(ctx, actor.Email)
	switch {
	case err == nil:
		if !sameRef(d.HospitalID, hospitalID) {
			d.VerificationStatus = models.VerificationPending
		}
	case httperr.IsNotFound(err):
		d = &models.Doctor{
			Email:              user.Email,
			VerificationStatus: models.VerificationPending,
		}
	default:
		return nil, err
	}

	d.Name = in.Name
	d.Specialization = in.Specialization
	d.Qualification = strings.TrimSpace(in.Qualification)
	d.Experience = in.Experience
	d.Phone = strings.TrimSpace(in.Phone)
	d.Bio = strings.TrimSpace(in.Bio)
	d.Fee = in.Fee
	d.HospitalID = hospitalID
	d.Hospital = nil

	if err := uc.repo.SaveDoctor(ctx, d); err != nil {
		return nil, err
	}

	if user.OnboardingStatus != models.OnboardingCompleted {
		if err := uc.repo.MarkOnboarded(ctx, user.ID); err != nil {
			return nil, err
		}
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  actor.UserID,
		Action:   "doctor_profile_saved",
		Entity:   "doctor",
		EntityID: d.ID,
	})
	return d, nil
}

func (uc *Doctors) List(ctx context.Context, f domain.DoctorFilter) ([]models.Doctor, error) {
	return uc.repo.ListDoctors(ctx, f)
}

func (uc *Doctors) Get(ctx context.Context, id string) (*models.Doctor, error) {
	d, err := uc.repo.GetDoctor(ctx, id)
	if err != nil {
		if httperr.IsNotFound(err) {
			return nil, domain.ErrDoctorNotFound
		}
		return nil, err
	}
	return d, nil
}

func (uc *Doctors) Mine(ctx context.Context, actor identity.Actor) (*models.Doctor, error) {
	d, err := uc.repo.GetDoctorByEmail(ctx, actor.Email)
	if err != nil {
		if httperr.IsNotFound(err) {
			return nil, identity.ErrDoctorProfileMissing
		}
		return nil, err
	}
	return d, nil
}

// Verify lets a hospital set the verification state of a doctor on its roster.
func (uc *Doctors) Verify(
	ctx context.Context,
	actor identity.Actor,
	doctorID, status string,
) (*models.Doctor, error) {

	st, err := domain.ParseVerificationStatus(status)
	if err != nil {
		return nil, err
	}

	h, err := uc.repo.GetHospitalByEmail(ctx, actor.Email)
	if err != nil {
		if httperr.IsNotFound(err) {
			return nil, identity.ErrHospitalProfileMissing
		}
		return nil, err
	}

	d, err := uc.repo.GetDoctor(ctx, doctorID)
	if err != nil {
		if httperr.IsNotFound(err) {
			return nil, domain.ErrDoctorNotFound
		}
		return nil, err
	}

	if d.HospitalID == nil || *d.HospitalID != h.ID {
		return nil, domain.ErrNotOnRoster
	}

	d.VerificationStatus = st
	d.Hospital = nil
	if err := uc.repo.SaveDoctor(ctx, d); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  actor.UserID,
		Action:   "doctor_verification_changed",
		Entity:   "doctor",
		EntityID: d.ID,
		Metadata: map[string]string{"status": st},
	})
	return d, nil
}

func sameRef(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

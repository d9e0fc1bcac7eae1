package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/health-portal/internal/domain/appointment"
	"github.com/BruksfildServices01/health-portal/internal/domain/identity"
	"github.com/BruksfildServices01/health-portal/internal/httperr"
)

var ErrNotYourSchedule = httperr.ErrForbidden("access_denied", "You can only manage appointments on your own schedule.")

// authorizeSchedule lets a doctor act on their own appointments and a
// hospital on appointments of doctors linked to it.
func authorizeSchedule(
	ctx context.Context,
	repo domain.Repository,
	actor identity.Actor,
	doctorID string,
) error {

	switch {
	case actor.IsSystem():
		return nil

	case actor.IsDoctor():
		doctor, err := repo.GetDoctorByEmail(ctx, actor.Email)
		if err != nil {
			if httperr.IsNotFound(err) {
				return identity.ErrDoctorProfileMissing
			}
			return err
		}
		if doctor.ID != doctorID {
			return ErrNotYourSchedule
		}
		return nil

	case actor.IsHospital():
		hospital, err := repo.GetHospitalByEmail(ctx, actor.Email)
		if err != nil {
			if httperr.IsNotFound(err) {
				return identity.ErrHospitalProfileMissing
			}
			return err
		}
		doctor, err := repo.GetDoctorByID(ctx, doctorID)
		if err != nil {
			if httperr.IsNotFound(err) {
				return ErrNotYourSchedule
			}
			return err
		}
		if doctor.HospitalID == nil || *doctor.HospitalID != hospital.ID {
			return ErrNotYourSchedule
		}
		return nil
	}

	return ErrNotYourSchedule
}

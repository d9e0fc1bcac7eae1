package profile

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/health-portal/internal/audit"
	"github.com/BruksfildServices01/health-portal/internal/domain/identity"
	domain "github.com/BruksfildServices01/health-portal/internal/domain/profile"
	"github.com/BruksfildServices01/health-portal/internal/httperr"
	"github.com/BruksfildServices01/health-portal/internal/models"
)

// Geocoder resolves a one-line address to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (lat, lng float64, err error)
}

// ImageEncoder normalizes an uploaded picture for storage.
type ImageEncoder interface {
	Encode(body []byte) (data []byte, contentType string, err error)
}

type BlobWriter interface {
	Put(ctx context.Context, key, contentType string, body []byte) error
}

type HospitalInput struct {
	Name        string
	Phone       string
	Website     string
	Description string
	Address     models.Address
	Specialties []string
}

type ImageUpload struct {
	Name string
	Body []byte
}

type SearchInput struct {
	Query    string
	City     string
	Lat      *float64
	Lng      *float64
	RadiusKm float64
}

type SearchResult struct {
	models.Hospital
	DistanceKm *float64 `json:"distanceKm,omitempty"`
}

type HospitalDetail struct {
	*models.Hospital
	Doctors []models.Doctor `json:"doctors"`
}

type Hospitals struct {
	repo     domain.Repository
	geocoder Geocoder
	images   ImageEncoder
	blobs    BlobWriter
	audit    *audit.Dispatcher
}

func NewHospitals(
	repo domain.Repository,
	geocoder Geocoder,
	images ImageEncoder,
	blobs BlobWriter,
	audit *audit.Dispatcher,
) *Hospitals {
	return &Hospitals{
		repo:     repo,
		geocoder: geocoder,
		images:   images,
		blobs:    blobs,
		audit:    audit,
	}
}

// ======================================================
// SAVE PROFILE
// ======================================================

func (uc *Hospitals) Save(
	ctx context.Context,
	actor identity.Actor,
	in HospitalInput,
) (*models.Hospital, error) {

	in.Name = strings.TrimSpace(in.Name)
	in.Address.Street = strings.TrimSpace(in.Address.Street)
	in.Address.City = strings.TrimSpace(in.Address.City)
	if in.Name == "" || in.Address.City == "" {
		return nil, httperr.ErrValidation("missing_fields", "name and address.city are required.")
	}

	user, err := uc.repo.GetUserByEmail(ctx, actor.Email)
	if err != nil {
		if httperr.IsNotFound(err) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	h, err := uc.repo.GetHospitalByEmail(ctx, actor.Email)
	switch {
	case err == nil:
	case httperr.IsNotFound(err):
		h = &models.Hospital{Email: user.Email, Images: []string{}}
	default:
		return nil, err
	}

	addr := in.Address
	addr.Latitude, addr.Longitude = h.Address.Latitude, h.Address.Longitude

	if addr.OneLine() != h.Address.OneLine() || (addr.Latitude == 0 && addr.Longitude == 0) {
		lat, lng, err := uc.geocoder.Geocode(ctx, addr.OneLine())
		if err != nil {
			return nil, fmt.Errorf("geocode %q: %w", addr.OneLine(), err)
		}
		addr.Latitude, addr.Longitude = lat, lng
	}

	h.Name = in.Name
	h.Phone = strings.TrimSpace(in.Phone)
	h.Website = strings.TrimSpace(in.Website)
	h.Description = strings.TrimSpace(in.Description)
	h.Address = addr
	h.Specialties = cleanList(in.Specialties)

	if err := uc.repo.SaveHospital(ctx, h); err != nil {
		return nil, err
	}

	if user.OnboardingStatus != models.OnboardingCompleted {
		if err := uc.repo.MarkOnboarded(ctx, user.ID); err != nil {
			return nil, err
		}
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  actor.UserID,
		Action:   "hospital_profile_saved",
		Entity:   "hospital",
		EntityID: h.ID,
	})
	return h, nil
}

// ======================================================
// IMAGES
// ======================================================

// AddImages converts every upload before storing any of them, so a bad file
// leaves the hospital untouched.
func (uc *Hospitals) AddImages(
	ctx context.Context,
	actor identity.Actor,
	uploads []ImageUpload,
) (*models.Hospital, error) {

	h, err := uc.repo.GetHospitalByEmail(ctx, actor.Email)
	if err != nil {
		if httperr.IsNotFound(err) {
			return nil, identity.ErrHospitalProfileMissing
		}
		return nil, err
	}

	if err := domain.CheckImageQuota(len(h.Images), len(uploads)); err != nil {
		return nil, err
	}

	type encoded struct {
		data        []byte
		contentType string
	}
	converted := make([]encoded, 0, len(uploads))
	for _, up := range uploads {
		data, ct, err := uc.images.Encode(up.Body)
		if err != nil {
			return nil, httperr.ErrValidation("invalid_image", fmt.Sprintf("%s is not a supported image.", up.Name))
		}
		converted = append(converted, encoded{data, ct})
	}

	keys := make([]string, 0, len(converted))
	for _, img := range converted {
		key := fmt.Sprintf("hospitals/%s/%s.webp", h.ID, uuid.NewString())
		if err := uc.blobs.Put(ctx, key, img.contentType, img.data); err != nil {
			return nil, fmt.Errorf("upload hospital image: %w", err)
		}
		keys = append(keys, key)
	}

	// the quota is checked again atomically; a concurrent upload may have won
	if err := uc.repo.AppendHospitalImages(ctx, h.ID, keys); err != nil {
		return nil, err
	}

	return uc.Mine(ctx, actor)
}

// ======================================================
// READ
// ======================================================

func (uc *Hospitals) Mine(ctx context.Context, actor identity.Actor) (*models.Hospital, error) {
	h, err := uc.repo.GetHospitalByEmail(ctx, actor.Email)
	if err != nil {
		if httperr.IsNotFound(err) {
			return nil, identity.ErrHospitalProfileMissing
		}
		return nil, err
	}
	return h, nil
}

func (uc *Hospitals) Get(ctx context.Context, id string) (*HospitalDetail, error) {
	h, err := uc.repo.GetHospital(ctx, id)
	if err != nil {
		if httperr.IsNotFound(err) {
			return nil, domain.ErrHospitalNotFound
		}
		return nil, err
	}

	roster, err := uc.repo.ListDoctors(ctx, domain.DoctorFilter{HospitalID: h.ID})
	if err != nil {
		return nil, err
	}
	return &HospitalDetail{Hospital: h, Doctors: roster}, nil
}

// Search filters by text in storage, then by distance here. With a center
// point the results come back nearest first.
func (uc *Hospitals) Search(ctx context.Context, in SearchInput) ([]SearchResult, error) {
	if (in.Lat == nil) != (in.Lng == nil) {
		return nil, httperr.ErrValidation("invalid_location", "lat and lng must be given together.")
	}
	if in.RadiusKm < 0 {
		return nil, httperr.ErrValidation("invalid_radius", "radiusKm cannot be negative.")
	}

	found, err := uc.repo.SearchHospitals(ctx, strings.TrimSpace(in.Query), strings.TrimSpace(in.City))
	if err != nil {
		return nil, err
	}

	out := make([]SearchResult, 0, len(found))
	for _, h := range found {
		res := SearchResult{Hospital: h}
		if in.Lat != nil {
			d := domain.DistanceKm(*in.Lat, *in.Lng, h.Address.Latitude, h.Address.Longitude)
			if in.RadiusKm > 0 && d > in.RadiusKm {
				continue
			}
			res.DistanceKm = &d
		}
		out = append(out, res)
	}

	if in.Lat != nil {
		sort.SliceStable(out, func(i, j int) bool { return *out[i].DistanceKm < *out[j].DistanceKm })
	}
	return out, nil
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

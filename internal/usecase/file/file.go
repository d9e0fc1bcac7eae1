package file

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/health-portal/internal/audit"
	domain "github.com/BruksfildServices01/health-portal/internal/domain/file"
	"github.com/BruksfildServices01/health-portal/internal/domain/identity"
	"github.com/BruksfildServices01/health-portal/internal/httperr"
	"github.com/BruksfildServices01/health-portal/internal/models"
	"github.com/BruksfildServices01/health-portal/internal/validators"
)

// MaxUploadBytes bounds a single upload.
const MaxUploadBytes = 10 << 20

// column widths of models.File
const (
	maxNameLen     = 255
	maxCategoryLen = 50
)

type Blobs interface {
	Put(ctx context.Context, key, contentType string, body []byte) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
}

type UploadInput struct {
	Name        string
	ContentType string
	Body        []byte
	Category    string
	Tags        []string
	DoctorID    string
}

type Service struct {
	repo  domain.Repository
	blobs Blobs
	audit *audit.Dispatcher
}

func NewService(
	repo domain.Repository,
	blobs Blobs,
	audit *audit.Dispatcher,
) *Service {
	return &Service{
		repo:  repo,
		blobs: blobs,
		audit: audit,
	}
}

// ======================================================
// UPLOAD
// ======================================================

func (s *Service) Upload(
	ctx context.Context,
	actor identity.Actor,
	in UploadInput,
) (*models.File, error) {

	name := sanitizeName(in.Name)
	if name == "" || len(in.Body) == 0 {
		return nil, httperr.ErrValidation("missing_file", "A non-empty file is required.")
	}
	if len(in.Body) > MaxUploadBytes {
		return nil, httperr.ErrValidation("file_too_large", "Files must be at most 10 MB.")
	}

	if len(name) > maxNameLen {
		return nil, httperr.ErrValidation("name_too_long", "File names must be at most 255 characters.")
	}

	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = "general"
	}
	if len(category) > maxCategoryLen {
		return nil, httperr.ErrValidation("category_too_long", "Categories must be at most 50 characters.")
	}

	doctorID := strings.TrimSpace(in.DoctorID)
	if doctorID != "" {
		if _, err := uuid.Parse(doctorID); err != nil {
			return nil, httperr.ErrValidation("invalid_doctor_id", "doctorId is not a valid id.")
		}
	}

	key := fmt.Sprintf("files/%s/%s-%s", actor.UserID, uuid.NewString(), name)
	if err := s.blobs.Put(ctx, key, in.ContentType, in.Body); err != nil {
		return nil, fmt.Errorf("upload %s: %w", key, err)
	}

	f := &models.File{
		OwnerID:     actor.UserID,
		Name:        name,
		ContentType: in.ContentType,
		Size:        int64(len(in.Body)),
		Key:         key,
		Category:    category,
		Tags:        cleanTags(in.Tags),
		SharedWith:  []string{},
	}
	if doctorID != "" {
		f.DoctorID = &doctorID
	}

	if err := s.repo.Create(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

// ======================================================
// SHARE
// ======================================================

func (s *Service) Share(
	ctx context.Context,
	actor identity.Actor,
	fileID, email string,
) (*models.File, error) {

	email = validators.NormalizeEmail(email)
	if fileID == "" || email == "" {
		return nil, httperr.ErrValidation("missing_fields", "fileId and email are required.")
	}

	f, err := s.repo.Get(ctx, fileID)
	if err != nil {
		if httperr.IsNotFound(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if f.OwnerID != actor.UserID {
		return nil, domain.ErrNotOwner
	}

	target, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if httperr.IsNotFound(err) {
			return nil, httperr.ErrNotFound("user_not_found", "No user with that email.")
		}
		return nil, err
	}

	if err := domain.Share(f, actor.UserID, target.ID); err != nil {
		return nil, err
	}

	if err := s.repo.AddShare(ctx, f.ID, target.ID); err != nil {
		return nil, err
	}

	s.audit.Dispatch(audit.Event{
		ActorID:  actor.UserID,
		Action:   "file_shared",
		Entity:   "file",
		EntityID: f.ID,
		Metadata: map[string]string{"with": target.ID},
	})
	return f, nil
}

// ======================================================
// READ
// ======================================================

func (s *Service) List(
	ctx context.Context,
	actor identity.Actor,
	category string,
) ([]models.File, error) {
	return s.repo.ListAccessible(ctx, actor.UserID, strings.TrimSpace(category))
}

// Open returns the file record and its blob. The caller must close the reader.
func (s *Service) Open(
	ctx context.Context,
	actor identity.Actor,
	key string,
) (*models.File, io.ReadCloser, error) {

	if key == "" {
		return nil, nil, httperr.ErrValidation("missing_fields", "key is required.")
	}

	f, err := s.repo.GetByKey(ctx, key)
	if err != nil {
		if httperr.IsNotFound(err) {
			return nil, nil, domain.ErrNotFound
		}
		return nil, nil, err
	}
	if !f.CanRead(actor.UserID) {
		return nil, nil, domain.ErrNoAccess
	}

	body, err := s.blobs.Get(ctx, f.Key)
	if err != nil {
		return nil, nil, fmt.Errorf("download %s: %w", f.Key, err)
	}
	return f, body, nil
}

func sanitizeName(name string) string {
	name = path.Base(strings.ReplaceAll(strings.TrimSpace(name), "\\", "/"))
	if name == "." || name == "/" {
		return ""
	}
	return strings.ReplaceAll(name, "\"", "")
}

func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := map[string]bool{}
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" && !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}

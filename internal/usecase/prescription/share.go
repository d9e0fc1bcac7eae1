package prescription

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/health-portal/internal/audit"
	"github.com/BruksfildServices01/health-portal/internal/domain/identity"
	domain "github.com/BruksfildServices01/health-portal/internal/domain/prescription"
	"github.com/BruksfildServices01/health-portal/internal/models"
)

const FileCategory = "prescription"

// Renderer turns a prescription into a printable document.
type Renderer interface {
	Render(p *models.Prescription) ([]byte, error)
}

type BlobWriter interface {
	Put(ctx context.Context, key, contentType string, body []byte) error
}

type FileCreator interface {
	Create(ctx context.Context, f *models.File) error
}

type SharePrescription struct {
	repo     domain.Repository
	renderer Renderer
	blobs    BlobWriter
	files    FileCreator
	audit    *audit.Dispatcher
}

func NewSharePrescription(
	repo domain.Repository,
	renderer Renderer,
	blobs BlobWriter,
	files FileCreator,
	audit *audit.Dispatcher,
) *SharePrescription {
	return &SharePrescription{
		repo:     repo,
		renderer: renderer,
		blobs:    blobs,
		files:    files,
		audit:    audit,
	}
}

// Execute renders the prescription as PDF, stores it and shares the file
// with the patient.
func (uc *SharePrescription) Execute(
	ctx context.Context,
	actor identity.Actor,
	id string,
) (*models.File, error) {

	p, err := loadAuthored(ctx, uc.repo, actor, id)
	if err != nil {
		return nil, err
	}

	doc, err := uc.renderer.Render(p)
	if err != nil {
		return nil, fmt.Errorf("render prescription %s: %w", p.ID, err)
	}

	name := fmt.Sprintf("prescription-%s.pdf", p.ID)
	key := fmt.Sprintf("files/%s/%s-%s", actor.UserID, uuid.NewString(), name)

	if err := uc.blobs.Put(ctx, key, "application/pdf", doc); err != nil {
		return nil, fmt.Errorf("upload prescription %s: %w", p.ID, err)
	}

	doctorID := p.DoctorID
	f := &models.File{
		OwnerID:     actor.UserID,
		DoctorID:    &doctorID,
		Name:        name,
		ContentType: "application/pdf",
		Size:        int64(len(doc)),
		Key:         key,
		Category:    FileCategory,
		Tags:        []string{"prescription"},
		SharedWith:  []string{p.PatientID},
	}

	if err := uc.files.Create(ctx, f); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  actor.UserID,
		Action:   "prescription_shared",
		Entity:   "prescription",
		EntityID: p.ID,
		Metadata: map[string]string{"file": f.ID, "patient": p.PatientID},
	})

	return f, nil
}

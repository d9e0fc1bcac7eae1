package prescription

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/BruksfildServices01/health-portal/internal/domain/identity"
	"github.com/BruksfildServices01/health-portal/internal/httperr"
	"github.com/BruksfildServices01/health-portal/internal/models"
)

var (
	house  = identity.Actor{UserID: "du1", Email: "house@example.com", Role: "doctor"}
	wilson = identity.Actor{UserID: "du2", Email: "wilson@example.com", Role: "doctor"}
	ana    = identity.Actor{UserID: "u1", Email: "ana@example.com", Role: "user"}
)

func paracetamol() []models.Medication {
	return []models.Medication{{Name: "Paracetamol", Dosage: "500mg", Frequency: "twice daily", Duration: "5 days"}}
}

func TestCreate_DuplicateForAppointment(t *testing.T) {
	ctx := context.Background()
	repo := seed()
	uc := NewCreatePrescription(repo, nil)

	p, err := uc.Execute(ctx, house, CreateInput{PatientID: "u1", AppointmentID: "a1", Medications: paracetamol()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Status != "Active" || p.DoctorID != "d1" {
		t.Errorf("expected Active by d1, got %s by %s", p.Status, p.DoctorID)
	}

	_, err = uc.Execute(ctx, house, CreateInput{PatientID: "u1", AppointmentID: "a1", Medications: paracetamol()})
	if !httperr.IsBusiness(err, "duplicate_prescription") {
		t.Fatalf("expected duplicate_prescription, got %v", err)
	}
}

func TestCreate_ConcurrentAttemptsYieldOne(t *testing.T) {
	ctx := context.Background()
	repo := seed()
	uc := NewCreatePrescription(repo, nil)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Execute(ctx, house, CreateInput{PatientID: "u1", AppointmentID: "a1", Medications: paracetamol()})
			if err != nil && !httperr.IsBusiness(err, "duplicate_prescription") {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if repo.creates != 1 {
		t.Errorf("expected exactly one prescription, got %d", repo.creates)
	}
}

func TestCreate_IgnoresAppointmentStatus(t *testing.T) {
	repo := seed()
	repo.appointments["a1"].Status = "completed"

	if _, err := NewCreatePrescription(repo, nil).Execute(context.Background(), house, CreateInput{
		PatientID: "u1", AppointmentID: "a1", Medications: paracetamol(),
	}); err != nil {
		t.Fatalf("expected create on completed appointment to succeed, got %v", err)
	}
}

func TestCreate_InvalidMedicationWritesNothing(t *testing.T) {
	repo := seed()
	meds := append(paracetamol(), models.Medication{Name: "Ibuprofen", Dosage: "200mg", Frequency: "daily"})

	_, err := NewCreatePrescription(repo, nil).Execute(context.Background(), house, CreateInput{
		PatientID: "u1", AppointmentID: "a1", Medications: meds,
	})
	if !httperr.IsBusiness(err, "missing_fields") {
		t.Fatalf("expected missing_fields, got %v", err)
	}
	if len(repo.prescriptions) != 0 {
		t.Errorf("expected no prescription stored, got %d", len(repo.prescriptions))
	}
}

func TestCreate_Failures(t *testing.T) {
	ctx := context.Background()
	repo := seed()
	uc := NewCreatePrescription(repo, nil)

	if _, err := uc.Execute(ctx, house, CreateInput{PatientID: "ghost", AppointmentID: "a1", Medications: paracetamol()}); !httperr.IsBusiness(err, "patient_not_found") {
		t.Errorf("expected patient_not_found, got %v", err)
	}
	if _, err := uc.Execute(ctx, wilson, CreateInput{PatientID: "u1", AppointmentID: "a1", Medications: paracetamol()}); !httperr.IsBusiness(err, "access_denied") {
		t.Errorf("expected access_denied for another doctor's appointment, got %v", err)
	}
	if _, err := uc.Execute(ctx, house, CreateInput{PatientID: "u1", AppointmentID: "a1"}); !httperr.IsBusiness(err, "medications_required") {
		t.Errorf("expected medications_required, got %v", err)
	}
}

func TestUpdate_AuthorOnlyAndRevalidates(t *testing.T) {
	ctx := context.Background()
	repo := seed()
	p, err := NewCreatePrescription(repo, nil).Execute(ctx, house, CreateInput{PatientID: "u1", AppointmentID: "a1", Medications: paracetamol()})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	uc := NewUpdatePrescription(repo, nil)
	notes := "take with food"

	if _, err := uc.Execute(ctx, wilson, p.ID, UpdateInput{Notes: &notes}); !httperr.IsBusiness(err, "access_denied") {
		t.Errorf("expected access_denied, got %v", err)
	}

	empty := []models.Medication{}
	if _, err := uc.Execute(ctx, house, p.ID, UpdateInput{Medications: &empty}); !httperr.IsBusiness(err, "medications_required") {
		t.Errorf("expected medications_required, got %v", err)
	}

	completed := "Completed"
	out, err := uc.Execute(ctx, house, p.ID, UpdateInput{Notes: &notes, Status: &completed})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Notes != notes || out.Status != "Completed" || len(out.Medications) != 1 {
		t.Errorf("unexpected result %+v", out)
	}
}

func TestCancel_SoftDelete(t *testing.T) {
	ctx := context.Background()
	repo := seed()
	p, _ := NewCreatePrescription(repo, nil).Execute(ctx, house, CreateInput{PatientID: "u1", AppointmentID: "a1", Medications: paracetamol()})

	if err := NewCancelPrescription(repo, nil).Execute(ctx, wilson, p.ID); !httperr.IsBusiness(err, "access_denied") {
		t.Fatalf("expected access_denied, got %v", err)
	}
	if err := NewCancelPrescription(repo, nil).Execute(ctx, house, p.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	stored := repo.prescriptions[p.ID]
	if stored == nil || stored.Status != "Cancelled" || stored.CancelledAt == nil {
		t.Errorf("expected row kept as Cancelled, got %+v", stored)
	}
}

func TestQuery_RoleSensitive(t *testing.T) {
	ctx := context.Background()
	repo := seed()
	p, _ := NewCreatePrescription(repo, nil).Execute(ctx, house, CreateInput{PatientID: "u1", AppointmentID: "a1", Medications: paracetamol()})

	q := NewQueryPrescriptions(repo)

	mine, err := q.List(ctx, house, "", "")
	if err != nil || len(mine) != 1 {
		t.Fatalf("expected doctor to see 1, got %d (%v)", len(mine), err)
	}
	theirs, _ := q.List(ctx, wilson, "", "")
	if len(theirs) != 0 {
		t.Errorf("expected other doctor to see 0, got %d", len(theirs))
	}
	own, _ := q.List(ctx, ana, "", "Active")
	if len(own) != 1 {
		t.Errorf("expected patient to see 1, got %d", len(own))
	}

	exists, found, err := q.Check(ctx, ana, "a1")
	if err != nil || !exists || found.ID != p.ID {
		t.Errorf("expected exists for a1, got %v %v", exists, err)
	}
	exists, _, err = q.Check(ctx, ana, "a2")
	if err != nil || exists {
		t.Errorf("expected no prescription for a2, got %v %v", exists, err)
	}

	if _, err := q.Get(ctx, wilson, p.ID); !httperr.IsBusiness(err, "access_denied") {
		t.Errorf("expected access_denied, got %v", err)
	}
}

type fakeRenderer struct{}

func (fakeRenderer) Render(p *models.Prescription) ([]byte, error) {
	return []byte("%PDF-1.3 " + p.ID), nil
}

type memBlobs struct{ data map[string][]byte }

func (m *memBlobs) Put(_ context.Context, key, _ string, body []byte) error {
	m.data[key] = body
	return nil
}

type memFiles struct{ files []*models.File }

func (m *memFiles) Create(_ context.Context, f *models.File) error {
	m.files = append(m.files, f)
	return nil
}

func TestShare_StoresPDFSharedWithPatient(t *testing.T) {
	ctx := context.Background()
	repo := seed()
	p, _ := NewCreatePrescription(repo, nil).Execute(ctx, house, CreateInput{PatientID: "u1", AppointmentID: "a1", Medications: paracetamol()})

	blobs := &memBlobs{data: map[string][]byte{}}
	files := &memFiles{}
	f, err := NewSharePrescription(repo, fakeRenderer{}, blobs, files, nil).Execute(ctx, house, p.ID)
	if err != nil {
		t.Fatalf("share: %v", err)
	}

	if f.Category != FileCategory || len(f.SharedWith) != 1 || f.SharedWith[0] != "u1" {
		t.Errorf("unexpected file %+v", f)
	}
	if !strings.HasPrefix(f.Key, "files/du1/") {
		t.Errorf("expected key under the doctor's folder, got %s", f.Key)
	}
	if _, ok := blobs.data[f.Key]; !ok {
		t.Error("expected blob stored under the file key")
	}
}

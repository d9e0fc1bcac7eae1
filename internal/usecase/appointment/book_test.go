package appointment

import (
	"context"
	"strings"
	"sync"
	"testing"

	domain "github.com/BruksfildServices01/health-portal/internal/domain/appointment"
	"github.com/BruksfildServices01/health-portal/internal/domain/identity"
	"github.com/BruksfildServices01/health-portal/internal/httperr"
)

func patientActor(id, email string) identity.Actor {
	return identity.Actor{UserID: id, Email: email, Role: "user"}
}

func TestBook_SlotLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	repo.addUser("u1", "ana@example.com")
	repo.addUser("u2", "bia@example.com")
	repo.addDoctor("d1", "house@example.com", 150)

	book := NewBookAppointment(repo, nil)
	status := NewUpdateStatus(repo, nil)

	first, err := book.Execute(ctx, patientActor("u1", "ana@example.com"), BookAppointmentInput{
		PatientEmail: "ana@example.com", DoctorID: "d1", Date: "2024-06-01", Time: "10:00",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Status != "booked" || first.PaymentStatus != "unpaid" {
		t.Errorf("expected booked/unpaid, got %s/%s", first.Status, first.PaymentStatus)
	}
	if first.Doctor.Name != "Dr. d1" || first.Patient.Email != "ana@example.com" {
		t.Errorf("expected joined display fields, got %+v", first)
	}

	_, err = book.Execute(ctx, patientActor("u2", "bia@example.com"), BookAppointmentInput{
		PatientEmail: "bia@example.com", DoctorID: "d1", Date: "2024-06-01", Time: "10:00",
	})
	if !httperr.IsBusiness(err, "slot_taken") {
		t.Fatalf("expected slot_taken, got %v", err)
	}

	doctor := identity.Actor{UserID: "du1", Email: "house@example.com", Role: "doctor"}
	if _, err := status.Execute(ctx, doctor, first.ID, "cancelled"); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	if _, err := book.Execute(ctx, patientActor("u2", "bia@example.com"), BookAppointmentInput{
		PatientEmail: "bia@example.com", DoctorID: "d1", Date: "2024-06-01", Time: "10:00",
	}); err != nil {
		t.Fatalf("expected rebook after cancel to succeed, got %v", err)
	}
}

func TestBook_ConcurrentSameSlotOnlyOneWins(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	repo.addDoctor("d1", "house@example.com", 0)
	emails := []string{"a@x.com", "b@x.com", "c@x.com", "d@x.com", "e@x.com"}
	for i, e := range emails {
		repo.addUser(string(rune('a'+i)), e)
	}

	book := NewBookAppointment(repo, nil)

	var wg sync.WaitGroup
	var mu sync.Mutex
	wins, conflicts := 0, 0
	for i, e := range emails {
		wg.Add(1)
		go func(id, email string) {
			defer wg.Done()
			_, err := book.Execute(ctx, patientActor(id, email), BookAppointmentInput{
				PatientEmail: email, DoctorID: "d1", Date: "2024-06-01", Time: "09:00",
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				wins++
			case httperr.IsBusiness(err, "slot_taken"):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(string(rune('a'+i)), e)
	}
	wg.Wait()

	if wins != 1 || conflicts != len(emails)-1 {
		t.Errorf("expected 1 win and %d conflicts, got %d/%d", len(emails)-1, wins, conflicts)
	}
}

func TestBook_Validation(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	repo.addUser("u1", "ana@example.com")
	repo.addDoctor("d1", "house@example.com", 0)
	book := NewBookAppointment(repo, nil)
	actor := patientActor("u1", "ana@example.com")

	cases := []struct {
		name string
		in   BookAppointmentInput
		code string
	}{
		{"missing time", BookAppointmentInput{PatientEmail: "ana@example.com", DoctorID: "d1", Date: "2024-06-01"}, "missing_fields"},
		{"bad date", BookAppointmentInput{PatientEmail: "ana@example.com", DoctorID: "d1", Date: "01/06/2024", Time: "10:00"}, "invalid_date"},
		{"bad type", BookAppointmentInput{PatientEmail: "ana@example.com", DoctorID: "d1", Date: "2024-06-01", Time: "10:00", Type: "house-call"}, "invalid_type"},
		{"long notes", BookAppointmentInput{PatientEmail: "ana@example.com", DoctorID: "d1", Date: "2024-06-01", Time: "10:00", Notes: strings.Repeat("n", 501)}, "notes_too_long"},
		{"unknown doctor", BookAppointmentInput{PatientEmail: "ana@example.com", DoctorID: "nope", Date: "2024-06-01", Time: "10:00"}, "doctor_not_found"},
		{"someone else", BookAppointmentInput{PatientEmail: "other@example.com", DoctorID: "d1", Date: "2024-06-01", Time: "10:00"}, "access_denied"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := book.Execute(ctx, actor, tc.in); !httperr.IsBusiness(err, tc.code) {
				t.Errorf("expected %s, got %v", tc.code, err)
			}
		})
	}

	if len(repo.appointments) != 0 {
		t.Errorf("expected no writes on validation failure, got %d", len(repo.appointments))
	}
}

func TestUpdateStatus_OwnScheduleOnly(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	repo.addUser("u1", "ana@example.com")
	d1 := repo.addDoctor("d1", "house@example.com", 0)
	repo.addDoctor("d2", "wilson@example.com", 0)
	h1 := repo.addHospital("h1", "general@example.com")
	repo.addHospital("h2", "mercy@example.com")
	d1.HospitalID = &h1.ID

	id := bookOne(t, repo)
	status := NewUpdateStatus(repo, nil)
	list := NewListAppointments(repo)

	otherDoctor := identity.Actor{UserID: "du2", Email: "wilson@example.com", Role: "doctor"}
	otherHospital := identity.Actor{UserID: "hu2", Email: "mercy@example.com", Role: "hospital"}
	ownHospital := identity.Actor{UserID: "hu1", Email: "general@example.com", Role: "hospital"}

	for _, actor := range []identity.Actor{otherDoctor, otherHospital} {
		if _, err := status.Execute(ctx, actor, id, "cancelled"); !httperr.IsBusiness(err, "access_denied") {
			t.Errorf("%s: expected access_denied, got %v", actor.Email, err)
		}
		if _, err := list.ForDoctor(ctx, actor, "d1", domain.ListFilter{}); !httperr.IsBusiness(err, "access_denied") {
			t.Errorf("%s: expected access_denied on list, got %v", actor.Email, err)
		}
	}
	if repo.appointments[id].Status != "booked" {
		t.Fatalf("expected untouched appointment, got %s", repo.appointments[id].Status)
	}

	out, err := status.Execute(ctx, ownHospital, id, "confirmed")
	if err != nil {
		t.Fatalf("linked hospital: %v", err)
	}
	if out.Status != "confirmed" {
		t.Errorf("expected confirmed, got %s", out.Status)
	}

	aps, err := list.ForDoctor(ctx, identity.Actor{UserID: "du1", Email: "house@example.com", Role: "doctor"}, "d1", domain.ListFilter{})
	if err != nil || len(aps) != 1 {
		t.Errorf("expected own schedule of 1, got %d (%v)", len(aps), err)
	}
}

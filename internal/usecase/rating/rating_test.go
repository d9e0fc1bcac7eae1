package rating

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/health-portal/internal/domain/identity"
	domain "github.com/BruksfildServices01/health-portal/internal/domain/rating"
	"github.com/BruksfildServices01/health-portal/internal/httperr"
	"github.com/BruksfildServices01/health-portal/internal/models"
)

// fakeRepo serializes transactions with one mutex, standing in for the
// row lock taken by LockTarget.
type fakeRepo struct {
	txMu       sync.Mutex
	targets    map[string]domain.Summary
	ratings    map[string]models.Rating
	aggregates int
}

func newFakeRepo(targets ...string) *fakeRepo {
	r := &fakeRepo{targets: map[string]domain.Summary{}, ratings: map[string]models.Rating{}}
	for _, t := range targets {
		r.targets[t] = domain.Summary{}
	}
	return r
}

func tkey(t domain.TargetType, id string) string { return string(t) + "/" + id }

func (r *fakeRepo) Transaction(_ context.Context, fn func(tx domain.Repository) error) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()
	return fn(r)
}

func (r *fakeRepo) LockTarget(ctx context.Context, t domain.TargetType, id string) error {
	if ok, _ := r.TargetExists(ctx, t, id); !ok {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *fakeRepo) TargetExists(_ context.Context, t domain.TargetType, id string) (bool, error) {
	_, ok := r.targets[tkey(t, id)]
	return ok, nil
}

func (r *fakeRepo) Upsert(_ context.Context, rt *models.Rating) error {
	r.ratings[rt.UserID+"|"+rt.TargetType+"|"+rt.TargetID] = *rt
	return nil
}

func (r *fakeRepo) ListForTarget(_ context.Context, t domain.TargetType, id string) ([]models.Rating, error) {
	var out []models.Rating
	for _, rt := range r.ratings {
		if rt.TargetType == string(t) && rt.TargetID == id {
			out = append(out, rt)
		}
	}
	return out, nil
}

func (r *fakeRepo) FindByUser(_ context.Context, userID string, t domain.TargetType, id string) (*models.Rating, error) {
	if rt, ok := r.ratings[userID+"|"+string(t)+"|"+id]; ok {
		return &rt, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) UpdateTargetAggregate(_ context.Context, t domain.TargetType, id string, s domain.Summary) error {
	r.aggregates++
	r.targets[tkey(t, id)] = s
	return nil
}

var _ domain.Repository = (*fakeRepo)(nil)

func rater(id string) identity.Actor {
	return identity.Actor{UserID: id, Email: id + "@example.com", Role: "user"}
}

func TestSubmit_ResubmissionOverwrites(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo("doctor/D1")
	uc := NewSubmitRating(repo, nil)

	if _, err := uc.Execute(ctx, rater("U1"), SubmitInput{TargetType: "doctor", TargetID: "D1", Rating: 4}); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	res, err := uc.Execute(ctx, rater("U1"), SubmitInput{TargetType: "doctor", TargetID: "D1", Rating: 2})
	if err != nil {
		t.Fatalf("second submit: %v", err)
	}

	if res.Total != 1 || res.Average != 2.0 {
		t.Errorf("expected 2.0 over 1, got %.1f over %d", res.Average, res.Total)
	}
	if got := repo.targets["doctor/D1"]; got.Average != 2.0 || got.Total != 1 {
		t.Errorf("expected target aggregate 2.0/1, got %+v", got)
	}
}

func TestSubmit_AggregateMatchesStoredRatings(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo("hospital/H1")
	uc := NewSubmitRating(repo, nil)

	for i, v := range []int{5, 4, 4} {
		if _, err := uc.Execute(ctx, rater(fmt.Sprintf("U%d", i)), SubmitInput{TargetType: "hospital", TargetID: "H1", Rating: v}); err != nil {
			t.Fatalf("submit: %v", err)
		}
	}

	if got := repo.targets["hospital/H1"]; got.Average != 4.3 || got.Total != 3 {
		t.Errorf("expected 4.3 over 3, got %+v", got)
	}
}

func TestSubmit_ConcurrentRatersLeaveConsistentAggregate(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo("doctor/D1")
	uc := NewSubmitRating(repo, nil)

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := uc.Execute(ctx, rater(fmt.Sprintf("U%d", i)), SubmitInput{TargetType: "doctor", TargetID: "D1", Rating: i%5 + 1})
			if err != nil {
				t.Errorf("submit: %v", err)
			}
		}(i)
	}
	wg.Wait()

	if got := repo.targets["doctor/D1"]; got.Total != 20 || got.Average != 3.0 {
		t.Errorf("expected 3.0 over 20, got %+v", got)
	}
}

func TestSubmit_Failures(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo("doctor/D1")
	uc := NewSubmitRating(repo, nil)

	cases := []struct {
		name  string
		actor identity.Actor
		in    SubmitInput
		code  string
	}{
		{"unknown target", rater("U1"), SubmitInput{TargetType: "doctor", TargetID: "D9", Rating: 3}, "target_not_found"},
		{"out of range", rater("U1"), SubmitInput{TargetType: "doctor", TargetID: "D1", Rating: 6}, "invalid_rating"},
		{"bad type", rater("U1"), SubmitInput{TargetType: "clinic", TargetID: "D1", Rating: 3}, "invalid_target_type"},
		{"someone else", rater("U1"), SubmitInput{UserID: "U2", TargetType: "doctor", TargetID: "D1", Rating: 3}, "access_denied"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := uc.Execute(ctx, tc.actor, tc.in); !httperr.IsBusiness(err, tc.code) {
				t.Errorf("expected %s, got %v", tc.code, err)
			}
		})
	}

	if repo.aggregates != 0 {
		t.Errorf("expected no aggregate writes, got %d", repo.aggregates)
	}
}

func TestGet_IncludesUserRating(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo("doctor/D1")
	submit := NewSubmitRating(repo, nil)
	_, _ = submit.Execute(ctx, rater("U1"), SubmitInput{TargetType: "doctor", TargetID: "D1", Rating: 5, Review: "great"})
	_, _ = submit.Execute(ctx, rater("U2"), SubmitInput{TargetType: "doctor", TargetID: "D1", Rating: 2})

	res, err := NewGetRatings(repo).Execute(ctx, "doctor", "D1", "U1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Ratings) != 2 || res.Average != 3.5 {
		t.Errorf("expected 2 ratings averaging 3.5, got %d/%.1f", len(res.Ratings), res.Average)
	}
	if res.UserRating == nil || res.UserRating.Review != "great" {
		t.Errorf("expected U1's rating, got %+v", res.UserRating)
	}

	if _, err := NewGetRatings(repo).Execute(ctx, "doctor", "D9", ""); !httperr.IsBusiness(err, "target_not_found") {
		t.Errorf("expected target_not_found, got %v", err)
	}
}

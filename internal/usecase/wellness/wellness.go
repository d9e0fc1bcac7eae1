package wellness

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/health-portal/internal/domain/identity"
	domain "github.com/BruksfildServices01/health-portal/internal/domain/wellness"
	"github.com/BruksfildServices01/health-portal/internal/httperr"
	"github.com/BruksfildServices01/health-portal/internal/models"
	"github.com/BruksfildServices01/health-portal/internal/timezone"
)

const DefaultMoodDays = 30

type Service struct {
	repo domain.Repository
}

func NewService(repo domain.Repository) *Service {
	return &Service{repo: repo}
}

// ======================================================
// JOURNALS
// ======================================================

func (s *Service) AddJournal(ctx context.Context, actor identity.Actor, title, content string) (*models.Journal, error) {
	if err := domain.ValidateJournal(title, content); err != nil {
		return nil, err
	}

	j := &models.Journal{
		UserID:  actor.UserID,
		Title:   strings.TrimSpace(title),
		Content: strings.TrimSpace(content),
	}
	if err := s.repo.CreateJournal(ctx, j); err != nil {
		return nil, err
	}
	return j, nil
}

func (s *Service) Journals(ctx context.Context, actor identity.Actor) ([]models.Journal, error) {
	return s.repo.ListJournals(ctx, actor.UserID)
}

// DeleteJournal answers not found for entries owned by someone else.
func (s *Service) DeleteJournal(ctx context.Context, actor identity.Actor, id string) error {
	j, err := s.repo.GetJournal(ctx, id)
	if err != nil {
		if httperr.IsNotFound(err) {
			return domain.ErrJournalNotFound
		}
		return err
	}
	if j.UserID != actor.UserID {
		return domain.ErrJournalNotFound
	}
	return s.repo.DeleteJournal(ctx, id)
}

// ======================================================
// MOODS
// ======================================================

func (s *Service) LogMood(ctx context.Context, actor identity.Actor, mood int, note string) (*models.Mood, error) {
	if err := domain.ValidateMood(mood, note); err != nil {
		return nil, err
	}

	m := &models.Mood{
		UserID: actor.UserID,
		Mood:   mood,
		Note:   strings.TrimSpace(note),
		Date:   timezone.Today(),
	}
	if err := s.repo.CreateMood(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Moods returns the entries of the last days days, today included.
func (s *Service) Moods(ctx context.Context, actor identity.Actor, days int) ([]models.Mood, error) {
	if days <= 0 {
		days = DefaultMoodDays
	}
	if days > 365 {
		return nil, httperr.ErrValidation("invalid_days", "days must be at most 365.")
	}

	from := timezone.Now().AddDate(0, 0, -(days - 1)).Format(timezone.DateLayout)
	return s.repo.ListMoodsSince(ctx, actor.UserID, from)
}

package wellness

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/BruksfildServices01/health-portal/internal/httperr"
	"github.com/BruksfildServices01/health-portal/internal/models"
)

const (
	MaxTitleLength    = 200
	MaxMoodNoteLength = 500
)

var ErrJournalNotFound = httperr.ErrNotFound("journal_not_found", "Journal entry not found.")

func ValidateMood(mood int, note string) error {
	if mood < 1 || mood > 5 {
		return httperr.ErrValidation("invalid_mood", "Mood must be between 1 and 5.")
	}
	if utf8.RuneCountInString(strings.TrimSpace(note)) > MaxMoodNoteLength {
		return httperr.ErrValidation("note_too_long", "Note must be at most 500 characters.")
	}
	return nil
}

func ValidateJournal(title, content string) error {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(content) == "" {
		return httperr.ErrValidation("missing_fields", "Title and content are required.")
	}
	if utf8.RuneCountInString(strings.TrimSpace(title)) > MaxTitleLength {
		return httperr.ErrValidation("title_too_long", "Title must be at most 200 characters.")
	}
	return nil
}

type Repository interface {
	CreateJournal(ctx context.Context, j *models.Journal) error
	ListJournals(ctx context.Context, userID string) ([]models.Journal, error)
	GetJournal(ctx context.Context, id string) (*models.Journal, error)
	DeleteJournal(ctx context.Context, id string) error

	CreateMood(ctx context.Context, m *models.Mood) error
	ListMoodsSince(ctx context.Context, userID, fromDate string) ([]models.Mood, error)
}

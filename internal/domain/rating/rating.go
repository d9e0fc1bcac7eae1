package rating

import (
	"math"
	"unicode/utf8"

	"github.com/BruksfildServices01/health-portal/internal/httperr"
)

type TargetType string

const (
	TargetDoctor   TargetType = "doctor"
	TargetHospital TargetType = "hospital"
)

const (
	MinValue        = 1
	MaxValue        = 5
	MaxReviewLength = 500
)

var ErrTargetNotFound = httperr.ErrNotFound("target_not_found", "The doctor or hospital being rated was not found.")

func ParseTargetType(s string) (TargetType, error) {
	switch t := TargetType(s); t {
	case TargetDoctor, TargetHospital:
		return t, nil
	}
	return "", httperr.ErrValidation("invalid_target_type", "targetType must be doctor or hospital.")
}

func Validate(value int, review string) error {
	if value < MinValue || value > MaxValue {
		return httperr.ErrValidation("invalid_rating", "Rating must be an integer between 1 and 5.")
	}
	if utf8.RuneCountInString(review) > MaxReviewLength {
		return httperr.ErrValidation("review_too_long", "Review must be at most 500 characters.")
	}
	return nil
}

type Summary struct {
	Average float64 `json:"averageRating"`
	Total   int     `json:"totalRatings"`
}

// Summarize returns the mean rounded to one decimal and the count.
func Summarize(values []int) Summary {
	if len(values) == 0 {
		return Summary{}
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	mean := float64(sum) / float64(len(values))
	return Summary{
		Average: math.Round(mean*10) / 10,
		Total:   len(values),
	}
}

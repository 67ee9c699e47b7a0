package store

import (
	"fmt"
	"strings"

	"github.com/reelgraph/reelgraph/internal/model"
)

// ValidateFilm checks the field invariants every backend enforces on film
// writes. Uniqueness of (name, releaseDate) is checked separately against
// the backend's own state.
func ValidateFilm(in *model.Film) error {
	switch {
	case strings.TrimSpace(in.Name) == "":
		return fmt.Errorf("film name must not be empty: %w", model.ErrValidation)
	case len([]rune(in.Description)) > 200:
		return fmt.Errorf("film description exceeds 200 characters: %w", model.ErrValidation)
	case in.Duration <= 0:
		return fmt.Errorf("film duration must be positive: %w", model.ErrValidation)
	case model.Day(in.ReleaseDate).Before(model.EarliestReleaseDate):
		return fmt.Errorf("release date precedes 1895-12-28: %w", model.ErrValidation)
	case model.Day(in.ReleaseDate).After(model.Today()):
		return fmt.Errorf("release date is in the future: %w", model.ErrValidation)
	}
	return nil
}

// DisplayName returns the name a backend persists for a user: the supplied
// name, or the login when the name is empty or whitespace-only. Every write
// path goes through this so the drivers stay interchangeable.
func DisplayName(in *model.User) string {
	if strings.TrimSpace(in.Name) == "" {
		return in.Login
	}
	return in.Name
}

// ValidateUser checks the field invariants every backend enforces on user
// writes. Email uniqueness is checked separately.
func ValidateUser(in *model.User) error {
	switch {
	case strings.TrimSpace(in.Email) == "" || !strings.Contains(in.Email, "@"):
		return fmt.Errorf("email must contain @: %w", model.ErrValidation)
	case strings.TrimSpace(in.Login) == "" || strings.ContainsAny(in.Login, " \t"):
		return fmt.Errorf("login must be non-empty without whitespace: %w", model.ErrValidation)
	case model.Day(in.Birthday).After(model.Today()):
		return fmt.Errorf("birthday is in the future: %w", model.ErrValidation)
	}
	return nil
}

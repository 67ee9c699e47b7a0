// Package services holds the domain logic between HTTP handlers and the
// store. Services resolve reference data, enforce cross-entity rules and
// translate between request shapes and store calls; field validation and
// uniqueness live in the store contract.
package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/reelgraph/reelgraph/internal/model"
	"github.com/reelgraph/reelgraph/internal/store"
)

type FilmService struct {
	store store.Store
	log   zerolog.Logger
}

func NewFilmService(s store.Store, log zerolog.Logger) *FilmService {
	return &FilmService{store: s, log: log}
}

func (s *FilmService) ListFilms(ctx context.Context) ([]*model.Film, error) {
	return s.store.Films().List(ctx)
}

func (s *FilmService) GetFilm(ctx context.Context, id int64) (*model.Film, error) {
	return s.store.Films().GetByID(ctx, id)
}

// CreateFilm resolves the referenced MPA rating and genres, creates the film
// and attaches the surviving genre links. Genre ids that do not exist are
// logged and dropped; the call fails only when every supplied id is unknown.
func (s *FilmService) CreateFilm(ctx context.Context, in *model.Film) (*model.Film, error) {
	if err := s.resolveRating(ctx, in); err != nil {
		return nil, err
	}
	genreIDs, err := s.resolveGenres(ctx, in.Genres)
	if err != nil {
		return nil, err
	}
	created, err := s.store.Films().Create(ctx, in)
	if err != nil {
		return nil, err
	}
	if len(genreIDs) > 0 {
		if err := s.store.Films().AttachGenres(ctx, created.ID, genreIDs); err != nil {
			return nil, err
		}
		return s.store.Films().GetByID(ctx, created.ID)
	}
	return created, nil
}

// UpdateFilm replaces the mutable fields of an existing film and links any
// genres in the payload. Linking is append-only: genres already attached
// stay attached even when absent from the update.
func (s *FilmService) UpdateFilm(ctx context.Context, in *model.Film) (*model.Film, error) {
	if err := s.resolveRating(ctx, in); err != nil {
		return nil, err
	}
	genreIDs, err := s.resolveGenres(ctx, in.Genres)
	if err != nil {
		return nil, err
	}
	updated, err := s.store.Films().Update(ctx, in)
	if err != nil {
		return nil, err
	}
	if len(genreIDs) > 0 {
		if err := s.store.Films().AttachGenres(ctx, updated.ID, genreIDs); err != nil {
			return nil, err
		}
		return s.store.Films().GetByID(ctx, updated.ID)
	}
	return updated, nil
}

// AddLike records that userID liked filmID. Both entities must exist.
func (s *FilmService) AddLike(ctx context.Context, filmID, userID int64) error {
	if _, err := s.store.Users().GetByID(ctx, userID); err != nil {
		return err
	}
	if err := s.store.Films().AddLike(ctx, filmID, userID); err != nil {
		return err
	}
	s.log.Debug().Int64("film_id", filmID).Int64("user_id", userID).Msg("like added")
	return nil
}

// RemoveLike withdraws a like. Removing an absent like succeeds silently;
// unknown film or user ids still fail.
func (s *FilmService) RemoveLike(ctx context.Context, filmID, userID int64) error {
	if _, err := s.store.Users().GetByID(ctx, userID); err != nil {
		return err
	}
	return s.store.Films().RemoveLike(ctx, filmID, userID)
}

// PopularFilms returns up to count films ranked by like count.
func (s *FilmService) PopularFilms(ctx context.Context, count int) ([]*model.Film, error) {
	if count <= 0 {
		return nil, fmt.Errorf("count must be positive: %w", model.ErrValidation)
	}
	return s.store.Films().Popular(ctx, count)
}

// resolveRating replaces a supplied rating reference with the full record,
// failing when the id is unknown. A nil rating passes through.
func (s *FilmService) resolveRating(ctx context.Context, in *model.Film) error {
	if in.MPA == nil {
		return nil
	}
	r, err := s.store.Ratings().GetByID(ctx, in.MPA.ID)
	if err != nil {
		return err
	}
	in.MPA = r
	return nil
}

// resolveGenres filters the supplied genre references down to ids that exist.
// Unknown ids are dropped with a warning; if every id was unknown the call
// fails with ErrNotFound.
func (s *FilmService) resolveGenres(ctx context.Context, refs []model.Genre) ([]int64, error) {
	if len(refs) == 0 {
		return nil, nil
	}
	valid := make([]int64, 0, len(refs))
	seen := make(map[int64]bool, len(refs))
	for _, g := range refs {
		if seen[g.ID] {
			continue
		}
		seen[g.ID] = true
		if _, err := s.store.Genres().GetByID(ctx, g.ID); err != nil {
			s.log.Warn().Int64("genre_id", g.ID).Msg("dropping unknown genre reference")
			continue
		}
		valid = append(valid, g.ID)
	}
	if len(valid) == 0 {
		return nil, fmt.Errorf("none of the referenced genres exist: %w", model.ErrNotFound)
	}
	return valid, nil
}

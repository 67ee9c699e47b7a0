package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/rs/zerolog"

	"github.com/reelgraph/reelgraph/internal/model"
	"github.com/reelgraph/reelgraph/internal/store"
	"github.com/reelgraph/reelgraph/internal/store/memory"
)

func testDate(y int, m time.Month, d int) strfmt.Date {
	return strfmt.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

func newFilmService(t *testing.T) (*FilmService, store.Store) {
	t.Helper()
	s := memory.New()
	return NewFilmService(s, zerolog.Nop()), s
}

func seedUser(t *testing.T, s store.Store, login string) *model.User {
	t.Helper()
	u, err := s.Users().Create(context.Background(), &model.User{
		Email:    login + "@example.test",
		Login:    login,
		Birthday: testDate(1990, time.June, 1),
	})
	if err != nil {
		t.Fatalf("seed user %q: %v", login, err)
	}
	return u
}

func TestFilmService_CreateResolvesRatingAndGenres(t *testing.T) {
	svc, _ := newFilmService(t)
	ctx := context.Background()

	created, err := svc.CreateFilm(ctx, &model.Film{
		Name:        "Memento",
		ReleaseDate: testDate(2000, time.September, 5),
		Duration:    113,
		MPA:         &model.Rating{ID: 4},
		Genres:      []model.Genre{{ID: 4}, {ID: 2}},
	})
	if err != nil {
		t.Fatalf("CreateFilm: %v", err)
	}
	if created.MPA == nil || created.MPA.Name != "R" {
		t.Fatalf("rating not resolved: %+v", created.MPA)
	}
	if len(created.Genres) != 2 || created.Genres[0].Name != "Drama" || created.Genres[1].Name != "Thriller" {
		t.Fatalf("genres not resolved: %+v", created.Genres)
	}
}

func TestFilmService_CreateUnknownRating(t *testing.T) {
	svc, _ := newFilmService(t)

	_, err := svc.CreateFilm(context.Background(), &model.Film{
		Name:        "Memento",
		ReleaseDate: testDate(2000, time.September, 5),
		Duration:    113,
		MPA:         &model.Rating{ID: 42},
	})
	if !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("unknown rating: err=%v, want ErrNotFound", err)
	}
}

func TestFilmService_CreateDropsUnknownGenres(t *testing.T) {
	svc, _ := newFilmService(t)
	ctx := context.Background()

	created, err := svc.CreateFilm(ctx, &model.Film{
		Name:        "Clerks",
		ReleaseDate: testDate(1994, time.October, 19),
		Duration:    92,
		Genres:      []model.Genre{{ID: 1}, {ID: 77}},
	})
	if err != nil {
		t.Fatalf("CreateFilm: %v", err)
	}
	if len(created.Genres) != 1 || created.Genres[0].ID != 1 {
		t.Fatalf("genres = %+v, want unknown id dropped", created.Genres)
	}

	// All-unknown genre references are a lookup failure, not a silent drop.
	_, err = svc.CreateFilm(ctx, &model.Film{
		Name:        "Clerks II",
		ReleaseDate: testDate(2006, time.July, 21),
		Duration:    97,
		Genres:      []model.Genre{{ID: 77}, {ID: 88}},
	})
	if !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("all genres unknown: err=%v, want ErrNotFound", err)
	}
}

func TestFilmService_Likes(t *testing.T) {
	svc, s := newFilmService(t)
	ctx := context.Background()
	u := seedUser(t, s, "viewer")

	f, err := svc.CreateFilm(ctx, &model.Film{
		Name:        "Drive",
		ReleaseDate: testDate(2011, time.September, 16),
		Duration:    100,
	})
	if err != nil {
		t.Fatalf("CreateFilm: %v", err)
	}

	if err := svc.AddLike(ctx, f.ID, u.ID); err != nil {
		t.Fatalf("AddLike: %v", err)
	}
	if err := svc.AddLike(ctx, f.ID, u.ID); !errors.Is(err, model.ErrConflict) {
		t.Fatalf("duplicate AddLike: err=%v, want ErrConflict", err)
	}
	// Unknown user is rejected before the store is touched.
	if err := svc.AddLike(ctx, f.ID, 9999); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("AddLike unknown user: err=%v, want ErrNotFound", err)
	}

	if err := svc.RemoveLike(ctx, f.ID, u.ID); err != nil {
		t.Fatalf("RemoveLike: %v", err)
	}
	if err := svc.RemoveLike(ctx, f.ID, u.ID); err != nil {
		t.Fatalf("RemoveLike absent: %v", err)
	}
	if err := svc.RemoveLike(ctx, 9999, u.ID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("RemoveLike unknown film: err=%v, want ErrNotFound", err)
	}
}

func TestFilmService_PopularFilms(t *testing.T) {
	svc, s := newFilmService(t)
	ctx := context.Background()

	u := seedUser(t, s, "critic")
	quiet, err := svc.CreateFilm(ctx, &model.Film{Name: "quiet", ReleaseDate: testDate(2001, time.May, 1), Duration: 90})
	if err != nil {
		t.Fatalf("CreateFilm: %v", err)
	}
	hit, err := svc.CreateFilm(ctx, &model.Film{Name: "hit", ReleaseDate: testDate(2002, time.May, 1), Duration: 90})
	if err != nil {
		t.Fatalf("CreateFilm: %v", err)
	}
	if err := svc.AddLike(ctx, hit.ID, u.ID); err != nil {
		t.Fatalf("AddLike: %v", err)
	}

	top, err := svc.PopularFilms(ctx, 5)
	if err != nil || len(top) != 2 || top[0].ID != hit.ID || top[1].ID != quiet.ID {
		t.Fatalf("PopularFilms: got=%v err=%v", top, err)
	}

	if _, err := svc.PopularFilms(ctx, 0); !errors.Is(err, model.ErrValidation) {
		t.Fatalf("PopularFilms(0): err=%v, want ErrValidation", err)
	}
	if _, err := svc.PopularFilms(ctx, -3); !errors.Is(err, model.ErrValidation) {
		t.Fatalf("PopularFilms(-3): err=%v, want ErrValidation", err)
	}
}

func TestFilmService_UpdateAppendsGenres(t *testing.T) {
	svc, _ := newFilmService(t)
	ctx := context.Background()

	created, err := svc.CreateFilm(ctx, &model.Film{
		Name:        "Snatch",
		ReleaseDate: testDate(2000, time.August, 23),
		Duration:    104,
		Genres:      []model.Genre{{ID: 1}},
	})
	if err != nil {
		t.Fatalf("CreateFilm: %v", err)
	}

	created.Genres = []model.Genre{{ID: 6}}
	updated, err := svc.UpdateFilm(ctx, created)
	if err != nil {
		t.Fatalf("UpdateFilm: %v", err)
	}
	ids := make(map[int64]bool)
	for _, g := range updated.Genres {
		ids[g.ID] = true
	}
	// Genres from earlier writes stay linked; the update only adds.
	if !ids[6] || !ids[1] {
		t.Fatalf("genres after update = %+v, want Comedy and Action linked", updated.Genres)
	}
}

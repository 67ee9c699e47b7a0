// Package storetest holds the executable form of the store contract. Every
// backend runs the same suite so the service layer can treat them as
// interchangeable.
package storetest

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/go-openapi/strfmt"

	"github.com/reelgraph/reelgraph/internal/model"
	"github.com/reelgraph/reelgraph/internal/store"
)

// Run exercises the compliance suite against a store.Store implementation.
// makeStore must return a clean, isolated store per invocation.
func Run(t *testing.T, makeStore func(t *testing.T) store.Store) {
	t.Helper()

	t.Run("ReferenceData", func(t *testing.T) { testReferenceData(t, makeStore(t)) })
	t.Run("FilmRoundTrip", func(t *testing.T) { testFilmRoundTrip(t, makeStore(t)) })
	t.Run("FilmValidation", func(t *testing.T) { testFilmValidation(t, makeStore(t)) })
	t.Run("FilmDuplicatePair", func(t *testing.T) { testFilmDuplicatePair(t, makeStore(t)) })
	t.Run("FilmGenres", func(t *testing.T) { testFilmGenres(t, makeStore(t)) })
	t.Run("Likes", func(t *testing.T) { testLikes(t, makeStore(t)) })
	t.Run("Popular", func(t *testing.T) { testPopular(t, makeStore(t)) })
	t.Run("UserRoundTrip", func(t *testing.T) { testUserRoundTrip(t, makeStore(t)) })
	t.Run("UserValidation", func(t *testing.T) { testUserValidation(t, makeStore(t)) })
	t.Run("Friendship", func(t *testing.T) { testFriendship(t, makeStore(t)) })
}

func date(y int, m time.Month, d int) strfmt.Date {
	return strfmt.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

func newFilm(name string, released strfmt.Date) *model.Film {
	return &model.Film{Name: name, Description: "about " + name, ReleaseDate: released, Duration: 120}
}

func newUser(tag string) *model.User {
	return &model.User{
		Email:    tag + "@example.test",
		Login:    tag,
		Birthday: date(1990, time.March, 14),
	}
}

func mustCreateFilm(t *testing.T, s store.Store, f *model.Film) *model.Film {
	t.Helper()
	out, err := s.Films().Create(context.Background(), f)
	if err != nil {
		t.Fatalf("CreateFilm %q: %v", f.Name, err)
	}
	return out
}

func mustCreateUser(t *testing.T, s store.Store, u *model.User) *model.User {
	t.Helper()
	out, err := s.Users().Create(context.Background(), u)
	if err != nil {
		t.Fatalf("CreateUser %q: %v", u.Login, err)
	}
	return out
}

func testReferenceData(t *testing.T, s store.Store) {
	ctx := context.Background()

	genres, err := s.Genres().List(ctx)
	if err != nil || len(genres) != 6 {
		t.Fatalf("ListGenres: n=%d err=%v", len(genres), err)
	}
	if genres[0].ID != 1 || genres[0].Name != "Comedy" {
		t.Fatalf("ListGenres: first = %+v", genres[0])
	}
	if _, err := s.Genres().GetByID(ctx, 999); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("GetGenre(999): err=%v, want ErrNotFound", err)
	}

	ratings, err := s.Ratings().List(ctx)
	if err != nil || len(ratings) != 5 {
		t.Fatalf("ListRatings: n=%d err=%v", len(ratings), err)
	}
	r, err := s.Ratings().GetByID(ctx, 3)
	if err != nil || r.Name != "PG-13" {
		t.Fatalf("GetRating(3): got=%+v err=%v", r, err)
	}
	if _, err := s.Ratings().GetByID(ctx, 999); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("GetRating(999): err=%v, want ErrNotFound", err)
	}
}

func testFilmRoundTrip(t *testing.T, s store.Store) {
	ctx := context.Background()

	created := mustCreateFilm(t, s, &model.Film{
		Name:        "Arrival",
		Description: "first contact",
		ReleaseDate: date(2016, time.November, 11),
		Duration:    116,
		MPA:         &model.Rating{ID: 3},
	})
	if created.ID == 0 {
		t.Fatal("CreateFilm: id not assigned")
	}
	if created.MPA == nil || created.MPA.Name != "PG-13" {
		t.Fatalf("CreateFilm: MPA not resolved, got %+v", created.MPA)
	}
	// Fresh films carry empty, non-nil genre and like collections.
	if created.Genres == nil || len(created.Genres) != 0 {
		t.Fatalf("CreateFilm: genres = %v, want empty", created.Genres)
	}
	if created.Likes == nil || len(created.Likes) != 0 {
		t.Fatalf("CreateFilm: likes = %v, want empty", created.Likes)
	}

	got, err := s.Films().GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetFilm: %v", err)
	}
	if got.Name != "Arrival" || got.Duration != 116 || !model.SameDay(got.ReleaseDate, created.ReleaseDate) {
		t.Fatalf("GetFilm: got %+v", got)
	}

	got.Description = "aliens and linguistics"
	got.Duration = 118
	updated, err := s.Films().Update(ctx, got)
	if err != nil {
		t.Fatalf("UpdateFilm: %v", err)
	}
	if updated.Description != "aliens and linguistics" || updated.Duration != 118 {
		t.Fatalf("UpdateFilm: got %+v", updated)
	}

	missing := *got
	missing.ID = 9999
	if _, err := s.Films().Update(ctx, &missing); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("UpdateFilm(9999): err=%v, want ErrNotFound", err)
	}
	if _, err := s.Films().GetByID(ctx, 9999); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("GetFilm(9999): err=%v, want ErrNotFound", err)
	}

	all, err := s.Films().List(ctx)
	if err != nil || len(all) != 1 {
		t.Fatalf("ListFilms: n=%d err=%v", len(all), err)
	}
}

func testFilmValidation(t *testing.T, s store.Store) {
	ctx := context.Background()
	long := make([]rune, 201)
	for i := range long {
		long[i] = 'x'
	}
	cases := []struct {
		name string
		film *model.Film
	}{
		{"EmptyName", &model.Film{Name: "  ", ReleaseDate: date(2000, time.January, 1), Duration: 90}},
		{"LongDescription", &model.Film{Name: "a", Description: string(long), ReleaseDate: date(2000, time.January, 1), Duration: 90}},
		{"ZeroDuration", &model.Film{Name: "a", ReleaseDate: date(2000, time.January, 1), Duration: 0}},
		{"NegativeDuration", &model.Film{Name: "a", ReleaseDate: date(2000, time.January, 1), Duration: -5}},
		{"BeforeCinema", &model.Film{Name: "a", ReleaseDate: date(1895, time.December, 27), Duration: 90}},
		{"FutureRelease", &model.Film{Name: "a", ReleaseDate: strfmt.Date(time.Now().UTC().AddDate(1, 0, 0)), Duration: 90}},
	}
	for _, tc := range cases {
		if _, err := s.Films().Create(ctx, tc.film); !errors.Is(err, model.ErrValidation) {
			t.Fatalf("%s: err=%v, want ErrValidation", tc.name, err)
		}
	}

	// The boundary date itself is legal.
	if _, err := s.Films().Create(ctx, newFilm("first show", date(1895, time.December, 28))); err != nil {
		t.Fatalf("CreateFilm on 1895-12-28: %v", err)
	}
}

func testFilmDuplicatePair(t *testing.T, s store.Store) {
	ctx := context.Background()
	released := date(2010, time.July, 16)
	mustCreateFilm(t, s, newFilm("Inception", released))

	if _, err := s.Films().Create(ctx, newFilm("Inception", released)); !errors.Is(err, model.ErrConflict) {
		t.Fatalf("duplicate (name, releaseDate): err=%v, want ErrConflict", err)
	}
	// Same name on a different day is a re-release, not a duplicate.
	if _, err := s.Films().Create(ctx, newFilm("Inception", date(2020, time.August, 12))); err != nil {
		t.Fatalf("same name, different date: %v", err)
	}
}

func testFilmGenres(t *testing.T, s store.Store) {
	ctx := context.Background()
	f := mustCreateFilm(t, s, newFilm("Heat", date(1995, time.December, 15)))

	if err := s.Films().AttachGenres(ctx, f.ID, []int64{4, 2}); err != nil {
		t.Fatalf("AttachGenres: %v", err)
	}
	// Re-attaching an already linked genre is an upsert, not an error.
	if err := s.Films().AttachGenres(ctx, f.ID, []int64{2, 6}); err != nil {
		t.Fatalf("AttachGenres again: %v", err)
	}
	got, err := s.Films().GetByID(ctx, f.ID)
	if err != nil {
		t.Fatalf("GetFilm: %v", err)
	}
	ids := make([]int64, 0, len(got.Genres))
	for _, g := range got.Genres {
		ids = append(ids, g.ID)
	}
	if fmt.Sprint(ids) != fmt.Sprint([]int64{2, 4, 6}) {
		t.Fatalf("genres after attach = %v, want [2 4 6]", ids)
	}

	if err := s.Films().AttachGenres(ctx, f.ID, []int64{999}); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("AttachGenres(999): err=%v, want ErrNotFound", err)
	}
	if err := s.Films().AttachGenres(ctx, 9999, []int64{1}); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("AttachGenres to missing film: err=%v, want ErrNotFound", err)
	}
}

func testLikes(t *testing.T, s store.Store) {
	ctx := context.Background()
	f := mustCreateFilm(t, s, newFilm("Alien", date(1979, time.May, 25)))
	u := mustCreateUser(t, s, newUser("ripley"))

	if err := s.Films().AddLike(ctx, f.ID, u.ID); err != nil {
		t.Fatalf("AddLike: %v", err)
	}
	if err := s.Films().AddLike(ctx, f.ID, u.ID); !errors.Is(err, model.ErrConflict) {
		t.Fatalf("duplicate AddLike: err=%v, want ErrConflict", err)
	}
	likes, err := s.Films().Likes(ctx, f.ID)
	if err != nil || len(likes) != 1 || likes[0] != u.ID {
		t.Fatalf("Likes after duplicate add: got=%v err=%v", likes, err)
	}

	if err := s.Films().RemoveLike(ctx, f.ID, u.ID); err != nil {
		t.Fatalf("RemoveLike: %v", err)
	}
	// Removing again is a silent success.
	if err := s.Films().RemoveLike(ctx, f.ID, u.ID); err != nil {
		t.Fatalf("RemoveLike absent: %v", err)
	}
	likes, err = s.Films().Likes(ctx, f.ID)
	if err != nil || len(likes) != 0 {
		t.Fatalf("Likes after remove: got=%v err=%v", likes, err)
	}

	if err := s.Films().AddLike(ctx, 9999, u.ID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("AddLike to missing film: err=%v, want ErrNotFound", err)
	}
}

func testPopular(t *testing.T, s store.Store) {
	ctx := context.Background()

	var films []*model.Film
	for i := 0; i < 4; i++ {
		films = append(films, mustCreateFilm(t, s, newFilm(fmt.Sprintf("film-%d", i), date(2001+i, time.June, 1))))
	}
	var viewers []*model.User
	for i := 0; i < 3; i++ {
		viewers = append(viewers, mustCreateUser(t, s, newUser(fmt.Sprintf("viewer-%d", i))))
	}

	// films[2] gets 3 likes, films[0] gets 1, films[1] and films[3] none.
	for _, v := range viewers {
		if err := s.Films().AddLike(ctx, films[2].ID, v.ID); err != nil {
			t.Fatalf("AddLike: %v", err)
		}
	}
	if err := s.Films().AddLike(ctx, films[0].ID, viewers[0].ID); err != nil {
		t.Fatalf("AddLike: %v", err)
	}

	top, err := s.Films().Popular(ctx, 10)
	if err != nil {
		t.Fatalf("Popular: %v", err)
	}
	// Zero-like films still rank, tie-broken by ascending id.
	want := []int64{films[2].ID, films[0].ID, films[1].ID, films[3].ID}
	if len(top) != 4 {
		t.Fatalf("Popular: n=%d, want 4", len(top))
	}
	for i, f := range top {
		if f.ID != want[i] {
			t.Fatalf("Popular[%d] = %d, want %d (full order %v)", i, f.ID, want[i], want)
		}
	}

	top, err = s.Films().Popular(ctx, 2)
	if err != nil || len(top) != 2 || top[0].ID != films[2].ID || top[1].ID != films[0].ID {
		t.Fatalf("Popular(2): got=%v err=%v", top, err)
	}

	if _, err := s.Films().Popular(ctx, 0); !errors.Is(err, model.ErrValidation) {
		t.Fatalf("Popular(0): err=%v, want ErrValidation", err)
	}
}

func testUserRoundTrip(t *testing.T, s store.Store) {
	ctx := context.Background()

	created := mustCreateUser(t, s, &model.User{
		Email:    "ada@example.test",
		Login:    "ada",
		Birthday: date(1985, time.December, 10),
	})
	if created.ID == 0 {
		t.Fatal("CreateUser: id not assigned")
	}
	// Display name defaults to login when omitted.
	if created.Name != "ada" {
		t.Fatalf("CreateUser: name = %q, want login fallback", created.Name)
	}
	if created.Friends == nil || len(created.Friends) != 0 {
		t.Fatalf("CreateUser: friends = %v, want empty", created.Friends)
	}

	got, err := s.Users().GetByEmail(ctx, "ada@example.test")
	if err != nil || got.ID != created.ID {
		t.Fatalf("GetByEmail: got=%+v err=%v", got, err)
	}
	if _, err := s.Users().GetByEmail(ctx, "nobody@example.test"); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("GetByEmail missing: err=%v, want ErrNotFound", err)
	}

	got.Name = "Ada L."
	updated, err := s.Users().Update(ctx, got)
	if err != nil || updated.Name != "Ada L." {
		t.Fatalf("UpdateUser: got=%+v err=%v", updated, err)
	}
	// A whitespace-only name falls back to the login too, on update as well
	// as create.
	updated.Name = "   "
	updated, err = s.Users().Update(ctx, updated)
	if err != nil || updated.Name != "ada" {
		t.Fatalf("UpdateUser blank name: got=%+v err=%v", updated, err)
	}

	blank := newUser("ada2")
	blank.Name = " \t "
	second, err := s.Users().Create(ctx, blank)
	if err != nil || second.Name != "ada2" {
		t.Fatalf("CreateUser whitespace name: got=%+v err=%v", second, err)
	}
	dup := &model.User{Email: "ada@example.test", Login: "other", Birthday: date(1990, time.May, 1)}
	if _, err := s.Users().Create(ctx, dup); !errors.Is(err, model.ErrConflict) {
		t.Fatalf("duplicate email: err=%v, want ErrConflict", err)
	}

	all, err := s.Users().List(ctx)
	if err != nil || len(all) != 2 {
		t.Fatalf("ListUsers: n=%d err=%v", len(all), err)
	}
}

func testUserValidation(t *testing.T, s store.Store) {
	ctx := context.Background()
	cases := []struct {
		name string
		user *model.User
	}{
		{"NoAt", &model.User{Email: "nope.example.test", Login: "nope", Birthday: date(1990, time.January, 1)}},
		{"EmptyEmail", &model.User{Email: " ", Login: "nope", Birthday: date(1990, time.January, 1)}},
		{"EmptyLogin", &model.User{Email: "a@example.test", Login: "", Birthday: date(1990, time.January, 1)}},
		{"LoginWithSpace", &model.User{Email: "a@example.test", Login: "no pe", Birthday: date(1990, time.January, 1)}},
		{"FutureBirthday", &model.User{Email: "a@example.test", Login: "nope", Birthday: strfmt.Date(time.Now().UTC().AddDate(1, 0, 0))}},
	}
	for _, tc := range cases {
		if _, err := s.Users().Create(ctx, tc.user); !errors.Is(err, model.ErrValidation) {
			t.Fatalf("%s: err=%v, want ErrValidation", tc.name, err)
		}
	}
}

func testFriendship(t *testing.T, s store.Store) {
	ctx := context.Background()
	alice := mustCreateUser(t, s, newUser("alice"))
	bob := mustCreateUser(t, s, newUser("bob"))

	added, err := s.Users().TryAddFriendship(ctx, alice.ID, bob.ID)
	if err != nil || !added {
		t.Fatalf("TryAddFriendship: added=%v err=%v", added, err)
	}
	// Second add of the same edge reports false without error.
	added, err = s.Users().TryAddFriendship(ctx, alice.ID, bob.ID)
	if err != nil || added {
		t.Fatalf("TryAddFriendship repeat: added=%v err=%v", added, err)
	}

	// Edges are directed: bob has not added alice.
	got, err := s.Users().Friends(ctx, alice.ID)
	if err != nil || len(got) != 1 || got[0] != bob.ID {
		t.Fatalf("Friends(alice): got=%v err=%v", got, err)
	}
	got, err = s.Users().Friends(ctx, bob.ID)
	if err != nil || len(got) != 0 {
		t.Fatalf("Friends(bob): got=%v err=%v, want empty", got, err)
	}

	if _, err := s.Users().TryAddFriendship(ctx, alice.ID, alice.ID); !errors.Is(err, model.ErrValidation) {
		t.Fatalf("self friendship: err=%v, want ErrValidation", err)
	}
	if _, err := s.Users().TryAddFriendship(ctx, alice.ID, 9999); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("friendship with missing user: err=%v, want ErrNotFound", err)
	}

	removed, err := s.Users().RemoveFriendship(ctx, alice.ID, bob.ID)
	if err != nil || !removed {
		t.Fatalf("RemoveFriendship: removed=%v err=%v", removed, err)
	}
	removed, err = s.Users().RemoveFriendship(ctx, alice.ID, bob.ID)
	if err != nil || removed {
		t.Fatalf("RemoveFriendship repeat: removed=%v err=%v", removed, err)
	}
}

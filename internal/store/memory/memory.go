// Package memory provides a transient in-process store.Store backed by
// lock-protected maps. It has no external constraint engine, so every
// invariant the relational backends delegate to the schema (uniqueness,
// referential integrity, id assignment) is enforced here explicitly.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/reelgraph/reelgraph/internal/model"
	"github.com/reelgraph/reelgraph/internal/store"
)

type memStore struct {
	films   *films
	users   *users
	genres  *genres
	ratings *ratings
}

// New constructs an empty store seeded with the default genre and rating
// reference data.
func New() store.Store {
	g := &genres{byID: map[int64]model.Genre{}}
	for _, gen := range store.DefaultGenres() {
		g.byID[gen.ID] = *gen
	}
	r := &ratings{byID: map[int64]model.Rating{}}
	for _, rat := range store.DefaultRatings() {
		r.byID[rat.ID] = *rat
	}
	return &memStore{
		films:   &films{byID: map[int64]*filmRec{}, genres: g, ratings: r},
		users:   &users{byID: map[int64]*userRec{}},
		genres:  g,
		ratings: r,
	}
}

func (s *memStore) Films() store.Films     { return s.films }
func (s *memStore) Users() store.Users     { return s.users }
func (s *memStore) Genres() store.Genres   { return s.genres }
func (s *memStore) Ratings() store.Ratings { return s.ratings }

// HealthPing implements health.HealthPinger; the in-process store is always
// reachable.
func (s *memStore) HealthPing(ctx context.Context) error { return ctx.Err() }

// --- Films ---

type filmRec struct {
	film     model.Film // Genres and Likes are kept aside, not on the struct
	genreIDs []int64    // attach order, deduplicated
	likes    map[int64]struct{}
}

type films struct {
	mu      sync.RWMutex
	byID    map[int64]*filmRec
	nextID  int64
	genres  *genres  // reference data, immutable after New
	ratings *ratings // reference data, immutable after New
}

// resolveRating swaps a rating reference for the full seeded record, the way
// the SQL backends materialize it through the ratings join.
func (f *films) resolveRating(r *model.Rating) (*model.Rating, error) {
	if r == nil {
		return nil, nil
	}
	full, ok := f.ratings.byID[r.ID]
	if !ok {
		return nil, fmt.Errorf("MPA rating %d: %w", r.ID, model.ErrNotFound)
	}
	return cloneRating(&full), nil
}

func (f *films) List(ctx context.Context) ([]*model.Film, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]*model.Film, 0, len(f.byID))
	for _, rec := range f.byID {
		out = append(out, f.compose(rec))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *films) Create(ctx context.Context, in *model.Film) (*model.Film, error) {
	if err := store.ValidateFilm(in); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, rec := range f.byID {
		if rec.film.Name == in.Name && model.SameDay(rec.film.ReleaseDate, in.ReleaseDate) {
			return nil, fmt.Errorf("film %q released %s already exists: %w", in.Name, in.ReleaseDate, model.ErrConflict)
		}
	}
	mpa, err := f.resolveRating(in.MPA)
	if err != nil {
		return nil, err
	}
	f.nextID++
	rec := &filmRec{
		film:  model.Film{ID: f.nextID, Name: in.Name, Description: in.Description, ReleaseDate: in.ReleaseDate, Duration: in.Duration, MPA: mpa},
		likes: map[int64]struct{}{},
	}
	f.byID[rec.film.ID] = rec
	return f.compose(rec), nil
}

func (f *films) Update(ctx context.Context, in *model.Film) (*model.Film, error) {
	if err := store.ValidateFilm(in); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.byID[in.ID]
	if !ok {
		return nil, fmt.Errorf("film %d: %w", in.ID, model.ErrNotFound)
	}
	for id, other := range f.byID {
		if id == in.ID {
			continue
		}
		if other.film.Name == in.Name && model.SameDay(other.film.ReleaseDate, in.ReleaseDate) {
			return nil, fmt.Errorf("film %q released %s already exists: %w", in.Name, in.ReleaseDate, model.ErrConflict)
		}
	}
	mpa, err := f.resolveRating(in.MPA)
	if err != nil {
		return nil, err
	}
	rec.film.Name = in.Name
	rec.film.Description = in.Description
	rec.film.ReleaseDate = in.ReleaseDate
	rec.film.Duration = in.Duration
	rec.film.MPA = mpa
	return f.compose(rec), nil
}

func (f *films) GetByID(ctx context.Context, id int64) (*model.Film, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	rec, ok := f.byID[id]
	if !ok {
		return nil, fmt.Errorf("film %d: %w", id, model.ErrNotFound)
	}
	return f.compose(rec), nil
}

func (f *films) AttachGenres(ctx context.Context, filmID int64, genreIDs []int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.byID[filmID]
	if !ok {
		return fmt.Errorf("film %d: %w", filmID, model.ErrNotFound)
	}
	for _, gid := range genreIDs {
		if !f.genres.exists(gid) {
			return fmt.Errorf("genre %d: %w", gid, model.ErrNotFound)
		}
	}
	// Idempotent upsert: keep existing attach order, append only new ids.
	have := map[int64]struct{}{}
	for _, gid := range rec.genreIDs {
		have[gid] = struct{}{}
	}
	for _, gid := range genreIDs {
		if _, dup := have[gid]; dup {
			continue
		}
		have[gid] = struct{}{}
		rec.genreIDs = append(rec.genreIDs, gid)
	}
	return nil
}

func (f *films) Likes(ctx context.Context, filmID int64) ([]int64, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	rec, ok := f.byID[filmID]
	if !ok {
		return nil, fmt.Errorf("film %d: %w", filmID, model.ErrNotFound)
	}
	return sortedIDs(rec.likes), nil
}

func (f *films) AddLike(ctx context.Context, filmID, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.byID[filmID]
	if !ok {
		return fmt.Errorf("film %d: %w", filmID, model.ErrNotFound)
	}
	if _, dup := rec.likes[userID]; dup {
		return fmt.Errorf("user %d already liked film %d: %w", userID, filmID, model.ErrConflict)
	}
	rec.likes[userID] = struct{}{}
	return nil
}

func (f *films) RemoveLike(ctx context.Context, filmID, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.byID[filmID]
	if !ok {
		return fmt.Errorf("film %d: %w", filmID, model.ErrNotFound)
	}
	delete(rec.likes, userID) // absent like is a silent success
	return nil
}

func (f *films) Popular(ctx context.Context, limit int) ([]*model.Film, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("popular limit must be positive: %w", model.ErrValidation)
	}
	f.mu.RLock()
	recs := make([]*filmRec, 0, len(f.byID))
	for _, rec := range f.byID {
		recs = append(recs, rec)
	}
	sort.Slice(recs, func(i, j int) bool {
		li, lj := len(recs[i].likes), len(recs[j].likes)
		if li != lj {
			return li > lj
		}
		return recs[i].film.ID < recs[j].film.ID
	})
	if len(recs) > limit {
		recs = recs[:limit]
	}
	out := make([]*model.Film, len(recs))
	for i, rec := range recs {
		out[i] = f.compose(rec)
	}
	f.mu.RUnlock()
	return out, nil
}

// compose materializes a detached copy with genres and likes attached.
// Genres come back in ascending id order, matching the SQL backends.
// Callers must hold at least a read lock.
func (f *films) compose(rec *filmRec) *model.Film {
	out := rec.film
	out.MPA = cloneRating(rec.film.MPA)
	gids := make([]int64, len(rec.genreIDs))
	copy(gids, rec.genreIDs)
	sort.Slice(gids, func(i, j int) bool { return gids[i] < gids[j] })
	out.Genres = make([]model.Genre, 0, len(gids))
	for _, gid := range gids {
		if g, ok := f.genres.byID[gid]; ok {
			out.Genres = append(out.Genres, g)
		}
	}
	out.Likes = sortedIDs(rec.likes)
	return &out
}

// --- Users ---

type userRec struct {
	user    model.User
	friends map[int64]struct{} // directed edges this user owns
}

type users struct {
	mu     sync.RWMutex
	byID   map[int64]*userRec
	nextID int64
}

func (u *users) List(ctx context.Context) ([]*model.User, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	out := make([]*model.User, 0, len(u.byID))
	for _, rec := range u.byID {
		out = append(out, composeUser(rec))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (u *users) Create(ctx context.Context, in *model.User) (*model.User, error) {
	if err := store.ValidateUser(in); err != nil {
		return nil, err
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	for _, rec := range u.byID {
		if rec.user.Email == in.Email {
			return nil, fmt.Errorf("email %s already in use: %w", in.Email, model.ErrConflict)
		}
	}
	u.nextID++
	rec := &userRec{
		user:    model.User{ID: u.nextID, Email: in.Email, Login: in.Login, Name: store.DisplayName(in), Birthday: in.Birthday},
		friends: map[int64]struct{}{},
	}
	u.byID[rec.user.ID] = rec
	return composeUser(rec), nil
}

func (u *users) Update(ctx context.Context, in *model.User) (*model.User, error) {
	if err := store.ValidateUser(in); err != nil {
		return nil, err
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	rec, ok := u.byID[in.ID]
	if !ok {
		return nil, fmt.Errorf("user %d: %w", in.ID, model.ErrNotFound)
	}
	for id, other := range u.byID {
		if id != in.ID && other.user.Email == in.Email {
			return nil, fmt.Errorf("email %s already in use: %w", in.Email, model.ErrConflict)
		}
	}
	rec.user.Email = in.Email
	rec.user.Login = in.Login
	rec.user.Name = store.DisplayName(in)
	rec.user.Birthday = in.Birthday
	return composeUser(rec), nil
}

func (u *users) GetByID(ctx context.Context, id int64) (*model.User, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	rec, ok := u.byID[id]
	if !ok {
		return nil, fmt.Errorf("user %d: %w", id, model.ErrNotFound)
	}
	return composeUser(rec), nil
}

func (u *users) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	for _, rec := range u.byID {
		if rec.user.Email == email {
			return composeUser(rec), nil
		}
	}
	return nil, fmt.Errorf("user with email %s: %w", email, model.ErrNotFound)
}

func (u *users) TryAddFriendship(ctx context.Context, userID, friendID int64) (bool, error) {
	if userID == friendID {
		return false, fmt.Errorf("user %d cannot befriend themselves: %w", userID, model.ErrValidation)
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	rec, ok := u.byID[userID]
	if !ok {
		return false, fmt.Errorf("user %d: %w", userID, model.ErrNotFound)
	}
	if _, ok := u.byID[friendID]; !ok {
		return false, fmt.Errorf("user %d: %w", friendID, model.ErrNotFound)
	}
	if _, exists := rec.friends[friendID]; exists {
		return false, nil
	}
	rec.friends[friendID] = struct{}{}
	return true, nil
}

func (u *users) RemoveFriendship(ctx context.Context, userID, friendID int64) (bool, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	rec, ok := u.byID[userID]
	if !ok {
		return false, fmt.Errorf("user %d: %w", userID, model.ErrNotFound)
	}
	if _, exists := rec.friends[friendID]; !exists {
		return false, nil
	}
	delete(rec.friends, friendID)
	return true, nil
}

func (u *users) Friends(ctx context.Context, userID int64) ([]int64, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	rec, ok := u.byID[userID]
	if !ok {
		return nil, fmt.Errorf("user %d: %w", userID, model.ErrNotFound)
	}
	return sortedIDs(rec.friends), nil
}

func composeUser(rec *userRec) *model.User {
	out := rec.user
	out.Friends = sortedIDs(rec.friends)
	return &out
}

// --- Genres ---

type genres struct {
	mu   sync.RWMutex
	byID map[int64]model.Genre
}

func (g *genres) exists(id int64) bool {
	_, ok := g.byID[id]
	return ok
}

func (g *genres) List(ctx context.Context) ([]*model.Genre, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]*model.Genre, 0, len(g.byID))
	for id := range g.byID {
		gen := g.byID[id]
		out = append(out, &gen)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (g *genres) GetByID(ctx context.Context, id int64) (*model.Genre, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	gen, ok := g.byID[id]
	if !ok {
		return nil, fmt.Errorf("genre %d: %w", id, model.ErrNotFound)
	}
	return &gen, nil
}

// --- Ratings ---

type ratings struct {
	mu   sync.RWMutex
	byID map[int64]model.Rating
}

func (r *ratings) List(ctx context.Context) ([]*model.Rating, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*model.Rating, 0, len(r.byID))
	for id := range r.byID {
		rat := r.byID[id]
		out = append(out, &rat)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *ratings) GetByID(ctx context.Context, id int64) (*model.Rating, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rat, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("MPA rating %d: %w", id, model.ErrNotFound)
	}
	return &rat, nil
}

// --- helpers ---

func sortedIDs(set map[int64]struct{}) []int64 {
	out := make([]int64, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func cloneRating(r *model.Rating) *model.Rating {
	if r == nil {
		return nil
	}
	cp := *r
	return &cp
}

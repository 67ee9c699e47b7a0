// Package sqlite provides a store.Store backed by an embedded SQLite
// database (modernc.org/sqlite, cgo-free). The schema is bootstrapped on
// open, so the backend is self-contained; writes are serialized through a
// single connection.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/reelgraph/reelgraph/internal/model"
	"github.com/reelgraph/reelgraph/internal/store"
)

// Open opens (or creates) a SQLite database at the given path and enables
// WAL journal mode and foreign keys.
func Open(path string) (*sql.DB, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// A single connection keeps check-then-insert sequences atomic.
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// New opens the database at path, ensures the schema and reference data
// exist, and returns the store.
func New(path string) (store.Store, error) {
	db, err := Open(path)
	if err != nil {
		return nil, err
	}
	return NewWithDB(db)
}

// NewWithDB wires the store over an existing connection (used by the factory
// and by tests).
func NewWithDB(db *sql.DB) (store.Store, error) {
	if err := ensureSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &sqlStore{db: db}, nil
}

type sqlStore struct{ db *sql.DB }

func (s *sqlStore) Films() store.Films     { return &films{db: s.db} }
func (s *sqlStore) Users() store.Users     { return &users{db: s.db} }
func (s *sqlStore) Genres() store.Genres   { return &genres{db: s.db} }
func (s *sqlStore) Ratings() store.Ratings { return &ratings{db: s.db} }

// HealthPing implements health.HealthPinger.
func (s *sqlStore) HealthPing(ctx context.Context) error { return s.db.PingContext(ctx) }

// DB exposes the underlying connection (local tooling use only).
func (s *sqlStore) DB() *sql.DB { return s.db }

// --- Films ---

type films struct{ db *sql.DB }

const filmColumns = `f.film_id, f.name, f.description, f.release_date, f.duration, r.rating_id, r.name, r.description`

func (f *films) List(ctx context.Context) ([]*model.Film, error) {
	rows, err := f.db.QueryContext(ctx, `
        SELECT `+filmColumns+`
        FROM films f LEFT JOIN ratings r ON f.rating_id = r.rating_id
        ORDER BY f.film_id
    `)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	return f.collect(ctx, rows)
}

func (f *films) Create(ctx context.Context, in *model.Film) (*model.Film, error) {
	if err := store.ValidateFilm(in); err != nil {
		return nil, err
	}
	tx, err := f.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM films WHERE name = ? AND release_date = ?`, in.Name, in.ReleaseDate).Scan(&exists)
	if err == nil {
		return nil, fmt.Errorf("film %q released %s already exists: %w", in.Name, in.ReleaseDate, model.ErrConflict)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	res, err := tx.ExecContext(ctx, `
        INSERT INTO films (name, description, release_date, duration, rating_id)
        VALUES (?,?,?,?,?)
    `, in.Name, in.Description, in.ReleaseDate, in.Duration, ratingID(in.MPA))
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return f.GetByID(ctx, id)
}

func (f *films) Update(ctx context.Context, in *model.Film) (*model.Film, error) {
	if err := store.ValidateFilm(in); err != nil {
		return nil, err
	}
	tx, err := f.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	var exists int
	if err := tx.QueryRowContext(ctx, `SELECT 1 FROM films WHERE film_id = ?`, in.ID).Scan(&exists); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("film %d: %w", in.ID, model.ErrNotFound)
		}
		return nil, err
	}
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM films WHERE name = ? AND release_date = ? AND film_id <> ?`, in.Name, in.ReleaseDate, in.ID).Scan(&exists)
	if err == nil {
		return nil, fmt.Errorf("film %q released %s already exists: %w", in.Name, in.ReleaseDate, model.ErrConflict)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, `
        UPDATE films SET name = ?, description = ?, release_date = ?, duration = ?, rating_id = ?
        WHERE film_id = ?
    `, in.Name, in.Description, in.ReleaseDate, in.Duration, ratingID(in.MPA), in.ID); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return f.GetByID(ctx, in.ID)
}

func (f *films) GetByID(ctx context.Context, id int64) (*model.Film, error) {
	row := f.db.QueryRowContext(ctx, `
        SELECT `+filmColumns+`
        FROM films f LEFT JOIN ratings r ON f.rating_id = r.rating_id
        WHERE f.film_id = ?
    `, id)
	out, err := scanFilm(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("film %d: %w", id, model.ErrNotFound)
		}
		return nil, err
	}
	if err := f.attachRelations(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (f *films) AttachGenres(ctx context.Context, filmID int64, genreIDs []int64) error {
	tx, err := f.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var exists int
	if err := tx.QueryRowContext(ctx, `SELECT 1 FROM films WHERE film_id = ?`, filmID).Scan(&exists); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("film %d: %w", filmID, model.ErrNotFound)
		}
		return err
	}
	for _, gid := range genreIDs {
		if err := tx.QueryRowContext(ctx, `SELECT 1 FROM genres WHERE genre_id = ?`, gid).Scan(&exists); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("genre %d: %w", gid, model.ErrNotFound)
			}
			return err
		}
	}
	for _, gid := range genreIDs {
		if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO film_genres (film_id, genre_id) VALUES (?,?)`, filmID, gid); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (f *films) Likes(ctx context.Context, filmID int64) ([]int64, error) {
	var exists int
	if err := f.db.QueryRowContext(ctx, `SELECT 1 FROM films WHERE film_id = ?`, filmID).Scan(&exists); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("film %d: %w", filmID, model.ErrNotFound)
		}
		return nil, err
	}
	return queryIDs(ctx, f.db, `SELECT user_id FROM film_likes WHERE film_id = ? ORDER BY user_id`, filmID)
}

func (f *films) AddLike(ctx context.Context, filmID, userID int64) error {
	var exists int
	if err := f.db.QueryRowContext(ctx, `SELECT 1 FROM films WHERE film_id = ?`, filmID).Scan(&exists); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("film %d: %w", filmID, model.ErrNotFound)
		}
		return err
	}
	res, err := f.db.ExecContext(ctx, `INSERT OR IGNORE INTO film_likes (film_id, user_id) VALUES (?,?)`, filmID, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("user %d already liked film %d: %w", userID, filmID, model.ErrConflict)
	}
	return nil
}

func (f *films) RemoveLike(ctx context.Context, filmID, userID int64) error {
	var exists int
	if err := f.db.QueryRowContext(ctx, `SELECT 1 FROM films WHERE film_id = ?`, filmID).Scan(&exists); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("film %d: %w", filmID, model.ErrNotFound)
		}
		return err
	}
	// Deleting an absent like is a silent success.
	_, err := f.db.ExecContext(ctx, `DELETE FROM film_likes WHERE film_id = ? AND user_id = ?`, filmID, userID)
	return err
}

func (f *films) Popular(ctx context.Context, limit int) ([]*model.Film, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("popular limit must be positive: %w", model.ErrValidation)
	}
	rows, err := f.db.QueryContext(ctx, `
        SELECT `+filmColumns+`
        FROM films f
        LEFT JOIN ratings r ON f.rating_id = r.rating_id
        LEFT JOIN film_likes l ON l.film_id = f.film_id
        GROUP BY f.film_id
        ORDER BY COUNT(l.user_id) DESC, f.film_id ASC
        LIMIT ?
    `, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	return f.collect(ctx, rows)
}

func (f *films) collect(ctx context.Context, rows *sql.Rows) ([]*model.Film, error) {
	var out []*model.Film
	for rows.Next() {
		fl, err := scanFilm(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, fl)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, fl := range out {
		if err := f.attachRelations(ctx, fl); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (f *films) attachRelations(ctx context.Context, fl *model.Film) error {
	rows, err := f.db.QueryContext(ctx, `
        SELECT g.genre_id, g.name
        FROM film_genres fg JOIN genres g ON fg.genre_id = g.genre_id
        WHERE fg.film_id = ? ORDER BY g.genre_id
    `, fl.ID)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()
	fl.Genres = []model.Genre{}
	for rows.Next() {
		var g model.Genre
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return err
		}
		fl.Genres = append(fl.Genres, g)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	likes, err := queryIDs(ctx, f.db, `SELECT user_id FROM film_likes WHERE film_id = ? ORDER BY user_id`, fl.ID)
	if err != nil {
		return err
	}
	fl.Likes = likes
	return nil
}

type rowScanner interface{ Scan(dest ...any) error }

func scanFilm(row rowScanner) (*model.Film, error) {
	var out model.Film
	var rid sql.NullInt64
	var rname, rdesc sql.NullString
	if err := row.Scan(&out.ID, &out.Name, &out.Description, &out.ReleaseDate, &out.Duration, &rid, &rname, &rdesc); err != nil {
		return nil, err
	}
	if rid.Valid {
		out.MPA = &model.Rating{ID: rid.Int64, Name: rname.String}
		if rdesc.Valid {
			d := rdesc.String
			out.MPA.Description = &d
		}
	}
	return &out, nil
}

func ratingID(r *model.Rating) any {
	if r == nil {
		return nil
	}
	return r.ID
}

// --- Users ---

type users struct{ db *sql.DB }

func (u *users) List(ctx context.Context) ([]*model.User, error) {
	rows, err := u.db.QueryContext(ctx, `SELECT user_id, email, login, name, birthday FROM users ORDER BY user_id`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []*model.User
	for rows.Next() {
		var m model.User
		if err := rows.Scan(&m.ID, &m.Email, &m.Login, &m.Name, &m.Birthday); err != nil {
			return nil, err
		}
		out = append(out, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, m := range out {
		friends, err := queryIDs(ctx, u.db, `SELECT friend_id FROM friends WHERE user_id = ? ORDER BY friend_id`, m.ID)
		if err != nil {
			return nil, err
		}
		m.Friends = friends
	}
	return out, nil
}

func (u *users) Create(ctx context.Context, in *model.User) (*model.User, error) {
	if err := store.ValidateUser(in); err != nil {
		return nil, err
	}
	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM users WHERE email = ?`, in.Email).Scan(&exists)
	if err == nil {
		return nil, fmt.Errorf("email %s already in use: %w", in.Email, model.ErrConflict)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	name := store.DisplayName(in)
	res, err := tx.ExecContext(ctx, `INSERT INTO users (email, login, name, birthday) VALUES (?,?,?,?)`,
		in.Email, in.Login, name, in.Birthday)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return u.GetByID(ctx, id)
}

func (u *users) Update(ctx context.Context, in *model.User) (*model.User, error) {
	if err := store.ValidateUser(in); err != nil {
		return nil, err
	}
	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	var exists int
	if err := tx.QueryRowContext(ctx, `SELECT 1 FROM users WHERE user_id = ?`, in.ID).Scan(&exists); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %d: %w", in.ID, model.ErrNotFound)
		}
		return nil, err
	}
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM users WHERE email = ? AND user_id <> ?`, in.Email, in.ID).Scan(&exists)
	if err == nil {
		return nil, fmt.Errorf("email %s already in use: %w", in.Email, model.ErrConflict)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	name := store.DisplayName(in)
	if _, err := tx.ExecContext(ctx, `UPDATE users SET email = ?, login = ?, name = ?, birthday = ? WHERE user_id = ?`,
		in.Email, in.Login, name, in.Birthday, in.ID); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return u.GetByID(ctx, in.ID)
}

func (u *users) GetByID(ctx context.Context, id int64) (*model.User, error) {
	row := u.db.QueryRowContext(ctx, `SELECT user_id, email, login, name, birthday FROM users WHERE user_id = ?`, id)
	var m model.User
	if err := row.Scan(&m.ID, &m.Email, &m.Login, &m.Name, &m.Birthday); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %d: %w", id, model.ErrNotFound)
		}
		return nil, err
	}
	friends, err := queryIDs(ctx, u.db, `SELECT friend_id FROM friends WHERE user_id = ? ORDER BY friend_id`, id)
	if err != nil {
		return nil, err
	}
	m.Friends = friends
	return &m, nil
}

func (u *users) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	row := u.db.QueryRowContext(ctx, `SELECT user_id FROM users WHERE email = ?`, email)
	var id int64
	if err := row.Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user with email %s: %w", email, model.ErrNotFound)
		}
		return nil, err
	}
	return u.GetByID(ctx, id)
}

func (u *users) TryAddFriendship(ctx context.Context, userID, friendID int64) (bool, error) {
	if userID == friendID {
		return false, fmt.Errorf("user %d cannot befriend themselves: %w", userID, model.ErrValidation)
	}
	for _, id := range []int64{userID, friendID} {
		var exists int
		if err := u.db.QueryRowContext(ctx, `SELECT 1 FROM users WHERE user_id = ?`, id).Scan(&exists); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return false, fmt.Errorf("user %d: %w", id, model.ErrNotFound)
			}
			return false, err
		}
	}
	// Single statement keeps the check-and-insert atomic.
	res, err := u.db.ExecContext(ctx, `INSERT OR IGNORE INTO friends (user_id, friend_id) VALUES (?,?)`, userID, friendID)
	if err != nil {
		return false, fmt.Errorf("add friendship %d->%d: %w", userID, friendID, model.ErrInternal)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (u *users) RemoveFriendship(ctx context.Context, userID, friendID int64) (bool, error) {
	var exists int
	if err := u.db.QueryRowContext(ctx, `SELECT 1 FROM users WHERE user_id = ?`, userID).Scan(&exists); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, fmt.Errorf("user %d: %w", userID, model.ErrNotFound)
		}
		return false, err
	}
	res, err := u.db.ExecContext(ctx, `DELETE FROM friends WHERE user_id = ? AND friend_id = ?`, userID, friendID)
	if err != nil {
		return false, fmt.Errorf("remove friendship %d->%d: %w", userID, friendID, model.ErrInternal)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (u *users) Friends(ctx context.Context, userID int64) ([]int64, error) {
	var exists int
	if err := u.db.QueryRowContext(ctx, `SELECT 1 FROM users WHERE user_id = ?`, userID).Scan(&exists); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %d: %w", userID, model.ErrNotFound)
		}
		return nil, err
	}
	return queryIDs(ctx, u.db, `SELECT friend_id FROM friends WHERE user_id = ? ORDER BY friend_id`, userID)
}

// --- Genres ---

type genres struct{ db *sql.DB }

func (g *genres) List(ctx context.Context) ([]*model.Genre, error) {
	rows, err := g.db.QueryContext(ctx, `SELECT genre_id, name FROM genres ORDER BY genre_id`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []*model.Genre
	for rows.Next() {
		var m model.Genre
		if err := rows.Scan(&m.ID, &m.Name); err != nil {
			return nil, err
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

func (g *genres) GetByID(ctx context.Context, id int64) (*model.Genre, error) {
	var m model.Genre
	err := g.db.QueryRowContext(ctx, `SELECT genre_id, name FROM genres WHERE genre_id = ?`, id).Scan(&m.ID, &m.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("genre %d: %w", id, model.ErrNotFound)
		}
		return nil, err
	}
	return &m, nil
}

// --- Ratings ---

type ratings struct{ db *sql.DB }

func (r *ratings) List(ctx context.Context) ([]*model.Rating, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT rating_id, name, description FROM ratings ORDER BY rating_id`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []*model.Rating
	for rows.Next() {
		var m model.Rating
		if err := rows.Scan(&m.ID, &m.Name, &m.Description); err != nil {
			return nil, err
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

func (r *ratings) GetByID(ctx context.Context, id int64) (*model.Rating, error) {
	var m model.Rating
	err := r.db.QueryRowContext(ctx, `SELECT rating_id, name, description FROM ratings WHERE rating_id = ?`, id).Scan(&m.ID, &m.Name, &m.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("MPA rating %d: %w", id, model.ErrNotFound)
		}
		return nil, err
	}
	return &m, nil
}

// --- helpers ---

func queryIDs(ctx context.Context, db *sql.DB, query string, args ...any) ([]int64, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	out := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

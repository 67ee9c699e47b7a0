package sqlite

import (
	"database/sql"

	"github.com/reelgraph/reelgraph/internal/store"
)

// ensureSchema creates the tables if they do not exist and seeds the genre
// and MPA rating reference data.
func ensureSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS ratings (
            rating_id   INTEGER PRIMARY KEY,
            name        TEXT NOT NULL UNIQUE,
            description TEXT
        );`,
		`CREATE TABLE IF NOT EXISTS genres (
            genre_id INTEGER PRIMARY KEY,
            name     TEXT NOT NULL UNIQUE
        );`,
		`CREATE TABLE IF NOT EXISTS films (
            film_id      INTEGER PRIMARY KEY AUTOINCREMENT,
            name         TEXT NOT NULL,
            description  TEXT NOT NULL DEFAULT '',
            release_date TEXT NOT NULL,
            duration     INTEGER NOT NULL,
            rating_id    INTEGER REFERENCES ratings(rating_id),
            UNIQUE(name, release_date)
        );`,
		`CREATE TABLE IF NOT EXISTS film_genres (
            film_id  INTEGER NOT NULL REFERENCES films(film_id),
            genre_id INTEGER NOT NULL REFERENCES genres(genre_id),
            PRIMARY KEY(film_id, genre_id)
        );`,
		`CREATE TABLE IF NOT EXISTS users (
            user_id  INTEGER PRIMARY KEY AUTOINCREMENT,
            email    TEXT NOT NULL UNIQUE,
            login    TEXT NOT NULL,
            name     TEXT NOT NULL,
            birthday TEXT NOT NULL
        );`,
		`CREATE TABLE IF NOT EXISTS film_likes (
            film_id INTEGER NOT NULL REFERENCES films(film_id),
            user_id INTEGER NOT NULL REFERENCES users(user_id),
            PRIMARY KEY(film_id, user_id)
        );`,
		`CREATE TABLE IF NOT EXISTS friends (
            user_id   INTEGER NOT NULL REFERENCES users(user_id),
            friend_id INTEGER NOT NULL REFERENCES users(user_id),
            PRIMARY KEY(user_id, friend_id),
            CHECK(user_id <> friend_id)
        );`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	for _, r := range store.DefaultRatings() {
		if _, err := db.Exec(`INSERT OR IGNORE INTO ratings (rating_id, name, description) VALUES (?,?,?)`, r.ID, r.Name, r.Description); err != nil {
			return err
		}
	}
	for _, g := range store.DefaultGenres() {
		if _, err := db.Exec(`INSERT OR IGNORE INTO genres (genre_id, name) VALUES (?,?)`, g.ID, g.Name); err != nil {
			return err
		}
	}
	return nil
}

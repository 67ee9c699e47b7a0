package postgres

import (
	"database/sql"
	"os"
	"testing"

	"github.com/reelgraph/reelgraph/internal/store"
	"github.com/reelgraph/reelgraph/internal/store/storetest"
)

func makePGStore(t *testing.T) store.Store {
	t.Helper()
	dsn := os.Getenv("REELGRAPH_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("REELGRAPH_POSTGRES_DSN not set; skipping postgres store integration test")
	}
	db, err := Open(dsn)
	if err != nil {
		t.Fatalf("postgres open: %v", err)
	}
	truncate(t, db)
	t.Cleanup(func() { _ = db.Close() })
	return NewWithDB(db)
}

// truncate clears the mutable tables so every suite run starts clean.
// Reference data (genres, ratings) is left in place.
func truncate(t *testing.T, db *sql.DB) {
	t.Helper()
	if _, err := db.Exec(`TRUNCATE friends, film_likes, film_genres, films, users RESTART IDENTITY`); err != nil {
		t.Fatalf("truncate: %v", err)
	}
}

func TestPostgresStore_Compliance(t *testing.T) {
	storetest.Run(t, makePGStore)
}

package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/reelgraph/reelgraph/internal/store"
	"github.com/reelgraph/reelgraph/internal/store/storetest"
)

func TestSQLiteStore_Compliance(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store {
		s, err := New(filepath.Join(t.TempDir(), "reelgraph.db"))
		if err != nil {
			t.Fatalf("sqlite open: %v", err)
		}
		return s
	})
}

// Opening an existing database twice must not duplicate the seeded
// reference data.
func TestSQLiteStore_ReopenKeepsRefData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reelgraph.db")
	for i := 0; i < 2; i++ {
		s, err := New(path)
		if err != nil {
			t.Fatalf("sqlite open #%d: %v", i+1, err)
		}
		genres, err := s.Genres().List(context.Background())
		if err != nil || len(genres) != 6 {
			t.Fatalf("open #%d: genres n=%d err=%v", i+1, len(genres), err)
		}
	}
}

package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/go-openapi/strfmt"

	"github.com/reelgraph/reelgraph/internal/model"
	"github.com/reelgraph/reelgraph/internal/store"
	"github.com/reelgraph/reelgraph/internal/store/storetest"
)

func TestMemoryStore_Compliance(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store { return New() })
}

// Ids must stay unique under concurrent creates.
func TestMemoryStore_ConcurrentCreateIDs(t *testing.T) {
	s := New()
	ctx := context.Background()

	const n = 32
	var wg sync.WaitGroup
	ids := make(chan int64, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			f, err := s.Films().Create(ctx, &model.Film{
				Name:        fmt.Sprintf("film-%d", i),
				ReleaseDate: strfmt.Date(time.Date(2000, time.January, 1+i%27, 0, 0, 0, 0, time.UTC)),
				Duration:    90,
			})
			if err != nil {
				t.Errorf("Create: %v", err)
				return
			}
			ids <- f.ID
		}(i)
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool)
	for id := range ids {
		if seen[id] {
			t.Fatalf("duplicate id %d assigned", id)
		}
		seen[id] = true
	}
	if len(seen) != n {
		t.Fatalf("created %d films, want %d", len(seen), n)
	}
}

// Returned films must be detached copies; mutating one must not leak into
// the store's state.
func TestMemoryStore_DetachedCopies(t *testing.T) {
	s := New()
	ctx := context.Background()

	f, err := s.Films().Create(ctx, &model.Film{
		Name:        "Solaris",
		ReleaseDate: strfmt.Date(time.Date(1972, time.March, 20, 0, 0, 0, 0, time.UTC)),
		Duration:    167,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	f.Name = "mutated"
	got, err := s.Films().GetByID(ctx, f.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Name != "Solaris" {
		t.Fatalf("store state mutated through returned copy: name=%q", got.Name)
	}
}

// Package factory builds concrete components from configuration.
package factory

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/reelgraph/reelgraph/internal/config"
	storepkg "github.com/reelgraph/reelgraph/internal/store"
	storemem "github.com/reelgraph/reelgraph/internal/store/memory"
	storepg "github.com/reelgraph/reelgraph/internal/store/postgres"
	storelite "github.com/reelgraph/reelgraph/internal/store/sqlite"
)

// NewStore returns the store.Store selected by cfg.DBDriver.
// The memory driver needs no external state; sqlite bootstraps its own
// schema; postgres expects the schema to exist (scripts/postgres/schema.sql).
func NewStore(cfg *config.Config, log zerolog.Logger) (storepkg.Store, error) {
	switch cfg.DBDriver {
	case "memory":
		log.Debug().Str("driver", cfg.DBDriver).Msg("using in-memory store")
		return storemem.New(), nil
	case "sqlite":
		s, err := storelite.New(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store at %s: %w", cfg.SQLitePath, err)
		}
		log.Debug().Str("driver", cfg.DBDriver).Str("path", cfg.SQLitePath).Msg("sqlite store ready")
		return s, nil
	case "postgres":
		db, err := storepg.Open(cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres store: %w", err)
		}
		log.Debug().Str("driver", cfg.DBDriver).Msg("postgres store ready")
		return storepg.NewWithDB(db), nil
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER: %s", cfg.DBDriver)
	}
}

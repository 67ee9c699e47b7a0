package services

import (
	"context"

	"github.com/reelgraph/reelgraph/internal/model"
	"github.com/reelgraph/reelgraph/internal/store"
)

type GenreService struct {
	store store.Store
}

func NewGenreService(s store.Store) *GenreService {
	return &GenreService{store: s}
}

func (s *GenreService) ListGenres(ctx context.Context) ([]*model.Genre, error) {
	return s.store.Genres().List(ctx)
}

func (s *GenreService) GetGenre(ctx context.Context, id int64) (*model.Genre, error) {
	return s.store.Genres().GetByID(ctx, id)
}

package services

import (
	"context"

	"github.com/reelgraph/reelgraph/internal/model"
	"github.com/reelgraph/reelgraph/internal/store"
)

type RatingService struct {
	store store.Store
}

func NewRatingService(s store.Store) *RatingService {
	return &RatingService{store: s}
}

func (s *RatingService) ListRatings(ctx context.Context) ([]*model.Rating, error) {
	return s.store.Ratings().List(ctx)
}

func (s *RatingService) GetRating(ctx context.Context, id int64) (*model.Rating, error) {
	return s.store.Ratings().GetByID(ctx, id)
}

package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/reelgraph/reelgraph/internal/model"
	"github.com/reelgraph/reelgraph/internal/store"
)

type UserService struct {
	store store.Store
	log   zerolog.Logger
}

func NewUserService(s store.Store, log zerolog.Logger) *UserService {
	return &UserService{store: s, log: log}
}

func (s *UserService) ListUsers(ctx context.Context) ([]*model.User, error) {
	return s.store.Users().List(ctx)
}

func (s *UserService) GetUser(ctx context.Context, id int64) (*model.User, error) {
	return s.store.Users().GetByID(ctx, id)
}

func (s *UserService) CreateUser(ctx context.Context, in *model.User) (*model.User, error) {
	return s.store.Users().Create(ctx, in)
}

func (s *UserService) UpdateUser(ctx context.Context, in *model.User) (*model.User, error) {
	return s.store.Users().Update(ctx, in)
}

// AddFriend records a one-directional friendship edge. Adding an edge that
// already exists succeeds silently.
func (s *UserService) AddFriend(ctx context.Context, userID, friendID int64) error {
	added, err := s.store.Users().TryAddFriendship(ctx, userID, friendID)
	if err != nil {
		return err
	}
	if !added {
		s.log.Debug().Int64("user_id", userID).Int64("friend_id", friendID).Msg("friendship edge already present")
	}
	return nil
}

// RemoveFriend deletes the userID→friendID edge. Removing an absent edge is
// a no-op; unknown user ids still fail.
func (s *UserService) RemoveFriend(ctx context.Context, userID, friendID int64) error {
	if _, err := s.store.Users().GetByID(ctx, friendID); err != nil {
		return err
	}
	_, err := s.store.Users().RemoveFriendship(ctx, userID, friendID)
	return err
}

// GetFriends returns the users userID has added, reading only the
// requester's own edges.
func (s *UserService) GetFriends(ctx context.Context, userID int64) ([]*model.User, error) {
	ids, err := s.store.Users().Friends(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.collect(ctx, ids)
}

// CommonFriends intersects the friend sets of two users.
func (s *UserService) CommonFriends(ctx context.Context, userID, otherID int64) ([]*model.User, error) {
	mine, err := s.store.Users().Friends(ctx, userID)
	if err != nil {
		return nil, err
	}
	theirs, err := s.store.Users().Friends(ctx, otherID)
	if err != nil {
		return nil, err
	}
	other := make(map[int64]bool, len(theirs))
	for _, id := range theirs {
		other[id] = true
	}
	common := make([]int64, 0)
	for _, id := range mine {
		if other[id] {
			common = append(common, id)
		}
	}
	return s.collect(ctx, common)
}

func (s *UserService) collect(ctx context.Context, ids []int64) ([]*model.User, error) {
	out := make([]*model.User, 0, len(ids))
	for _, id := range ids {
		u, err := s.store.Users().GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, nil
}

package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/reelgraph/reelgraph/internal/model"
	"github.com/reelgraph/reelgraph/internal/store"
	"github.com/reelgraph/reelgraph/internal/store/memory"
)

func newUserService(t *testing.T) (*UserService, store.Store) {
	t.Helper()
	s := memory.New()
	return NewUserService(s, zerolog.Nop()), s
}

func TestUserService_CreateDefaultsName(t *testing.T) {
	svc, _ := newUserService(t)

	u, err := svc.CreateUser(context.Background(), &model.User{
		Email:    "grace@example.test",
		Login:    "grace",
		Birthday: testDate(1985, time.December, 9),
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if u.Name != "grace" {
		t.Fatalf("name = %q, want login fallback", u.Name)
	}

	_, err = svc.CreateUser(context.Background(), &model.User{
		Email:    "grace@example.test",
		Login:    "grace2",
		Birthday: testDate(1985, time.December, 9),
	})
	if !errors.Is(err, model.ErrConflict) {
		t.Fatalf("duplicate email: err=%v, want ErrConflict", err)
	}
}

func TestUserService_AddFriendIsIdempotentAtServiceLevel(t *testing.T) {
	svc, s := newUserService(t)
	ctx := context.Background()
	alice := seedUser(t, s, "alice")
	bob := seedUser(t, s, "bob")

	if err := svc.AddFriend(ctx, alice.ID, bob.ID); err != nil {
		t.Fatalf("AddFriend: %v", err)
	}
	// The duplicate edge is swallowed; callers see success both times.
	if err := svc.AddFriend(ctx, alice.ID, bob.ID); err != nil {
		t.Fatalf("AddFriend repeat: %v", err)
	}

	friends, err := svc.GetFriends(ctx, alice.ID)
	if err != nil || len(friends) != 1 || friends[0].ID != bob.ID {
		t.Fatalf("GetFriends(alice): got=%v err=%v", friends, err)
	}
	// Directed edge: bob sees nobody.
	friends, err = svc.GetFriends(ctx, bob.ID)
	if err != nil || len(friends) != 0 {
		t.Fatalf("GetFriends(bob): got=%v err=%v", friends, err)
	}

	if err := svc.AddFriend(ctx, alice.ID, alice.ID); !errors.Is(err, model.ErrValidation) {
		t.Fatalf("self AddFriend: err=%v, want ErrValidation", err)
	}
	if err := svc.AddFriend(ctx, alice.ID, 9999); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("AddFriend unknown: err=%v, want ErrNotFound", err)
	}
}

func TestUserService_RemoveFriend(t *testing.T) {
	svc, s := newUserService(t)
	ctx := context.Background()
	alice := seedUser(t, s, "alice")
	bob := seedUser(t, s, "bob")

	if err := svc.AddFriend(ctx, alice.ID, bob.ID); err != nil {
		t.Fatalf("AddFriend: %v", err)
	}
	if err := svc.RemoveFriend(ctx, alice.ID, bob.ID); err != nil {
		t.Fatalf("RemoveFriend: %v", err)
	}
	// Removing an absent edge is a no-op.
	if err := svc.RemoveFriend(ctx, alice.ID, bob.ID); err != nil {
		t.Fatalf("RemoveFriend repeat: %v", err)
	}
	// Unknown friend id still fails.
	if err := svc.RemoveFriend(ctx, alice.ID, 9999); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("RemoveFriend unknown: err=%v, want ErrNotFound", err)
	}
}

func TestUserService_CommonFriends(t *testing.T) {
	svc, s := newUserService(t)
	ctx := context.Background()
	alice := seedUser(t, s, "alice")
	bob := seedUser(t, s, "bob")
	carol := seedUser(t, s, "carol")
	dave := seedUser(t, s, "dave")

	for _, edge := range [][2]int64{
		{alice.ID, carol.ID},
		{alice.ID, dave.ID},
		{bob.ID, carol.ID},
	} {
		if err := svc.AddFriend(ctx, edge[0], edge[1]); err != nil {
			t.Fatalf("AddFriend %v: %v", edge, err)
		}
	}

	common, err := svc.CommonFriends(ctx, alice.ID, bob.ID)
	if err != nil || len(common) != 1 || common[0].ID != carol.ID {
		t.Fatalf("CommonFriends: got=%v err=%v", common, err)
	}

	// No overlap yields an empty, non-nil slice.
	common, err = svc.CommonFriends(ctx, bob.ID, dave.ID)
	if err != nil || common == nil || len(common) != 0 {
		t.Fatalf("CommonFriends disjoint: got=%v err=%v", common, err)
	}
}

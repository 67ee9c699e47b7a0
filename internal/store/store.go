package store

import (
	"context"

	"github.com/reelgraph/reelgraph/internal/model"
)

// Store exposes persistence operations required by services.
// Implementations live under internal/store/<driver>/ (memory, sqlite,
// postgres) and must all satisfy the same contract; the executable form of
// that contract is the suite in internal/store/storetest.
type Store interface {
	Films() Films
	Users() Users
	Genres() Genres
	Ratings() Ratings
}

// Films is the film repository contract.
//
// Create assigns the id and fails with model.ErrValidation when required
// fields are missing or out of range, and with model.ErrConflict when a film
// with the same (name, releaseDate) pair already exists. Update replaces
// mutable fields of an existing film and fails with model.ErrNotFound for an
// unknown id. AddLike fails with model.ErrConflict when the like already
// exists; RemoveLike is idempotent and silently succeeds when the like is
// absent. Popular orders by distinct like count descending with ascending-id
// tie-break and truncates to limit.
type Films interface {
	List(ctx context.Context) ([]*model.Film, error)
	Create(ctx context.Context, f *model.Film) (*model.Film, error)
	Update(ctx context.Context, f *model.Film) (*model.Film, error)
	GetByID(ctx context.Context, id int64) (*model.Film, error)
	AttachGenres(ctx context.Context, filmID int64, genreIDs []int64) error
	Likes(ctx context.Context, filmID int64) ([]int64, error)
	AddLike(ctx context.Context, filmID, userID int64) error
	RemoveLike(ctx context.Context, filmID, userID int64) error
	Popular(ctx context.Context, limit int) ([]*model.Film, error)
}

// Users is the user repository contract.
//
// Friendship edges are directed: TryAddFriendship records userID→friendID
// and returns false without error when the edge already exists. The
// check-and-insert must be atomic so two concurrent calls cannot both
// insert. Friends returns only the ids the user added themselves, never
// assuming reciprocity.
type Users interface {
	List(ctx context.Context) ([]*model.User, error)
	Create(ctx context.Context, u *model.User) (*model.User, error)
	Update(ctx context.Context, u *model.User) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	TryAddFriendship(ctx context.Context, userID, friendID int64) (bool, error)
	RemoveFriendship(ctx context.Context, userID, friendID int64) (bool, error)
	Friends(ctx context.Context, userID int64) ([]int64, error)
}

// Genres is read-only reference data; GetByID fails with model.ErrNotFound.
type Genres interface {
	List(ctx context.Context) ([]*model.Genre, error)
	GetByID(ctx context.Context, id int64) (*model.Genre, error)
}

// Ratings is read-only reference data; GetByID fails with model.ErrNotFound.
type Ratings interface {
	List(ctx context.Context) ([]*model.Rating, error)
	GetByID(ctx context.Context, id int64) (*model.Rating, error)
}

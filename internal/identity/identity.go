// Package identity resolves user ids to the display names used in audit
// messages and responses.
package identity

import (
	"context"
	"time"

	"github.com/google/uuid"
	cache "github.com/patrickmn/go-cache"

	"taskboard/internal/model"
)

// Actor is the acting user of a request.
type Actor struct {
	ID   uuid.UUID
	Name string
}

// UserLookup loads a user by id.
type UserLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}

// Directory caches display names for a bounded time. Names are read from
// committed state only.
type Directory struct {
	users UserLookup
	cache *cache.Cache
}

func NewDirectory(users UserLookup, ttl time.Duration) *Directory {
	return &Directory{
		users: users,
		cache: cache.New(ttl, 2*ttl),
	}
}

func (d *Directory) Resolve(ctx context.Context, id uuid.UUID) (Actor, error) {
	key := id.String()
	if cached, found := d.cache.Get(key); found {
		return cached.(Actor), nil
	}

	user, err := d.users.GetByID(ctx, id)
	if err != nil {
		return Actor{}, err
	}

	actor := Actor{ID: user.ID, Name: DisplayName(user)}
	d.cache.SetDefault(key, actor)
	return actor, nil
}

// Forget drops a cached entry.
func (d *Directory) Forget(id uuid.UUID) {
	d.cache.Delete(id.String())
}

// DisplayName falls back to the email when the user has no name.
func DisplayName(user *model.User) string {
	if user.Name != "" {
		return user.Name
	}
	return user.Email
}

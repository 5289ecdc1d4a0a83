package users

import "context"

// UserRepo persists users. Create must enforce username uniqueness and return
// errors.ErrDuplicateUsername on conflict; the getters return
// errors.ErrUserNotFound when nothing matches.
type UserRepo interface {
	Create(ctx context.Context, user *User) error
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
}

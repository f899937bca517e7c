package domain

//go:generate mockgen -destination=../../mocks/mock_user_repository.go -package=mocks github.com/AnthoniusHendriyanto/account-service/internal/auth/domain UserRepository

import "context"

// UserRepository is the credential store. Lookups return (nil, nil) when the
// record does not exist. Create must surface a store-level unique violation on
// email as errors.ErrEmailAlreadyInUse.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	Create(ctx context.Context, user *User) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]User, error)
}

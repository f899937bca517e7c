package service

import (
	"context"
	"fmt"

	"github.com/AnthoniusHendriyanto/account-service/internal/auth/domain"
	autherror "github.com/AnthoniusHendriyanto/account-service/internal/errors"
)

// AccessGate decides whether a requester may run privileged operations.
// It fails closed: unknown requesters are never admins.
type AccessGate struct {
	repo domain.UserRepository
}

func NewAccessGate(repo domain.UserRepository) *AccessGate {
	return &AccessGate{repo: repo}
}

func (g *AccessGate) IsAdmin(ctx context.Context, email string) (bool, error) {
	if email == "" {
		return false, nil
	}

	user, err := g.repo.GetByEmail(ctx, email)
	if err != nil {
		return false, fmt.Errorf("looking up requester: %w", err)
	}

	return user.IsAdmin(), nil
}

// AuthorizeAdminOperation returns nil when the requester holds the ADMIN role
// and autherror.ErrForbidden otherwise.
func (g *AccessGate) AuthorizeAdminOperation(ctx context.Context, email string) error {
	ok, err := g.IsAdmin(ctx, email)
	if err != nil {
		return err
	}
	if !ok {
		return autherror.ErrForbidden
	}
	return nil
}

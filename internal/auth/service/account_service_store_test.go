package service_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/AnthoniusHendriyanto/account-service/db"
	"github.com/AnthoniusHendriyanto/account-service/internal/auth/dto"
	"github.com/AnthoniusHendriyanto/account-service/internal/auth/repository/sqlite"
	"github.com/AnthoniusHendriyanto/account-service/internal/auth/service"
	autherror "github.com/AnthoniusHendriyanto/account-service/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// These tests run the account service against a real sqlite store.
func newStoreBackedService(t *testing.T) (*service.AccountService, *sqlite.SQLiteRepository, *service.TokenService) {
	t.Helper()
	sdb, err := db.OpenSQLite(context.Background(), "file:"+filepath.Join(t.TempDir(), "accounts.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sdb.Close() })

	repo := sqlite.NewSQLiteRepository(sdb)
	tokens, err := service.NewTokenService("store-test-secret", time.Hour, zap.NewNop())
	require.NoError(t, err)

	svc := service.NewAccountService(repo, service.NewBcryptHasher(bcrypt.MinCost), tokens, service.NewAccessGate(repo), nil, zap.NewNop())
	return svc, repo, tokens
}

func register(t *testing.T, svc *service.AccountService, email, role string) int64 {
	t.Helper()
	user, err := svc.Register(context.Background(), dto.RegisterInput{
		Email: email, Password: "password123", Name: email, Role: role, IPAddress: "203.0.113.7",
	})
	require.NoError(t, err)
	return user.ID
}

func TestStore_RegisterPersistsHashedAccount(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newStoreBackedService(t)

	id := register(t, svc, "alice@x.com", "")

	stored, err := repo.GetByEmail(ctx, "alice@x.com")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, id, stored.ID)
	assert.Equal(t, "USER", stored.Role)
	assert.NotEqual(t, "password123", stored.PasswordHash)
	assert.NotEmpty(t, stored.PasswordHash)
}

func TestStore_DuplicateRegistrationLeavesStoreUnchanged(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newStoreBackedService(t)

	register(t, svc, "alice@x.com", "USER")
	before, err := repo.List(ctx)
	require.NoError(t, err)

	_, err = svc.Register(ctx, dto.RegisterInput{Email: "alice@x.com", Password: "another-password", Name: "Impostor"})
	assert.ErrorIs(t, err, autherror.ErrEmailAlreadyInUse)

	after, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestStore_LoginTokenRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc, _, tokens := newStoreBackedService(t)

	id := register(t, svc, "alice@x.com", "USER")

	resp, err := svc.Login(ctx, dto.LoginInput{Email: "alice@x.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, id, resp.ID)
	assert.True(t, tokens.Validate(resp.JWT))

	subject, err := tokens.DecodeSubject(resp.JWT)
	require.NoError(t, err)
	assert.Equal(t, "alice@x.com", subject)

	_, err = svc.Login(ctx, dto.LoginInput{Email: "alice@x.com", Password: "wrong"})
	assert.Equal(t, autherror.ErrInvalidCredentials, err)
}

func TestStore_AdminScenario(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newStoreBackedService(t)

	adminID := register(t, svc, "admin@x", "ADMIN")
	bobID := register(t, svc, "bob@x", "USER")

	users, err := svc.ListAccounts(ctx, "admin@x")
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, adminID, users[0].ID)
	assert.Equal(t, bobID, users[1].ID)

	_, err = svc.ListAccounts(ctx, "bob@x")
	assert.ErrorIs(t, err, autherror.ErrForbidden)

	assert.ErrorIs(t, svc.DeleteAccount(ctx, adminID, "bob@x"), autherror.ErrForbidden)
	assert.ErrorIs(t, svc.DeleteAccount(ctx, 9999, "admin@x"), autherror.ErrUserNotFound)

	require.NoError(t, svc.DeleteAccount(ctx, bobID, "admin@x"))
	gone, err := repo.GetByID(ctx, bobID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestStore_EnsureAdminIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newStoreBackedService(t)

	created, err := svc.EnsureAdmin(ctx, "root@x", "bootstrap-pass")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = svc.EnsureAdmin(ctx, "root@x", "bootstrap-pass")
	require.NoError(t, err)
	assert.False(t, created)

	users, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.True(t, users[0].IsAdmin())
}

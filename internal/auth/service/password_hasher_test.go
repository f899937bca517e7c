package service_test

import (
	"testing"

	"github.com/AnthoniusHendriyanto/account-service/internal/auth/service"
	"github.com/alexedwards/argon2id"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHashers(t *testing.T) {
	hashers := map[string]service.PasswordHasher{
		"bcrypt": service.NewBcryptHasher(bcrypt.MinCost),
		"argon2id": service.NewArgon2idHasher(&argon2id.Params{
			Memory: 8 * 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32,
		}),
	}

	for name, h := range hashers {
		t.Run(name, func(t *testing.T) {
			first, err := h.Hash("password123")
			require.NoError(t, err)
			second, err := h.Hash("password123")
			require.NoError(t, err)

			assert.NotEqual(t, "password123", first)
			assert.NotEqual(t, first, second, "hashes must be salted")

			assert.True(t, h.Verify("password123", first))
			assert.True(t, h.Verify("password123", second))
			assert.False(t, h.Verify("password124", first))
			assert.False(t, h.Verify("", first))
		})

		t.Run(name+" malformed hash", func(t *testing.T) {
			for _, bad := range []string{"", "plain-text", "$2a$10$short", "$argon2id$v=19$m=abc"} {
				assert.NotPanics(t, func() {
					assert.False(t, h.Verify("password123", bad))
				})
			}
		})
	}
}

func TestNewPasswordHasher(t *testing.T) {
	tests := []struct {
		kind        string
		expectType  any
		expectError bool
	}{
		{kind: "", expectType: &service.BcryptHasher{}},
		{kind: "bcrypt", expectType: &service.BcryptHasher{}},
		{kind: "ARGON2ID", expectType: &service.Argon2idHasher{}},
		{kind: "md5", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			h, err := service.NewPasswordHasher(tt.kind)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.expectType, h)
		})
	}
}

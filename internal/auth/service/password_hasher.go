package service

//go:generate mockgen -destination=../../mocks/mock_password_hasher.go -package=mocks github.com/AnthoniusHendriyanto/account-service/internal/auth/service PasswordHasher

import (
	"fmt"
	"strings"

	"github.com/alexedwards/argon2id"
	"golang.org/x/crypto/bcrypt"
)

const (
	HasherBcrypt   = "bcrypt"
	HasherArgon2id = "argon2id"
)

// PasswordHasher produces salted one-way hashes. Verify never returns an error:
// a malformed stored hash simply does not match.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

// NewPasswordHasher picks an implementation by name. An empty name selects bcrypt.
func NewPasswordHasher(kind string) (PasswordHasher, error) {
	switch strings.ToLower(kind) {
	case "", HasherBcrypt:
		return NewBcryptHasher(bcrypt.DefaultCost), nil
	case HasherArgon2id:
		return NewArgon2idHasher(argon2id.DefaultParams), nil
	default:
		return nil, fmt.Errorf("unknown password hasher %q", kind)
	}
}

type BcryptHasher struct {
	cost int
}

func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(hashed), nil
}

func (h *BcryptHasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

type Argon2idHasher struct {
	params *argon2id.Params
}

func NewArgon2idHasher(params *argon2id.Params) *Argon2idHasher {
	if params == nil {
		params = argon2id.DefaultParams
	}
	return &Argon2idHasher{params: params}
}

func (h *Argon2idHasher) Hash(plaintext string) (string, error) {
	hashed, err := argon2id.CreateHash(plaintext, h.params)
	if err != nil {
		return "", fmt.Errorf("argon2id: %w", err)
	}
	return hashed, nil
}

func (h *Argon2idHasher) Verify(plaintext, hash string) bool {
	match, err := argon2id.ComparePasswordAndHash(plaintext, hash)
	if err != nil {
		return false
	}
	return match
}

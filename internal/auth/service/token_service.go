package service

//go:generate mockgen -destination=../../mocks/mock_token_generator.go -package=mocks github.com/AnthoniusHendriyanto/account-service/internal/auth/service TokenGenerator

import (
	"crypto/sha512"
	"errors"
	"fmt"
	"io"
	"time"

	autherror "github.com/AnthoniusHendriyanto/account-service/internal/errors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/hkdf"
)

const (
	signingKeySize = 64
	signingKeyInfo = "account-service/access-token/hs512"
)

type TokenGenerator interface {
	Issue(email string) (string, time.Time, error)
	Validate(tokenString string) bool
	DecodeSubject(tokenString string) (string, error)
	DecodeClaim(tokenString, name string) (string, error)
	Lifetime() time.Duration
}

type JWTCustomClaims struct {
	jwt.RegisteredClaims
	UserEmailID string `json:"userEmailId"`
}

type TokenService struct {
	signingKey []byte
	lifetime   time.Duration
	now        func() time.Time
	logger     *zap.Logger
}

// NewTokenService derives the HS512 key from secret. An empty secret or a
// non-positive lifetime is rejected.
func NewTokenService(secret string, lifetime time.Duration, logger *zap.Logger) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("token secret is empty")
	}
	if lifetime <= 0 {
		return nil, fmt.Errorf("token lifetime must be positive, got %s", lifetime)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	key, err := deriveSigningKey(secret)
	if err != nil {
		return nil, err
	}

	return &TokenService{
		signingKey: key,
		lifetime:   lifetime,
		now:        time.Now,
		logger:     logger,
	}, nil
}

func deriveSigningKey(secret string) ([]byte, error) {
	key := make([]byte, signingKeySize)
	if _, err := io.ReadFull(hkdf.New(sha512.New, []byte(secret), nil, []byte(signingKeyInfo)), key); err != nil {
		return nil, fmt.Errorf("derive signing key: %w", err)
	}
	return key, nil
}

func (ts *TokenService) Lifetime() time.Duration {
	return ts.lifetime
}

func (ts *TokenService) Issue(email string) (string, time.Time, error) {
	now := ts.now()
	expiresAt := now.Add(ts.lifetime)

	claims := JWTCustomClaims{
		UserEmailID: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(ts.signingKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}

	return token, expiresAt, nil
}

func (ts *TokenService) Validate(tokenString string) bool {
	if err := ts.parse(tokenString, &JWTCustomClaims{}); err != nil {
		ts.logger.Debug("token rejected", zap.Error(err))
		return false
	}
	return true
}

func (ts *TokenService) DecodeSubject(tokenString string) (string, error) {
	claims := &JWTCustomClaims{}
	if err := ts.parse(tokenString, claims); err != nil {
		return "", fmt.Errorf("%w: %v", autherror.ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: sub", autherror.ErrMissingClaim)
	}
	return claims.Subject, nil
}

func (ts *TokenService) DecodeClaim(tokenString, name string) (string, error) {
	claims := jwt.MapClaims{}
	if err := ts.parse(tokenString, claims); err != nil {
		return "", fmt.Errorf("%w: %v", autherror.ErrInvalidToken, err)
	}

	value, ok := claims[name]
	if !ok || value == nil {
		return "", fmt.Errorf("%w: %s", autherror.ErrMissingClaim, name)
	}
	if s, ok := value.(string); ok {
		return s, nil
	}
	return fmt.Sprint(value), nil
}

func (ts *TokenService) parse(tokenString string, claims jwt.Claims) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return ts.signingKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(ts.now),
	)
	if err != nil {
		return err
	}

	if !token.Valid {
		return autherror.ErrInvalidToken
	}

	return nil
}

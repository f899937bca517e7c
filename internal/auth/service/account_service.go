package service

//go:generate mockgen -destination=../../mocks/mock_geolocator.go -package=mocks github.com/AnthoniusHendriyanto/account-service/internal/auth/service Geolocator

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/AnthoniusHendriyanto/account-service/internal/auth/domain"
	"github.com/AnthoniusHendriyanto/account-service/internal/auth/dto"
	autherror "github.com/AnthoniusHendriyanto/account-service/internal/errors"
	"github.com/AnthoniusHendriyanto/account-service/pkg/constant"
	"go.uber.org/zap"
)

// Geolocator resolves the origin country of a registration. Both calls are
// best effort.
type Geolocator interface {
	PublicIP(ctx context.Context) (string, error)
	CountryOf(ctx context.Context, ip string) (string, error)
}

type AccountService struct {
	repo    domain.UserRepository
	hasher  PasswordHasher
	tokens  TokenGenerator
	gate    *AccessGate
	locator Geolocator
	logger  *zap.Logger
	now     func() time.Time
}

func NewAccountService(
	repo domain.UserRepository,
	hasher PasswordHasher,
	tokens TokenGenerator,
	gate *AccessGate,
	locator Geolocator,
	logger *zap.Logger,
) *AccountService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AccountService{
		repo:    repo,
		hasher:  hasher,
		tokens:  tokens,
		gate:    gate,
		locator: locator,
		logger:  logger,
		now:     time.Now,
	}
}

func (s *AccountService) Register(ctx context.Context, input dto.RegisterInput) (*domain.User, error) {
	existingUser, err := s.repo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("checking email: %w", err)
	}
	if existingUser != nil {
		return nil, autherror.ErrEmailAlreadyInUse
	}

	ip, country := s.resolveOrigin(ctx, input.IPAddress)

	hashedPassword, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	now := s.now()
	user := &domain.User{
		Email:        input.Email,
		PasswordHash: hashedPassword,
		Name:         input.Name,
		Gender:       input.Gender,
		Role:         domain.NormalizeRole(input.Role),
		IPAddress:    ip,
		Country:      country,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// The store's unique index is authoritative; a concurrent registration
	// that slipped past the lookup above comes back as ErrEmailAlreadyInUse.
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, autherror.ErrEmailAlreadyInUse) {
			return nil, autherror.ErrEmailAlreadyInUse
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}

	s.logger.Info("user registered",
		zap.Int64("id", user.ID),
		zap.String("role", user.Role),
		zap.String("country", user.Country),
	)

	return user, nil
}

func (s *AccountService) Login(ctx context.Context, input dto.LoginInput) (*dto.LoginResponse, error) {
	user, err := s.repo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	if user == nil || !s.hasher.Verify(input.Password, user.PasswordHash) {
		return nil, autherror.ErrInvalidCredentials
	}

	token, _, err := s.tokens.Issue(user.Email)
	if err != nil {
		return nil, fmt.Errorf("issuing token: %w", err)
	}

	s.logger.Info("login successful", zap.Int64("id", user.ID))

	return &dto.LoginResponse{
		JWT:    token,
		ID:     user.ID,
		Status: constant.StatusSuccess,
	}, nil
}

func (s *AccountService) DeleteAccount(ctx context.Context, targetID int64, requesterEmail string) error {
	if err := s.gate.AuthorizeAdminOperation(ctx, requesterEmail); err != nil {
		return err
	}

	target, err := s.repo.GetByID(ctx, targetID)
	if err != nil {
		return fmt.Errorf("looking up user %d: %w", targetID, err)
	}
	if target == nil {
		return autherror.ErrUserNotFound
	}

	if err := s.repo.Delete(ctx, targetID); err != nil {
		if errors.Is(err, autherror.ErrUserNotFound) {
			return autherror.ErrUserNotFound
		}
		return fmt.Errorf("deleting user %d: %w", targetID, err)
	}

	s.logger.Info("user deleted", zap.Int64("id", targetID))
	return nil
}

func (s *AccountService) ListAccounts(ctx context.Context, requesterEmail string) ([]domain.User, error) {
	if err := s.gate.AuthorizeAdminOperation(ctx, requesterEmail); err != nil {
		return nil, err
	}

	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}

	return users, nil
}

// EnsureAdmin creates an ADMIN account for email unless one with that email
// already exists. It reports whether an account was created.
func (s *AccountService) EnsureAdmin(ctx context.Context, email, password string) (bool, error) {
	if email == "" || password == "" {
		return false, nil
	}

	existingUser, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return false, fmt.Errorf("checking admin: %w", err)
	}
	if existingUser != nil {
		if !existingUser.IsAdmin() {
			s.logger.Warn("bootstrap admin email belongs to a non-admin account", zap.Int64("id", existingUser.ID))
		}
		return false, nil
	}

	hashedPassword, err := s.hasher.Hash(password)
	if err != nil {
		return false, fmt.Errorf("hashing admin password: %w", err)
	}

	now := s.now()
	admin := &domain.User{
		Email:        email,
		PasswordHash: hashedPassword,
		Name:         "Administrator",
		Role:         constant.RoleAdmin,
		Country:      constant.UnknownCountry,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, admin); err != nil {
		if errors.Is(err, autherror.ErrEmailAlreadyInUse) {
			return false, nil
		}
		return false, fmt.Errorf("creating admin: %w", err)
	}

	s.logger.Info("bootstrap admin created", zap.Int64("id", admin.ID))
	return true, nil
}

// resolveOrigin swaps a local address for the host's public address and looks
// up its country. Failures degrade to UnknownCountry.
func (s *AccountService) resolveOrigin(ctx context.Context, ip string) (string, string) {
	if s.locator == nil {
		return ip, constant.UnknownCountry
	}

	if isLocalAddress(ip) {
		publicIP, err := s.locator.PublicIP(ctx)
		if err != nil {
			s.logger.Warn("public ip lookup failed", zap.String("ip", ip), zap.Error(err))
			return ip, constant.UnknownCountry
		}
		ip = publicIP
	}

	country, err := s.locator.CountryOf(ctx, ip)
	if err != nil {
		s.logger.Warn("country lookup failed", zap.String("ip", ip), zap.Error(err))
		return ip, constant.UnknownCountry
	}
	if country == "" {
		return ip, constant.UnknownCountry
	}

	return ip, country
}

func isLocalAddress(ip string) bool {
	if ip == "" {
		return true
	}
	parsed := net.ParseIP(ip)
	return parsed != nil && (parsed.IsLoopback() || parsed.IsUnspecified())
}

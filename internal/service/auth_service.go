package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/stormkid2009/restooo/internal/auth"
	"github.com/stormkid2009/restooo/internal/config"
	"github.com/stormkid2009/restooo/internal/domain"
	"github.com/stormkid2009/restooo/internal/repository"
	apperrors "github.com/stormkid2009/restooo/pkg/util"
)

// Credential failure messages are part of the HTTP contract. Unknown email
// and wrong password share one message so callers cannot enumerate accounts.
const (
	MsgEmailTaken         = "Email already exists"
	MsgInvalidCredentials = "Invalid credentials"
)

// AuthService coordinates registration and login flows.
type AuthService struct {
	users  repository.UserRepository
	hasher *auth.Hasher
	tokens *auth.TokenManager
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, users repository.UserRepository) *AuthService {
	return &AuthService{
		users:  users,
		hasher: auth.NewHasher(cfg.BcryptCost, cfg.MaxConcurrentHashes),
		tokens: auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL()),
	}
}

// RegisterInput carries a registration request. Role is optional and
// defaults to STAFF.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
}

// Register creates a new account and issues its first token. ADMIN is not
// self-assignable through public registration.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.User, string, error) {
	role := in.Role
	if role == "" {
		role = domain.DefaultRole
	}
	if role == domain.RoleAdmin {
		return nil, "", apperrors.NewValidationError("role ADMIN cannot be self-assigned", nil)
	}
	if !domain.ValidRole(role) {
		return nil, "", apperrors.NewValidationError("unknown role", nil)
	}

	if _, err := s.users.GetByEmail(ctx, in.Email); err == nil {
		return nil, "", apperrors.NewConflict(MsgEmailTaken)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, "", err
	}

	hash, err := s.hasher.Hash(ctx, in.Password)
	if err != nil {
		return nil, "", err
	}

	user := &domain.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         role,
		Active:       true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, _, err := s.tokens.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login authenticates by email and password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", apperrors.NewUnauthorized(MsgInvalidCredentials)
		}
		return nil, "", err
	}
	if !user.Active {
		return nil, "", apperrors.NewUnauthorized(MsgInvalidCredentials)
	}
	if !s.hasher.Compare(ctx, user.PasswordHash, password) {
		return nil, "", apperrors.NewUnauthorized(MsgInvalidCredentials)
	}

	token, _, err := s.tokens.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// CurrentUser fetches the account behind an authenticated identity. A valid
// token whose subject was deleted resolves to not-found, not unauthorized.
func (s *AuthService) CurrentUser(ctx context.Context, subjectID string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, subjectID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("User")
		}
		return nil, err
	}
	return user, nil
}

// Logout is a stateless acknowledgment; issued tokens stay valid until
// expiry.
func (s *AuthService) Logout(_ context.Context) error {
	return nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}

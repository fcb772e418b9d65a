package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"eventscheduler/internal/domain"
)

// TokenProvider issues and verifies the tokens handed out by the auth endpoints.
type TokenProvider interface {
	domain.TokenIssuer
	domain.TokenVerifier
}

type authService struct {
	userRepo domain.UserRepository
	hasher   domain.PasswordHasher
	policy   domain.PasswordPolicy
	tokens   TokenProvider
	now      func() time.Time
}

// NewAuthService creates an AuthService with the given repository and auth ports.
func NewAuthService(userRepo domain.UserRepository, hasher domain.PasswordHasher, policy domain.PasswordPolicy, tokens TokenProvider) domain.AuthService {
	return &authService{
		userRepo: userRepo,
		hasher:   hasher,
		policy:   policy,
		tokens:   tokens,
		now:      time.Now,
	}
}

func (s *authService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, domain.ErrMissingFields
	}

	exists, err := s.userRepo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if exists {
		return nil, domain.ErrUsernameTaken
	}

	if err := s.policy.Validate(username, password); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := domain.NewUser(username, hash, s.now().UTC())
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrUsernameTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (s *authService) ObtainToken(ctx context.Context, username, password string) (*domain.TokenPair, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return nil, domain.ErrMissingFields
	}

	user, err := s.userRepo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	access, err := s.tokens.IssueAccess(user)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}
	refresh, err := s.tokens.IssueRefresh(user)
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}
	return &domain.TokenPair{Access: access, Refresh: refresh}, nil
}

// RefreshToken issues a new access token. Role claims are reloaded so that a
// promotion or demotion takes effect on the next refresh.
func (s *authService) RefreshToken(ctx context.Context, refresh string) (*domain.TokenPair, error) {
	if strings.TrimSpace(refresh) == "" {
		return nil, domain.ErrMissingFields
	}
	userID, err := s.tokens.VerifyRefresh(refresh)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	access, err := s.tokens.IssueAccess(user)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}
	return &domain.TokenPair{Access: access}, nil
}

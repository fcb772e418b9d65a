package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"eventscheduler/internal/domain"
)

const (
	defaultUsersPageSize = 20
	maxUsersPageSize     = 100
)

type userService struct {
	userRepo domain.UserRepository
}

// NewUserService creates a UserService backed by userRepo.
func NewUserService(userRepo domain.UserRepository) domain.UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) List(ctx context.Context, params domain.PaginationParams) ([]*domain.User, int, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PageSize < 1 {
		params.PageSize = defaultUsersPageSize
	}
	if params.PageSize > maxUsersPageSize {
		params.PageSize = maxUsersPageSize
	}
	users, total, err := s.userRepo.List(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}

func (s *userService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// Promote sets the role flags of the named user and returns the updated account.
func (s *userService) Promote(ctx context.Context, username string, isStaff, isSuperuser bool) (*domain.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if err := s.userRepo.SetRoles(ctx, user.ID, isStaff, isSuperuser); err != nil {
		return nil, fmt.Errorf("failed to set roles: %w", err)
	}
	user.IsStaff = isStaff
	user.IsSuperuser = isSuperuser
	return user, nil
}

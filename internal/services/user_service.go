package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ratewallet/internal/auth"
	"ratewallet/internal/config"
	"ratewallet/internal/models"
	repo "ratewallet/internal/repository"
)

type UserService struct {
	users repo.Users
	tm    *auth.TokenManager
	cfg   config.Config
}

func NewUserService(users repo.Users, tm *auth.TokenManager, cfg config.Config) *UserService {
	return &UserService{users: users, tm: tm, cfg: cfg}
}

// Register creates the user together with its starting balance in one atomic
// unit, so no user ever exists without a balance row.
func (s *UserService) Register(ctx context.Context, username, email, password string) (models.User, error) {
	u := models.User{Username: strings.TrimSpace(username), Email: strings.TrimSpace(email)}
	if err := u.Validate(); err != nil {
		return models.User{}, fmt.Errorf("%w: %s", ErrValidation, err)
	}
	if len(password) < 8 {
		return models.User{}, fmt.Errorf("%w: password too short", ErrValidation)
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, err
	}
	created, err := s.users.CreateWithBalance(ctx, u.Username, u.Email, hash, s.cfg.StartingCoins)
	if errors.Is(err, repo.ErrDuplicate) {
		return models.User{}, fmt.Errorf("%w: username or email taken", ErrValidation)
	}
	return created, err
}

// Login verifies the credentials and issues an access/refresh token pair.
func (s *UserService) Login(ctx context.Context, username, password string) (auth.TokenPair, error) {
	u, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, repo.ErrNotFound) {
		return auth.TokenPair{}, ErrInvalidCredentials
	}
	if err != nil {
		return auth.TokenPair{}, err
	}
	if err := auth.VerifyPassword(password, u.PasswordHash); err != nil {
		return auth.TokenPair{}, ErrInvalidCredentials
	}
	return s.tm.GeneratePair(u.ID)
}

// Refresh exchanges a valid refresh token for a fresh pair.
func (s *UserService) Refresh(refreshToken string) (auth.TokenPair, error) {
	claims, isRefresh, err := s.tm.ParseAny(refreshToken)
	if err != nil || !isRefresh {
		return auth.TokenPair{}, ErrInvalidCredentials
	}
	return s.tm.GeneratePair(claims.UserID)
}

package services

import (
	"context"
	"errors"

	"ratewallet/internal/models"
	repo "ratewallet/internal/repository"
)

type BalanceService struct{ balances repo.Balances }

func NewBalanceService(balances repo.Balances) *BalanceService {
	return &BalanceService{balances: balances}
}

// Current is a plain consistent read of the user's balance row.
func (s *BalanceService) Current(ctx context.Context, userID string) (models.Balance, error) {
	b, err := s.balances.Get(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return models.Balance{}, ErrNotFound
	}
	return b, err
}

// Package fundlockservice manages business logic layer of fund locks.
package fundlockservice

import (
	"context"
	"errors"

	"github.com/petrbank/ledger-core/internal/domain"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Repo provides data access layer interface needed by fund lock service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package fundlockservice
type Repo interface {
	Lock(ctx context.Context, arg domain.LockFundsParams) (domain.FundLock, domain.Account, error)
	Unlock(ctx context.Context, lockID, reason string) (domain.FundLock, error)
	UnlockByReference(ctx context.Context, referenceID, reason string) (domain.FundLock, error)
	Get(ctx context.Context, lockID string) (domain.FundLock, error)
}

// Service facilitates fund lock business logic.
type Service struct {
	repo Repo
}

// New returns fund lock service struct.
func New(repo Repo) *Service {
	return &Service{repo: repo}
}

// Lock reserves the amount against the account's available balance and
// returns the lock id plus the new available balance.
func (s *Service) Lock(ctx context.Context, arg domain.LockFundsParams) (domain.LockFundsResult, error) {
	l := zerolog.Ctx(ctx)

	amount, err := decimal.NewFromString(arg.Amount)
	if err != nil {
		l.Info().Err(err).Str("amount", arg.Amount).Send()
		return domain.LockFundsResult{}, domain.ErrInvalidAmount
	}

	if amount.LessThanOrEqual(decimal.Zero) {
		return domain.LockFundsResult{}, domain.ErrNegativeAmount
	}

	if arg.LockType == "" || arg.ReferenceID == "" {
		return domain.LockFundsResult{}, errors.New("lock type and reference id are required")
	}

	lock, account, err := s.repo.Lock(ctx, arg)
	if err != nil {
		l.Info().Err(err).Str("account", arg.AccountNumber).Send()
		return domain.LockFundsResult{}, err
	}

	available := decimal.RequireFromString(account.Balance).
		Sub(decimal.RequireFromString(account.HoldAmount))

	return domain.LockFundsResult{
		LockID:           lock.ID,
		AccountNumber:    lock.AccountNumber,
		LockedAmount:     lock.Amount,
		AvailableBalance: available.StringFixed(2),
		Status:           lock.Status,
	}, nil
}

// Unlock releases the lock with the given id.
func (s *Service) Unlock(ctx context.Context, lockID, reason string) (domain.FundLock, error) {
	return s.repo.Unlock(ctx, lockID, reason)
}

// UnlockByReference releases the active lock held under the external
// reference id. A second release of the same reference fails with
// domain.ErrLockNotFound; callers tolerate that as "already released".
func (s *Service) UnlockByReference(ctx context.Context, referenceID, reason string) (domain.FundLock, error) {
	return s.repo.UnlockByReference(ctx, referenceID, reason)
}

// Get returns the lock with the given id.
func (s *Service) Get(ctx context.Context, lockID string) (domain.FundLock, error) {
	return s.repo.Get(ctx, lockID)
}

// Package depositservice manages fixed-term deposits on top of the fund
// lock registry.
//
// Opening a deposit is a reservation-then-commit saga: the principal is
// locked first, then the deposit record is created. When the second
// step fails the first is compensated in reverse order. The forward
// path is strict; the rollback path is best effort and only logs when
// its own unlock fails.
package depositservice

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/petrbank/ledger-core/internal/domain"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// depositLockType tags fund locks owned by deposits.
const depositLockType = "DEPOSIT"

// Repo provides data access layer interface needed by deposit service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package depositservice
type Repo interface {
	Create(ctx context.Context, d domain.Deposit) (domain.Deposit, error)
	Get(ctx context.Context, id string) (domain.Deposit, error)
	Close(ctx context.Context, id string) (domain.Deposit, error)
	Delete(ctx context.Context, id string) error
}

// LockRegistry is the fund lock registry consumed by the deposit saga.
type LockRegistry interface {
	Lock(ctx context.Context, arg domain.LockFundsParams) (domain.LockFundsResult, error)
	UnlockByReference(ctx context.Context, referenceID, reason string) (domain.FundLock, error)
}

// Service facilitates deposit business logic.
type Service struct {
	repo  Repo
	locks LockRegistry
}

// New returns deposit service struct.
func New(repo Repo, locks LockRegistry) *Service {
	return &Service{repo: repo, locks: locks}
}

// Open locks the principal and creates the deposit record.
func (s *Service) Open(ctx context.Context, arg domain.OpenDepositParams) (domain.Deposit, error) {
	l := zerolog.Ctx(ctx)

	principal, err := decimal.NewFromString(arg.Principal)
	if err != nil {
		l.Info().Err(err).Str("principal", arg.Principal).Send()
		return domain.Deposit{}, domain.ErrInvalidAmount
	}

	if principal.LessThanOrEqual(decimal.Zero) {
		return domain.Deposit{}, domain.ErrNegativeAmount
	}

	if arg.TermMonths <= 0 {
		return domain.Deposit{}, errors.New("term must be at least one month")
	}

	depositID := uuid.NewString()

	// Step 1: reserve the principal.
	_, err = s.locks.Lock(ctx, domain.LockFundsParams{
		AccountNumber: arg.AccountNumber,
		Amount:        principal.StringFixed(2),
		LockType:      depositLockType,
		ReferenceID:   depositID,
		Description:   "fixed-term deposit principal",
	})
	if err != nil {
		return domain.Deposit{}, err
	}

	// Step 2: create the durable deposit record.
	deposit, err := s.repo.Create(ctx, domain.Deposit{
		ID:            depositID,
		AccountNumber: arg.AccountNumber,
		Principal:     principal.StringFixed(2),
		TermMonths:    arg.TermMonths,
		RatePercent:   arg.RatePercent,
	})
	if err != nil {
		s.rollbackOpen(ctx, depositID)
		return domain.Deposit{}, err
	}

	return deposit, nil
}

// rollbackOpen compensates a failed open in reverse order: remove the
// draft record first, then release the locked principal. A failure of
// the unlock itself is logged as a warning only and left for manual
// reconciliation.
func (s *Service) rollbackOpen(ctx context.Context, depositID string) {
	l := zerolog.Ctx(ctx)

	if err := s.repo.Delete(ctx, depositID); err != nil {
		l.Warn().Err(err).Str("deposit_id", depositID).Msg("deleting draft deposit failed")
	}

	if _, err := s.locks.UnlockByReference(ctx, depositID, "deposit creation rolled back"); err != nil {
		l.Warn().Err(err).Str("deposit_id", depositID).Msg("rollback unlock failed; principal remains locked")
	}
}

// Close releases the locked principal and closes the deposit.
// An already-released lock is tolerated so that a repeated close is a
// safe no-op on the lock side.
func (s *Service) Close(ctx context.Context, depositID string) (domain.Deposit, error) {
	l := zerolog.Ctx(ctx)

	deposit, err := s.repo.Get(ctx, depositID)
	if err != nil {
		return domain.Deposit{}, err
	}

	if deposit.Status != domain.DepositActive {
		return domain.Deposit{}, domain.ErrDepositNotActive
	}

	if _, err := s.locks.UnlockByReference(ctx, depositID, "deposit closed"); err != nil {
		if err != domain.ErrLockNotFound && err != domain.ErrLockNotActive {
			return domain.Deposit{}, err
		}

		l.Info().Str("deposit_id", depositID).Msg("deposit lock already released")
	}

	return s.repo.Close(ctx, depositID)
}

// Get returns the deposit with the given id.
func (s *Service) Get(ctx context.Context, depositID string) (domain.Deposit, error) {
	return s.repo.Get(ctx, depositID)
}

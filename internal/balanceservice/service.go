// Package balanceservice manages business logic layer of balance operations.
//
// It is the only writer of account balances. Debit, credit, hold and
// release are each applied at most once per idempotency reference: a
// replayed reference returns the originally recorded result instead of
// mutating the balance again.
package balanceservice

import (
	"context"

	"github.com/petrbank/ledger-core/internal/domain"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// maxConflictRetries bounds retries of operations that lost a
// serialization race.
const maxConflictRetries = 3

// Repo provides data access layer interface needed by balance service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package balanceservice
type Repo interface {
	Debit(ctx context.Context, arg domain.BalanceOperationParams) (domain.AuditEntry, error)
	Credit(ctx context.Context, arg domain.BalanceOperationParams) (domain.AuditEntry, error)
	Hold(ctx context.Context, arg domain.BalanceOperationParams) (domain.AuditEntry, error)
	ReleaseHold(ctx context.Context, arg domain.BalanceOperationParams) (domain.AuditEntry, error)
	GetAccount(ctx context.Context, number string) (domain.Account, error)
	GetEntryByReference(ctx context.Context, reference string) (domain.AuditEntry, error)
}

// Service facilitates balance operation business logic.
type Service struct {
	repo Repo
}

// New returns balance service struct to manage balance operations.
func New(repo Repo) *Service {
	return &Service{repo: repo}
}

// Debit subtracts the amount from the account's balance.
func (s *Service) Debit(ctx context.Context, arg domain.BalanceOperationParams) (domain.BalanceOperationResult, error) {
	return s.apply(ctx, domain.OperationDebit, s.repo.Debit, arg)
}

// Credit adds the amount to the account's balance.
func (s *Service) Credit(ctx context.Context, arg domain.BalanceOperationParams) (domain.BalanceOperationResult, error) {
	return s.apply(ctx, domain.OperationCredit, s.repo.Credit, arg)
}

// Hold reserves the amount against the account's available balance.
func (s *Service) Hold(ctx context.Context, arg domain.BalanceOperationParams) (domain.BalanceOperationResult, error) {
	return s.apply(ctx, domain.OperationHold, s.repo.Hold, arg)
}

// ReleaseHold releases a previously reserved amount.
func (s *Service) ReleaseHold(ctx context.Context, arg domain.BalanceOperationParams) (domain.BalanceOperationResult, error) {
	return s.apply(ctx, domain.OperationReleaseHold, s.repo.ReleaseHold, arg)
}

// Available returns the account's balance minus its aggregate hold.
func (s *Service) Available(ctx context.Context, number string) (string, error) {
	account, err := s.repo.GetAccount(ctx, number)
	if err != nil {
		return "", err
	}

	balance, err := decimal.NewFromString(account.Balance)
	if err != nil {
		return "", err
	}

	hold, err := decimal.NewFromString(account.HoldAmount)
	if err != nil {
		return "", err
	}

	return balance.Sub(hold).StringFixed(2), nil
}

type operation func(ctx context.Context, arg domain.BalanceOperationParams) (domain.AuditEntry, error)

func (s *Service) apply(ctx context.Context, op domain.OperationType, run operation, arg domain.BalanceOperationParams) (domain.BalanceOperationResult, error) {
	l := zerolog.Ctx(ctx)

	if err := validAmount(arg.Amount); err != nil {
		l.Info().Err(err).Str("amount", arg.Amount).Send()
		return domain.BalanceOperationResult{}, err
	}

	if arg.Reference == "" {
		return domain.BalanceOperationResult{}, domain.ErrMissingReference
	}

	var (
		entry domain.AuditEntry
		err   error
	)

	for attempt := 0; attempt <= maxConflictRetries; attempt++ {
		entry, err = run(ctx, arg)
		if err != domain.ErrConcurrencyConflict {
			break
		}

		l.Warn().Int("attempt", attempt+1).Str("reference", arg.Reference).Msg("retrying after concurrency conflict")
	}

	if err == domain.ErrDuplicateReference {
		return s.replay(ctx, op, arg)
	}

	if err != nil {
		return domain.BalanceOperationResult{}, err
	}

	return toResult(entry, false), nil
}

// replay returns the originally recorded result for a reused reference.
// The reference must point at the same operation on the same account,
// otherwise the duplicate is a caller bug and is surfaced as an error.
func (s *Service) replay(ctx context.Context, op domain.OperationType, arg domain.BalanceOperationParams) (domain.BalanceOperationResult, error) {
	l := zerolog.Ctx(ctx)

	entry, err := s.repo.GetEntryByReference(ctx, arg.Reference)
	if err != nil {
		l.Error().Err(err).Str("reference", arg.Reference).Send()
		return domain.BalanceOperationResult{}, err
	}

	if entry.Operation != op || entry.AccountNumber != arg.AccountNumber {
		l.Info().
			Str("reference", arg.Reference).
			Str("recorded_operation", string(entry.Operation)).
			Str("requested_operation", string(op)).
			Msg("reference reused for a different operation")

		return domain.BalanceOperationResult{}, domain.ErrDuplicateReference
	}

	return toResult(entry, true), nil
}

// validAmount checks that the amount is a positive decimal with at most
// two decimal places.
func validAmount(amount string) error {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return domain.ErrInvalidAmount
	}

	if d.LessThanOrEqual(decimal.Zero) {
		return domain.ErrNegativeAmount
	}

	if d.Exponent() < -2 {
		return domain.ErrInvalidAmount
	}

	return nil
}

func toResult(entry domain.AuditEntry, replayed bool) domain.BalanceOperationResult {
	return domain.BalanceOperationResult{
		AccountNumber:    entry.AccountNumber,
		Operation:        entry.Operation,
		PreviousBalance:  entry.PreviousBalance,
		Amount:           entry.Amount,
		NewBalance:       entry.NewBalance,
		HoldAmount:       entry.HoldAmount,
		AvailableBalance: entry.AvailableBalance,
		Currency:         entry.Currency,
		Reference:        entry.Reference,
		Replayed:         replayed,
		CreatedAt:        entry.CreatedAt,
	}
}

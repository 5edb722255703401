// Package accountservice manages business logic layer of ledger accounts.
package accountservice

import (
	"context"

	"github.com/petrbank/ledger-core/internal/domain"
	"github.com/petrbank/ledger-core/pkg/currencypkg"
	"github.com/petrbank/ledger-core/pkg/randompkg"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Repo provides data access layer interface needed by account service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package accountservice
type Repo interface {
	Create(ctx context.Context, number, balance, currency string, status domain.AccountStatus) (domain.Account, error)
	Get(ctx context.Context, number string) (domain.Account, error)
	SetStatus(ctx context.Context, number string, status domain.AccountStatus) (domain.Account, error)
}

// AuditReader provides read access to the audit log for statements.
type AuditReader interface {
	ListByAccount(ctx context.Context, accountNumber string, limit, offset int32) ([]domain.AuditEntry, error)
}

// Service facilitates account business logic.
type Service struct {
	repo  Repo
	audit AuditReader
}

// New returns account service struct.
func New(repo Repo, audit AuditReader) *Service {
	return &Service{repo: repo, audit: audit}
}

// AccountWithAvailable is an account together with its computed
// available balance.
type AccountWithAvailable struct {
	domain.Account
	AvailableBalance string `json:"available_balance"`
}

// Open creates a new ACTIVE ledger account. When number is empty a
// fresh account number is generated.
func (s *Service) Open(ctx context.Context, number, openingBalance, currency string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	if !currencypkg.IsSupportedCurrency(currency) {
		return domain.Account{}, domain.ErrCurrencyMismatch
	}

	balance, err := decimal.NewFromString(openingBalance)
	if err != nil || balance.IsNegative() {
		l.Info().Str("balance", openingBalance).Msg("invalid opening balance")
		return domain.Account{}, domain.ErrInvalidAmount
	}

	if number == "" {
		number = randompkg.AccountNumber()
	}

	return s.repo.Create(ctx, number, balance.StringFixed(2), currency, domain.StatusActive)
}

// Get returns the account with its available balance.
func (s *Service) Get(ctx context.Context, number string) (AccountWithAvailable, error) {
	account, err := s.repo.Get(ctx, number)
	if err != nil {
		return AccountWithAvailable{}, err
	}

	available := decimal.RequireFromString(account.Balance).
		Sub(decimal.RequireFromString(account.HoldAmount))

	return AccountWithAvailable{
		Account:          account,
		AvailableBalance: available.StringFixed(2),
	}, nil
}

// Statement returns the account's audit entries, oldest first.
func (s *Service) Statement(ctx context.Context, number string, limit, offset int32) ([]domain.AuditEntry, error) {
	if _, err := s.repo.Get(ctx, number); err != nil {
		return nil, err
	}

	return s.audit.ListByAccount(ctx, number, limit, offset)
}

// SetStatus changes the account's lifecycle status.
func (s *Service) SetStatus(ctx context.Context, number string, status domain.AccountStatus) (domain.Account, error) {
	return s.repo.SetStatus(ctx, number, status)
}

// ValidateAccount checks that the account exists and returns it. It
// implements the account validation collaborator consumed by the
// transfer saga.
func (s *Service) ValidateAccount(ctx context.Context, number string) (domain.Account, error) {
	return s.repo.Get(ctx, number)
}

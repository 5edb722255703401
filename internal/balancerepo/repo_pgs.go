// Package balancerepo executes atomic balance operations against the
// ledger store and the audit log.
//
// Every operation runs inside a single database transaction: the account
// row is locked first, checks and the mutation happen under that lock,
// and the audit entry is written before commit. The unique reference
// constraint on the audit log makes replays fail the whole transaction,
// so a duplicate reference can never mutate the balance twice.
package balancerepo

import (
	"context"
	"database/sql"

	"github.com/petrbank/ledger-core/internal/auditrepo"
	"github.com/petrbank/ledger-core/internal/domain"
	"github.com/petrbank/ledger-core/internal/ledgerrepo"
	"github.com/petrbank/ledger-core/pkg/dbpkg"
	"github.com/petrbank/ledger-core/pkg/errorspkg"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// RepoPGS facilitates the balance operation repository layer logic.
type RepoPGS struct {
	conn *sql.DB
}

// NewRepoPGS returns balance RepoPGS with a connection to start transactions.
func NewRepoPGS(conn *sql.DB) *RepoPGS {
	return &RepoPGS{conn: conn}
}

// execTx executes fn within a database transaction.
func (r *RepoPGS) execTx(ctx context.Context, fn func(ledger *ledgerrepo.RepoPGS, audit *auditrepo.RepoPGS) (domain.AuditEntry, error)) (domain.AuditEntry, error) {
	l := zerolog.Ctx(ctx)

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return domain.AuditEntry{}, errorspkg.ErrInternal
	}

	entry, err := fn(ledgerrepo.NewRepoPGS(tx), auditrepo.NewRepoPGS(tx))
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			l.Error().Err(rbErr).Msg("tx rollback failed")
		}

		if dbpkg.IsConcurrencyError(err) {
			return domain.AuditEntry{}, domain.ErrConcurrencyConflict
		}

		return domain.AuditEntry{}, err
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()

		if dbpkg.IsConcurrencyError(err) {
			return domain.AuditEntry{}, domain.ErrConcurrencyConflict
		}

		return domain.AuditEntry{}, errorspkg.ErrInternal
	}

	return entry, nil
}

// Debit subtracts the amount from the account balance.
func (r *RepoPGS) Debit(ctx context.Context, arg domain.BalanceOperationParams) (domain.AuditEntry, error) {
	return r.execTx(ctx, func(ledger *ledgerrepo.RepoPGS, audit *auditrepo.RepoPGS) (domain.AuditEntry, error) {
		account, err := ledger.GetForUpdate(ctx, arg.AccountNumber)
		if err != nil {
			return domain.AuditEntry{}, err
		}

		if !account.Status.CanDebit() {
			return domain.AuditEntry{}, domain.ErrAccountNotEligible
		}

		balance, hold, amount, err := parseAmounts(account, arg.Amount)
		if err != nil {
			return domain.AuditEntry{}, err
		}

		if amount.GreaterThan(balance.Sub(hold)) {
			return domain.AuditEntry{}, domain.ErrInsufficientFunds
		}

		newBalance := balance.Sub(amount)

		updated, err := ledger.UpdateBalances(ctx, account.Number, newBalance.StringFixed(2), account.HoldAmount)
		if err != nil {
			return domain.AuditEntry{}, err
		}

		return audit.Create(ctx, newEntry(domain.OperationDebit, account, updated, arg))
	})
}

// Credit adds the amount to the account balance.
func (r *RepoPGS) Credit(ctx context.Context, arg domain.BalanceOperationParams) (domain.AuditEntry, error) {
	return r.execTx(ctx, func(ledger *ledgerrepo.RepoPGS, audit *auditrepo.RepoPGS) (domain.AuditEntry, error) {
		account, err := ledger.GetForUpdate(ctx, arg.AccountNumber)
		if err != nil {
			return domain.AuditEntry{}, err
		}

		if !account.Status.CanCredit() {
			return domain.AuditEntry{}, domain.ErrAccountNotEligible
		}

		balance, _, amount, err := parseAmounts(account, arg.Amount)
		if err != nil {
			return domain.AuditEntry{}, err
		}

		newBalance := balance.Add(amount)

		updated, err := ledger.UpdateBalances(ctx, account.Number, newBalance.StringFixed(2), account.HoldAmount)
		if err != nil {
			return domain.AuditEntry{}, err
		}

		return audit.Create(ctx, newEntry(domain.OperationCredit, account, updated, arg))
	})
}

// Hold increases the account's aggregate hold without touching the balance.
func (r *RepoPGS) Hold(ctx context.Context, arg domain.BalanceOperationParams) (domain.AuditEntry, error) {
	return r.execTx(ctx, func(ledger *ledgerrepo.RepoPGS, audit *auditrepo.RepoPGS) (domain.AuditEntry, error) {
		account, err := ledger.GetForUpdate(ctx, arg.AccountNumber)
		if err != nil {
			return domain.AuditEntry{}, err
		}

		if !account.Status.CanDebit() {
			return domain.AuditEntry{}, domain.ErrAccountNotEligible
		}

		balance, hold, amount, err := parseAmounts(account, arg.Amount)
		if err != nil {
			return domain.AuditEntry{}, err
		}

		if amount.GreaterThan(balance.Sub(hold)) {
			return domain.AuditEntry{}, domain.ErrInsufficientFunds
		}

		newHold := hold.Add(amount)

		updated, err := ledger.UpdateBalances(ctx, account.Number, account.Balance, newHold.StringFixed(2))
		if err != nil {
			return domain.AuditEntry{}, err
		}

		return audit.Create(ctx, newEntry(domain.OperationHold, account, updated, arg))
	})
}

// ReleaseHold decreases the account's aggregate hold.
func (r *RepoPGS) ReleaseHold(ctx context.Context, arg domain.BalanceOperationParams) (domain.AuditEntry, error) {
	return r.execTx(ctx, func(ledger *ledgerrepo.RepoPGS, audit *auditrepo.RepoPGS) (domain.AuditEntry, error) {
		account, err := ledger.GetForUpdate(ctx, arg.AccountNumber)
		if err != nil {
			return domain.AuditEntry{}, err
		}

		_, hold, amount, err := parseAmounts(account, arg.Amount)
		if err != nil {
			return domain.AuditEntry{}, err
		}

		if amount.GreaterThan(hold) {
			return domain.AuditEntry{}, domain.ErrInvalidAmount
		}

		newHold := hold.Sub(amount)

		updated, err := ledger.UpdateBalances(ctx, account.Number, account.Balance, newHold.StringFixed(2))
		if err != nil {
			return domain.AuditEntry{}, err
		}

		return audit.Create(ctx, newEntry(domain.OperationReleaseHold, account, updated, arg))
	})
}

// GetAccount returns the account without locking it.
func (r *RepoPGS) GetAccount(ctx context.Context, number string) (domain.Account, error) {
	return ledgerrepo.NewRepoPGS(r.conn).Get(ctx, number)
}

// GetEntryByReference returns the audit entry recorded under the reference.
func (r *RepoPGS) GetEntryByReference(ctx context.Context, reference string) (domain.AuditEntry, error) {
	return auditrepo.NewRepoPGS(r.conn).GetByReference(ctx, reference)
}

func parseAmounts(account domain.Account, amount string) (balance, hold, amt decimal.Decimal, err error) {
	balance, err = decimal.NewFromString(account.Balance)
	if err != nil {
		return balance, hold, amt, errorspkg.ErrInternal
	}

	hold, err = decimal.NewFromString(account.HoldAmount)
	if err != nil {
		return balance, hold, amt, errorspkg.ErrInternal
	}

	amt, err = decimal.NewFromString(amount)
	if err != nil {
		return balance, hold, amt, domain.ErrInvalidAmount
	}

	return balance, hold, amt, nil
}

func newEntry(op domain.OperationType, before, after domain.Account, arg domain.BalanceOperationParams) domain.AuditEntry {
	available := decimal.RequireFromString(after.Balance).
		Sub(decimal.RequireFromString(after.HoldAmount))

	return domain.AuditEntry{
		AccountNumber:    after.Number,
		Operation:        op,
		PreviousBalance:  before.Balance,
		Amount:           arg.Amount,
		NewBalance:       after.Balance,
		HoldAmount:       after.HoldAmount,
		AvailableBalance: available.StringFixed(2),
		Currency:         after.Currency,
		Reference:        arg.Reference,
		Description:      arg.Description,
		Actor:            arg.Actor,
	}
}

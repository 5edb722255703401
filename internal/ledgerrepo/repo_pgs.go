// Package ledgerrepo manages the persisted account balance records.
package ledgerrepo

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/petrbank/ledger-core/internal/domain"
	"github.com/petrbank/ledger-core/pkg/dbpkg"
	"github.com/petrbank/ledger-core/pkg/errorspkg"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates ledger repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns ledger RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{db: db}
}

const createQuery = `
INSERT INTO
    accounts (number, balance, hold_amount, currency, status)
VALUES
    ($1, $2, 0, $3, $4)
RETURNING number, balance, hold_amount, currency, status, created_at
`

// Create creates the account balance record and then returns it.
func (r *RepoPGS) Create(ctx context.Context, number, balance, currency string, status domain.AccountStatus) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery, number, balance, currency, status)

	var a domain.Account

	err := row.Scan(
		&a.Number,
		&a.Balance,
		&a.HoldAmount,
		&a.Currency,
		&a.Status,
		&a.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "accounts_pkey":
				return a, domain.ErrAccountAlreadyExists
			case "accounts_balance_check":
				return a, domain.ErrInvalidAmount
			}
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const getQuery = `
SELECT
	number, balance, hold_amount, currency, status, created_at
FROM accounts
WHERE number = $1
`

// Get returns the account with the given number.
func (r *RepoPGS) Get(ctx context.Context, number string) (domain.Account, error) {
	return r.get(ctx, getQuery, number)
}

const getForUpdateQuery = getQuery + `
FOR UPDATE
`

// GetForUpdate returns the account while holding its row lock.
//
// It must run inside a transaction. The lock is the serialization point
// for all mutations of the account, so callers own the row until commit.
func (r *RepoPGS) GetForUpdate(ctx context.Context, number string) (domain.Account, error) {
	return r.get(ctx, getForUpdateQuery, number)
}

func (r *RepoPGS) get(ctx context.Context, query, number string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, query, number)

	var a domain.Account

	err := row.Scan(
		&a.Number,
		&a.Balance,
		&a.HoldAmount,
		&a.Currency,
		&a.Status,
		&a.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const updateBalancesQuery = `
UPDATE accounts
SET balance = $1, hold_amount = $2
WHERE number = $3
RETURNING number, balance, hold_amount, currency, status, created_at
`

// UpdateBalances sets the account's balance and hold amount and returns the
// changed account. The caller must hold the account's row lock.
func (r *RepoPGS) UpdateBalances(ctx context.Context, number, balance, holdAmount string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, updateBalancesQuery, balance, holdAmount, number)

	var a domain.Account

	err := row.Scan(
		&a.Number,
		&a.Balance,
		&a.HoldAmount,
		&a.Currency,
		&a.Status,
		&a.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "accounts_balance_check",
				"accounts_hold_amount_check",
				"accounts_hold_within_balance_check":
				return a, domain.ErrInsufficientFunds
			}
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const setStatusQuery = `
UPDATE accounts
SET status = $1
WHERE number = $2
RETURNING number, balance, hold_amount, currency, status, created_at
`

// SetStatus changes the account's lifecycle status.
func (r *RepoPGS) SetStatus(ctx context.Context, number string, status domain.AccountStatus) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, setStatusQuery, status, number)

	var a domain.Account

	err := row.Scan(
		&a.Number,
		&a.Balance,
		&a.HoldAmount,
		&a.Currency,
		&a.Status,
		&a.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

// Package depositrepo manages repository layer of fixed-term deposits.
package depositrepo

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/petrbank/ledger-core/internal/domain"
	"github.com/petrbank/ledger-core/pkg/dbpkg"
	"github.com/petrbank/ledger-core/pkg/errorspkg"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates deposit repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns deposit RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{db: db}
}

const depositColumns = `
id, account_number, principal, term_months, rate_percent, status, created_at, closed_at
`

const createQuery = `
INSERT INTO
    deposits (id, account_number, principal, term_months, rate_percent, status)
VALUES
    ($1, $2, $3, $4, $5, 'ACTIVE')
RETURNING` + depositColumns

// Create creates the deposit record and then returns it.
func (r *RepoPGS) Create(ctx context.Context, d domain.Deposit) (domain.Deposit, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery,
		d.ID, d.AccountNumber, d.Principal, d.TermMonths, d.RatePercent)

	var created domain.Deposit

	if err := scanDeposit(row, &created); err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "deposits_account_number_fkey":
				return created, domain.ErrAccountNotFound
			case "deposits_principal_check":
				return created, domain.ErrInvalidAmount
			}
		}

		return created, errorspkg.ErrInternal
	}

	return created, nil
}

const getQuery = `
SELECT` + depositColumns + `
FROM deposits
WHERE id = $1
`

// Get returns the deposit with the given id.
func (r *RepoPGS) Get(ctx context.Context, id string) (domain.Deposit, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getQuery, id)

	var d domain.Deposit

	if err := scanDeposit(row, &d); err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return d, domain.ErrDepositNotFound
		}

		return d, errorspkg.ErrInternal
	}

	return d, nil
}

const closeQuery = `
UPDATE deposits
SET status = 'CLOSED', closed_at = now()
WHERE id = $1 AND status = 'ACTIVE'
RETURNING` + depositColumns

// Close moves an ACTIVE deposit to CLOSED with a compare-and-swap.
func (r *RepoPGS) Close(ctx context.Context, id string) (domain.Deposit, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, closeQuery, id)

	var d domain.Deposit

	if err := scanDeposit(row, &d); err != nil {
		if err == sql.ErrNoRows {
			if _, getErr := r.Get(ctx, id); getErr != nil {
				return d, getErr
			}

			return d, domain.ErrDepositNotActive
		}

		l.Error().Err(err).Send()

		return d, errorspkg.ErrInternal
	}

	return d, nil
}

const deleteQuery = `
DELETE FROM deposits
WHERE id = $1
`

// Delete removes a draft deposit during saga rollback.
func (r *RepoPGS) Delete(ctx context.Context, id string) error {
	l := zerolog.Ctx(ctx)

	if _, err := r.db.ExecContext(ctx, deleteQuery, id); err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	return nil
}

func scanDeposit(row *sql.Row, d *domain.Deposit) error {
	var closedAt sql.NullTime

	err := row.Scan(
		&d.ID,
		&d.AccountNumber,
		&d.Principal,
		&d.TermMonths,
		&d.RatePercent,
		&d.Status,
		&d.CreatedAt,
		&closedAt,
	)
	if err != nil {
		return err
	}

	if closedAt.Valid {
		d.ClosedAt = &closedAt.Time
	}

	return nil
}

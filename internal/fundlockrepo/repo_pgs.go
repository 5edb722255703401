// Package fundlockrepo manages named fund reservations against accounts.
//
// Placing and releasing a lock mutates the account's aggregate hold, so
// both run inside a transaction that owns the account's row lock. The
// balance itself is never touched here.
package fundlockrepo

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/petrbank/ledger-core/internal/auditrepo"
	"github.com/petrbank/ledger-core/internal/domain"
	"github.com/petrbank/ledger-core/internal/ledgerrepo"
	"github.com/petrbank/ledger-core/pkg/dbpkg"
	"github.com/petrbank/ledger-core/pkg/errorspkg"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// RepoPGS facilitates fund lock repository layer logic.
type RepoPGS struct {
	conn *sql.DB
}

// NewRepoPGS returns fund lock RepoPGS with a connection to start transactions.
func NewRepoPGS(conn *sql.DB) *RepoPGS {
	return &RepoPGS{conn: conn}
}

const lockColumns = `
id, account_number, amount, lock_type, reference_id, status,
description, created_at, released_at, release_reason
`

const insertLockQuery = `
INSERT INTO
    fund_locks (id, account_number, amount, lock_type, reference_id, status, description)
VALUES
    ($1, $2, $3, $4, $5, 'LOCKED', $6)
RETURNING` + lockColumns

const getLockForUpdateQuery = `
SELECT` + lockColumns + `
FROM fund_locks
WHERE id = $1
FOR UPDATE
`

const getActiveLockByReferenceQuery = `
SELECT` + lockColumns + `
FROM fund_locks
WHERE reference_id = $1 AND status = 'LOCKED'
FOR UPDATE
`

const releaseLockQuery = `
UPDATE fund_locks
SET status = 'RELEASED', released_at = now(), release_reason = $1
WHERE id = $2
RETURNING` + lockColumns

const getLockQuery = `
SELECT` + lockColumns + `
FROM fund_locks
WHERE id = $1
`

// Lock reserves the amount against the account and returns the new lock
// together with the updated account.
//
// The available-balance check and the lock insert share one transaction
// so two concurrent locks on the same account cannot both pass the check.
func (r *RepoPGS) Lock(ctx context.Context, arg domain.LockFundsParams) (domain.FundLock, domain.Account, error) {
	l := zerolog.Ctx(ctx)

	var (
		lock    domain.FundLock
		account domain.Account
	)

	err := r.execTx(ctx, func(tx *sql.Tx) error {
		ledger := ledgerrepo.NewRepoPGS(tx)

		locked, err := ledger.GetForUpdate(ctx, arg.AccountNumber)
		if err != nil {
			return err
		}

		if !locked.Status.CanDebit() {
			return domain.ErrAccountNotEligible
		}

		balance := decimal.RequireFromString(locked.Balance)
		hold := decimal.RequireFromString(locked.HoldAmount)

		amount, err := decimal.NewFromString(arg.Amount)
		if err != nil {
			return domain.ErrInvalidAmount
		}

		if amount.GreaterThan(balance.Sub(hold)) {
			return domain.ErrInsufficientFunds
		}

		lockID := uuid.NewString()

		row := tx.QueryRowContext(ctx, insertLockQuery,
			lockID, arg.AccountNumber, arg.Amount, arg.LockType, arg.ReferenceID, arg.Description)

		if err := scanLock(row, &lock); err != nil {
			l.Error().Err(err).Send()
			return errorspkg.ErrInternal
		}

		account, err = ledger.UpdateBalances(ctx, locked.Number, locked.Balance, hold.Add(amount).StringFixed(2))
		if err != nil {
			return err
		}

		_, err = auditrepo.NewRepoPGS(tx).Create(ctx, holdEntry(domain.OperationHold, locked, account, lock, "LOCK-"+lockID, arg.Description))

		return err
	})
	if err != nil {
		return domain.FundLock{}, domain.Account{}, err
	}

	return lock, account, nil
}

// Unlock releases the lock with the given id.
// Releasing a lock that is not LOCKED fails with domain.ErrLockNotActive.
func (r *RepoPGS) Unlock(ctx context.Context, lockID, reason string) (domain.FundLock, error) {
	return r.release(ctx, getLockForUpdateQuery, lockID, reason)
}

// UnlockByReference releases the single active lock held under the
// external reference id. It fails with domain.ErrLockNotFound when no
// active lock exists, which callers treat as "already released".
func (r *RepoPGS) UnlockByReference(ctx context.Context, referenceID, reason string) (domain.FundLock, error) {
	return r.release(ctx, getActiveLockByReferenceQuery, referenceID, reason)
}

func (r *RepoPGS) release(ctx context.Context, lookupQuery, key, reason string) (domain.FundLock, error) {
	l := zerolog.Ctx(ctx)

	var released domain.FundLock

	err := r.execTx(ctx, func(tx *sql.Tx) error {
		var lock domain.FundLock

		row := tx.QueryRowContext(ctx, lookupQuery, key)
		if err := scanLock(row, &lock); err != nil {
			if err == sql.ErrNoRows {
				return domain.ErrLockNotFound
			}

			l.Error().Err(err).Send()

			return errorspkg.ErrInternal
		}

		if lock.Status != domain.LockStatusLocked {
			return domain.ErrLockNotActive
		}

		ledger := ledgerrepo.NewRepoPGS(tx)

		account, err := ledger.GetForUpdate(ctx, lock.AccountNumber)
		if err != nil {
			return err
		}

		hold := decimal.RequireFromString(account.HoldAmount)
		amount := decimal.RequireFromString(lock.Amount)

		row = tx.QueryRowContext(ctx, releaseLockQuery, reason, lock.ID)
		if err := scanLock(row, &released); err != nil {
			l.Error().Err(err).Send()
			return errorspkg.ErrInternal
		}

		updated, err := ledger.UpdateBalances(ctx, account.Number, account.Balance, hold.Sub(amount).StringFixed(2))
		if err != nil {
			return err
		}

		_, err = auditrepo.NewRepoPGS(tx).Create(ctx, holdEntry(domain.OperationReleaseHold, account, updated, released, "UNLOCK-"+lock.ID, reason))

		return err
	})
	if err != nil {
		return domain.FundLock{}, err
	}

	return released, nil
}

// Get returns the lock with the given id.
func (r *RepoPGS) Get(ctx context.Context, lockID string) (domain.FundLock, error) {
	l := zerolog.Ctx(ctx)

	row := r.conn.QueryRowContext(ctx, getLockQuery, lockID)

	var lock domain.FundLock

	if err := scanLock(row, &lock); err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return lock, domain.ErrLockNotFound
		}

		return lock, errorspkg.ErrInternal
	}

	return lock, nil
}

func (r *RepoPGS) execTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	l := zerolog.Ctx(ctx)

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			l.Error().Err(rbErr).Msg("tx rollback failed")
		}

		if dbpkg.IsConcurrencyError(err) {
			return domain.ErrConcurrencyConflict
		}

		return err
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()

		if dbpkg.IsConcurrencyError(err) {
			return domain.ErrConcurrencyConflict
		}

		return errorspkg.ErrInternal
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanLock(row rowScanner, lock *domain.FundLock) error {
	var (
		releasedAt    sql.NullTime
		releaseReason sql.NullString
	)

	err := row.Scan(
		&lock.ID,
		&lock.AccountNumber,
		&lock.Amount,
		&lock.LockType,
		&lock.ReferenceID,
		&lock.Status,
		&lock.Description,
		&lock.CreatedAt,
		&releasedAt,
		&releaseReason,
	)
	if err != nil {
		return err
	}

	if releasedAt.Valid {
		lock.ReleasedAt = &releasedAt.Time
	}

	lock.ReleaseReason = releaseReason.String

	return nil
}

func holdEntry(op domain.OperationType, before, after domain.Account, lock domain.FundLock, reference, description string) domain.AuditEntry {
	available := decimal.RequireFromString(after.Balance).
		Sub(decimal.RequireFromString(after.HoldAmount))

	return domain.AuditEntry{
		AccountNumber:    after.Number,
		Operation:        op,
		PreviousBalance:  before.Balance,
		Amount:           lock.Amount,
		NewBalance:       after.Balance,
		HoldAmount:       after.HoldAmount,
		AvailableBalance: available.StringFixed(2),
		Currency:         after.Currency,
		Reference:        reference,
		Description:      description,
		Actor:            "system:" + lock.LockType,
	}
}

// Package auditrepo manages the append-only audit log of balance mutations.
package auditrepo

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/petrbank/ledger-core/internal/domain"
	"github.com/petrbank/ledger-core/pkg/dbpkg"
	"github.com/petrbank/ledger-core/pkg/errorspkg"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates audit repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns audit RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{db: db}
}

const createQuery = `
INSERT INTO
    audit_entries (account_number, operation, previous_balance, amount, new_balance,
                   hold_amount, available_balance, currency, reference, description, actor)
VALUES
    ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
RETURNING id, account_number, operation, previous_balance, amount, new_balance,
          hold_amount, available_balance, currency, reference, description, actor, created_at
`

// Create appends an audit entry and then returns it.
//
// The reference column carries a uniqueness constraint. A second write
// with the same reference fails with domain.ErrDuplicateReference, which
// is the engine's replay detection point.
func (r *RepoPGS) Create(ctx context.Context, arg domain.AuditEntry) (domain.AuditEntry, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery,
		arg.AccountNumber,
		arg.Operation,
		arg.PreviousBalance,
		arg.Amount,
		arg.NewBalance,
		arg.HoldAmount,
		arg.AvailableBalance,
		arg.Currency,
		arg.Reference,
		arg.Description,
		arg.Actor,
	)

	var e domain.AuditEntry

	err := scanEntry(row, &e)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "audit_entries_reference_key" {
				// Expected during replays, not worth an error log.
				l.Info().Str("reference", arg.Reference).Msg("duplicate idempotency reference")
				return e, domain.ErrDuplicateReference
			}
		}

		l.Error().Err(err).Send()

		return e, errorspkg.ErrInternal
	}

	return e, nil
}

const getByReferenceQuery = `
SELECT id, account_number, operation, previous_balance, amount, new_balance,
       hold_amount, available_balance, currency, reference, description, actor, created_at
FROM audit_entries
WHERE reference = $1
`

// GetByReference returns the audit entry recorded under the given
// idempotency reference.
func (r *RepoPGS) GetByReference(ctx context.Context, reference string) (domain.AuditEntry, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getByReferenceQuery, reference)

	var e domain.AuditEntry

	err := scanEntry(row, &e)
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return e, domain.ErrAuditEntryNotFound
		}

		return e, errorspkg.ErrInternal
	}

	return e, nil
}

const listByAccountQuery = `
SELECT id, account_number, operation, previous_balance, amount, new_balance,
       hold_amount, available_balance, currency, reference, description, actor, created_at
FROM audit_entries
WHERE account_number = $1
ORDER BY id
LIMIT $2 OFFSET $3
`

// ListByAccount returns the specified number of audit entries for the account.
func (r *RepoPGS) ListByAccount(ctx context.Context, accountNumber string, limit, offset int32) ([]domain.AuditEntry, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listByAccountQuery, accountNumber, limit, offset)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.AuditEntry{}

	for rows.Next() {
		var e domain.AuditEntry
		if err := rows.Scan(
			&e.ID,
			&e.AccountNumber,
			&e.Operation,
			&e.PreviousBalance,
			&e.Amount,
			&e.NewBalance,
			&e.HoldAmount,
			&e.AvailableBalance,
			&e.Currency,
			&e.Reference,
			&e.Description,
			&e.Actor,
			&e.CreatedAt,
		); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, e)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

func scanEntry(row *sql.Row, e *domain.AuditEntry) error {
	return row.Scan(
		&e.ID,
		&e.AccountNumber,
		&e.Operation,
		&e.PreviousBalance,
		&e.Amount,
		&e.NewBalance,
		&e.HoldAmount,
		&e.AvailableBalance,
		&e.Currency,
		&e.Reference,
		&e.Description,
		&e.Actor,
		&e.CreatedAt,
	)
}

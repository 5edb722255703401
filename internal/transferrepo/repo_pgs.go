// Package transferrepo manages repository layer of transfer transactions.
package transferrepo

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/petrbank/ledger-core/internal/domain"
	"github.com/petrbank/ledger-core/pkg/dbpkg"
	"github.com/petrbank/ledger-core/pkg/errorspkg"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates transfer repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns transfer RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{db: db}
}

const transferColumns = `
id, source_account, destination_account, amount, currency, status,
reference_number, description, created_by, failure_reason, created_at, completed_at
`

const createQuery = `
INSERT INTO
    transfers (id, source_account, destination_account, amount, currency,
               status, reference_number, description, created_by)
VALUES
    ($1, $2, $3, $4, $5, 'PENDING', $6, $7, $8)
RETURNING` + transferColumns

// Create creates a PENDING transfer transaction and then returns it.
func (r *RepoPGS) Create(ctx context.Context, t domain.Transfer) (domain.Transfer, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery,
		t.ID,
		t.SourceAccount,
		t.DestinationAccount,
		t.Amount,
		t.Currency,
		t.ReferenceNumber,
		t.Description,
		t.CreatedBy,
	)

	var created domain.Transfer

	if err := scanTransfer(row, &created); err != nil {
		l.Error().Err(err).Msgf("Create(ctx, %+v)", t)

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "transfers_source_account_fkey", "transfers_destination_account_fkey":
				return created, domain.ErrAccountNotFound
			case "transfers_amount_check":
				return created, domain.ErrInvalidAmount
			}
		}

		return created, errorspkg.ErrInternal
	}

	return created, nil
}

const getQuery = `
SELECT` + transferColumns + `
FROM transfers
WHERE id = $1
`

// Get returns the transfer with the given id.
func (r *RepoPGS) Get(ctx context.Context, id string) (domain.Transfer, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getQuery, id)

	var t domain.Transfer

	if err := scanTransfer(row, &t); err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return t, domain.ErrTransferNotFound
		}

		return t, errorspkg.ErrInternal
	}

	return t, nil
}

const transitionQuery = `
UPDATE transfers
SET status = $1,
    failure_reason = $2,
    completed_at = CASE WHEN $1::varchar IN ('COMPLETED', 'FAILED', 'CANCELLED') THEN now() ELSE completed_at END
WHERE id = $3 AND status = $4
RETURNING` + transferColumns

// TransitionStatus moves the transfer from one status to another with a
// compare-and-swap on the current status. A lost swap surfaces as
// domain.ErrTransferInvalidState so that only one caller can drive a
// transfer through the state machine.
func (r *RepoPGS) TransitionStatus(ctx context.Context, id string, from, to domain.TransferStatus, failureReason string) (domain.Transfer, error) {
	l := zerolog.Ctx(ctx)

	if !from.CanTransition(to) {
		return domain.Transfer{}, domain.ErrTransferInvalidState
	}

	row := r.db.QueryRowContext(ctx, transitionQuery, to, failureReason, id, from)

	var t domain.Transfer

	if err := scanTransfer(row, &t); err != nil {
		if err == sql.ErrNoRows {
			// Row exists with another status, or not at all.
			if _, getErr := r.Get(ctx, id); getErr != nil {
				return t, getErr
			}

			l.Info().
				Str("transfer_id", id).
				Str("from", string(from)).
				Str("to", string(to)).
				Msg("transfer status swap lost")

			return t, domain.ErrTransferInvalidState
		}

		l.Error().Err(err).Send()

		return t, errorspkg.ErrInternal
	}

	return t, nil
}

func scanTransfer(row *sql.Row, t *domain.Transfer) error {
	var completedAt sql.NullTime

	err := row.Scan(
		&t.ID,
		&t.SourceAccount,
		&t.DestinationAccount,
		&t.Amount,
		&t.Currency,
		&t.Status,
		&t.ReferenceNumber,
		&t.Description,
		&t.CreatedBy,
		&t.FailureReason,
		&t.CreatedAt,
		&completedAt,
	)
	if err != nil {
		return err
	}

	if completedAt.Valid {
		t.CompletedAt = &completedAt.Time
	}

	return nil
}

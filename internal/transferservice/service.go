// Package transferservice coordinates the transfer saga.
//
// A transfer is a multi-step money movement: validate, confirm the
// second factor, debit the source, credit the destination. No single
// database transaction spans the steps, so partial failure is handled
// with compensation: a debit whose matching credit fails is undone by
// crediting the same amount back to the source. Idempotency references
// derived from the transaction id keep every step and its compensation
// replay-safe.
package transferservice

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/petrbank/ledger-core/internal/domain"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Repo provides data access layer interface needed by transfer service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package transferservice
type Repo interface {
	Create(ctx context.Context, t domain.Transfer) (domain.Transfer, error)
	Get(ctx context.Context, id string) (domain.Transfer, error)
	TransitionStatus(ctx context.Context, id string, from, to domain.TransferStatus, failureReason string) (domain.Transfer, error)
}

// BalanceEngine is the balance operation engine consumed by the saga.
type BalanceEngine interface {
	Debit(ctx context.Context, arg domain.BalanceOperationParams) (domain.BalanceOperationResult, error)
	Credit(ctx context.Context, arg domain.BalanceOperationParams) (domain.BalanceOperationResult, error)
	Available(ctx context.Context, number string) (string, error)
}

// AccountValidator checks account existence and returns the account so
// the saga can inspect status and currency.
type AccountValidator interface {
	ValidateAccount(ctx context.Context, number string) (domain.Account, error)
}

// SecondFactor issues and validates one-time confirmation codes.
type SecondFactor interface {
	Issue(ctx context.Context, transactionID, contact string) (time.Duration, error)
	Validate(ctx context.Context, transactionID, code string) error
	Invalidate(ctx context.Context, transactionID string) error
}

// EventPublisher publishes terminal transfer states. Delivery is best
// effort; publish failures are logged and never block the saga.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.TransferEvent) error
}

// Service facilitates transfer saga business logic.
type Service struct {
	repo      Repo
	engine    BalanceEngine
	validator AccountValidator
	otp       SecondFactor
	events    EventPublisher
}

// New returns transfer service struct to coordinate the transfer saga.
func New(repo Repo, engine BalanceEngine, validator AccountValidator, otp SecondFactor, events EventPublisher) *Service {
	return &Service{
		repo:      repo,
		engine:    engine,
		validator: validator,
		otp:       otp,
		events:    events,
	}
}

// Initiate validates the transfer request, creates a PENDING transaction
// and triggers second-factor issuance.
func (s *Service) Initiate(ctx context.Context, arg domain.InitiateTransferParams) (domain.TransferReceipt, error) {
	l := zerolog.Ctx(ctx)

	amount, err := decimal.NewFromString(arg.Amount)
	if err != nil {
		l.Info().Err(err).Str("amount", arg.Amount).Send()
		return domain.TransferReceipt{}, domain.ErrInvalidAmount
	}

	if amount.LessThanOrEqual(decimal.Zero) {
		return domain.TransferReceipt{}, domain.ErrNegativeAmount
	}

	if arg.SourceAccount == arg.DestinationAccount {
		return domain.TransferReceipt{}, domain.ErrSameAccount
	}

	source, err := s.validator.ValidateAccount(ctx, arg.SourceAccount)
	if err != nil {
		l.Info().Err(err).Str("account", arg.SourceAccount).Send()
		return domain.TransferReceipt{}, err
	}

	if !source.Status.CanDebit() {
		return domain.TransferReceipt{}, domain.ErrAccountNotEligible
	}

	destination, err := s.validator.ValidateAccount(ctx, arg.DestinationAccount)
	if err != nil {
		l.Info().Err(err).Str("account", arg.DestinationAccount).Send()
		return domain.TransferReceipt{}, err
	}

	if !destination.Status.CanCredit() {
		return domain.TransferReceipt{}, domain.ErrAccountNotEligible
	}

	if source.Currency != destination.Currency {
		return domain.TransferReceipt{}, domain.ErrCurrencyMismatch
	}

	available, err := s.engine.Available(ctx, arg.SourceAccount)
	if err != nil {
		return domain.TransferReceipt{}, err
	}

	if amount.GreaterThan(decimal.RequireFromString(available)) {
		return domain.TransferReceipt{}, domain.ErrInsufficientFunds
	}

	transactionID := uuid.NewString()

	transfer, err := s.repo.Create(ctx, domain.Transfer{
		ID:                 transactionID,
		SourceAccount:      arg.SourceAccount,
		DestinationAccount: arg.DestinationAccount,
		Amount:             amount.StringFixed(2),
		Currency:           source.Currency,
		ReferenceNumber:    referenceNumber(transactionID),
		Description:        arg.Description,
		CreatedBy:          arg.CreatedBy,
	})
	if err != nil {
		return domain.TransferReceipt{}, err
	}

	validity, err := s.otp.Issue(ctx, transfer.ID, arg.Contact)
	if err != nil {
		l.Error().Err(err).Str("transfer_id", transfer.ID).Msg("second factor issuance failed")

		// The draft is unusable without a code; cancel it.
		if _, cErr := s.repo.TransitionStatus(ctx, transfer.ID, domain.TransferPending, domain.TransferCancelled, "second factor issuance failed"); cErr != nil {
			l.Error().Err(cErr).Str("transfer_id", transfer.ID).Msg("cancelling draft transfer failed")
		}

		return domain.TransferReceipt{}, domain.ErrExternalService
	}

	return domain.TransferReceipt{
		TransactionID:       transfer.ID,
		ReferenceNumber:     transfer.ReferenceNumber,
		MaskedContact:       MaskContact(arg.Contact),
		CodeValiditySeconds: int(validity.Seconds()),
	}, nil
}

// Confirm validates the second factor and drives the transfer through
// debit and credit, compensating the debit when the credit fails.
func (s *Service) Confirm(ctx context.Context, transactionID, code string) (domain.TransferConfirmation, error) {
	l := zerolog.Ctx(ctx)

	transfer, err := s.repo.Get(ctx, transactionID)
	if err != nil {
		return domain.TransferConfirmation{}, err
	}

	if transfer.Status != domain.TransferPending {
		return domain.TransferConfirmation{}, domain.ErrTransferInvalidState
	}

	if err := s.otp.Validate(ctx, transfer.ID, code); err != nil {
		l.Info().Err(err).Str("transfer_id", transfer.ID).Send()
		return domain.TransferConfirmation{}, err
	}

	// The code is single use regardless of the saga outcome.
	if err := s.otp.Invalidate(ctx, transfer.ID); err != nil {
		l.Error().Err(err).Str("transfer_id", transfer.ID).Msg("second factor invalidation failed")
	}

	transfer, err = s.repo.TransitionStatus(ctx, transfer.ID, domain.TransferPending, domain.TransferProcessing, "")
	if err != nil {
		return domain.TransferConfirmation{}, err
	}

	_, err = s.engine.Debit(ctx, domain.BalanceOperationParams{
		AccountNumber: transfer.SourceAccount,
		Amount:        transfer.Amount,
		Reference:     "D-" + transfer.ID,
		Actor:         transfer.CreatedBy,
		Description:   "transfer to " + transfer.DestinationAccount,
	})
	if err != nil {
		return s.fail(ctx, transfer, "debit failed: "+err.Error()), err
	}

	_, err = s.engine.Credit(ctx, domain.BalanceOperationParams{
		AccountNumber: transfer.DestinationAccount,
		Amount:        transfer.Amount,
		Reference:     "C-" + transfer.ID,
		Actor:         transfer.CreatedBy,
		Description:   "transfer from " + transfer.SourceAccount,
	})
	if err != nil {
		s.compensateDebit(ctx, transfer)
		return s.fail(ctx, transfer, "credit failed: "+err.Error()), err
	}

	transfer, err = s.repo.TransitionStatus(ctx, transfer.ID, domain.TransferProcessing, domain.TransferCompleted, "")
	if err != nil {
		return domain.TransferConfirmation{}, err
	}

	s.publish(ctx, transfer)

	return domain.TransferConfirmation{
		TransactionID: transfer.ID,
		Status:        transfer.Status,
		Message:       "transfer completed",
	}, nil
}

// Cancel cancels a transfer that has not been confirmed yet.
func (s *Service) Cancel(ctx context.Context, transactionID string) (domain.TransferConfirmation, error) {
	l := zerolog.Ctx(ctx)

	transfer, err := s.repo.TransitionStatus(ctx, transactionID, domain.TransferPending, domain.TransferCancelled, "cancelled by user")
	if err != nil {
		return domain.TransferConfirmation{}, err
	}

	if err := s.otp.Invalidate(ctx, transfer.ID); err != nil {
		l.Error().Err(err).Str("transfer_id", transfer.ID).Msg("second factor invalidation failed")
	}

	return domain.TransferConfirmation{
		TransactionID: transfer.ID,
		Status:        transfer.Status,
		Message:       "transfer cancelled",
	}, nil
}

// Get returns the transfer with the given id.
func (s *Service) Get(ctx context.Context, transactionID string) (domain.Transfer, error) {
	return s.repo.Get(ctx, transactionID)
}

// compensateDebit credits the debited amount back to the source account.
// The reference is derived from the transaction id, so a repeated
// compensation attempt replays instead of double-crediting. If the
// compensation itself fails the transfer is left for manual
// reconciliation; there is no automated retry.
func (s *Service) compensateDebit(ctx context.Context, transfer domain.Transfer) {
	l := zerolog.Ctx(ctx)

	_, err := s.engine.Credit(ctx, domain.BalanceOperationParams{
		AccountNumber: transfer.SourceAccount,
		Amount:        transfer.Amount,
		Reference:     "R-" + transfer.ID,
		Actor:         transfer.CreatedBy,
		Description:   "reversal of transfer " + transfer.ReferenceNumber,
	})
	if err != nil {
		l.Error().Err(err).
			Str("transfer_id", transfer.ID).
			Str("source_account", transfer.SourceAccount).
			Str("amount", transfer.Amount).
			Msg("compensating credit failed; manual reconciliation required")
	}
}

func (s *Service) fail(ctx context.Context, transfer domain.Transfer, reason string) domain.TransferConfirmation {
	l := zerolog.Ctx(ctx)

	failed, err := s.repo.TransitionStatus(ctx, transfer.ID, domain.TransferProcessing, domain.TransferFailed, reason)
	if err != nil {
		l.Error().Err(err).Str("transfer_id", transfer.ID).Msg("marking transfer failed")

		return domain.TransferConfirmation{
			TransactionID: transfer.ID,
			Status:        domain.TransferProcessing,
			Message:       reason,
		}
	}

	s.publish(ctx, failed)

	return domain.TransferConfirmation{
		TransactionID: failed.ID,
		Status:        failed.Status,
		Message:       reason,
	}
}

func (s *Service) publish(ctx context.Context, transfer domain.Transfer) {
	l := zerolog.Ctx(ctx)

	err := s.events.Publish(ctx, domain.TransferEvent{
		TransactionID:      transfer.ID,
		SourceAccount:      transfer.SourceAccount,
		DestinationAccount: transfer.DestinationAccount,
		Amount:             transfer.Amount,
		Currency:           transfer.Currency,
		Status:             transfer.Status,
		OccurredAt:         time.Now().UTC(),
	})
	if err != nil {
		l.Error().Err(err).Str("transfer_id", transfer.ID).Msg("transfer event publish failed")
	}
}

// MaskContact hides all but the leading rune and the last three
// characters of a contact channel. Email local parts are masked up to
// the domain.
func MaskContact(contact string) string {
	if contact == "" {
		return ""
	}

	if at := strings.Index(contact, "@"); at > 0 {
		return contact[:1] + strings.Repeat("*", at-1) + contact[at:]
	}

	if len(contact) <= 4 {
		return strings.Repeat("*", len(contact))
	}

	return contact[:1] + strings.Repeat("*", len(contact)-4) + contact[len(contact)-3:]
}

func referenceNumber(transactionID string) string {
	return "TRF-" + strings.ToUpper(strings.ReplaceAll(transactionID, "-", "")[:12])
}

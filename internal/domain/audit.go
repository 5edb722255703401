package domain

import (
	"errors"
	"time"
)

var (
	// ErrDuplicateReference indicates that the idempotency reference was already used.
	// The original operation result must be returned instead of applying the mutation again.
	ErrDuplicateReference = errors.New("duplicate idempotency reference")
	// ErrAuditEntryNotFound indicates that no audit entry exists for the reference.
	ErrAuditEntryNotFound = errors.New("audit entry not found")
	// ErrMissingReference indicates that the caller supplied no idempotency reference.
	ErrMissingReference = errors.New("idempotency reference is required")
)

// OperationType classifies a balance mutation.
type OperationType string

// All balance operation types.
const (
	OperationDebit       OperationType = "DEBIT"
	OperationCredit      OperationType = "CREDIT"
	OperationHold        OperationType = "HOLD"
	OperationReleaseHold OperationType = "RELEASE_HOLD"
)

// AuditEntry is an immutable record of a single balance mutation.
// Reference is the caller-supplied idempotency key and is unique
// across all entries.
type AuditEntry struct {
	ID               int64         `json:"id"`
	AccountNumber    string        `json:"account_number"`
	Operation        OperationType `json:"operation"`
	PreviousBalance  string        `json:"previous_balance"`
	Amount           string        `json:"amount"`
	NewBalance       string        `json:"new_balance"`
	HoldAmount       string        `json:"hold_amount"`
	AvailableBalance string        `json:"available_balance"`
	Currency         string        `json:"currency"`
	Reference        string        `json:"reference"`
	Description      string        `json:"description"`
	Actor            string        `json:"actor"`
	CreatedAt        time.Time     `json:"created_at"`
}

// BalanceOperationParams is the input data for a single balance operation.
type BalanceOperationParams struct {
	AccountNumber string `json:"account_number"`
	Amount        string `json:"amount"`
	Reference     string `json:"reference"`
	Actor         string `json:"actor"`
	Description   string `json:"description"`
}

// BalanceOperationResult is the outcome of a balance operation.
// Replayed is true when the reference had been used before and the
// original result is returned instead of a fresh mutation.
type BalanceOperationResult struct {
	AccountNumber    string        `json:"account_number"`
	Operation        OperationType `json:"operation"`
	PreviousBalance  string        `json:"previous_balance"`
	Amount           string        `json:"amount"`
	NewBalance       string        `json:"new_balance"`
	HoldAmount       string        `json:"hold_amount"`
	AvailableBalance string        `json:"available_balance"`
	Currency         string        `json:"currency"`
	Reference        string        `json:"reference"`
	Replayed         bool          `json:"replayed"`
	CreatedAt        time.Time     `json:"created_at"`
}

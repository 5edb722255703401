package domain

import (
	"errors"
	"time"
)

var (
	// ErrTransferNotFound indicates that the transfer transaction is not found.
	ErrTransferNotFound = errors.New("transfer transaction not found")
	// ErrTransferInvalidState indicates an illegal transfer status transition.
	ErrTransferInvalidState = errors.New("illegal transfer status transition")
	// ErrSameAccount indicates that source and destination accounts are the same.
	ErrSameAccount = errors.New("source and destination accounts are the same")
	// ErrSecondFactorInvalid indicates a second factor code mismatch.
	ErrSecondFactorInvalid = errors.New("second factor code is invalid")
	// ErrSecondFactorExpired indicates that the second factor validity window has passed.
	ErrSecondFactorExpired = errors.New("second factor code has expired")
	// ErrExternalService indicates that a collaborator service is unreachable.
	ErrExternalService = errors.New("external service unavailable")
)

// TransferStatus is the saga state of a transfer transaction.
type TransferStatus string

// All transfer statuses. PENDING, PROCESSING are transient;
// COMPLETED, FAILED, CANCELLED are terminal.
const (
	TransferPending    TransferStatus = "PENDING"
	TransferProcessing TransferStatus = "PROCESSING"
	TransferCompleted  TransferStatus = "COMPLETED"
	TransferFailed     TransferStatus = "FAILED"
	TransferCancelled  TransferStatus = "CANCELLED"
)

// transferTransitions holds the legal status transitions of the saga
// state machine. Anything absent is an illegal transition.
var transferTransitions = map[TransferStatus][]TransferStatus{
	TransferPending:    {TransferProcessing, TransferCancelled},
	TransferProcessing: {TransferCompleted, TransferFailed},
}

// CanTransition reports whether moving from s to next is legal.
func (s TransferStatus) CanTransition(next TransferStatus) bool {
	for _, allowed := range transferTransitions[s] {
		if allowed == next {
			return true
		}
	}

	return false
}

// Terminal reports whether the status is final.
func (s TransferStatus) Terminal() bool {
	return len(transferTransitions[s]) == 0
}

// Transfer is a money movement between two accounts driven by the saga
// coordinator. Once the status is terminal the record never changes.
type Transfer struct {
	ID                 string         `json:"id"`
	SourceAccount      string         `json:"source_account"`
	DestinationAccount string         `json:"destination_account"`
	Amount             string         `json:"amount"`
	Currency           string         `json:"currency"`
	Status             TransferStatus `json:"status"`
	ReferenceNumber    string         `json:"reference_number"`
	Description        string         `json:"description"`
	CreatedBy          string         `json:"created_by"`
	FailureReason      string         `json:"failure_reason,omitempty"`
	CreatedAt          time.Time      `json:"created_at"`
	CompletedAt        *time.Time     `json:"completed_at,omitempty"`
}

// InitiateTransferParams is the input data to initiate a transfer.
type InitiateTransferParams struct {
	SourceAccount      string `json:"source_account"`
	DestinationAccount string `json:"destination_account"`
	Amount             string `json:"amount"`
	Description        string `json:"description"`
	Contact            string `json:"contact"`
	CreatedBy          string `json:"created_by"`
}

// TransferReceipt is returned by initiate. The contact channel is masked.
type TransferReceipt struct {
	TransactionID       string `json:"transaction_id"`
	ReferenceNumber     string `json:"reference_number"`
	MaskedContact       string `json:"masked_contact"`
	CodeValiditySeconds int    `json:"code_validity_seconds"`
}

// TransferConfirmation is returned by confirm and cancel.
type TransferConfirmation struct {
	TransactionID string         `json:"transaction_id"`
	Status        TransferStatus `json:"status"`
	Message       string         `json:"message,omitempty"`
}

// TransferEvent is published on terminal transfer states. Delivery is
// best effort.
type TransferEvent struct {
	TransactionID      string         `json:"transaction_id"`
	SourceAccount      string         `json:"source_account"`
	DestinationAccount string         `json:"destination_account"`
	Amount             string         `json:"amount"`
	Currency           string         `json:"currency"`
	Status             TransferStatus `json:"status"`
	OccurredAt         time.Time      `json:"occurred_at"`
}

package domain

import (
	"errors"
	"time"
)

var (
	// ErrDepositNotFound indicates that the deposit is not found.
	ErrDepositNotFound = errors.New("deposit not found")
	// ErrDepositNotActive indicates a close attempt on a non-active deposit.
	ErrDepositNotActive = errors.New("deposit is not active")
)

// DepositStatus is the lifecycle status of a fixed-term deposit.
type DepositStatus string

// Deposit statuses.
const (
	DepositActive DepositStatus = "ACTIVE"
	DepositClosed DepositStatus = "CLOSED"
)

// Deposit is a fixed-term deposit backed by a fund lock on the holding
// account. The deposit id doubles as the lock's external reference.
type Deposit struct {
	ID            string        `json:"id"`
	AccountNumber string        `json:"account_number"`
	Principal     string        `json:"principal"`
	TermMonths    int32         `json:"term_months"`
	RatePercent   string        `json:"rate_percent"`
	Status        DepositStatus `json:"status"`
	CreatedAt     time.Time     `json:"created_at"`
	ClosedAt      *time.Time    `json:"closed_at,omitempty"`
}

// OpenDepositParams is the input data to open a fixed-term deposit.
type OpenDepositParams struct {
	AccountNumber string `json:"account_number"`
	Principal     string `json:"principal"`
	TermMonths    int32  `json:"term_months"`
	RatePercent   string `json:"rate_percent"`
}

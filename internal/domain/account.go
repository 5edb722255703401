// Package domain provides defenitions of all entities.
package domain

import (
	"errors"
	"time"
)

var (
	// ErrAccountNotFound indicates that the account is not found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrAccountAlreadyExists indicates that the account number is already taken.
	ErrAccountAlreadyExists = errors.New("account already exists")
	// ErrAccountNotEligible indicates that the account status forbids the operation.
	ErrAccountNotEligible = errors.New("account status forbids the operation")
	// ErrInsufficientFunds indicates that the available balance does not cover the amount.
	ErrInsufficientFunds = errors.New("insufficient available balance")
	// ErrInvalidAmount indicates invalid amount.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrNegativeAmount indicates zero or negative amount.
	ErrNegativeAmount = errors.New("amount must be positive")
	// ErrCurrencyMismatch indicates that the accounts have different currencies.
	ErrCurrencyMismatch = errors.New("accounts currency mismatch")
	// ErrConcurrencyConflict indicates a lost row lock or serialization failure.
	// Callers should retry a bounded number of times.
	ErrConcurrencyConflict = errors.New("concurrent modification conflict")
)

// AccountStatus is the lifecycle status of a ledger account.
type AccountStatus string

// All account statuses.
const (
	StatusActive  AccountStatus = "ACTIVE"
	StatusFrozen  AccountStatus = "FROZEN"
	StatusBlocked AccountStatus = "BLOCKED"
	StatusClosed  AccountStatus = "CLOSED"
	StatusDormant AccountStatus = "DORMANT"
)

// statusCapabilities maps each account status to the balance operations it permits.
// Dormant accounts still accept credits so that inbound transfers do not bounce.
var statusCapabilities = map[AccountStatus]struct {
	debit  bool
	credit bool
}{
	StatusActive:  {debit: true, credit: true},
	StatusFrozen:  {debit: false, credit: false},
	StatusBlocked: {debit: false, credit: false},
	StatusClosed:  {debit: false, credit: false},
	StatusDormant: {debit: false, credit: true},
}

// CanDebit reports whether the status permits debits and holds.
func (s AccountStatus) CanDebit() bool {
	return statusCapabilities[s].debit
}

// CanCredit reports whether the status permits credits.
func (s AccountStatus) CanCredit() bool {
	return statusCapabilities[s].credit
}

// Account is the authoritative balance record of a single account.
//
// Balance and HoldAmount are decimal strings with 2-decimal scale.
// They are mutated only through the balance operation engine.
type Account struct {
	Number     string        `json:"number"`
	Balance    string        `json:"balance"`
	HoldAmount string        `json:"hold_amount"`
	Currency   string        `json:"currency"`
	Status     AccountStatus `json:"status"`
	CreatedAt  time.Time     `json:"created_at"`
}

package domain

import (
	"errors"
	"time"
)

var (
	// ErrLockNotFound indicates that the fund lock is not found.
	ErrLockNotFound = errors.New("fund lock not found")
	// ErrLockNotActive indicates a release attempt on a lock that is not LOCKED.
	ErrLockNotActive = errors.New("fund lock is not active")
)

// LockStatus is the lifecycle status of a fund lock.
type LockStatus string

// Fund lock statuses. A lock transitions LOCKED to RELEASED exactly once.
const (
	LockStatusLocked   LockStatus = "LOCKED"
	LockStatusReleased LockStatus = "RELEASED"
)

// FundLock is a named reservation against an account. It reduces the
// available balance without moving money.
type FundLock struct {
	ID            string     `json:"id"`
	AccountNumber string     `json:"account_number"`
	Amount        string     `json:"amount"`
	LockType      string     `json:"lock_type"`
	ReferenceID   string     `json:"reference_id"`
	Status        LockStatus `json:"status"`
	Description   string     `json:"description"`
	CreatedAt     time.Time  `json:"created_at"`
	ReleasedAt    *time.Time `json:"released_at,omitempty"`
	ReleaseReason string     `json:"release_reason,omitempty"`
}

// LockFundsParams is the input data to place a fund lock.
type LockFundsParams struct {
	AccountNumber string `json:"account_number"`
	Amount        string `json:"amount"`
	LockType      string `json:"lock_type"`
	ReferenceID   string `json:"reference_id"`
	Description   string `json:"description"`
}

// LockFundsResult is the outcome of placing a fund lock.
type LockFundsResult struct {
	LockID           string     `json:"lock_id"`
	AccountNumber    string     `json:"account_number"`
	LockedAmount     string     `json:"locked_amount"`
	AvailableBalance string     `json:"available_balance"`
	Status           LockStatus `json:"status"`
}

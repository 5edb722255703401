package dbpkg

import "github.com/lib/pq"

// Postgres error codes that indicate the transaction lost a concurrency
// race and is safe to retry.
const (
	serializationFailureCode = "40001"
	deadlockDetectedCode     = "40P01"
)

// IsConcurrencyError returns true if the error is a serialization failure
// or a deadlock, both of which callers should retry.
func IsConcurrencyError(err error) bool {
	pqErr, ok := err.(*pq.Error)
	if !ok {
		return false
	}

	return pqErr.Code == serializationFailureCode || pqErr.Code == deadlockDetectedCode
}

package domain

import "errors"

var (
	ErrRecordNotFound            = errors.New("record not found")
	ErrInsufficientPoolFunds     = errors.New("bank pool has insufficient funds")
	ErrInsufficientCardFunds     = errors.New("card has insufficient funds")
	ErrNoActiveDeposit           = errors.New("client has no active deposit")
	ErrConflictingPendingRequest = errors.New("a pending request already targets this resource")
	ErrAlreadyResolved           = errors.New("operation already resolved")

	// ErrStoreConflict means the transaction kept failing to serialize after
	// retries; the caller may submit the request again.
	ErrStoreConflict = errors.New("store transaction conflict")

	// ErrStoreUnavailable means the store could not be reached. Surfaced as-is,
	// never retried here.
	ErrStoreUnavailable = errors.New("store unavailable")
)

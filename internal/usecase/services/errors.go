package services

import (
	"errors"

	"github.com/kyrylklymenko/BankingManagementSystem/internal/domain"
)

// userMessage maps domain errors to the wording surfaced to callers. Anything
// unrecognized gets a generic message; the real error still travels up for
// logging and status mapping.
func userMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrInsufficientPoolFunds):
		return "The bank does not hold enough funds for this operation"
	case errors.Is(err, domain.ErrInsufficientCardFunds):
		return "The card balance is not sufficient for this operation"
	case errors.Is(err, domain.ErrNoActiveDeposit):
		return "No active deposit to close"
	case errors.Is(err, domain.ErrConflictingPendingRequest):
		return "A pending request for this resource is already awaiting review"
	case errors.Is(err, domain.ErrAlreadyResolved):
		return "This operation has already been resolved"
	case errors.Is(err, domain.ErrRecordNotFound):
		return "Record not found"
	case errors.Is(err, domain.ErrStoreConflict):
		return "The operation could not be completed, please retry"
	case errors.Is(err, domain.ErrStoreUnavailable):
		return "The service is temporarily unavailable"
	default:
		return "Unable to process the request right now"
	}
}

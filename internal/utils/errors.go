// internal/utils/errors.go

package utils

import (
	"errors"
)

/*
   Sentinel errors for the monitoring domain logic.
   Callers can do: if errors.Is(err, ErrXYZ) { ... }

   Four families map onto the HTTP error codes in response.go:
   authorization, not-found, conflict, validation.
*/
var (
	// authorization
	ErrNotAuthorized         = errors.New("not_authorized")
	ErrDistrictMismatch      = errors.New("district_mismatch")
	ErrNotAssignedContractor = errors.New("not_assigned_contractor")
	ErrNotCounterparty       = errors.New("not_counterparty")

	// not found
	ErrNotFound = errors.New("not_found")

	// conflict
	ErrWrongStatus     = errors.New("wrong_status")
	ErrAlreadyReviewed = errors.New("already_reviewed")
	ErrAlreadyAssigned = errors.New("already_assigned")

	// validation
	ErrInvalidAmount     = errors.New("invalid_amount")
	ErrInvalidPayload    = errors.New("invalid_payload")
	ErrPhotoRejected     = errors.New("photo_rejected")
	ErrUnknownDistrict   = errors.New("unknown_district")
	ErrInvalidCompletion = errors.New("invalid_completion_percentage")
)

/*
   StatusConflictError is returned when a conditioned write lost the
   race: the stored status no longer matches what the caller read.
   It includes the "latest" row so the controller can return it to the
   client for a re-read-and-retry.
*/
type StatusConflictError struct {
	Current any
}

func (e *StatusConflictError) Error() string {
	return "status_conflict"
}

func NewStatusConflictError(current any) error {
	return &StatusConflictError{Current: current}
}

// Ptr returns a pointer to v; handy for optional struct fields.
func Ptr[T any](v T) *T { return &v }

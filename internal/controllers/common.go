package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/rohitpal119/district-state-watch/internal/middleware"
	"github.com/rohitpal119/district-state-watch/internal/utils"
)

// getUserID pulls the authenticated user ID placed in the context by
// the auth middleware. Handlers bail with 401 when it is absent.
func getUserID(r *http.Request) (string, bool) {
	v := r.Context().Value(middleware.ContextKeyUserID)
	if v == nil {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}

func respondNoUserID(w http.ResponseWriter) {
	utils.RespondErrorWithCode(
		w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "No userID in context", nil,
	)
}

// decodeAndValidate unmarshals the JSON body into req and runs the
// struct validators. It writes the error response itself and returns
// false if the payload is unusable.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, validate *validator.Validate, req any) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err,
		)
		return false
	}
	if err := validate.Struct(req); err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) {
			utils.RespondErrorWithCode(
				w, http.StatusBadRequest, utils.ErrCodeValidation,
				"Validation failed", formatValidationErrors(vErrs), err,
			)
		} else {
			utils.RespondErrorWithCode(
				w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err,
			)
		}
		return false
	}
	return true
}

func formatValidationErrors(vErrs validator.ValidationErrors) []string {
	out := make([]string, 0, len(vErrs))
	for _, fe := range vErrs {
		out = append(out, fmt.Sprintf("field %s failed on %s", fe.Field(), fe.Tag()))
	}
	return out
}

// respondServiceError maps domain errors onto HTTP responses. A
// StatusConflictError carries the latest row in Details so the client
// can re-read and retry.
func respondServiceError(w http.ResponseWriter, err error) {
	var conflict *utils.StatusConflictError
	if errors.As(err, &conflict) {
		utils.RespondErrorWithCode(
			w, http.StatusConflict, utils.ErrCodeStatusConflict,
			"State changed since last read", conflict.Current, err,
		)
		return
	}

	switch {
	case errors.Is(err, utils.ErrNotAuthorized),
		errors.Is(err, utils.ErrDistrictMismatch),
		errors.Is(err, utils.ErrNotAssignedContractor),
		errors.Is(err, utils.ErrNotCounterparty):
		utils.RespondErrorWithCode(
			w, http.StatusForbidden, utils.ErrCodeNotAuthorized, "Not allowed for this role", nil, err,
		)
	case errors.Is(err, utils.ErrNotFound):
		utils.RespondErrorWithCode(
			w, http.StatusNotFound, utils.ErrCodeNotFound, "Resource not found", nil, err,
		)
	case errors.Is(err, utils.ErrAlreadyAssigned):
		utils.RespondErrorWithCode(
			w, http.StatusConflict, utils.ErrCodeAlreadyAssigned, "Project already has a contractor", nil, err,
		)
	case errors.Is(err, utils.ErrAlreadyReviewed):
		utils.RespondErrorWithCode(
			w, http.StatusConflict, utils.ErrCodeAlreadyReviewed, "Fund update already reviewed", nil, err,
		)
	case errors.Is(err, utils.ErrWrongStatus):
		utils.RespondErrorWithCode(
			w, http.StatusConflict, utils.ErrCodeWrongStatus, "Operation not valid in current status", nil, err,
		)
	case errors.Is(err, utils.ErrPhotoRejected):
		utils.RespondErrorWithCode(
			w, http.StatusUnprocessableEntity, utils.ErrCodePhotoRejected,
			"Image does not look like construction progress", nil, err,
		)
	case errors.Is(err, utils.ErrInvalidAmount),
		errors.Is(err, utils.ErrInvalidPayload),
		errors.Is(err, utils.ErrUnknownDistrict),
		errors.Is(err, utils.ErrInvalidCompletion):
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeValidation, err.Error(), nil, err,
		)
	default:
		utils.RespondErrorWithCode(
			w, http.StatusInternalServerError, utils.ErrCodeInternal, "Something went wrong", nil, err,
		)
	}
}

package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/rohitpal119/district-state-watch/internal/utils"
)

func TestRespondServiceErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not authorized", utils.ErrNotAuthorized, http.StatusForbidden, utils.ErrCodeNotAuthorized},
		{"district mismatch", utils.ErrDistrictMismatch, http.StatusForbidden, utils.ErrCodeNotAuthorized},
		{"not assigned", utils.ErrNotAssignedContractor, http.StatusForbidden, utils.ErrCodeNotAuthorized},
		{"not found", utils.ErrNotFound, http.StatusNotFound, utils.ErrCodeNotFound},
		{"wrapped not found", fmt.Errorf("user x: %w", utils.ErrNotFound), http.StatusNotFound, utils.ErrCodeNotFound},
		{"already assigned", utils.ErrAlreadyAssigned, http.StatusConflict, utils.ErrCodeAlreadyAssigned},
		{"already reviewed", utils.ErrAlreadyReviewed, http.StatusConflict, utils.ErrCodeAlreadyReviewed},
		{"wrong status", utils.ErrWrongStatus, http.StatusConflict, utils.ErrCodeWrongStatus},
		{"photo rejected", utils.ErrPhotoRejected, http.StatusUnprocessableEntity, utils.ErrCodePhotoRejected},
		{"invalid amount", utils.ErrInvalidAmount, http.StatusBadRequest, utils.ErrCodeValidation},
		{"unknown district", utils.ErrUnknownDistrict, http.StatusBadRequest, utils.ErrCodeValidation},
		{"anything else", fmt.Errorf("pg connection reset"), http.StatusInternalServerError, utils.ErrCodeInternal},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			respondServiceError(rec, tc.err)
			require.Equal(t, tc.wantStatus, rec.Code)

			var body utils.ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			require.Equal(t, tc.wantCode, body.Code)
		})
	}
}

func TestRespondServiceErrorConflictCarriesLatestRow(t *testing.T) {
	rec := httptest.NewRecorder()
	current := map[string]string{"id": "abc", "status": "approved"}
	respondServiceError(rec, utils.NewStatusConflictError(current))

	require.Equal(t, http.StatusConflict, rec.Code)
	var body utils.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Equal(t, utils.ErrCodeStatusConflict, body.Code)

	details, ok := body.Details.(map[string]any)
	require.True(t, ok)
	require.Equal(t, "approved", details["status"])
}

func TestDecodeAndValidate(t *testing.T) {
	type payload struct {
		Name   string  `json:"name" validate:"required"`
		Amount float64 `json:"amount" validate:"gt=0"`
	}
	validate := validator.New()

	t.Run("bad json", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{nope"))
		var p payload
		require.False(t, decodeAndValidate(rec, r, validate, &p))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("validation failure lists fields", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"amount": -5}`))
		var p payload
		require.False(t, decodeAndValidate(rec, r, validate, &p))
		require.Equal(t, http.StatusBadRequest, rec.Code)

		var body utils.ErrorResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		require.Equal(t, utils.ErrCodeValidation, body.Code)
		require.NotNil(t, body.Details)
	})

	t.Run("ok", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x","amount":10}`))
		var p payload
		require.True(t, decodeAndValidate(rec, r, validate, &p))
		require.Equal(t, "x", p.Name)
	})
}

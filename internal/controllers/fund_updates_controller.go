package controllers

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/rohitpal119/district-state-watch/internal/dtos"
	"github.com/rohitpal119/district-state-watch/internal/services"
	"github.com/rohitpal119/district-state-watch/internal/utils"
)

type FundUpdatesController struct {
	fundUpdateService *services.FundUpdateService
	validate          *validator.Validate
}

func NewFundUpdatesController(fs *services.FundUpdateService) *FundUpdatesController {
	return &FundUpdatesController{
		fundUpdateService: fs,
		validate:          validator.New(),
	}
}

// ----------------------------------------------------------------
// GET /api/v1/fund-updates
// ----------------------------------------------------------------
func (c *FundUpdatesController) ListFundUpdatesHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		respondNoUserID(w)
		return
	}

	updates, err := c.fundUpdateService.ListFundUpdates(r.Context(), userID)
	if err != nil {
		utils.Logger.WithError(err).Error("Failed to list fund updates")
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, updates)
}

// ----------------------------------------------------------------
// POST /api/v1/fund-updates
// ----------------------------------------------------------------
func (c *FundUpdatesController) SubmitFundUpdateHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		respondNoUserID(w)
		return
	}

	var req dtos.SubmitFundUpdateRequest
	if !decodeAndValidate(w, r, c.validate, &req) {
		return
	}

	update, err := c.fundUpdateService.SubmitFundUpdate(r.Context(), userID, req)
	if err != nil {
		utils.Logger.WithError(err).Warn("Fund update submission failed")
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, update)
}

// ----------------------------------------------------------------
// POST /api/v1/fund-updates/review
// ----------------------------------------------------------------
func (c *FundUpdatesController) ReviewFundUpdateHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		respondNoUserID(w)
		return
	}

	var req dtos.ReviewFundUpdateRequest
	if !decodeAndValidate(w, r, c.validate, &req) {
		return
	}

	update, err := c.fundUpdateService.ReviewFundUpdate(r.Context(), userID, req)
	if err != nil {
		utils.Logger.WithError(err).Warn("Fund update review failed")
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, update)
}

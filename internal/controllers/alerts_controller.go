package controllers

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/rohitpal119/district-state-watch/internal/dtos"
	"github.com/rohitpal119/district-state-watch/internal/services"
	"github.com/rohitpal119/district-state-watch/internal/utils"
)

type AlertsController struct {
	alertService *services.AlertService
	validate     *validator.Validate
}

func NewAlertsController(as *services.AlertService) *AlertsController {
	return &AlertsController{
		alertService: as,
		validate:     validator.New(),
	}
}

// ----------------------------------------------------------------
// GET /api/v1/alerts
// ----------------------------------------------------------------
func (c *AlertsController) ListAlertsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		respondNoUserID(w)
		return
	}

	alerts, err := c.alertService.ListAlerts(r.Context(), userID)
	if err != nil {
		utils.Logger.WithError(err).Error("Failed to list alerts")
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, alerts)
}

// ----------------------------------------------------------------
// POST /api/v1/alerts
// ----------------------------------------------------------------
func (c *AlertsController) CreateAlertHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		respondNoUserID(w)
		return
	}

	var req dtos.CreateAlertRequest
	if !decodeAndValidate(w, r, c.validate, &req) {
		return
	}

	alert, err := c.alertService.CreateAlert(r.Context(), userID, req)
	if err != nil {
		utils.Logger.WithError(err).Warn("Alert creation failed")
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, alert)
}

// ----------------------------------------------------------------
// POST /api/v1/alerts/resolve
// ----------------------------------------------------------------
func (c *AlertsController) ResolveAlertHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		respondNoUserID(w)
		return
	}

	var req dtos.ResolveAlertRequest
	if !decodeAndValidate(w, r, c.validate, &req) {
		return
	}

	alert, err := c.alertService.ResolveAlert(r.Context(), userID, req)
	if err != nil {
		utils.Logger.WithError(err).Warn("Alert resolve failed")
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, alert)
}

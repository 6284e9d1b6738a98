package controllers

import (
	"net/http"

	"github.com/rohitpal119/district-state-watch/internal/services"
	"github.com/rohitpal119/district-state-watch/internal/utils"
)

type DashboardController struct {
	dashboardService *services.DashboardService
}

func NewDashboardController(ds *services.DashboardService) *DashboardController {
	return &DashboardController{dashboardService: ds}
}

// ----------------------------------------------------------------
// GET /api/v1/dashboard
// ----------------------------------------------------------------
// The response shape depends on the caller's role; each role gets the
// view model its frontend screen renders.
func (c *DashboardController) GetDashboardHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		respondNoUserID(w)
		return
	}

	view, err := c.dashboardService.BuildDashboard(r.Context(), userID)
	if err != nil {
		utils.Logger.WithError(err).Error("Failed to build dashboard")
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, view)
}

// ----------------------------------------------------------------
// GET /api/v1/funds/flow
// ----------------------------------------------------------------
func (c *DashboardController) GetFundFlowHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		respondNoUserID(w)
		return
	}

	rows, err := c.dashboardService.FundFlow(r.Context(), userID)
	if err != nil {
		utils.Logger.WithError(err).Error("Failed to compute fund flow")
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, rows)
}

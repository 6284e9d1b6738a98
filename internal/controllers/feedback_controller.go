package controllers

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/rohitpal119/district-state-watch/internal/dtos"
	"github.com/rohitpal119/district-state-watch/internal/services"
	"github.com/rohitpal119/district-state-watch/internal/utils"
)

type FeedbackController struct {
	feedbackService *services.FeedbackService
	validate        *validator.Validate
}

func NewFeedbackController(fs *services.FeedbackService) *FeedbackController {
	return &FeedbackController{
		feedbackService: fs,
		validate:        validator.New(),
	}
}

// ----------------------------------------------------------------
// GET /api/v1/feedback
// ----------------------------------------------------------------
func (c *FeedbackController) ListFeedbackHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		respondNoUserID(w)
		return
	}

	feedback, err := c.feedbackService.ListFeedback(r.Context(), userID)
	if err != nil {
		utils.Logger.WithError(err).Error("Failed to list feedback")
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, feedback)
}

// ----------------------------------------------------------------
// POST /api/v1/feedback/status
// ----------------------------------------------------------------
func (c *FeedbackController) AdvanceFeedbackHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		respondNoUserID(w)
		return
	}

	var req dtos.AdvanceFeedbackRequest
	if !decodeAndValidate(w, r, c.validate, &req) {
		return
	}

	fb, err := c.feedbackService.AdvanceFeedback(r.Context(), userID, req)
	if err != nil {
		utils.Logger.WithError(err).Warn("Feedback transition failed")
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, fb)
}

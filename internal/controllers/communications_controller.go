package controllers

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/rohitpal119/district-state-watch/internal/dtos"
	"github.com/rohitpal119/district-state-watch/internal/services"
	"github.com/rohitpal119/district-state-watch/internal/utils"
)

type CommunicationsController struct {
	communicationService *services.CommunicationService
	validate             *validator.Validate
}

func NewCommunicationsController(cs *services.CommunicationService) *CommunicationsController {
	return &CommunicationsController{
		communicationService: cs,
		validate:             validator.New(),
	}
}

// ----------------------------------------------------------------
// GET /api/v1/communications
// ----------------------------------------------------------------
func (c *CommunicationsController) ListCommunicationsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		respondNoUserID(w)
		return
	}

	comms, err := c.communicationService.ListCommunications(r.Context(), userID)
	if err != nil {
		utils.Logger.WithError(err).Error("Failed to list communications")
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, comms)
}

// ----------------------------------------------------------------
// POST /api/v1/communications
// ----------------------------------------------------------------
func (c *CommunicationsController) SendMessageHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		respondNoUserID(w)
		return
	}

	var req dtos.SendMessageRequest
	if !decodeAndValidate(w, r, c.validate, &req) {
		return
	}

	msg, err := c.communicationService.SendMessage(r.Context(), userID, req)
	if err != nil {
		utils.Logger.WithError(err).Warn("Send message failed")
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, msg)
}

// ----------------------------------------------------------------
// POST /api/v1/communications/read
// ----------------------------------------------------------------
func (c *CommunicationsController) MarkReadHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		respondNoUserID(w)
		return
	}

	var req dtos.MarkReadRequest
	if !decodeAndValidate(w, r, c.validate, &req) {
		return
	}

	msg, err := c.communicationService.MarkRead(r.Context(), userID, req)
	if err != nil {
		utils.Logger.WithError(err).Warn("Mark read failed")
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, msg)
}

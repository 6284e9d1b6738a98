package controllers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/rohitpal119/district-state-watch/internal/dtos"
	"github.com/rohitpal119/district-state-watch/internal/services"
	"github.com/rohitpal119/district-state-watch/internal/utils"
)

type ImagesController struct {
	imageService *services.ImageUpdateService
	validate     *validator.Validate
}

func NewImagesController(is *services.ImageUpdateService) *ImagesController {
	return &ImagesController{
		imageService: is,
		validate:     validator.New(),
	}
}

// ----------------------------------------------------------------
// GET /api/v1/images?project_id=<uuid>
// ----------------------------------------------------------------
func (c *ImagesController) ListImagesHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		respondNoUserID(w)
		return
	}

	var projectID *uuid.UUID
	if raw := r.URL.Query().Get("project_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			utils.RespondErrorWithCode(
				w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid project_id", nil, err,
			)
			return
		}
		projectID = &id
	}

	images, err := c.imageService.ListImages(r.Context(), userID, projectID)
	if err != nil {
		utils.Logger.WithError(err).Error("Failed to list image updates")
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, images)
}

// ----------------------------------------------------------------
// POST /api/v1/images
// ----------------------------------------------------------------
func (c *ImagesController) SubmitImageHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		respondNoUserID(w)
		return
	}

	var req dtos.SubmitImageRequest
	if !decodeAndValidate(w, r, c.validate, &req) {
		return
	}

	img, err := c.imageService.SubmitImage(r.Context(), userID, req)
	if err != nil {
		utils.Logger.WithError(err).Warn("Image submission failed")
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, img)
}

package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/rohitpal119/district-state-watch/internal/dtos"
	"github.com/rohitpal119/district-state-watch/internal/models"
	"github.com/rohitpal119/district-state-watch/internal/repositories"
	"github.com/rohitpal119/district-state-watch/internal/utils"
)

type ImageUpdateService struct {
	imageRepo   repositories.ImageUpdateRepository
	projectRepo repositories.ProjectRepository
	profileRepo repositories.ProfileRepository
	openai      *OpenAIService
}

func NewImageUpdateService(
	imageRepo repositories.ImageUpdateRepository,
	projectRepo repositories.ProjectRepository,
	profileRepo repositories.ProfileRepository,
	openai *OpenAIService,
) *ImageUpdateService {
	return &ImageUpdateService{
		imageRepo:   imageRepo,
		projectRepo: projectRepo,
		profileRepo: profileRepo,
		openai:      openai,
	}
}

// SubmitImage appends a progress image entry. Only the assigned
// contractor of the project may submit. The blob is already in
// external storage; we keep the URL only. When the vision check is
// enabled, implausible progress photos are rejected before the write.
func (s *ImageUpdateService) SubmitImage(
	ctx context.Context,
	userID string,
	req dtos.SubmitImageRequest,
) (*models.ImageUpdate, error) {
	actor, err := loadActor(ctx, s.profileRepo, userID)
	if err != nil {
		return nil, err
	}
	if actor.Role != models.RoleContractor {
		return nil, utils.ErrNotAuthorized
	}

	proj, err := s.projectRepo.GetByID(ctx, req.ProjectID)
	if err != nil {
		return nil, err
	}
	if proj == nil {
		return nil, utils.ErrNotFound
	}
	if proj.ContractorID == nil || *proj.ContractorID != actor.ID {
		return nil, utils.ErrNotAssignedContractor
	}

	if models.ImageTypeType(req.ImageType) == models.ImageTypeProgress {
		desc := ""
		if req.Description != nil {
			desc = *req.Description
		}
		check, checkErr := s.openai.CheckProgressPhoto(ctx, req.ImageURL, desc)
		if checkErr != nil {
			// Verification outage must not block reporting.
			utils.Logger.WithError(checkErr).Warn("Progress photo check failed, accepting submission")
		} else if !check.ConstructionSiteVisible {
			return nil, utils.ErrPhotoRejected
		}
	}

	iu := &models.ImageUpdate{
		ID:           uuid.New(),
		ProjectID:    req.ProjectID,
		ContractorID: actor.ID,
		ImageType:    models.ImageTypeType(req.ImageType),
		ImageURL:     req.ImageURL,
		Description:  req.Description,
	}
	if err := s.imageRepo.Create(ctx, iu); err != nil {
		return nil, err
	}
	return s.imageRepo.GetByID(ctx, iu.ID)
}

// ListImages returns the image log the actor may see: a project's log
// for officials in scope, the contractor's own submissions otherwise.
func (s *ImageUpdateService) ListImages(
	ctx context.Context,
	userID string,
	projectID *uuid.UUID,
) ([]*models.ImageUpdate, error) {
	actor, err := loadActor(ctx, s.profileRepo, userID)
	if err != nil {
		return nil, err
	}

	if actor.Role == models.RoleContractor {
		return s.imageRepo.ListByContractor(ctx, actor.ID)
	}

	if projectID == nil {
		return nil, utils.ErrInvalidPayload
	}
	proj, err := s.projectRepo.GetByID(ctx, *projectID)
	if err != nil {
		return nil, err
	}
	if proj == nil {
		return nil, utils.ErrNotFound
	}
	if !isReviewer(actor, proj.District) {
		return nil, utils.ErrNotAuthorized
	}
	return s.imageRepo.ListByProject(ctx, *projectID)
}

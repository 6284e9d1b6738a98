package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/rohitpal119/district-state-watch/internal/dtos"
	"github.com/rohitpal119/district-state-watch/internal/models"
	"github.com/rohitpal119/district-state-watch/internal/repositories"
	"github.com/rohitpal119/district-state-watch/internal/utils"
)

type FundUpdateService struct {
	fundRepo    repositories.FundUpdateRepository
	projectRepo repositories.ProjectRepository
	profileRepo repositories.ProfileRepository
	notifier    *NotificationService
}

func NewFundUpdateService(
	fundRepo repositories.FundUpdateRepository,
	projectRepo repositories.ProjectRepository,
	profileRepo repositories.ProfileRepository,
	notifier *NotificationService,
) *FundUpdateService {
	return &FundUpdateService{
		fundRepo:    fundRepo,
		projectRepo: projectRepo,
		profileRepo: profileRepo,
		notifier:    notifier,
	}
}

// ListFundUpdates returns the actor's visible fund updates: all for a
// state official, the district's for a collector, their own for a
// contractor.
func (s *FundUpdateService) ListFundUpdates(ctx context.Context, userID string) ([]*models.FundUpdate, error) {
	actor, err := loadActor(ctx, s.profileRepo, userID)
	if err != nil {
		return nil, err
	}
	switch actor.Role {
	case models.RoleStateOfficial:
		return s.fundRepo.ListAll(ctx)
	case models.RoleDistrictCollector:
		return s.fundRepo.ListByDistrict(ctx, actor.District())
	case models.RoleContractor:
		return s.fundRepo.ListByContractor(ctx, actor.ID)
	default:
		return nil, utils.ErrNotAuthorized
	}
}

// SubmitFundUpdate creates a pending fund-release request. Only the
// contractor assigned to the referenced project may submit; that
// cross-entity check happens here at write time, not just on read.
func (s *FundUpdateService) SubmitFundUpdate(
	ctx context.Context,
	userID string,
	req dtos.SubmitFundUpdateRequest,
) (*models.FundUpdate, error) {
	actor, err := loadActor(ctx, s.profileRepo, userID)
	if err != nil {
		return nil, err
	}
	if actor.Role != models.RoleContractor {
		return nil, utils.ErrNotAuthorized
	}
	if req.Amount <= 0 {
		return nil, utils.ErrInvalidAmount
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

	fu := &models.FundUpdate{
		ID:           uuid.New(),
		ProjectID:    req.ProjectID,
		ContractorID: actor.ID,
		Amount:       req.Amount,
		Description:  req.Description,
		ReceiptURL:   req.ReceiptURL,
		Status:       models.FundUpdateStatusPending,
	}
	if err := s.fundRepo.Create(ctx, fu); err != nil {
		return nil, err
	}
	return s.fundRepo.GetByID(ctx, fu.ID)
}

// ReviewFundUpdate moves a pending request to approved or rejected.
// Reviewers are state officials anywhere and the collector of the
// project's district; everyone else, including the submitting
// contractor, gets an authorization error. Approval and the
// fund_utilized increment commit as one unit; a second concurrent
// reviewer receives a conflict carrying the already-reviewed row.
func (s *FundUpdateService) ReviewFundUpdate(
	ctx context.Context,
	userID string,
	req dtos.ReviewFundUpdateRequest,
) (*models.FundUpdate, error) {
	actor, err := loadActor(ctx, s.profileRepo, userID)
	if err != nil {
		return nil, err
	}

	fu, err := s.fundRepo.GetByID(ctx, req.FundUpdateID)
	if err != nil {
		return nil, err
	}
	if fu == nil {
		return nil, utils.ErrNotFound
	}

	proj, err := s.projectRepo.GetByID(ctx, fu.ProjectID)
	if err != nil {
		return nil, err
	}
	if proj == nil {
		return nil, utils.ErrNotFound
	}
	if !isReviewer(actor, proj.District) {
		return nil, utils.ErrNotAuthorized
	}
	if fu.Status != models.FundUpdateStatusPending {
		return nil, utils.ErrAlreadyReviewed
	}

	var updated *models.FundUpdate
	switch models.FundUpdateStatusType(req.Decision) {
	case models.FundUpdateStatusApproved:
		updated, err = s.fundRepo.ApproveAtomic(ctx, fu.ID, actor.ID)
	case models.FundUpdateStatusRejected:
		updated, err = s.fundRepo.RejectAtomic(ctx, fu.ID, actor.ID)
	default:
		return nil, utils.ErrInvalidPayload
	}
	if err != nil {
		if errors.Is(err, utils.ErrAlreadyReviewed) {
			// Lost the race; hand back the terminal row.
			return nil, utils.NewStatusConflictError(updated)
		}
		return nil, err
	}

	if contractor, pErr := s.profileRepo.GetByID(ctx, fu.ContractorID); pErr == nil && contractor != nil {
		s.notifier.NotifyFundUpdateReviewed(updated, proj, contractor)
	}
	utils.Logger.Infof("Fund update %s %s by %s", fu.ID, updated.Status, actor.ID)
	return updated, nil
}

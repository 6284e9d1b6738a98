package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/rohitpal119/district-state-watch/internal/constants"
	"github.com/rohitpal119/district-state-watch/internal/dtos"
	"github.com/rohitpal119/district-state-watch/internal/models"
	"github.com/rohitpal119/district-state-watch/internal/repositories"
	"github.com/rohitpal119/district-state-watch/internal/utils"
)

type ProjectService struct {
	projectRepo repositories.ProjectRepository
	profileRepo repositories.ProfileRepository
}

func NewProjectService(
	projectRepo repositories.ProjectRepository,
	profileRepo repositories.ProfileRepository,
) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		profileRepo: profileRepo,
	}
}

// ListProjects returns the actor's visible project set.
func (s *ProjectService) ListProjects(ctx context.Context, userID string) ([]*models.Project, error) {
	actor, err := loadActor(ctx, s.profileRepo, userID)
	if err != nil {
		return nil, err
	}
	all, err := s.projectRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return FilterProjects(actor, all), nil
}

// ListAvailable returns the claimable set for a contractor.
func (s *ProjectService) ListAvailable(ctx context.Context, userID string) ([]*models.Project, error) {
	actor, err := loadActor(ctx, s.profileRepo, userID)
	if err != nil {
		return nil, err
	}
	if actor.Role != models.RoleContractor {
		return nil, utils.ErrNotAuthorized
	}
	return s.projectRepo.ListAvailable(ctx)
}

// CreateProject provisions a new project. State officials may create
// anywhere; district collectors only inside their own district.
func (s *ProjectService) CreateProject(
	ctx context.Context,
	userID string,
	req dtos.CreateProjectRequest,
) (*models.Project, error) {
	actor, err := loadActor(ctx, s.profileRepo, userID)
	if err != nil {
		return nil, err
	}
	switch actor.Role {
	case models.RoleStateOfficial:
		// any district
	case models.RoleDistrictCollector:
		if actor.District() != req.District {
			return nil, utils.ErrDistrictMismatch
		}
	default:
		return nil, utils.ErrNotAuthorized
	}
	if !constants.IsKnownDistrict(req.District) {
		return nil, utils.ErrUnknownDistrict
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, utils.ErrInvalidPayload
	}
	var endDate *time.Time
	if req.EndDate != nil {
		parsed, parseErr := time.Parse("2006-01-02", *req.EndDate)
		if parseErr != nil {
			return nil, utils.ErrInvalidPayload
		}
		endDate = &parsed
	}

	status := models.ProjectStatusType(req.Status)
	if status == "" {
		status = models.ProjectStatusPlanned
	}

	proj := &models.Project{
		ID:              uuid.New(),
		Name:            req.Name,
		District:        req.District,
		Agency:          req.Agency,
		BudgetAllocated: req.BudgetAllocated,
		FundUtilized:    0,
		Status:          status,
		StartDate:       startDate,
		EndDate:         endDate,
	}
	if err := s.projectRepo.Create(ctx, proj); err != nil {
		return nil, err
	}
	created, err := s.projectRepo.GetByID(ctx, proj.ID)
	if err != nil {
		return nil, err
	}
	utils.Logger.Infof("Project %s created in %s by %s", proj.ID, proj.District, actor.ID)
	return created, nil
}

// ClaimProject self-assigns an unassigned ongoing project to the
// calling contractor. The precondition is re-checked at commit inside
// AssignContractorAtomic; losing the race yields a typed conflict with
// the latest row attached.
func (s *ProjectService) ClaimProject(
	ctx context.Context,
	userID string,
	req dtos.ClaimProjectRequest,
) (*models.Project, error) {
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

	updated, err := s.projectRepo.AssignContractorAtomic(ctx, req.ProjectID, actor.ID)
	if err != nil {
		if errors.Is(err, utils.ErrAlreadyAssigned) || errors.Is(err, utils.ErrWrongStatus) {
			return nil, utils.NewStatusConflictError(updated)
		}
		return nil, err
	}
	utils.Logger.Infof("Project %s claimed by contractor %s", req.ProjectID, actor.ID)
	return updated, nil
}

// ReportProgress records the assigned contractor's completion and
// status update, conditioned on the row version read here. A stale
// write is reported as a conflict; retrying is the caller's call.
func (s *ProjectService) ReportProgress(
	ctx context.Context,
	userID string,
	req dtos.ProgressReportRequest,
) (*models.Project, error) {
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
	if req.CompletionPercentage < 0 || req.CompletionPercentage > 100 {
		return nil, utils.ErrInvalidCompletion
	}

	updated, err := s.projectRepo.UpdateProgressAtomic(
		ctx,
		req.ProjectID,
		proj.RowVersion,
		req.CompletionPercentage,
		models.ProjectStatusType(req.Status),
	)
	if err != nil {
		if updated != nil {
			return nil, utils.NewStatusConflictError(updated)
		}
		return nil, err
	}
	return updated, nil
}

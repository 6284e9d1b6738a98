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

type AlertService struct {
	alertRepo   repositories.AlertRepository
	projectRepo repositories.ProjectRepository
	profileRepo repositories.ProfileRepository
	notifier    *NotificationService
}

func NewAlertService(
	alertRepo repositories.AlertRepository,
	projectRepo repositories.ProjectRepository,
	profileRepo repositories.ProfileRepository,
	notifier *NotificationService,
) *AlertService {
	return &AlertService{
		alertRepo:   alertRepo,
		projectRepo: projectRepo,
		profileRepo: profileRepo,
		notifier:    notifier,
	}
}

// ListAlerts returns the actor's visible alerts.
func (s *AlertService) ListAlerts(ctx context.Context, userID string) ([]*models.Alert, error) {
	actor, err := loadActor(ctx, s.profileRepo, userID)
	if err != nil {
		return nil, err
	}
	all, err := s.alertRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	var ownProjects []*models.Project
	if actor.Role == models.RoleContractor {
		ownProjects, err = s.projectRepo.ListByContractor(ctx, actor.ID)
		if err != nil {
			return nil, err
		}
	}
	return FilterAlerts(actor, all, ownProjects), nil
}

// CreateAlert files a manual alert. State officials may file for any
// district; collectors only for their own. When the alert references a
// project, the district must match the project's.
func (s *AlertService) CreateAlert(
	ctx context.Context,
	userID string,
	req dtos.CreateAlertRequest,
) (*models.Alert, error) {
	actor, err := loadActor(ctx, s.profileRepo, userID)
	if err != nil {
		return nil, err
	}
	if !isReviewer(actor, req.District) {
		return nil, utils.ErrNotAuthorized
	}

	if req.ProjectID != nil {
		proj, pErr := s.projectRepo.GetByID(ctx, *req.ProjectID)
		if pErr != nil {
			return nil, pErr
		}
		if proj == nil {
			return nil, utils.ErrNotFound
		}
		if proj.District != req.District {
			return nil, utils.ErrDistrictMismatch
		}
	}

	a := &models.Alert{
		ID:          uuid.New(),
		ProjectID:   req.ProjectID,
		District:    req.District,
		AlertType:   models.AlertTypeType(req.AlertType),
		Severity:    models.AlertSeverityType(req.Severity),
		Status:      models.AlertStatusActive,
		Title:       req.Title,
		Description: req.Description,
	}
	if err := s.alertRepo.Create(ctx, a); err != nil {
		return nil, err
	}
	created, err := s.alertRepo.GetByID(ctx, a.ID)
	if err != nil {
		return nil, err
	}
	s.notifyIfCritical(ctx, created)
	return created, nil
}

// ResolveAlert moves active → resolved. Same reviewer scope as
// creation; resolving twice yields a conflict with the resolved row.
func (s *AlertService) ResolveAlert(
	ctx context.Context,
	userID string,
	req dtos.ResolveAlertRequest,
) (*models.Alert, error) {
	actor, err := loadActor(ctx, s.profileRepo, userID)
	if err != nil {
		return nil, err
	}

	a, err := s.alertRepo.GetByID(ctx, req.AlertID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, utils.ErrNotFound
	}
	if !isReviewer(actor, a.District) {
		return nil, utils.ErrNotAuthorized
	}

	updated, err := s.alertRepo.ResolveAtomic(ctx, req.AlertID)
	if err != nil {
		if errors.Is(err, utils.ErrWrongStatus) {
			return nil, utils.NewStatusConflictError(updated)
		}
		return nil, err
	}
	return updated, nil
}

// notifyIfCritical pushes a critical alert to the district's
// collectors over email and SMS. Best effort; failures are logged.
func (s *AlertService) notifyIfCritical(ctx context.Context, a *models.Alert) {
	if a == nil || a.Severity != models.AlertSeverityCritical {
		return
	}
	collectors, err := s.profileRepo.ListByRoleAndDistrict(ctx, models.RoleDistrictCollector, a.District)
	if err != nil {
		utils.Logger.WithError(err).Warnf("Could not list collectors for district %s", a.District)
		return
	}
	s.notifier.NotifyCriticalAlert(a, collectors)
}

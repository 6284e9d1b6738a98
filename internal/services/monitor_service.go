package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rohitpal119/district-state-watch/internal/constants"
	"github.com/rohitpal119/district-state-watch/internal/models"
	"github.com/rohitpal119/district-state-watch/internal/repositories"
	"github.com/rohitpal119/district-state-watch/internal/utils"
)

// MonitorService is the scheduled scan that raises alerts for projects
// drifting off plan: ongoing past their end date, or spending past
// their allocation. Overrun itself stays a valid project state; the
// scan only makes it visible.
type MonitorService struct {
	projectRepo repositories.ProjectRepository
	alertRepo   repositories.AlertRepository
	profileRepo repositories.ProfileRepository
	notifier    *NotificationService
}

func NewMonitorService(
	projectRepo repositories.ProjectRepository,
	alertRepo repositories.AlertRepository,
	profileRepo repositories.ProfileRepository,
	notifier *NotificationService,
) *MonitorService {
	return &MonitorService{
		projectRepo: projectRepo,
		alertRepo:   alertRepo,
		profileRepo: profileRepo,
		notifier:    notifier,
	}
}

// RunScan walks every district once. Errors in one district do not
// stop the others.
func (s *MonitorService) RunScan(ctx context.Context) error {
	utils.Logger.Info("Running project monitor scan...")

	var lastErr error
	for _, district := range constants.Districts {
		projects, err := s.projectRepo.ListByDistrict(ctx, district)
		if err != nil {
			utils.Logger.WithError(err).Warnf("Monitor scan: could not list projects for %s", district)
			lastErr = err
			continue
		}
		for _, p := range projects {
			if err := s.scanProject(ctx, p); err != nil {
				utils.Logger.WithError(err).Warnf("Monitor scan: project %s", p.ID)
				lastErr = err
			}
		}
	}
	return lastErr
}

func (s *MonitorService) scanProject(ctx context.Context, p *models.Project) error {
	now := time.Now().UTC()

	if p.Status == models.ProjectStatusOngoing && p.EndDate != nil &&
		now.After(p.EndDate.AddDate(0, 0, constants.DelayGraceDays)) {
		if err := s.raise(ctx, p, models.AlertTypeDelay, models.AlertSeverityHigh,
			fmt.Sprintf("Project past end date: %s", p.Name),
			fmt.Sprintf("%q in %s is still ongoing at %d%% completion past its planned end date of %s.",
				p.Name, p.District, p.CompletionPercentage, p.EndDate.Format("2006-01-02")),
		); err != nil {
			return err
		}
	}

	if p.FundOverrun() {
		severity := models.AlertSeverityHigh
		if p.BudgetAllocated > 0 && p.FundUtilized/p.BudgetAllocated > constants.CriticalOverrunRatio {
			severity = models.AlertSeverityCritical
		}
		if err := s.raise(ctx, p, models.AlertTypeFundIssue, severity,
			fmt.Sprintf("Fund overrun: %s", p.Name),
			fmt.Sprintf("%q in %s has utilized ₹%.2f against an allocation of ₹%.2f.",
				p.Name, p.District, p.FundUtilized, p.BudgetAllocated),
		); err != nil {
			return err
		}
	}

	return nil
}

// raise files one alert per (project, type); an active alert of the
// same type suppresses duplicates on later scans.
func (s *MonitorService) raise(
	ctx context.Context,
	p *models.Project,
	alertType models.AlertTypeType,
	severity models.AlertSeverityType,
	title, description string,
) error {
	exists, err := s.alertRepo.HasActiveForProject(ctx, p.ID, alertType)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	a := &models.Alert{
		ID:          uuid.New(),
		ProjectID:   &p.ID,
		District:    p.District,
		AlertType:   alertType,
		Severity:    severity,
		Status:      models.AlertStatusActive,
		Title:       title,
		Description: description,
	}
	if err := s.alertRepo.Create(ctx, a); err != nil {
		return err
	}
	utils.Logger.Infof("Monitor scan raised %s alert for project %s (%s)", alertType, p.ID, severity)

	if severity == models.AlertSeverityCritical {
		collectors, cErr := s.profileRepo.ListByRoleAndDistrict(ctx, models.RoleDistrictCollector, p.District)
		if cErr != nil {
			utils.Logger.WithError(cErr).Warnf("Could not list collectors for district %s", p.District)
			return nil
		}
		s.notifier.NotifyCriticalAlert(a, collectors)
	}
	return nil
}

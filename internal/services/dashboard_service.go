package services

import (
	"context"

	"github.com/rohitpal119/district-state-watch/internal/constants"
	"github.com/rohitpal119/district-state-watch/internal/dtos"
	"github.com/rohitpal119/district-state-watch/internal/models"
	"github.com/rohitpal119/district-state-watch/internal/repositories"
	"github.com/rohitpal119/district-state-watch/internal/utils"
)

/*
   DashboardService is the facade that picks, per role, which filtered
   sets and rollups a dashboard needs. It holds no rules of its own:
   visibility comes from the filter functions, numbers from the
   aggregation functions, and mutations live in the workflow services.
*/
type DashboardService struct {
	projectRepo  repositories.ProjectRepository
	alertRepo    repositories.AlertRepository
	feedbackRepo repositories.FeedbackRepository
	fundRepo     repositories.FundUpdateRepository
	imageRepo    repositories.ImageUpdateRepository
	commRepo     repositories.CommunicationRepository
	profileRepo  repositories.ProfileRepository
}

func NewDashboardService(
	projectRepo repositories.ProjectRepository,
	alertRepo repositories.AlertRepository,
	feedbackRepo repositories.FeedbackRepository,
	fundRepo repositories.FundUpdateRepository,
	imageRepo repositories.ImageUpdateRepository,
	commRepo repositories.CommunicationRepository,
	profileRepo repositories.ProfileRepository,
) *DashboardService {
	return &DashboardService{
		projectRepo:  projectRepo,
		alertRepo:    alertRepo,
		feedbackRepo: feedbackRepo,
		fundRepo:     fundRepo,
		imageRepo:    imageRepo,
		commRepo:     commRepo,
		profileRepo:  profileRepo,
	}
}

// BuildDashboard dispatches on the actor's role.
func (s *DashboardService) BuildDashboard(ctx context.Context, userID string) (any, error) {
	actor, err := loadActor(ctx, s.profileRepo, userID)
	if err != nil {
		return nil, err
	}
	switch actor.Role {
	case models.RoleStateOfficial:
		return s.stateDashboard(ctx, actor)
	case models.RoleDistrictCollector:
		return s.districtDashboard(ctx, actor)
	case models.RoleContractor:
		return s.contractorDashboard(ctx, actor)
	default:
		return nil, utils.ErrNotAuthorized
	}
}

// FundFlow serves the standalone fund-flow chart: per-district bars
// state-wide, per-project bars for a collector. Contractors have no
// fund-flow view.
func (s *DashboardService) FundFlow(ctx context.Context, userID string) ([]dtos.FundFlowRow, error) {
	actor, err := loadActor(ctx, s.profileRepo, userID)
	if err != nil {
		return nil, err
	}
	switch actor.Role {
	case models.RoleStateOfficial:
		projects, err := s.projectRepo.ListAll(ctx)
		if err != nil {
			return nil, err
		}
		return ComputeStateFundFlow(constants.Districts, FilterProjects(actor, projects)), nil
	case models.RoleDistrictCollector:
		projects, err := s.projectRepo.ListByDistrict(ctx, actor.District())
		if err != nil {
			return nil, err
		}
		return ComputeDistrictFundFlow(FilterProjects(actor, projects)), nil
	default:
		return nil, utils.ErrNotAuthorized
	}
}

func (s *DashboardService) stateDashboard(ctx context.Context, actor *models.Profile) (*dtos.StateDashboardResponse, error) {
	projects, err := s.projectRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	alerts, err := s.alertRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	feedback, err := s.feedbackRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	visible := FilterProjects(actor, projects)
	return &dtos.StateDashboardResponse{
		KPIs:               ComputeKPIs(visible),
		DistrictComparison: ComputeDistrictComparison(constants.Districts, visible),
		FundFlow:           ComputeStateFundFlow(constants.Districts, visible),
		Projects:           visible,
		ActiveAlerts:       activeOnly(FilterAlerts(actor, alerts, nil)),
		PendingFeedback:    pendingOnly(FilterFeedback(actor, feedback, nil)),
	}, nil
}

func (s *DashboardService) districtDashboard(ctx context.Context, actor *models.Profile) (*dtos.DistrictDashboardResponse, error) {
	projects, err := s.projectRepo.ListByDistrict(ctx, actor.District())
	if err != nil {
		return nil, err
	}
	alerts, err := s.alertRepo.ListByDistrict(ctx, actor.District())
	if err != nil {
		return nil, err
	}
	feedback, err := s.feedbackRepo.ListByDistrict(ctx, actor.District())
	if err != nil {
		return nil, err
	}
	fundUpdates, err := s.fundRepo.ListByDistrict(ctx, actor.District())
	if err != nil {
		return nil, err
	}

	// The repo queries are already district-scoped; running the filter
	// again keeps the choke point honest if a query ever widens.
	visible := FilterProjects(actor, projects)
	return &dtos.DistrictDashboardResponse{
		District:           actor.District(),
		KPIs:               ComputeKPIs(visible),
		FundFlow:           ComputeDistrictFundFlow(visible),
		Projects:           visible,
		ActiveAlerts:       activeOnly(FilterAlerts(actor, alerts, nil)),
		PendingFeedback:    pendingOnly(FilterFeedback(actor, feedback, nil)),
		PendingFundUpdates: pendingFundUpdates(fundUpdates),
	}, nil
}

func (s *DashboardService) contractorDashboard(ctx context.Context, actor *models.Profile) (*dtos.ContractorDashboardResponse, error) {
	all, err := s.projectRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	own := FilterProjects(actor, all)
	available := AvailableProjects(all)

	fundUpdates, err := s.fundRepo.ListByContractor(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	images, err := s.imageRepo.ListByContractor(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	alerts, err := s.alertRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	feedback, err := s.feedbackRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	unread, err := s.commRepo.CountUnread(ctx, actor.ID, models.SenderTypeDistrictCollector)
	if err != nil {
		return nil, err
	}

	return &dtos.ContractorDashboardResponse{
		Projects:          own,
		AvailableProjects: available,
		FundUpdates:       fundUpdates,
		ImageUpdates:      images,
		Alerts:            FilterAlerts(actor, alerts, own),
		Feedback:          FilterFeedback(actor, feedback, own),
		UnreadMessages:    unread,
	}, nil
}

func activeOnly(alerts []*models.Alert) []*models.Alert {
	out := []*models.Alert{}
	for _, a := range alerts {
		if a.Status == models.AlertStatusActive {
			out = append(out, a)
		}
	}
	return out
}

func pendingOnly(feedback []*models.Feedback) []*models.Feedback {
	out := []*models.Feedback{}
	for _, f := range feedback {
		if f.Status != models.FeedbackStatusResolved {
			out = append(out, f)
		}
	}
	return out
}

func pendingFundUpdates(updates []*models.FundUpdate) []*models.FundUpdate {
	out := []*models.FundUpdate{}
	for _, fu := range updates {
		if fu.Status == models.FundUpdateStatusPending {
			out = append(out, fu)
		}
	}
	return out
}

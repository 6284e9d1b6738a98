package services

import (
	"context"
	"errors"

	"github.com/rohitpal119/district-state-watch/internal/dtos"
	"github.com/rohitpal119/district-state-watch/internal/models"
	"github.com/rohitpal119/district-state-watch/internal/repositories"
	"github.com/rohitpal119/district-state-watch/internal/utils"
)

// FeedbackService handles triage of citizen feedback. Intake itself is
// external (citizen-facing); rows arrive through seeding or other
// writers and only move forward here.
type FeedbackService struct {
	feedbackRepo repositories.FeedbackRepository
	projectRepo  repositories.ProjectRepository
	profileRepo  repositories.ProfileRepository
}

func NewFeedbackService(
	feedbackRepo repositories.FeedbackRepository,
	projectRepo repositories.ProjectRepository,
	profileRepo repositories.ProfileRepository,
) *FeedbackService {
	return &FeedbackService{
		feedbackRepo: feedbackRepo,
		projectRepo:  projectRepo,
		profileRepo:  profileRepo,
	}
}

// ListFeedback returns the actor's visible feedback entries.
func (s *FeedbackService) ListFeedback(ctx context.Context, userID string) ([]*models.Feedback, error) {
	actor, err := loadActor(ctx, s.profileRepo, userID)
	if err != nil {
		return nil, err
	}
	all, err := s.feedbackRepo.ListAll(ctx)
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
	return FilterFeedback(actor, all, ownProjects), nil
}

// AdvanceFeedback moves an entry exactly one step forward
// (pending → in_progress → resolved). The write is conditioned on the
// status the caller saw; a stale transition is a conflict, and there
// is no path backwards out of resolved.
func (s *FeedbackService) AdvanceFeedback(
	ctx context.Context,
	userID string,
	req dtos.AdvanceFeedbackRequest,
) (*models.Feedback, error) {
	actor, err := loadActor(ctx, s.profileRepo, userID)
	if err != nil {
		return nil, err
	}

	f, err := s.feedbackRepo.GetByID(ctx, req.FeedbackID)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, utils.ErrNotFound
	}
	if !isReviewer(actor, f.District) {
		return nil, utils.ErrNotAuthorized
	}

	expected := models.FeedbackStatusType(req.CurrentStatus)
	next := models.NextFeedbackStatus(expected)
	if next == "" {
		return nil, utils.ErrInvalidPayload
	}

	updated, err := s.feedbackRepo.AdvanceStatusAtomic(ctx, req.FeedbackID, expected, next)
	if err != nil {
		if errors.Is(err, utils.ErrWrongStatus) {
			return nil, utils.NewStatusConflictError(updated)
		}
		return nil, err
	}
	return updated, nil
}

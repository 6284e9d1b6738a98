package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/rohitpal119/district-state-watch/internal/dtos"
	"github.com/rohitpal119/district-state-watch/internal/models"
	"github.com/rohitpal119/district-state-watch/internal/repositories"
	"github.com/rohitpal119/district-state-watch/internal/utils"
)

type CommunicationService struct {
	commRepo    repositories.CommunicationRepository
	projectRepo repositories.ProjectRepository
	profileRepo repositories.ProfileRepository
}

func NewCommunicationService(
	commRepo repositories.CommunicationRepository,
	projectRepo repositories.ProjectRepository,
	profileRepo repositories.ProfileRepository,
) *CommunicationService {
	return &CommunicationService{
		commRepo:    commRepo,
		projectRepo: projectRepo,
		profileRepo: profileRepo,
	}
}

// ListCommunications returns the actor's side of their threads.
// Threads are contractor ↔ district collector; state officials have no
// seat and get an empty list.
func (s *CommunicationService) ListCommunications(ctx context.Context, userID string) ([]*models.Communication, error) {
	actor, err := loadActor(ctx, s.profileRepo, userID)
	if err != nil {
		return nil, err
	}
	switch actor.Role {
	case models.RoleContractor:
		return s.commRepo.ListForContractor(ctx, actor.ID)
	case models.RoleDistrictCollector:
		return s.commRepo.ListForCollector(ctx, actor.ID, actor.District())
	default:
		return []*models.Communication{}, nil
	}
}

// SendMessage creates a message in a thread. Messages always start
// unread. When the message references a project, the thread contractor
// must be that project's assigned contractor.
func (s *CommunicationService) SendMessage(
	ctx context.Context,
	userID string,
	req dtos.SendMessageRequest,
) (*models.Communication, error) {
	actor, err := loadActor(ctx, s.profileRepo, userID)
	if err != nil {
		return nil, err
	}

	senderType := models.SenderTypeForRole(actor.Role)
	if senderType == "" {
		return nil, utils.ErrNotAuthorized
	}

	var contractorID uuid.UUID
	var collectorID *uuid.UUID
	switch actor.Role {
	case models.RoleContractor:
		contractorID = actor.ID
	case models.RoleDistrictCollector:
		if req.ContractorID == nil {
			return nil, utils.ErrInvalidPayload
		}
		contractorID = *req.ContractorID
		collectorID = &actor.ID
	}

	if req.ProjectID != nil {
		proj, pErr := s.projectRepo.GetByID(ctx, *req.ProjectID)
		if pErr != nil {
			return nil, pErr
		}
		if proj == nil {
			return nil, utils.ErrNotFound
		}
		if proj.ContractorID == nil || *proj.ContractorID != contractorID {
			return nil, utils.ErrNotAssignedContractor
		}
		if actor.Role == models.RoleDistrictCollector && actor.District() != proj.District {
			return nil, utils.ErrDistrictMismatch
		}
	}

	c := &models.Communication{
		ID:                  uuid.New(),
		ProjectID:           req.ProjectID,
		ContractorID:        contractorID,
		DistrictCollectorID: collectorID,
		SenderType:          senderType,
		Message:             req.Message,
		Read:                false,
	}
	if err := s.commRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	return s.commRepo.GetByID(ctx, c.ID)
}

// MarkRead flips a message to read. Only the counterparty may do it;
// the original sender gets the row back unchanged (a no-op, not an
// error). Non-participants are rejected.
func (s *CommunicationService) MarkRead(
	ctx context.Context,
	userID string,
	req dtos.MarkReadRequest,
) (*models.Communication, error) {
	actor, err := loadActor(ctx, s.profileRepo, userID)
	if err != nil {
		return nil, err
	}

	c, err := s.commRepo.GetByID(ctx, req.CommunicationID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, utils.ErrNotFound
	}

	actorSide := models.SenderTypeForRole(actor.Role)
	if actorSide == "" {
		return nil, utils.ErrNotAuthorized
	}
	if actor.Role == models.RoleContractor && c.ContractorID != actor.ID {
		return nil, utils.ErrNotCounterparty
	}
	if actor.Role == models.RoleDistrictCollector {
		switch {
		case c.DistrictCollectorID != nil:
			if *c.DistrictCollectorID != actor.ID {
				return nil, utils.ErrNotCounterparty
			}
		case c.ProjectID != nil:
			proj, pErr := s.projectRepo.GetByID(ctx, *c.ProjectID)
			if pErr != nil {
				return nil, pErr
			}
			if proj == nil || actor.District() != proj.District {
				return nil, utils.ErrNotCounterparty
			}
		default:
			return nil, utils.ErrNotCounterparty
		}
	}

	if c.SenderType == actorSide {
		// Sender cannot mark their own message; no-op.
		return c, nil
	}
	return s.commRepo.MarkRead(ctx, req.CommunicationID)
}

// UnreadCount counts the messages waiting on the contractor's side of
// their threads (sent by collectors, still unread).
func (s *CommunicationService) UnreadCount(ctx context.Context, contractorID uuid.UUID) (int, error) {
	return s.commRepo.CountUnread(ctx, contractorID, models.SenderTypeDistrictCollector)
}

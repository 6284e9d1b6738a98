package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/rohitpal119/district-state-watch/internal/models"
	"github.com/rohitpal119/district-state-watch/internal/repositories"
	"github.com/rohitpal119/district-state-watch/internal/utils"
)

// loadActor resolves the authenticated user ID (from the JWT subject)
// into a Profile. Every service entry point starts here so the core
// always works with an explicit actor, never ambient session state.
func loadActor(ctx context.Context, profileRepo repositories.ProfileRepository, userID string) (*models.Profile, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format: %w", err)
	}
	actor, err := profileRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		// JWT for a profile that no longer exists.
		return nil, fmt.Errorf("authenticated user %s not found: %w", userID, utils.ErrNotFound)
	}
	return actor, nil
}

// isReviewer reports whether the actor may review records in the given
// district: state officials everywhere, collectors only in their own.
func isReviewer(actor *models.Profile, district string) bool {
	switch actor.Role {
	case models.RoleStateOfficial:
		return true
	case models.RoleDistrictCollector:
		return actor.District() == district
	default:
		return false
	}
}

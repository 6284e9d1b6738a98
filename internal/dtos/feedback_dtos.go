package dtos

import (
	"github.com/google/uuid"
)

// AdvanceFeedbackRequest moves a feedback one step along
// pending → in_progress → resolved. The current status rides along so
// the write can be conditioned on it.
type AdvanceFeedbackRequest struct {
	FeedbackID    uuid.UUID `json:"feedback_id" validate:"required"`
	CurrentStatus string    `json:"current_status" validate:"required,oneof=pending in_progress"`
}

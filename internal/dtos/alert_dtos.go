package dtos

import (
	"github.com/google/uuid"
)

type CreateAlertRequest struct {
	ProjectID   *uuid.UUID `json:"project_id,omitempty"`
	District    string     `json:"district" validate:"required"`
	AlertType   string     `json:"alert_type" validate:"required"`
	Severity    string     `json:"severity" validate:"required,oneof=low medium high critical"`
	Title       string     `json:"title" validate:"required"`
	Description string     `json:"description" validate:"required"`
}

type ResolveAlertRequest struct {
	AlertID uuid.UUID `json:"alert_id" validate:"required"`
}

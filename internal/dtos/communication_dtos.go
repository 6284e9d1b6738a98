package dtos

import (
	"github.com/google/uuid"
)

type SendMessageRequest struct {
	ProjectID *uuid.UUID `json:"project_id,omitempty"`
	// ContractorID is required when a district collector starts or
	// continues a thread; contractors always message on their own ID.
	ContractorID *uuid.UUID `json:"contractor_id,omitempty"`
	Message      string     `json:"message" validate:"required"`
}

type MarkReadRequest struct {
	CommunicationID uuid.UUID `json:"communication_id" validate:"required"`
}

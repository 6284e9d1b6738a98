package dtos

import (
	"github.com/google/uuid"
)

type SubmitImageRequest struct {
	ProjectID   uuid.UUID `json:"project_id" validate:"required"`
	ImageType   string    `json:"image_type" validate:"required,oneof=progress ar 360"`
	ImageURL    string    `json:"image_url" validate:"required,url"`
	Description *string   `json:"description,omitempty"`
}

// models/image_update.go

package models

import (
	"time"

	"github.com/google/uuid"
)

type ImageTypeType string

const (
	ImageTypeProgress ImageTypeType = "progress"
	ImageTypeAR       ImageTypeType = "ar"
	ImageType360      ImageTypeType = "360"
)

// ImageUpdate is an append-only progress photo log entry. The blob
// itself lives in external storage; only the returned URL is kept.
type ImageUpdate struct {
	ID           uuid.UUID     `json:"id"`
	ProjectID    uuid.UUID     `json:"project_id"`
	ContractorID uuid.UUID     `json:"contractor_id"`
	ImageType    ImageTypeType `json:"image_type"`
	ImageURL     string        `json:"image_url"`
	Description  *string       `json:"description,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (iu *ImageUpdate) GetID() string {
	return iu.ID.String()
}

// models/communication.go

package models

import (
	"time"

	"github.com/google/uuid"
)

type SenderTypeType string

const (
	SenderTypeContractor        SenderTypeType = "contractor"
	SenderTypeDistrictCollector SenderTypeType = "district_collector"
)

// Communication is one message in a contractor ↔ district collector
// thread. Read is settable only by the non-sending party.
type Communication struct {
	Versioned

	ID                  uuid.UUID      `json:"id"`
	ProjectID           *uuid.UUID     `json:"project_id,omitempty"`
	ContractorID        uuid.UUID      `json:"contractor_id"`
	DistrictCollectorID *uuid.UUID     `json:"district_collector_id,omitempty"`
	SenderType          SenderTypeType `json:"sender_type"`
	Message             string         `json:"message"`
	Read                bool           `json:"read"`

	CreatedAt time.Time `json:"created_at"`
}

func (c *Communication) GetID() string {
	return c.ID.String()
}

// SenderTypeForRole maps an actor role onto the wire sender type, or
// "" for roles that cannot participate in a thread.
func SenderTypeForRole(role UserRoleType) SenderTypeType {
	switch role {
	case RoleContractor:
		return SenderTypeContractor
	case RoleDistrictCollector:
		return SenderTypeDistrictCollector
	default:
		return ""
	}
}

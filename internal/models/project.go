// models/project.go

package models

import (
	"time"

	"github.com/google/uuid"
)

type ProjectStatusType string

const (
	ProjectStatusPlanned   ProjectStatusType = "planned"
	ProjectStatusOngoing   ProjectStatusType = "ongoing"
	ProjectStatusDelayed   ProjectStatusType = "delayed"
	ProjectStatusCompleted ProjectStatusType = "completed"
)

type Project struct {
	Versioned

	ID                   uuid.UUID         `json:"id"`
	Name                 string            `json:"name"`
	District             string            `json:"district"`
	Agency               string            `json:"agency"`
	ContractorID         *uuid.UUID        `json:"contractor_id,omitempty"`
	BudgetAllocated      float64           `json:"budget_allocated"`
	FundUtilized         float64           `json:"fund_utilized"`
	CompletionPercentage int               `json:"completion_percentage"`
	Status               ProjectStatusType `json:"status"`
	StartDate            time.Time         `json:"start_date"`
	EndDate              *time.Time        `json:"end_date,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Project) GetID() string {
	return p.ID.String()
}

// IsAvailable reports whether a contractor may claim the project.
func (p *Project) IsAvailable() bool {
	return p.ContractorID == nil && p.Status == ProjectStatusOngoing
}

// FundOverrun reports whether utilization exceeds the allocation.
// Overrun is a valid state, not an error; the monitor scan raises a
// fund_issue alert for it.
func (p *Project) FundOverrun() bool {
	return p.FundUtilized > p.BudgetAllocated
}

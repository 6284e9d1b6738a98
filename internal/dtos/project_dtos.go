package dtos

import (
	"github.com/google/uuid"
)

type CreateProjectRequest struct {
	Name            string  `json:"name" validate:"required"`
	District        string  `json:"district" validate:"required"`
	Agency          string  `json:"agency" validate:"required"`
	BudgetAllocated float64 `json:"budget_allocated" validate:"required,gt=0"`
	StartDate       string  `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate         *string `json:"end_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Status          string  `json:"status" validate:"omitempty,oneof=planned ongoing"`
}

type ClaimProjectRequest struct {
	ProjectID uuid.UUID `json:"project_id" validate:"required"`
}

type ProgressReportRequest struct {
	ProjectID            uuid.UUID `json:"project_id" validate:"required"`
	CompletionPercentage int       `json:"completion_percentage" validate:"min=0,max=100"`
	Status               string    `json:"status" validate:"required,oneof=ongoing delayed completed"`
}

// models/fund_update.go

package models

import (
	"time"

	"github.com/google/uuid"
)

type FundUpdateStatusType string

const (
	FundUpdateStatusPending  FundUpdateStatusType = "pending"
	FundUpdateStatusApproved FundUpdateStatusType = "approved"
	FundUpdateStatusRejected FundUpdateStatusType = "rejected"
)

// FundUpdate is a contractor's fund-release request against one of
// their own projects. approved and rejected are terminal.
type FundUpdate struct {
	Versioned

	ID           uuid.UUID            `json:"id"`
	ProjectID    uuid.UUID            `json:"project_id"`
	ContractorID uuid.UUID            `json:"contractor_id"`
	Amount       float64              `json:"amount"`
	Description  string               `json:"description"`
	ReceiptURL   *string              `json:"receipt_url,omitempty"`
	Status       FundUpdateStatusType `json:"status"`
	ReviewedBy   *uuid.UUID           `json:"reviewed_by,omitempty"`
	ReviewedAt   *time.Time           `json:"reviewed_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (fu *FundUpdate) GetID() string {
	return fu.ID.String()
}

package dtos

import (
	"github.com/google/uuid"
)

type SubmitFundUpdateRequest struct {
	ProjectID   uuid.UUID `json:"project_id" validate:"required"`
	Amount      float64   `json:"amount" validate:"required,gt=0"`
	Description string    `json:"description" validate:"required"`
	ReceiptURL  *string   `json:"receipt_url,omitempty" validate:"omitempty,url"`
}

type ReviewFundUpdateRequest struct {
	FundUpdateID uuid.UUID `json:"fund_update_id" validate:"required"`
	Decision     string    `json:"decision" validate:"required,oneof=approved rejected"`
}

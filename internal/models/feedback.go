// models/feedback.go

package models

import (
	"time"

	"github.com/google/uuid"
)

type FeedbackTypeType string

const (
	FeedbackTypeComplaint    FeedbackTypeType = "complaint"
	FeedbackTypeQuery        FeedbackTypeType = "query"
	FeedbackTypeSuggestion   FeedbackTypeType = "suggestion"
	FeedbackTypeAppreciation FeedbackTypeType = "appreciation"
)

type FeedbackPriorityType string

const (
	FeedbackPriorityLow    FeedbackPriorityType = "low"
	FeedbackPriorityMedium FeedbackPriorityType = "medium"
	FeedbackPriorityHigh   FeedbackPriorityType = "high"
)

type FeedbackStatusType string

const (
	FeedbackStatusPending    FeedbackStatusType = "pending"
	FeedbackStatusInProgress FeedbackStatusType = "in_progress"
	FeedbackStatusResolved   FeedbackStatusType = "resolved"
)

// Feedback is citizen intake. CitizenName nil means anonymous.
// Status only moves forward: pending → in_progress → resolved.
type Feedback struct {
	Versioned

	ID           uuid.UUID            `json:"id"`
	ProjectID    *uuid.UUID           `json:"project_id,omitempty"`
	District     string               `json:"district"`
	CitizenName  *string              `json:"citizen_name,omitempty"`
	FeedbackType FeedbackTypeType     `json:"feedback_type"`
	Priority     FeedbackPriorityType `json:"priority"`
	Status       FeedbackStatusType   `json:"status"`
	Description  string               `json:"description"`
	ResolvedAt   *time.Time           `json:"resolved_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (f *Feedback) GetID() string {
	return f.ID.String()
}

// NextFeedbackStatus returns the only legal successor of a feedback
// status, or "" when the status is terminal.
func NextFeedbackStatus(s FeedbackStatusType) FeedbackStatusType {
	switch s {
	case FeedbackStatusPending:
		return FeedbackStatusInProgress
	case FeedbackStatusInProgress:
		return FeedbackStatusResolved
	default:
		return ""
	}
}

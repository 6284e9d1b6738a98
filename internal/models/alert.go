// models/alert.go

package models

import (
	"time"

	"github.com/google/uuid"
)

// AlertTypeType is an open set; the scanner and officials may add new
// kinds without a schema change. The constants cover the known ones.
type AlertTypeType string

const (
	AlertTypeDelay          AlertTypeType = "delay"
	AlertTypeFundIssue      AlertTypeType = "fund_issue"
	AlertTypeQualityConcern AlertTypeType = "quality_concern"
)

type AlertSeverityType string

const (
	AlertSeverityLow      AlertSeverityType = "low"
	AlertSeverityMedium   AlertSeverityType = "medium"
	AlertSeverityHigh     AlertSeverityType = "high"
	AlertSeverityCritical AlertSeverityType = "critical"
)

type AlertStatusType string

const (
	AlertStatusActive   AlertStatusType = "active"
	AlertStatusResolved AlertStatusType = "resolved"
)

type Alert struct {
	Versioned

	ID          uuid.UUID         `json:"id"`
	ProjectID   *uuid.UUID        `json:"project_id,omitempty"`
	District    string            `json:"district"`
	AlertType   AlertTypeType     `json:"alert_type"`
	Severity    AlertSeverityType `json:"severity"`
	Status      AlertStatusType   `json:"status"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	ResolvedAt  *time.Time        `json:"resolved_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (a *Alert) GetID() string {
	return a.ID.String()
}

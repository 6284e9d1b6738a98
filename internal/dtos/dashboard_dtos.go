package dtos

import (
	"github.com/rohitpal119/district-state-watch/internal/models"
)

/*
KPISummary is the rollup behind the dashboard KPI cards. The percent
fields are strings with one decimal place ("65.5"), or "0" when the
denominator is empty, matching what the cards render directly.
*/
type KPISummary struct {
	TotalProjects          int    `json:"total_projects"`
	CompletedPercent       string `json:"completed_percent"`
	OngoingCount           int    `json:"ongoing_count"`
	DelayedCount           int    `json:"delayed_count"`
	FundUtilizationPercent string `json:"fund_utilization_percent"`
}

// DistrictComparisonRow feeds the per-district bar chart. Percentages
// are whole integers, rounded to nearest, so the bars do not
// understate completion.
type DistrictComparisonRow struct {
	District         string `json:"district"`
	CompletedPercent int    `json:"completed_percent"`
	DelayedCount     int    `json:"delayed_count"`
	TotalCount       int    `json:"total_count"`
}

// FundFlowRow is one bar pair in the fund-flow chart. Amounts are in
// lakh (raw rupees / 100000), converted at this boundary only.
type FundFlowRow struct {
	Label         string  `json:"label"`
	AllocatedLakh float64 `json:"allocated_lakh"`
	UtilizedLakh  float64 `json:"utilized_lakh"`
}

type StateDashboardResponse struct {
	KPIs               KPISummary              `json:"kpis"`
	DistrictComparison []DistrictComparisonRow `json:"district_comparison"`
	FundFlow           []FundFlowRow           `json:"fund_flow"`
	Projects           []*models.Project       `json:"projects"`
	ActiveAlerts       []*models.Alert         `json:"active_alerts"`
	PendingFeedback    []*models.Feedback      `json:"pending_feedback"`
}

type DistrictDashboardResponse struct {
	District           string               `json:"district"`
	KPIs               KPISummary           `json:"kpis"`
	FundFlow           []FundFlowRow        `json:"fund_flow"`
	Projects           []*models.Project    `json:"projects"`
	ActiveAlerts       []*models.Alert      `json:"active_alerts"`
	PendingFeedback    []*models.Feedback   `json:"pending_feedback"`
	PendingFundUpdates []*models.FundUpdate `json:"pending_fund_updates"`
}

type ContractorDashboardResponse struct {
	Projects          []*models.Project     `json:"projects"`
	AvailableProjects []*models.Project     `json:"available_projects"`
	FundUpdates       []*models.FundUpdate  `json:"fund_updates"`
	ImageUpdates      []*models.ImageUpdate `json:"image_updates"`
	Alerts            []*models.Alert       `json:"alerts"`
	Feedback          []*models.Feedback    `json:"feedback"`
	UnreadMessages    int                   `json:"unread_messages"`
}

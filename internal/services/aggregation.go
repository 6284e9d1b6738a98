package services

import (
	"math"
	"strconv"

	"github.com/rohitpal119/district-state-watch/internal/constants"
	"github.com/rohitpal119/district-state-watch/internal/dtos"
	"github.com/rohitpal119/district-state-watch/internal/models"
)

/*
   Aggregation is pure arithmetic over an already-filtered project set.
   Callers must apply visibility filtering first; nothing here checks
   the actor again.

   Monetary inputs stay in raw rupees throughout; the lakh conversion
   happens only on the FundFlowRow boundary.
*/

// ComputeKPIs builds the KPI card rollup. Empty input yields zero
// counts and "0" percentages, never a division by zero.
func ComputeKPIs(projects []*models.Project) dtos.KPISummary {
	total := len(projects)
	var completed, ongoing, delayed int
	var budgetSum, utilizedSum float64

	for _, p := range projects {
		switch p.Status {
		case models.ProjectStatusCompleted:
			completed++
		case models.ProjectStatusOngoing:
			ongoing++
		case models.ProjectStatusDelayed:
			delayed++
		}
		budgetSum += p.BudgetAllocated
		utilizedSum += p.FundUtilized
	}

	return dtos.KPISummary{
		TotalProjects:          total,
		CompletedPercent:       percent1(float64(completed), float64(total)),
		OngoingCount:           ongoing,
		DelayedCount:           delayed,
		FundUtilizationPercent: percent1(utilizedSum, budgetSum),
	}
}

// ComputeDistrictComparison reports one row per district, in the given
// order, including districts with zero projects.
func ComputeDistrictComparison(districts []string, projects []*models.Project) []dtos.DistrictComparisonRow {
	rows := make([]dtos.DistrictComparisonRow, 0, len(districts))
	for _, district := range districts {
		var completed, delayed, total int
		for _, p := range projects {
			if p.District != district {
				continue
			}
			total++
			switch p.Status {
			case models.ProjectStatusCompleted:
				completed++
			case models.ProjectStatusDelayed:
				delayed++
			}
		}
		rows = append(rows, dtos.DistrictComparisonRow{
			District:         district,
			CompletedPercent: wholePercent(completed, total),
			DelayedCount:     delayed,
			TotalCount:       total,
		})
	}
	return rows
}

// ComputeStateFundFlow groups allocation vs utilization by district,
// one row per district in the given order.
func ComputeStateFundFlow(districts []string, projects []*models.Project) []dtos.FundFlowRow {
	rows := make([]dtos.FundFlowRow, 0, len(districts))
	for _, district := range districts {
		var allocated, utilized float64
		for _, p := range projects {
			if p.District != district {
				continue
			}
			allocated += p.BudgetAllocated
			utilized += p.FundUtilized
		}
		rows = append(rows, dtos.FundFlowRow{
			Label:         district,
			AllocatedLakh: toLakh(allocated),
			UtilizedLakh:  toLakh(utilized),
		})
	}
	return rows
}

// ComputeDistrictFundFlow reports one row per project; the caller
// passes the district-filtered set.
func ComputeDistrictFundFlow(projects []*models.Project) []dtos.FundFlowRow {
	rows := make([]dtos.FundFlowRow, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, dtos.FundFlowRow{
			Label:         p.Name,
			AllocatedLakh: toLakh(p.BudgetAllocated),
			UtilizedLakh:  toLakh(p.FundUtilized),
		})
	}
	return rows
}

// percent1 renders 100*num/den with one decimal place, half-up, or
// "0" when the denominator is zero.
func percent1(num, den float64) string {
	if den == 0 {
		return "0"
	}
	rounded := math.Floor(num/den*1000+0.5) / 10
	return strconv.FormatFloat(rounded, 'f', 1, 64)
}

// wholePercent rounds to the nearest integer percent; truncation would
// understate completion on the bar chart.
func wholePercent(num, den int) int {
	if den == 0 {
		return 0
	}
	return int(math.Round(float64(num) / float64(den) * 100))
}

func toLakh(rupees float64) float64 {
	return rupees / constants.RupeesPerLakh
}

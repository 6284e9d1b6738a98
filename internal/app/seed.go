package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rohitpal119/district-state-watch/internal/models"
	"github.com/rohitpal119/district-state-watch/internal/repositories"
	"github.com/rohitpal119/district-state-watch/internal/utils"
)

// Seed identities are fixed so repeated startups recognize their own
// data. The state official's email doubles as the idempotency check.
const (
	seedOfficialEmail   = "official@maha.gov.in"
	seedOfficialID      = "aaaaaaaa-aaaa-4aaa-aaaa-aaaaaaaaaaa1"
	seedCollectorMumbai = "aaaaaaaa-aaaa-4aaa-aaaa-aaaaaaaaaaa2"
	seedCollectorPune   = "aaaaaaaa-aaaa-4aaa-aaaa-aaaaaaaaaaa3"
	seedContractor1     = "aaaaaaaa-aaaa-4aaa-aaaa-aaaaaaaaaaa4"
	seedContractor2     = "aaaaaaaa-aaaa-4aaa-aaaa-aaaaaaaaaaa5"
)

// SeedTestData loads a small set of sample profiles, projects, and
// citizen feedback for local development. Safe to call on every
// startup; it no-ops once the seed official exists.
func SeedTestData(
	ctx context.Context,
	profileRepo repositories.ProfileRepository,
	projectRepo repositories.ProjectRepository,
	feedbackRepo repositories.FeedbackRepository,
) error {
	existing, err := profileRepo.GetByEmail(ctx, seedOfficialEmail)
	if err != nil {
		return fmt.Errorf("check seed official: %w", err)
	}
	if existing != nil {
		utils.Logger.Info("Seed data already present; skipping seeding.")
		return nil
	}

	profiles := []*models.Profile{
		{
			ID:       uuid.MustParse(seedOfficialID),
			Email:    seedOfficialEmail,
			FullName: "Rajesh Kumar",
			Role:     models.RoleStateOfficial,
		},
		{
			ID:               uuid.MustParse(seedCollectorMumbai),
			Email:            "collector.mumbai@maha.gov.in",
			FullName:         "Priya Sharma",
			PhoneNumber:      utils.Ptr("+919820000001"),
			Role:             models.RoleDistrictCollector,
			AssignedDistrict: utils.Ptr("Mumbai"),
		},
		{
			ID:               uuid.MustParse(seedCollectorPune),
			Email:            "collector.pune@maha.gov.in",
			FullName:         "Amit Patil",
			PhoneNumber:      utils.Ptr("+919820000002"),
			Role:             models.RoleDistrictCollector,
			AssignedDistrict: utils.Ptr("Pune"),
		},
		{
			ID:       uuid.MustParse(seedContractor1),
			Email:    "contractor1@buildco.in",
			FullName: "BuildCo Infrastructure",
			Role:     models.RoleContractor,
		},
		{
			ID:       uuid.MustParse(seedContractor2),
			Email:    "contractor2@nirmaan.in",
			FullName: "Nirmaan Constructions",
			Role:     models.RoleContractor,
		},
	}
	for _, p := range profiles {
		if err := profileRepo.Create(ctx, p); err != nil {
			return fmt.Errorf("seed profile %s: %w", p.Email, err)
		}
	}

	now := time.Now().UTC()
	contractor1 := uuid.MustParse(seedContractor1)

	projects := []*models.Project{
		{
			ID:                   uuid.New(),
			Name:                 "Community Hall Construction - Ward 12",
			District:             "Mumbai",
			Agency:               "MMRDA",
			ContractorID:         &contractor1,
			BudgetAllocated:      5000000,
			FundUtilized:         3200000,
			CompletionPercentage: 65,
			Status:               models.ProjectStatusOngoing,
			StartDate:            now.AddDate(0, -6, 0),
			EndDate:              utils.Ptr(now.AddDate(0, 3, 0)),
		},
		{
			ID:                   uuid.New(),
			Name:                 "Hostel Building for Students",
			District:             "Pune",
			Agency:               "PWD Pune",
			BudgetAllocated:      7500000,
			FundUtilized:         7500000,
			CompletionPercentage: 100,
			Status:               models.ProjectStatusCompleted,
			StartDate:            now.AddDate(-1, 0, 0),
			EndDate:              utils.Ptr(now.AddDate(0, -1, 0)),
		},
		{
			ID:                   uuid.New(),
			Name:                 "Village Road Upgradation",
			District:             "Nagpur",
			Agency:               "Zilla Parishad Nagpur",
			BudgetAllocated:      2500000,
			FundUtilized:         1800000,
			CompletionPercentage: 40,
			Status:               models.ProjectStatusDelayed,
			StartDate:            now.AddDate(0, -8, 0),
			EndDate:              utils.Ptr(now.AddDate(0, -1, 0)),
		},
		{
			ID:              uuid.New(),
			Name:            "Drinking Water Supply Scheme",
			District:        "Nashik",
			Agency:          "MJP",
			BudgetAllocated: 4000000,
			Status:          models.ProjectStatusOngoing,
			StartDate:       now.AddDate(0, -1, 0),
			EndDate:         utils.Ptr(now.AddDate(1, 0, 0)),
		},
	}
	for _, p := range projects {
		if err := projectRepo.Create(ctx, p); err != nil {
			return fmt.Errorf("seed project %s: %w", p.Name, err)
		}
	}

	feedback := []*models.Feedback{
		{
			ID:           uuid.New(),
			ProjectID:    &projects[0].ID,
			District:     "Mumbai",
			CitizenName:  utils.Ptr("Sunita Devi"),
			FeedbackType: models.FeedbackTypeComplaint,
			Priority:     models.FeedbackPriorityHigh,
			Description:  "Construction debris blocking the access road for two weeks.",
		},
		{
			ID:           uuid.New(),
			District:     "Pune",
			FeedbackType: models.FeedbackTypeAppreciation,
			Priority:     models.FeedbackPriorityLow,
			Description:  "The new hostel building is excellent. Thank you.",
		},
		{
			ID:           uuid.New(),
			ProjectID:    &projects[2].ID,
			District:     "Nagpur",
			CitizenName:  utils.Ptr("Mohan Rao"),
			FeedbackType: models.FeedbackTypeQuery,
			Priority:     models.FeedbackPriorityMedium,
			Description:  "When will the road work resume? No activity for a month.",
		},
	}
	for _, f := range feedback {
		if err := feedbackRepo.Create(ctx, f); err != nil {
			return fmt.Errorf("seed feedback: %w", err)
		}
	}

	utils.Logger.Infof(
		"Seeded %d profiles, %d projects, %d feedback entries",
		len(profiles), len(projects), len(feedback),
	)
	return nil
}

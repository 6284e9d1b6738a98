package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rohitpal119/district-state-watch/internal/dtos"
	"github.com/rohitpal119/district-state-watch/internal/models"
	"github.com/rohitpal119/district-state-watch/internal/utils"
)

func imageFixture() (*models.Profile, *models.Project, *fakeProjectRepo, *fakeProfileRepo, *fakeImageUpdateRepo) {
	contractor := testContractor()
	proj := project("Mumbai", models.ProjectStatusOngoing, 1000, 0)
	proj.ContractorID = &contractor.ID
	return contractor, proj, newFakeProjectRepo(proj), newFakeProfileRepo(contractor), newFakeImageUpdateRepo()
}

func TestSubmitImageAssignedContractorOnly(t *testing.T) {
	contractor, proj, projects, profiles, images := imageFixture()
	stranger := testContractor()
	profiles.Create(context.Background(), stranger)
	svc := NewImageUpdateService(images, projects, profiles, NewOpenAIService(""))
	ctx := context.Background()

	req := dtos.SubmitImageRequest{
		ProjectID: proj.ID,
		ImageType: string(models.ImageTypeProgress),
		ImageURL:  "https://cdn.example.in/site-42.jpg",
	}

	// Disabled vision check auto-accepts.
	iu, err := svc.SubmitImage(ctx, contractor.ID.String(), req)
	require.NoError(t, err)
	require.Equal(t, contractor.ID, iu.ContractorID)
	require.Equal(t, models.ImageTypeProgress, iu.ImageType)

	_, err = svc.SubmitImage(ctx, stranger.ID.String(), req)
	require.ErrorIs(t, err, utils.ErrNotAssignedContractor)
}

func TestListImagesScoping(t *testing.T) {
	contractor, proj, projects, profiles, images := imageFixture()
	collector := testCollector("Mumbai")
	otherCollector := testCollector("Pune")
	profiles.Create(context.Background(), collector)
	profiles.Create(context.Background(), otherCollector)
	svc := NewImageUpdateService(images, projects, profiles, NewOpenAIService(""))
	ctx := context.Background()

	_, err := svc.SubmitImage(ctx, contractor.ID.String(), dtos.SubmitImageRequest{
		ProjectID: proj.ID,
		ImageType: string(models.ImageTypeAR),
		ImageURL:  "https://cdn.example.in/ar-1.glb",
	})
	require.NoError(t, err)

	// Contractor sees their own log without naming a project.
	own, err := svc.ListImages(ctx, contractor.ID.String(), nil)
	require.NoError(t, err)
	require.Len(t, own, 1)

	// Reviewers need a project and must be in scope.
	_, err = svc.ListImages(ctx, collector.ID.String(), nil)
	require.ErrorIs(t, err, utils.ErrInvalidPayload)

	got, err := svc.ListImages(ctx, collector.ID.String(), &proj.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)

	_, err = svc.ListImages(ctx, otherCollector.ID.String(), &proj.ID)
	require.ErrorIs(t, err, utils.ErrNotAuthorized)
}

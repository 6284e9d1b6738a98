package controllers

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/rohitpal119/district-state-watch/internal/dtos"
	"github.com/rohitpal119/district-state-watch/internal/services"
	"github.com/rohitpal119/district-state-watch/internal/utils"
)

type ProjectsController struct {
	projectService *services.ProjectService
	validate       *validator.Validate
}

func NewProjectsController(ps *services.ProjectService) *ProjectsController {
	return &ProjectsController{
		projectService: ps,
		validate:       validator.New(),
	}
}

// ----------------------------------------------------------------
// GET /api/v1/projects
// ----------------------------------------------------------------
func (c *ProjectsController) ListProjectsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		respondNoUserID(w)
		return
	}

	projects, err := c.projectService.ListProjects(r.Context(), userID)
	if err != nil {
		utils.Logger.WithError(err).Error("Failed to list projects")
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, projects)
}

// ----------------------------------------------------------------
// GET /api/v1/projects/available
// ----------------------------------------------------------------
func (c *ProjectsController) ListAvailableHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		respondNoUserID(w)
		return
	}

	projects, err := c.projectService.ListAvailable(r.Context(), userID)
	if err != nil {
		utils.Logger.WithError(err).Error("Failed to list available projects")
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, projects)
}

// ----------------------------------------------------------------
// POST /api/v1/projects
// ----------------------------------------------------------------
func (c *ProjectsController) CreateProjectHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		respondNoUserID(w)
		return
	}

	var req dtos.CreateProjectRequest
	if !decodeAndValidate(w, r, c.validate, &req) {
		return
	}

	proj, err := c.projectService.CreateProject(r.Context(), userID, req)
	if err != nil {
		utils.Logger.WithError(err).Error("Failed to create project")
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, proj)
}

// ----------------------------------------------------------------
// POST /api/v1/projects/claim
// ----------------------------------------------------------------
func (c *ProjectsController) ClaimProjectHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		respondNoUserID(w)
		return
	}

	var req dtos.ClaimProjectRequest
	if !decodeAndValidate(w, r, c.validate, &req) {
		return
	}

	proj, err := c.projectService.ClaimProject(r.Context(), userID, req)
	if err != nil {
		utils.Logger.WithError(err).Warn("Claim project failed")
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, proj)
}

// ----------------------------------------------------------------
// POST /api/v1/projects/progress
// ----------------------------------------------------------------
func (c *ProjectsController) ReportProgressHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		respondNoUserID(w)
		return
	}

	var req dtos.ProgressReportRequest
	if !decodeAndValidate(w, r, c.validate, &req) {
		return
	}

	proj, err := c.projectService.ReportProgress(r.Context(), userID, req)
	if err != nil {
		utils.Logger.WithError(err).Warn("Progress report failed")
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, proj)
}

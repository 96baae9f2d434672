package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cvmate/backend/auth"
	"github.com/cvmate/backend/models"
	"github.com/cvmate/backend/storage"
)

// JobHandler handles job board requests
type JobHandler struct {
	store  *storage.FirestoreClient
	logger *zap.Logger
}

// NewJobHandler creates a new job handler
func NewJobHandler(store *storage.FirestoreClient, logger *zap.Logger) *JobHandler {
	return &JobHandler{store: store, logger: logger}
}

// List returns one page of job postings
// @Summary List jobs
// @Description List job postings, newest first, with optional search and type filter
// @Tags Jobs
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Param search query string false "Substring match over title, company, location"
// @Param type query string false "Exact job type match"
// @Success 200 {object} models.Response "Job page"
// @Router /jobs [get]
func (h *JobHandler) List(c *gin.Context) {
	page, limit := pageParams(c)
	query := models.JobQuery{
		Page:   page,
		Limit:  limit,
		Search: c.Query("search"),
		Type:   c.Query("type"),
	}

	jobs, total, err := h.store.ListJobs(c.Request.Context(), query)
	if err != nil {
		h.logger.Error("failed to list jobs", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.Fail("Failed to list jobs"))
		return
	}

	c.JSON(http.StatusOK, models.Paginated(jobs, models.NewPagination(page, limit, total)))
}

// Get returns a single job posting
// @Summary Get job
// @Description Get one job posting; public
// @Tags Jobs
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} models.Response "Job"
// @Failure 404 {object} models.Response "Job not found"
// @Router /jobs/{id} [get]
func (h *JobHandler) Get(c *gin.Context) {
	job, ok := h.getJob(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, models.OK(job))
}

// Create creates a new job posting; admin only (enforced by middleware)
// @Summary Create job
// @Description Create a job posting
// @Tags Jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateJobRequest true "Job"
// @Success 201 {object} models.Response "Job created"
// @Failure 400 {object} models.Response "Missing required fields"
// @Failure 403 {object} models.Response "Admin access required"
// @Router /jobs [post]
func (h *JobHandler) Create(c *gin.Context) {
	var req models.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Fail("Title, company, location, type and description are required"))
		return
	}

	job := &models.Job{
		Title:        req.Title,
		Company:      req.Company,
		Location:     req.Location,
		Type:         req.Type,
		Salary:       req.Salary,
		Description:  req.Description,
		Requirements: req.Requirements,
		Logo:         req.Logo,
		PostedAt:     time.Now(),
	}

	if err := h.store.CreateJob(c.Request.Context(), job); err != nil {
		h.logger.Error("failed to create job", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.Fail("Failed to create job"))
		return
	}

	c.JSON(http.StatusCreated, models.OK(job))
}

// Update partially updates a job posting; admin only
// @Summary Update job
// @Description Merge field updates into a job posting
// @Tags Jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Param request body object true "Partial job fields"
// @Success 200 {object} models.Response "Updated job"
// @Failure 403 {object} models.Response "Admin access required"
// @Failure 404 {object} models.Response "Job not found"
// @Router /jobs/{id} [put]
func (h *JobHandler) Update(c *gin.Context) {
	job, ok := h.getJob(c)
	if !ok {
		return
	}

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, models.Fail("Invalid request body"))
		return
	}

	delete(updates, "applicants")
	delete(updates, "postedAt")

	if err := h.store.UpdateJob(c.Request.Context(), job.ID, updates); err != nil {
		h.logger.Error("failed to update job", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.Fail("Failed to update job"))
		return
	}

	updated, err := h.store.GetJob(c.Request.Context(), job.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.Fail("Failed to load updated job"))
		return
	}

	c.JSON(http.StatusOK, models.OK(updated))
}

// Delete removes a job posting; admin only
// @Summary Delete job
// @Description Delete a job posting
// @Tags Jobs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Success 200 {object} models.Response "Job removed"
// @Failure 403 {object} models.Response "Admin access required"
// @Failure 404 {object} models.Response "Job not found"
// @Router /jobs/{id} [delete]
func (h *JobHandler) Delete(c *gin.Context) {
	job, ok := h.getJob(c)
	if !ok {
		return
	}

	if err := h.store.DeleteJob(c.Request.Context(), job.ID); err != nil {
		h.logger.Error("failed to delete job", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.Fail("Failed to delete job"))
		return
	}

	c.JSON(http.StatusOK, models.OKMessage("Job removed"))
}

// Apply records the caller's application to a job
// @Summary Apply to job
// @Description Apply to a job; a second application is rejected
// @Tags Jobs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Success 200 {object} models.Response "Application successful"
// @Failure 400 {object} models.Response "Already applied"
// @Failure 404 {object} models.Response "Job not found"
// @Router /jobs/{id}/apply [post]
func (h *JobHandler) Apply(c *gin.Context) {
	job, ok := h.getJob(c)
	if !ok {
		return
	}

	callerID := auth.CallerID(c)
	if hasApplied(job.Applicants, callerID) {
		c.JSON(http.StatusBadRequest, models.Fail("Already applied"))
		return
	}

	applicants := append(job.Applicants, callerID)
	if err := h.store.UpdateJob(c.Request.Context(), job.ID, map[string]interface{}{
		"applicants": applicants,
	}); err != nil {
		h.logger.Error("failed to record application", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.Fail("Failed to record application"))
		return
	}

	if err := h.store.CreateNotification(c.Request.Context(), &models.Notification{
		RecipientID: callerID,
		Type:        models.NotifyJobAlert,
		Message:     "Your application for " + job.Title + " at " + job.Company + " was submitted",
		Link:        "/jobs/" + job.ID,
	}); err != nil {
		h.logger.Warn("failed to create notification", zap.Error(err))
	}

	c.JSON(http.StatusOK, models.OKMessage("Application successful"))
}

func hasApplied(applicants []string, userID string) bool {
	for _, applicant := range applicants {
		if applicant == userID {
			return true
		}
	}
	return false
}

func (h *JobHandler) getJob(c *gin.Context) (*models.Job, bool) {
	job, err := h.store.GetJob(c.Request.Context(), c.Param("id"))
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, models.Fail("Job not found"))
		return nil, false
	}
	if err != nil {
		h.logger.Error("failed to get job", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.Fail("Failed to get job"))
		return nil, false
	}
	return job, true
}

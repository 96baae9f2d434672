package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cvmate/backend/auth"
	"github.com/cvmate/backend/gemini"
	"github.com/cvmate/backend/models"
	"github.com/cvmate/backend/storage"
)

// ResumeHandler handles resume CRUD and AI assistance requests
type ResumeHandler struct {
	store  *storage.FirestoreClient
	ai     *gemini.Client
	logger *zap.Logger
}

// NewResumeHandler creates a new resume handler
func NewResumeHandler(store *storage.FirestoreClient, ai *gemini.Client, logger *zap.Logger) *ResumeHandler {
	return &ResumeHandler{store: store, ai: ai, logger: logger}
}

// List returns the caller's resumes
// @Summary List resumes
// @Description List the authenticated user's resumes, most recently updated first
// @Tags Resumes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Response "Resume list"
// @Failure 401 {object} models.Response "Unauthorized"
// @Router /resumes [get]
func (h *ResumeHandler) List(c *gin.Context) {
	resumes, err := h.store.ListResumesByOwner(c.Request.Context(), auth.CallerID(c))
	if err != nil {
		h.logger.Error("failed to list resumes", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.Fail("Failed to list resumes"))
		return
	}

	items := make([]models.ResumeListItem, 0, len(resumes))
	for i := range resumes {
		items = append(items, resumes[i].ListItem())
	}

	c.JSON(http.StatusOK, models.OK(items))
}

// Create creates a new resume owned by the caller
// @Summary Create resume
// @Description Create a new resume document
// @Tags Resumes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.Resume true "Resume"
// @Success 201 {object} models.Response "Resume created"
// @Failure 400 {object} models.Response "Invalid request body"
// @Router /resumes [post]
func (h *ResumeHandler) Create(c *gin.Context) {
	var resume models.Resume
	if err := c.ShouldBindJSON(&resume); err != nil {
		c.JSON(http.StatusBadRequest, models.Fail("Invalid request body"))
		return
	}

	resume.OwnerID = auth.CallerID(c)
	if resume.Title == "" {
		resume.Title = "Untitled Resume"
	}
	resume.ATSScore = 0

	if err := h.store.CreateResume(c.Request.Context(), &resume); err != nil {
		h.logger.Error("failed to create resume", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.Fail("Failed to create resume"))
		return
	}

	c.JSON(http.StatusCreated, models.OK(resume))
}

// Get returns one resume owned by the caller
// @Summary Get resume
// @Description Get a single resume; only the owner can read it
// @Tags Resumes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resume ID"
// @Success 200 {object} models.Response "Resume"
// @Failure 404 {object} models.Response "Resume not found"
// @Router /resumes/{id} [get]
func (h *ResumeHandler) Get(c *gin.Context) {
	resume, ok := h.ownedResume(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, models.OK(resume))
}

// Update partially updates a resume owned by the caller
// @Summary Update resume
// @Description Merge field updates into a resume
// @Tags Resumes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resume ID"
// @Param request body object true "Partial resume fields"
// @Success 200 {object} models.Response "Updated resume"
// @Failure 400 {object} models.Response "Invalid request body"
// @Failure 404 {object} models.Response "Resume not found"
// @Router /resumes/{id} [put]
func (h *ResumeHandler) Update(c *gin.Context) {
	resume, ok := h.ownedResume(c)
	if !ok {
		return
	}

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, models.Fail("Invalid request body"))
		return
	}

	// Ownership and bookkeeping fields are never client-writable
	delete(updates, "ownerId")
	delete(updates, "createdAt")
	delete(updates, "updatedAt")
	delete(updates, "atsScore")

	if err := h.store.UpdateResume(c.Request.Context(), resume.ID, updates); err != nil {
		h.logger.Error("failed to update resume", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.Fail("Failed to update resume"))
		return
	}

	updated, err := h.store.GetResume(c.Request.Context(), resume.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.Fail("Failed to load updated resume"))
		return
	}

	c.JSON(http.StatusOK, models.OK(updated))
}

// Delete removes a resume owned by the caller
// @Summary Delete resume
// @Description Delete a resume; only the owner can delete it
// @Tags Resumes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resume ID"
// @Success 200 {object} models.Response "Resume removed"
// @Failure 404 {object} models.Response "Resume not found"
// @Router /resumes/{id} [delete]
func (h *ResumeHandler) Delete(c *gin.Context) {
	resume, ok := h.ownedResume(c)
	if !ok {
		return
	}

	if err := h.store.DeleteResume(c.Request.Context(), resume.ID); err != nil {
		h.logger.Error("failed to delete resume", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.Fail("Failed to delete resume"))
		return
	}

	c.JSON(http.StatusOK, models.OKMessage("Resume removed"))
}

// Enhance rewrites resume text with AI assistance
// @Summary Enhance resume text
// @Description Rewrite a resume fragment; falls back to canned text when the AI service is unavailable
// @Tags Resumes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.EnhanceRequest true "Text to enhance"
// @Success 200 {object} models.Response "Enhanced text"
// @Failure 400 {object} models.Response "Text is required"
// @Router /resumes/enhance [post]
func (h *ResumeHandler) Enhance(c *gin.Context) {
	var req models.EnhanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Fail("Text is required"))
		return
	}

	enhanced, err := h.ai.EnhanceText(c.Request.Context(), req.Text, req.Type)
	if err != nil {
		// Availability over freshness: swallow the failure
		h.logger.Warn("text enhancement failed", zap.Error(err))
		enhanced = fmt.Sprintf("%s (AI enhancement is unavailable right now; original text preserved)", req.Text)
	}

	c.JSON(http.StatusOK, models.OK(enhanced))
}

// Analyze scores a resume for ATS compatibility and stores the score
// @Summary Analyze resume
// @Description Run an ATS analysis over the resume and persist the score
// @Tags Resumes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resume ID"
// @Success 200 {object} models.Response "Analysis result"
// @Failure 404 {object} models.Response "Resume not found"
// @Router /resumes/{id}/analyze [post]
func (h *ResumeHandler) Analyze(c *gin.Context) {
	resume, ok := h.ownedResume(c)
	if !ok {
		return
	}

	serialized, err := json.Marshal(resume)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.Fail("Failed to serialize resume"))
		return
	}

	analysis, err := h.ai.AnalyzeResume(c.Request.Context(), string(serialized))
	if err != nil {
		h.logger.Warn("resume analysis failed", zap.Error(err))
		analysis = &models.ResumeAnalysis{
			Score:        0,
			Strengths:    []string{},
			Improvements: []string{},
			Summary:      "Automatic analysis is unavailable right now, please try again later.",
		}
	} else {
		if err := h.store.UpdateResume(c.Request.Context(), resume.ID, map[string]interface{}{
			"atsScore": analysis.Score,
		}); err != nil {
			h.logger.Error("failed to persist ATS score", zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, models.OK(analysis))
}

// ownedResume loads the resume in :id and enforces ownership. Resumes
// are private, so a foreign id reads as not found.
func (h *ResumeHandler) ownedResume(c *gin.Context) (*models.Resume, bool) {
	resume, err := h.store.GetResume(c.Request.Context(), c.Param("id"))
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, models.Fail("Resume not found"))
		return nil, false
	}
	if err != nil {
		h.logger.Error("failed to get resume", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.Fail("Failed to get resume"))
		return nil, false
	}
	if resume.OwnerID != auth.CallerID(c) {
		c.JSON(http.StatusNotFound, models.Fail("Resume not found"))
		return nil, false
	}
	return resume, true
}

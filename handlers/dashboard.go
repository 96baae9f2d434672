package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cvmate/backend/auth"
	"github.com/cvmate/backend/models"
	"github.com/cvmate/backend/storage"
)

// DashboardHandler serves per-user aggregate counts
type DashboardHandler struct {
	store  *storage.FirestoreClient
	logger *zap.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(store *storage.FirestoreClient, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{store: store, logger: logger}
}

// Stats returns the caller's record counts
// @Summary Dashboard stats
// @Description Count the caller's resumes, posts, articles and interviews
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Response "Dashboard stats"
// @Router /dashboard/stats [get]
func (h *DashboardHandler) Stats(c *gin.Context) {
	ctx := c.Request.Context()
	callerID := auth.CallerID(c)

	resumes, err := h.store.CountResumesByOwner(ctx, callerID)
	if err != nil {
		h.logger.Error("failed to count resumes", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.Fail("Failed to load dashboard stats"))
		return
	}

	posts, err := h.store.CountPostsByOwner(ctx, callerID)
	if err != nil {
		h.logger.Error("failed to count posts", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.Fail("Failed to load dashboard stats"))
		return
	}

	articles, err := h.store.CountArticlesByAuthor(ctx, callerID)
	if err != nil {
		h.logger.Error("failed to count articles", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.Fail("Failed to load dashboard stats"))
		return
	}

	interviews, err := h.store.CountInterviewsByOwner(ctx, callerID)
	if err != nil {
		h.logger.Error("failed to count interviews", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.Fail("Failed to load dashboard stats"))
		return
	}

	c.JSON(http.StatusOK, models.OK(models.DashboardStats{
		ResumeCount:    resumes,
		PostCount:      posts,
		ArticleCount:   articles,
		InterviewCount: interviews,
	}))
}

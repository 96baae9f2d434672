package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cvmate/backend/auth"
	"github.com/cvmate/backend/interview"
	"github.com/cvmate/backend/models"
	"github.com/cvmate/backend/storage"
)

// InterviewHandler handles mock interview requests
type InterviewHandler struct {
	service *interview.Service
	logger  *zap.Logger
}

// NewInterviewHandler creates a new interview handler
func NewInterviewHandler(service *interview.Service, logger *zap.Logger) *InterviewHandler {
	return &InterviewHandler{service: service, logger: logger}
}

// Start begins a new mock interview session
// @Summary Start interview
// @Description Start a mock interview with the chosen persona
// @Tags Interviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.StartInterviewRequest true "Start interview request"
// @Success 201 {object} models.Response "Interview created"
// @Failure 400 {object} models.Response "Invalid persona"
// @Failure 401 {object} models.Response "Unauthorized"
// @Router /interviews [post]
func (h *InterviewHandler) Start(c *gin.Context) {
	var req models.StartInterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Fail("Persona is required"))
		return
	}

	result, err := h.service.Start(c.Request.Context(), auth.CallerID(c), req.Persona)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.OK(result))
}

// List returns the caller's interview sessions
// @Summary List interviews
// @Description List the authenticated user's interviews without chat history
// @Tags Interviews
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Response "Interview list"
// @Failure 401 {object} models.Response "Unauthorized"
// @Router /interviews [get]
func (h *InterviewHandler) List(c *gin.Context) {
	summaries, err := h.service.List(c.Request.Context(), auth.CallerID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.OK(summaries))
}

// Get returns one interview session with full chat history
// @Summary Get interview
// @Description Get a single interview owned by the caller
// @Tags Interviews
// @Produce json
// @Security BearerAuth
// @Param id path string true "Interview ID"
// @Success 200 {object} models.Response "Interview"
// @Failure 403 {object} models.Response "Not the owner"
// @Failure 404 {object} models.Response "Interview not found"
// @Router /interviews/{id} [get]
func (h *InterviewHandler) Get(c *gin.Context) {
	result, err := h.service.Get(c.Request.Context(), c.Param("id"), auth.CallerID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.OK(result))
}

// SendMessage submits one user turn and returns the updated session
// @Summary Send interview message
// @Description Append a user turn and get the interviewer's reply
// @Tags Interviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Interview ID"
// @Param request body models.InterviewMessageRequest true "Message"
// @Success 200 {object} models.Response "Updated interview"
// @Failure 400 {object} models.Response "Missing message or interview already ended"
// @Failure 403 {object} models.Response "Not the owner"
// @Failure 404 {object} models.Response "Interview not found"
// @Failure 503 {object} models.Response "Text generation unavailable"
// @Router /interviews/{id}/message [post]
func (h *InterviewHandler) SendMessage(c *gin.Context) {
	var req models.InterviewMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Fail("Message is required"))
		return
	}

	result, err := h.service.SendMessage(c.Request.Context(), c.Param("id"), auth.CallerID(c), req.Message)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.OK(result))
}

// End completes an interview and returns it with feedback
// @Summary End interview
// @Description Complete an interview and derive feedback; idempotent
// @Tags Interviews
// @Produce json
// @Security BearerAuth
// @Param id path string true "Interview ID"
// @Success 200 {object} models.Response "Completed interview"
// @Failure 403 {object} models.Response "Not the owner"
// @Failure 404 {object} models.Response "Interview not found"
// @Router /interviews/{id}/end [post]
func (h *InterviewHandler) End(c *gin.Context) {
	result, err := h.service.End(c.Request.Context(), c.Param("id"), auth.CallerID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.OK(result))
}

// respondError maps interview sentinels onto the HTTP error taxonomy.
func (h *InterviewHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, interview.ErrInvalidPersona):
		c.JSON(http.StatusBadRequest, models.Fail("Invalid persona"))
	case errors.Is(err, interview.ErrCompleted):
		c.JSON(http.StatusBadRequest, models.Fail("Interview already ended"))
	case errors.Is(err, interview.ErrForbidden):
		c.JSON(http.StatusForbidden, models.Fail("Not authorized for this interview"))
	case errors.Is(err, storage.ErrNotFound):
		c.JSON(http.StatusNotFound, models.Fail("Interview not found"))
	case errors.Is(err, interview.ErrGenerator):
		c.JSON(http.StatusServiceUnavailable, models.Fail("Interview service is temporarily unavailable, please retry"))
	default:
		h.logger.Error("interview request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.Fail("Internal server error"))
	}
}

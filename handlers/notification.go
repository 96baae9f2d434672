package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cvmate/backend/auth"
	"github.com/cvmate/backend/models"
	"github.com/cvmate/backend/storage"
)

// NotificationHandler handles notification requests
type NotificationHandler struct {
	store  *storage.FirestoreClient
	logger *zap.Logger
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(store *storage.FirestoreClient, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{store: store, logger: logger}
}

// List returns the caller's notifications, newest first
// @Summary List notifications
// @Description List the caller's notifications
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Response "Notification list"
// @Router /notifications [get]
func (h *NotificationHandler) List(c *gin.Context) {
	callerID := auth.CallerID(c)

	notifications, err := h.store.ListNotificationsByRecipient(c.Request.Context(), callerID)
	if err != nil {
		h.logger.Error("failed to list notifications", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.Fail("Failed to list notifications"))
		return
	}

	c.JSON(http.StatusOK, models.OK(notifications))
}

// MarkRead marks one of the caller's notifications as read
// @Summary Mark notification read
// @Description Mark a notification as read; only the recipient may do this
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Notification ID"
// @Success 200 {object} models.Response "Notification marked read"
// @Failure 403 {object} models.Response "Not the recipient"
// @Failure 404 {object} models.Response "Notification not found"
// @Router /notifications/{id}/read [put]
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	notification, err := h.store.GetNotification(c.Request.Context(), c.Param("id"))
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, models.Fail("Notification not found"))
		return
	}
	if err != nil {
		h.logger.Error("failed to get notification", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.Fail("Failed to get notification"))
		return
	}

	if notification.RecipientID != auth.CallerID(c) {
		c.JSON(http.StatusForbidden, models.Fail("Not authorized to update this notification"))
		return
	}

	if err := h.store.MarkNotificationRead(c.Request.Context(), notification.ID); err != nil {
		h.logger.Error("failed to mark notification read", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.Fail("Failed to update notification"))
		return
	}

	c.JSON(http.StatusOK, models.OKMessage("Notification marked read"))
}

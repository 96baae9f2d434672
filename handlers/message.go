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

// MessageHandler handles direct messaging requests
type MessageHandler struct {
	store  *storage.FirestoreClient
	logger *zap.Logger
}

// NewMessageHandler creates a new message handler
func NewMessageHandler(store *storage.FirestoreClient, logger *zap.Logger) *MessageHandler {
	return &MessageHandler{store: store, logger: logger}
}

// Conversations lists the users the caller has exchanged messages with
// @Summary List conversations
// @Description List conversation peers with their display fields
// @Tags Messages
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Response "Conversation list"
// @Router /messages/conversations [get]
func (h *MessageHandler) Conversations(c *gin.Context) {
	callerID := auth.CallerID(c)

	peerIDs, err := h.store.ListConversationPeers(c.Request.Context(), callerID)
	if err != nil {
		h.logger.Error("failed to list conversation peers", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.Fail("Failed to list conversations"))
		return
	}

	peers, err := h.store.GetUsersByIDs(c.Request.Context(), peerIDs)
	if err != nil {
		h.logger.Error("failed to load conversation users", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.Fail("Failed to list conversations"))
		return
	}

	conversations := make([]models.Conversation, 0, len(peers))
	for _, peer := range peers {
		conversations = append(conversations, models.Conversation{
			UserID: peer.ID,
			Name:   peer.Name,
			Avatar: peer.Avatar,
		})
	}

	c.JSON(http.StatusOK, models.OK(conversations))
}

// Thread returns the full message history with one peer
// @Summary Get thread
// @Description Get all messages between the caller and a peer, oldest first. Unread messages from the peer are marked read.
// @Tags Messages
// @Produce json
// @Security BearerAuth
// @Param userId path string true "Peer user ID"
// @Success 200 {object} models.Response "Message thread"
// @Router /messages/{userId} [get]
func (h *MessageHandler) Thread(c *gin.Context) {
	callerID := auth.CallerID(c)
	peerID := c.Param("userId")

	messages, err := h.store.ListThread(c.Request.Context(), callerID, peerID)
	if err != nil {
		h.logger.Error("failed to load thread", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.Fail("Failed to load messages"))
		return
	}

	// Reading a thread clears its unread flags.
	if err := h.store.MarkThreadRead(c.Request.Context(), callerID, peerID); err != nil {
		h.logger.Warn("failed to mark thread read", zap.Error(err))
	}

	c.JSON(http.StatusOK, models.OK(messages))
}

// Send delivers a direct message to another user
// @Summary Send message
// @Description Send a direct message; the receiver must exist
// @Tags Messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateMessageRequest true "Message"
// @Success 201 {object} models.Response "Message sent"
// @Failure 400 {object} models.Response "Missing receiver or content"
// @Failure 404 {object} models.Response "Receiver not found"
// @Router /messages [post]
func (h *MessageHandler) Send(c *gin.Context) {
	callerID := auth.CallerID(c)

	var req models.CreateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Fail("Receiver and content are required"))
		return
	}

	if req.ReceiverID == callerID {
		c.JSON(http.StatusBadRequest, models.Fail("Cannot message yourself"))
		return
	}

	if _, err := h.store.GetUserByEmail(c.Request.Context(), req.ReceiverID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.Fail("Receiver not found"))
			return
		}
		h.logger.Error("failed to look up receiver", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.Fail("Failed to send message"))
		return
	}

	message := &models.Message{
		SenderID:   callerID,
		ReceiverID: req.ReceiverID,
		Content:    req.Content,
	}

	if err := h.store.CreateMessage(c.Request.Context(), message); err != nil {
		h.logger.Error("failed to send message", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.Fail("Failed to send message"))
		return
	}

	c.JSON(http.StatusCreated, models.OK(message))
}

package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cvmate/backend/auth"
	"github.com/cvmate/backend/models"
	"github.com/cvmate/backend/storage"
)

// PostHandler handles community feed requests
type PostHandler struct {
	store  *storage.FirestoreClient
	logger *zap.Logger
}

// NewPostHandler creates a new post handler
func NewPostHandler(store *storage.FirestoreClient, logger *zap.Logger) *PostHandler {
	return &PostHandler{store: store, logger: logger}
}

// List returns one page of the feed
// @Summary List posts
// @Description List community posts, newest first
// @Tags Posts
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} models.Response "Post page"
// @Router /posts [get]
func (h *PostHandler) List(c *gin.Context) {
	page, limit := pageParams(c)

	posts, total, err := h.store.ListPosts(c.Request.Context(), page, limit)
	if err != nil {
		h.logger.Error("failed to list posts", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.Fail("Failed to list posts"))
		return
	}

	c.JSON(http.StatusOK, models.Paginated(posts, models.NewPagination(page, limit, total)))
}

// Create creates a new post
// @Summary Create post
// @Description Create a community post owned by the caller
// @Tags Posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreatePostRequest true "Post"
// @Success 201 {object} models.Response "Post created"
// @Failure 400 {object} models.Response "Content is required"
// @Router /posts [post]
func (h *PostHandler) Create(c *gin.Context) {
	var req models.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Fail("Content is required"))
		return
	}

	claims := auth.GetClaims(c)
	post := &models.Post{
		OwnerID:   claims.UserID,
		OwnerName: claims.Name,
		Content:   req.Content,
		Image:     req.Image,
	}

	if err := h.store.CreatePost(c.Request.Context(), post); err != nil {
		h.logger.Error("failed to create post", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.Fail("Failed to create post"))
		return
	}

	c.JSON(http.StatusCreated, models.OK(post))
}

// Delete removes a post; owner or admin only
// @Summary Delete post
// @Description Delete a post; allowed for the owner or an admin
// @Tags Posts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Success 200 {object} models.Response "Post removed"
// @Failure 403 {object} models.Response "Not the owner"
// @Failure 404 {object} models.Response "Post not found"
// @Router /posts/{id} [delete]
func (h *PostHandler) Delete(c *gin.Context) {
	post, ok := h.getPost(c)
	if !ok {
		return
	}

	claims := auth.GetClaims(c)
	if post.OwnerID != claims.UserID && claims.Role != models.RoleAdmin {
		c.JSON(http.StatusForbidden, models.Fail("Not authorized to delete this post"))
		return
	}

	if err := h.store.DeletePost(c.Request.Context(), post.ID); err != nil {
		h.logger.Error("failed to delete post", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.Fail("Failed to delete post"))
		return
	}

	c.JSON(http.StatusOK, models.OKMessage("Post removed"))
}

// Like toggles the caller's like on a post
// @Summary Toggle like
// @Description Like a post, or withdraw an existing like
// @Tags Posts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Success 200 {object} models.Response "Updated likes"
// @Failure 404 {object} models.Response "Post not found"
// @Router /posts/{id}/like [put]
func (h *PostHandler) Like(c *gin.Context) {
	post, ok := h.getPost(c)
	if !ok {
		return
	}

	claims := auth.GetClaims(c)
	likes, liked := toggleLike(post.Likes, claims.UserID)

	if err := h.store.UpdatePost(c.Request.Context(), post.ID, map[string]interface{}{
		"likes": likes,
	}); err != nil {
		h.logger.Error("failed to update likes", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.Fail("Failed to update likes"))
		return
	}

	if !liked && post.OwnerID != claims.UserID {
		h.notify(c, &models.Notification{
			RecipientID: post.OwnerID,
			SenderID:    claims.UserID,
			Type:        models.NotifyLike,
			Message:     fmt.Sprintf("%s liked your post", claims.Name),
			Link:        "/community",
		})
	}

	c.JSON(http.StatusOK, models.OK(likes))
}

// Comment appends a comment to a post
// @Summary Comment on post
// @Description Append a comment to a post
// @Tags Posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Param request body models.CommentRequest true "Comment"
// @Success 200 {object} models.Response "Updated comments"
// @Failure 400 {object} models.Response "Text is required"
// @Failure 404 {object} models.Response "Post not found"
// @Router /posts/{id}/comments [post]
func (h *PostHandler) Comment(c *gin.Context) {
	var req models.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Fail("Text is required"))
		return
	}

	post, ok := h.getPost(c)
	if !ok {
		return
	}

	claims := auth.GetClaims(c)
	comment := models.Comment{
		ID:        uuid.NewString(),
		OwnerID:   claims.UserID,
		OwnerName: claims.Name,
		Text:      req.Text,
		CreatedAt: time.Now(),
	}

	comments := append(post.Comments, comment)
	if err := h.store.UpdatePost(c.Request.Context(), post.ID, map[string]interface{}{
		"comments": comments,
	}); err != nil {
		h.logger.Error("failed to add comment", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.Fail("Failed to add comment"))
		return
	}

	if post.OwnerID != claims.UserID {
		h.notify(c, &models.Notification{
			RecipientID: post.OwnerID,
			SenderID:    claims.UserID,
			Type:        models.NotifyComment,
			Message:     fmt.Sprintf("%s commented on your post", claims.Name),
			Link:        "/community",
		})
	}

	c.JSON(http.StatusOK, models.OK(comments))
}

func (h *PostHandler) getPost(c *gin.Context) (*models.Post, bool) {
	post, err := h.store.GetPost(c.Request.Context(), c.Param("id"))
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, models.Fail("Post not found"))
		return nil, false
	}
	if err != nil {
		h.logger.Error("failed to get post", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.Fail("Failed to get post"))
		return nil, false
	}
	return post, true
}

// toggleLike removes the user from the like set when present, appends
// when absent. The second result reports whether the user had already
// liked the post.
func toggleLike(current []string, userID string) ([]string, bool) {
	liked := false
	likes := current[:0:0]
	for _, id := range current {
		if id == userID {
			liked = true
			continue
		}
		likes = append(likes, id)
	}
	if !liked {
		likes = append(likes, userID)
	}
	return likes, liked
}

// notify writes a best-effort notification; failures are logged only.
func (h *PostHandler) notify(c *gin.Context, notification *models.Notification) {
	if err := h.store.CreateNotification(c.Request.Context(), notification); err != nil {
		h.logger.Warn("failed to create notification", zap.Error(err))
	}
}

// pageParams parses page/limit query params with defaults.
func pageParams(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 10
	}
	return page, limit
}

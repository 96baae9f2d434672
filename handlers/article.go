package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cvmate/backend/auth"
	"github.com/cvmate/backend/gemini"
	"github.com/cvmate/backend/models"
	"github.com/cvmate/backend/storage"
	"github.com/cvmate/backend/utils"
)

// summaryFallbackLen caps the excerpt used when the AI summary is unavailable.
const summaryFallbackLen = 150

// ArticleHandler handles blog article requests
type ArticleHandler struct {
	store  *storage.FirestoreClient
	ai     *gemini.Client
	logger *zap.Logger
}

// NewArticleHandler creates a new article handler
func NewArticleHandler(store *storage.FirestoreClient, ai *gemini.Client, logger *zap.Logger) *ArticleHandler {
	return &ArticleHandler{store: store, ai: ai, logger: logger}
}

// List returns one page of articles
// @Summary List articles
// @Description List blog articles, newest first, with optional category and search filters
// @Tags Articles
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Param category query string false "Exact category match"
// @Param search query string false "Substring match over title and content"
// @Success 200 {object} models.Response "Article page"
// @Router /articles [get]
func (h *ArticleHandler) List(c *gin.Context) {
	page, limit := pageParams(c)
	query := models.ArticleQuery{
		Page:     page,
		Limit:    limit,
		Search:   c.Query("search"),
		Category: c.Query("category"),
	}

	articles, total, err := h.store.ListArticles(c.Request.Context(), query)
	if err != nil {
		h.logger.Error("failed to list articles", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.Fail("Failed to list articles"))
		return
	}

	c.JSON(http.StatusOK, models.Paginated(articles, models.NewPagination(page, limit, total)))
}

// Get returns a single article and counts the view
// @Summary Get article
// @Description Get one article; each read increments the view counter
// @Tags Articles
// @Produce json
// @Param id path string true "Article ID"
// @Success 200 {object} models.Response "Article"
// @Failure 404 {object} models.Response "Article not found"
// @Router /articles/{id} [get]
func (h *ArticleHandler) Get(c *gin.Context) {
	article, ok := h.getArticle(c)
	if !ok {
		return
	}

	if err := h.store.IncrementArticleViews(c.Request.Context(), article.ID); err != nil {
		h.logger.Warn("failed to increment article views", zap.Error(err))
	} else {
		article.Views++
	}

	c.JSON(http.StatusOK, models.OK(article))
}

// Create creates a new article with an AI-generated summary
// @Summary Create article
// @Description Create a blog article; a short summary is generated from the content
// @Tags Articles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateArticleRequest true "Article"
// @Success 201 {object} models.Response "Article created"
// @Failure 400 {object} models.Response "Missing title or content"
// @Router /articles [post]
func (h *ArticleHandler) Create(c *gin.Context) {
	claims := auth.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, models.Fail("Unauthorized"))
		return
	}

	var req models.CreateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Fail("Title and content are required"))
		return
	}

	category := req.Category
	if category == "" {
		category = models.CategoryTipsCV
	}

	article := &models.Article{
		AuthorID:   claims.UserID,
		AuthorName: claims.Name,
		Title:      req.Title,
		Slug:       utils.Slug(req.Title),
		Content:    req.Content,
		Category:   category,
		Summary:    h.summarize(c, req.Content),
		Image:      req.Image,
	}

	if err := h.store.CreateArticle(c.Request.Context(), article); err != nil {
		h.logger.Error("failed to create article", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.Fail("Failed to create article"))
		return
	}

	c.JSON(http.StatusCreated, models.OK(article))
}

// Update partially updates an article; author or admin only
// @Summary Update article
// @Description Update article fields; a new title refreshes the slug, new content refreshes the summary
// @Tags Articles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Article ID"
// @Param request body models.UpdateArticleRequest true "Partial article fields"
// @Success 200 {object} models.Response "Updated article"
// @Failure 403 {object} models.Response "Not the author"
// @Failure 404 {object} models.Response "Article not found"
// @Router /articles/{id} [put]
func (h *ArticleHandler) Update(c *gin.Context) {
	claims := auth.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, models.Fail("Unauthorized"))
		return
	}

	article, ok := h.getArticle(c)
	if !ok {
		return
	}

	if article.AuthorID != claims.UserID && claims.Role != models.RoleAdmin {
		c.JSON(http.StatusForbidden, models.Fail("You can only edit your own articles"))
		return
	}

	var req models.UpdateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Fail("Invalid request body"))
		return
	}

	updates := map[string]interface{}{}
	if req.Title != "" {
		updates["title"] = req.Title
		updates["slug"] = utils.Slug(req.Title)
	}
	if req.Content != "" {
		updates["content"] = req.Content
		updates["summary"] = h.summarize(c, req.Content)
	}
	if req.Category != "" {
		updates["category"] = req.Category
	}
	if req.Image != "" {
		updates["image"] = req.Image
	}

	if len(updates) > 0 {
		if err := h.store.UpdateArticle(c.Request.Context(), article.ID, updates); err != nil {
			h.logger.Error("failed to update article", zap.Error(err))
			c.JSON(http.StatusInternalServerError, models.Fail("Failed to update article"))
			return
		}
	}

	updated, err := h.store.GetArticle(c.Request.Context(), article.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.Fail("Failed to load updated article"))
		return
	}

	c.JSON(http.StatusOK, models.OK(updated))
}

// Delete removes an article; author or admin only
// @Summary Delete article
// @Description Delete a blog article
// @Tags Articles
// @Produce json
// @Security BearerAuth
// @Param id path string true "Article ID"
// @Success 200 {object} models.Response "Article removed"
// @Failure 403 {object} models.Response "Not the author"
// @Failure 404 {object} models.Response "Article not found"
// @Router /articles/{id} [delete]
func (h *ArticleHandler) Delete(c *gin.Context) {
	claims := auth.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, models.Fail("Unauthorized"))
		return
	}

	article, ok := h.getArticle(c)
	if !ok {
		return
	}

	if article.AuthorID != claims.UserID && claims.Role != models.RoleAdmin {
		c.JSON(http.StatusForbidden, models.Fail("You can only delete your own articles"))
		return
	}

	if err := h.store.DeleteArticle(c.Request.Context(), article.ID); err != nil {
		h.logger.Error("failed to delete article", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.Fail("Failed to delete article"))
		return
	}

	c.JSON(http.StatusOK, models.OKMessage("Article removed"))
}

func (h *ArticleHandler) getArticle(c *gin.Context) (*models.Article, bool) {
	article, err := h.store.GetArticle(c.Request.Context(), c.Param("id"))
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, models.Fail("Article not found"))
		return nil, false
	}
	if err != nil {
		h.logger.Error("failed to get article", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.Fail("Failed to get article"))
		return nil, false
	}
	return article, true
}

// summarize asks the model for a short summary and falls back to a
// truncated excerpt when the model is unavailable.
func (h *ArticleHandler) summarize(c *gin.Context, content string) string {
	summary, err := h.ai.SummarizeArticle(c.Request.Context(), content)
	if err == nil && summary != "" {
		return summary
	}
	if err != nil {
		h.logger.Warn("article summary generation failed", zap.Error(err))
	}
	if len(content) > summaryFallbackLen {
		return content[:summaryFallbackLen] + "..."
	}
	return content
}

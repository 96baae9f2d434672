package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cvmate/backend/auth"
	"github.com/cvmate/backend/models"
	"github.com/cvmate/backend/storage"
)

// maxUploadBytes caps image uploads at 5 MiB.
const maxUploadBytes = 5 << 20

// UploadHandler handles image uploads to Cloud Storage
type UploadHandler struct {
	storage *storage.CloudStorageClient
	logger  *zap.Logger
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(storage *storage.CloudStorageClient, logger *zap.Logger) *UploadHandler {
	return &UploadHandler{storage: storage, logger: logger}
}

// Image uploads an image and returns its public URL
// @Summary Upload image
// @Description Upload an image (avatar, post image, article cover) up to 5 MiB
// @Tags Upload
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param image formData file true "Image file"
// @Success 200 {object} models.Response "Public image URL"
// @Failure 400 {object} models.Response "Missing or invalid file"
// @Router /uploads/image [post]
func (h *UploadHandler) Image(c *gin.Context) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.Fail("Image file is required"))
		return
	}
	defer file.Close()

	if header.Size > maxUploadBytes {
		c.JSON(http.StatusBadRequest, models.Fail("Image must be 5MB or smaller"))
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType != "" && !strings.HasPrefix(contentType, "image/") {
		c.JSON(http.StatusBadRequest, models.Fail("Only image uploads are allowed"))
		return
	}

	url, err := h.storage.UploadImage(c.Request.Context(), auth.CallerID(c), file, header)
	if err != nil {
		h.logger.Error("failed to upload image", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.Fail("Failed to upload image"))
		return
	}

	c.JSON(http.StatusOK, models.OK(gin.H{"url": url}))
}

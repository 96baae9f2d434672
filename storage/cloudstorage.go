package storage

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"

	"github.com/cvmate/backend/config"
)

// CloudStorageClient wraps Google Cloud Storage operations for image
// uploads (avatars, post images, article covers).
type CloudStorageClient struct {
	client     *storage.Client
	bucketName string
}

// NewCloudStorageClient creates a new Cloud Storage client
func NewCloudStorageClient(ctx context.Context, cfg *config.Config) (*CloudStorageClient, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create Cloud Storage client: %w", err)
	}

	return &CloudStorageClient{
		client:     client,
		bucketName: cfg.UploadBucketName,
	}, nil
}

// Close closes the Cloud Storage client
func (c *CloudStorageClient) Close() error {
	return c.client.Close()
}

// UploadImage uploads an image file and returns its public URL. Objects
// are grouped per user; the timestamp keeps names unique within a user.
func (c *CloudStorageClient) UploadImage(ctx context.Context, userID string, file multipart.File, header *multipart.FileHeader) (string, error) {
	ext := filepath.Ext(header.Filename)
	timestamp := time.Now().UnixNano()

	sanitized := strings.ReplaceAll(userID, "@", "_at_")
	sanitized = strings.ReplaceAll(sanitized, ".", "_")

	objectName := fmt.Sprintf("images/%s/%d%s", sanitized, timestamp, ext)

	obj := c.client.Bucket(c.bucketName).Object(objectName)

	wc := obj.NewWriter(ctx)
	wc.ContentType = header.Header.Get("Content-Type")
	if wc.ContentType == "" {
		wc.ContentType = imageContentType(ext)
	}

	if _, err := io.Copy(wc, file); err != nil {
		wc.Close()
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	if err := wc.Close(); err != nil {
		return "", fmt.Errorf("failed to close writer: %w", err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", c.bucketName, objectName), nil
}

// DeleteImage deletes a previously uploaded image by its public URL
func (c *CloudStorageClient) DeleteImage(ctx context.Context, imageURL string) error {
	prefix := fmt.Sprintf("https://storage.googleapis.com/%s/", c.bucketName)
	if !strings.HasPrefix(imageURL, prefix) {
		return fmt.Errorf("invalid image URL format")
	}

	objectName := strings.TrimPrefix(imageURL, prefix)

	if err := c.client.Bucket(c.bucketName).Object(objectName).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}

	return nil
}

func imageContentType(ext string) string {
	switch strings.ToLower(ext) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}

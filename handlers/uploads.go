package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/folio/folio/server/internal/storage"
	"github.com/folio/folio/server/pkg/logger"
)

// RegisterUploadRoutes registers the admin image upload endpoint. store may be
// nil when no object store is configured; uploads then answer 503 so the admin
// UI can fall back to pasting external image URLs.
func RegisterUploadRoutes(rg *gin.RouterGroup, store *storage.MinIOStorage, guard gin.HandlerFunc) {
	rg.POST("/uploads", guard, func(c *gin.Context) {
		if store == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "uploads not configured"})
			return
		}
		fh, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file field is required"})
			return
		}
		f, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read upload"})
			return
		}
		defer f.Close()

		contentType := fh.Header.Get("Content-Type")
		key, err := store.UploadImage(c.Request.Context(), fh.Filename, f, fh.Size, contentType)
		if err != nil {
			logger.Errorf("upload image: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed"})
			return
		}
		url, err := store.GetPresignedURL(c.Request.Context(), key, 7*24*time.Hour)
		if err != nil {
			logger.Errorf("presign upload %s: %v", key, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"key": key, "url": url})
	})
}

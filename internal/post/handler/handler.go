package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/folio/folio/server/internal/post"
	"github.com/folio/folio/server/internal/post/service"
	"github.com/folio/folio/server/pkg/logger"
	"github.com/folio/folio/server/pkg/metrics"
)

// postRequest is the validated write body. Title and content are the required
// fields; everything else is optional.
type postRequest struct {
	Title    string   `json:"title" binding:"required"`
	Content  string   `json:"content" binding:"required"`
	Image    string   `json:"image"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
}

func (r postRequest) fields() post.Fields {
	return post.Fields{Title: r.Title, Content: r.Content, Image: r.Image, Category: r.Category, Tags: r.Tags}
}

// RegisterPostRoutes registers the post CRUD under /api/posts. Reads are
// public; guard wraps the three mutating routes.
func RegisterPostRoutes(rg *gin.RouterGroup, svc service.Service, guard gin.HandlerFunc) {
	p := rg.Group("/posts")

	p.GET("", func(c *gin.Context) {
		list, err := svc.List(c.Request.Context())
		if err != nil {
			logger.Errorf("list posts: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch posts"})
			return
		}
		c.JSON(http.StatusOK, list)
	})

	p.GET("/:id", func(c *gin.Context) {
		doc, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
				return
			}
			logger.Errorf("get post: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch post"})
			return
		}
		c.JSON(http.StatusOK, doc)
	})

	p.POST("", guard, func(c *gin.Context) {
		var req postRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		doc, err := svc.Create(c.Request.Context(), req.fields())
		if err != nil {
			logger.Errorf("create post: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create post"})
			return
		}
		metrics.ContentWrites.WithLabelValues("posts", "create").Inc()
		c.JSON(http.StatusCreated, doc)
	})

	p.PUT("/:id", guard, func(c *gin.Context) {
		var req postRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		doc, err := svc.Update(c.Request.Context(), c.Param("id"), req.fields())
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
				return
			}
			logger.Errorf("update post: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update post"})
			return
		}
		metrics.ContentWrites.WithLabelValues("posts", "update").Inc()
		c.JSON(http.StatusOK, doc)
	})

	p.DELETE("/:id", guard, func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			if errors.Is(err, service.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
				return
			}
			logger.Errorf("delete post: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete post"})
			return
		}
		metrics.ContentWrites.WithLabelValues("posts", "delete").Inc()
		c.JSON(http.StatusOK, gin.H{"message": "post deleted"})
	})
}

package project

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/folio/folio/server/pkg/logger"
	"github.com/folio/folio/server/pkg/metrics"
)

type projectRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Image       string   `json:"image"`
	Link        string   `json:"link"`
	Tags        []string `json:"tags"`
}

func (r projectRequest) model() *Project {
	return &Project{Title: r.Title, Description: r.Description, Image: r.Image, Link: r.Link, Tags: r.Tags}
}

// RegisterRoutes registers the project CRUD under /api/projects. Reads are
// public; guard wraps the mutating routes.
func RegisterRoutes(rg *gin.RouterGroup, repo Repository, guard gin.HandlerFunc) {
	p := rg.Group("/projects")

	p.GET("", func(c *gin.Context) {
		list, err := repo.List(c.Request.Context())
		if err != nil {
			logger.Errorf("list projects: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch projects"})
			return
		}
		c.JSON(http.StatusOK, list)
	})

	p.GET("/:id", func(c *gin.Context) {
		doc, err := repo.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
				return
			}
			logger.Errorf("get project: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch project"})
			return
		}
		c.JSON(http.StatusOK, doc)
	})

	p.POST("", guard, func(c *gin.Context) {
		var req projectRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		doc, err := repo.Create(c.Request.Context(), req.model())
		if err != nil {
			logger.Errorf("create project: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create project"})
			return
		}
		metrics.ContentWrites.WithLabelValues("projects", "create").Inc()
		c.JSON(http.StatusCreated, doc)
	})

	p.PUT("/:id", guard, func(c *gin.Context) {
		var req projectRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		doc, err := repo.Update(c.Request.Context(), c.Param("id"), req.model())
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
				return
			}
			logger.Errorf("update project: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update project"})
			return
		}
		metrics.ContentWrites.WithLabelValues("projects", "update").Inc()
		c.JSON(http.StatusOK, doc)
	})

	p.DELETE("/:id", guard, func(c *gin.Context) {
		if err := repo.Delete(c.Request.Context(), c.Param("id")); err != nil {
			if errors.Is(err, ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
				return
			}
			logger.Errorf("delete project: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete project"})
			return
		}
		metrics.ContentWrites.WithLabelValues("projects", "delete").Inc()
		c.JSON(http.StatusOK, gin.H{"message": "project deleted"})
	})
}

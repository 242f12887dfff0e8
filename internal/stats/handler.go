package stats

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/folio/folio/server/pkg/logger"
)

// RegisterRoutes registers the tracking endpoints under /api/stats. Recording
// is public (the site fires these from public pages); the aggregate snapshot
// is admin-only.
func RegisterRoutes(rg *gin.RouterGroup, rec Recorder, guard gin.HandlerFunc) {
	s := rg.Group("/stats")

	s.POST("/visit", func(c *gin.Context) {
		if err := rec.RecordVisit(c.Request.Context()); err != nil {
			logger.Errorf("record visit: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record visit"})
			return
		}
		c.Status(http.StatusNoContent)
	})

	s.POST("/view", func(c *gin.Context) {
		var req struct {
			Platform string `json:"platform"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := rec.RecordProfileView(c.Request.Context(), req.Platform); err != nil {
			logger.Errorf("record profile view: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record view"})
			return
		}
		c.Status(http.StatusNoContent)
	})

	s.GET("", guard, func(c *gin.Context) {
		snap, err := rec.Snapshot(c.Request.Context())
		if err != nil {
			logger.Errorf("stats snapshot: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load stats"})
			return
		}
		c.JSON(http.StatusOK, snap)
	})
}

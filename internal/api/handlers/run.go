package handlers

import (
	"net/http"
	"strconv"

	"ordersync/internal/database"
	"ordersync/internal/logger"

	"github.com/gin-gonic/gin"
)

type RunHandler struct {
	db     *database.Database
	logger *logger.Logger
}

func NewRunHandler(db *database.Database, logger *logger.Logger) *RunHandler {
	return &RunHandler{
		db:     db,
		logger: logger,
	}
}

// List returns the most recent sync runs, newest first.
func (h *RunHandler) List(c *gin.Context) {
	limit := 50
	if value := c.Query("limit"); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit parameter"})
			return
		}
		limit = parsed
	}

	runs, err := h.db.RecentSyncRuns(limit)
	if err != nil {
		h.logger.Error("Failed to list sync runs: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list sync runs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"runs":  runs,
		"count": len(runs),
	})
}

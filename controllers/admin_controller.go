package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bookstore/services"
)

type AdminController struct {
	stats *services.StatsService
	log   *zap.SugaredLogger
}

func NewAdminController(stats *services.StatsService, log *zap.SugaredLogger) *AdminController {
	return &AdminController{stats: stats, log: log}
}

// GetStats reports order totals, monthly sales and catalog counts.
func (ac *AdminController) GetStats(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	stats, err := ac.stats.Admin(ctx)
	if err != nil {
		writeError(c, ac.log, err, "Failed to fetch admin stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Health answers 200 while ping succeeds and 503 otherwise.
func Health(ping func(ctx context.Context) error, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		if err := ping(ctx); err != nil {
			log.Warnw("health check failed", "error", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

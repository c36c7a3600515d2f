package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bookstore/apperror"
)

const requestTimeout = 5 * time.Second

func requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), requestTimeout)
}

// writeError maps err onto its status code and the {success, message} body.
// Internal causes are logged but never sent to the client.
func writeError(c *gin.Context, log *zap.SugaredLogger, err error, fallback string) {
	appErr := apperror.From(err, fallback)
	status := appErr.StatusCode()
	if status >= http.StatusInternalServerError {
		log.Errorw(appErr.Message, "path", c.Request.URL.Path, "error", appErr.Err)
	}
	_ = c.Error(err)
	c.JSON(status, gin.H{"success": false, "message": appErr.Message})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": message})
}

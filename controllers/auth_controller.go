package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bookstore/middleware"
	"bookstore/services"
)

type AuthController struct {
	auth *services.AuthService
	log  *zap.SugaredLogger
}

func NewAuthController(auth *services.AuthService, log *zap.SugaredLogger) *AuthController {
	return &AuthController{auth: auth, log: log}
}

// AdminLogin exchanges {username, password} for a one hour bearer token.
func (ac *AuthController) AdminLogin(c *gin.Context) {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	res, err := ac.auth.Login(ctx, input.Username, input.Password)
	if err != nil {
		writeError(c, ac.log, err, "An error occurred while logging in admin")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Successful authentication",
		"token":   res.Token,
		"user":    res.User,
	})
}

func (ac *AuthController) Logout(c *gin.Context) {
	claims, ok := middleware.Claims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Access denied. No token provided."})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := ac.auth.Logout(ctx, claims); err != nil {
		writeError(c, ac.log, err, "Failed to revoke token")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out successfully"})
}

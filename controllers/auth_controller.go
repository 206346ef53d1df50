package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/QuaKeyz/reselling-store/pkg/apperrors"
	"github.com/QuaKeyz/reselling-store/services"
)

type AuthController struct {
	Credentials *services.CredentialService
	Logger      *zap.Logger
}

func NewAuthController(credentials *services.CredentialService, logger *zap.Logger) *AuthController {
	return &AuthController{Credentials: credentials, Logger: logger}
}

// Login verifies the admin password and returns a bearer token with a fixed
// expiry.
func (ac *AuthController) Login(c *gin.Context) {
	var req struct {
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	token, expiresAt, err := ac.Credentials.Login(req.Password)
	if err != nil {
		ac.Logger.Warn("Admin login failed", zap.String("ip", c.ClientIP()))
		apperrors.Respond(c, err)
		return
	}

	ac.Logger.Info("Admin login succeeded", zap.String("ip", c.ClientIP()))
	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"expires_at": expiresAt,
	})
}

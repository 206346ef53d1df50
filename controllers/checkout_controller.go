package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/QuaKeyz/reselling-store/models"
	"github.com/QuaKeyz/reselling-store/pkg/apperrors"
	"github.com/QuaKeyz/reselling-store/services"
)

type CheckoutController struct {
	Checkouts *services.CheckoutService
	Logger    *zap.Logger
}

func NewCheckoutController(checkouts *services.CheckoutService, logger *zap.Logger) *CheckoutController {
	return &CheckoutController{Checkouts: checkouts, Logger: logger}
}

// Checkout turns a cart into a pending order plus a hosted payment URL.
func (cc *CheckoutController) Checkout(c *gin.Context) {
	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	resp, err := cc.Checkouts.Checkout(c.Request.Context(), req.Items)
	if err != nil {
		var rejection *models.CartRejectionError
		if errors.As(err, &rejection) {
			cc.Logger.Info("Checkout rejected",
				zap.Int("rejected_lines", len(rejection.Items)),
			)
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":          "checkout rejected",
				"rejected_items": rejection.Items,
			})
			return
		}
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

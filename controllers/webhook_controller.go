package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v80"
	"go.uber.org/zap"

	"github.com/QuaKeyz/reselling-store/models"
	"github.com/QuaKeyz/reselling-store/services"
)

type WebhookController struct {
	Parser        services.WebhookParser
	Confirmations *services.ConfirmationService
	Logger        *zap.Logger
}

func NewWebhookController(parser services.WebhookParser, confirmations *services.ConfirmationService, logger *zap.Logger) *WebhookController {
	return &WebhookController{Parser: parser, Confirmations: confirmations, Logger: logger}
}

// PaymentCallback receives signed Stripe webhook events. Only a failed
// ledger write returns non-2xx; everything else is acknowledged so Stripe
// does not redeliver events we have already handled or will never handle.
func (wc *WebhookController) PaymentCallback(c *gin.Context) {
	event, err := wc.Parser.ParseWebhook(c.Request)
	if err != nil {
		wc.Logger.Warn("Webhook signature verification failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid webhook"})
		return
	}

	wc.Logger.Info("Processing webhook event",
		zap.String("event_type", string(event.Type)),
		zap.String("event_id", event.ID),
	)

	switch event.Type {
	case "checkout.session.completed":
		if !wc.handleCheckoutCompleted(c, event) {
			return
		}
	default:
		wc.Logger.Info("Unhandled webhook event type", zap.String("event_type", string(event.Type)))
	}

	c.JSON(http.StatusOK, gin.H{"status": "received"})
}

// handleCheckoutCompleted applies a completed session to its order. Returns
// false when it already wrote an error response.
func (wc *WebhookController) handleCheckoutCompleted(c *gin.Context, event stripe.Event) bool {
	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		wc.Logger.Error("Failed to unmarshal checkout session", zap.Error(err))
		// Malformed payload will not improve on redelivery; acknowledge.
		return true
	}

	orderID := sess.Metadata["order_id"]
	if orderID == "" {
		wc.Logger.Warn("Missing order_id metadata in checkout session",
			zap.String("session_id", sess.ID),
		)
		return true
	}

	details := models.PaymentDetails{SessionID: sess.ID}
	if cd := sess.CustomerDetails; cd != nil {
		details.CustomerName = cd.Name
		details.CustomerEmail = cd.Email
		if cd.Address != nil {
			details.ShippingLine1 = cd.Address.Line1
			details.ShippingCity = cd.Address.City
			details.ShippingPostal = cd.Address.PostalCode
			details.ShippingCountry = cd.Address.Country
		}
	}

	if _, err := wc.Confirmations.Confirm(c.Request.Context(), orderID, details); err != nil {
		wc.Logger.Error("Failed to apply payment confirmation",
			zap.String("order_id", orderID),
			zap.Error(err),
		)
		// Non-2xx makes Stripe redeliver; the confirmation is idempotent.
		c.JSON(http.StatusInternalServerError, gin.H{"error": "confirmation not persisted"})
		return false
	}
	return true
}

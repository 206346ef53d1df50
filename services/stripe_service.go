package services

import (
	"bytes"
	"io"
	"net/http"

	"github.com/stripe/stripe-go/v80"
	"github.com/stripe/stripe-go/v80/checkout/session"
	"github.com/stripe/stripe-go/v80/webhook"

	"github.com/QuaKeyz/reselling-store/models"
)

// PaymentGateway creates hosted checkout sessions for priced order items.
// The order id travels in the session metadata as the correlation id.
type PaymentGateway interface {
	CreateCheckoutSession(orderID string, items []models.OrderItem) (sessionID, sessionURL string, err error)
}

// WebhookParser verifies and decodes a signed processor callback.
type WebhookParser interface {
	ParseWebhook(r *http.Request) (stripe.Event, error)
}

type StripeService struct {
	SecretKey  string
	WebhookKey string
	Currency   string
	SuccessURL string
	CancelURL  string
}

func NewStripeService(secretKey, webhookKey, currency, successURL, cancelURL string) *StripeService {
	stripe.Key = secretKey
	return &StripeService{
		SecretKey:  secretKey,
		WebhookKey: webhookKey,
		Currency:   currency,
		SuccessURL: successURL,
		CancelURL:  cancelURL,
	}
}

// CreateCheckoutSession builds a Stripe Checkout session from snapshotted
// order items. Prices come from the snapshots, never from the client.
func (s *StripeService) CreateCheckoutSession(orderID string, items []models.OrderItem) (string, string, error) {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(items))
	for _, it := range items {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(s.Currency),
				UnitAmount: stripe.Int64(it.UnitPrice),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(it.Name),
				},
			},
			Quantity: stripe.Int64(int64(it.Quantity)),
		})
	}

	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems:  lineItems,
		SuccessURL: stripe.String(s.SuccessURL),
		CancelURL:  stripe.String(s.CancelURL),
	}
	params.AddMetadata("order_id", orderID)

	sess, err := session.New(params)
	if err != nil {
		return "", "", err
	}
	return sess.ID, sess.URL, nil
}

// ParseWebhook verifies the Stripe-Signature header against the raw payload
// and decodes the event.
func (s *StripeService) ParseWebhook(r *http.Request) (stripe.Event, error) {
	var event stripe.Event
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		return event, err
	}
	r.Body = io.NopCloser(bytes.NewBuffer(payload))
	sigHeader := r.Header.Get("Stripe-Signature")
	return webhook.ConstructEvent(payload, sigHeader, s.WebhookKey)
}

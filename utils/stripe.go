package utils

import (
	"fmt"

	"github.com/stripe/stripe-go/v76"
	checkoutsession "github.com/stripe/stripe-go/v76/checkout/session"

	"pagenest/config"
)

// InitStripe sets the API key once at startup.
func InitStripe() {
	stripe.Key = config.AppConfig.StripeSecretKey
}

// CheckoutParams describes one offer purchase initiated from a
// rendered page.
type CheckoutParams struct {
	ConnectedAccount string // owner's Stripe Connect account
	ProductName      string
	AmountCents      int64
	Currency         string
	SuccessURL       string
	CancelURL        string
}

// CreateCheckoutSession starts a Stripe Checkout session on the page
// owner's connected account and returns the hosted payment URL.
// Fulfillment and webhooks are handled by the billing service, not
// here.
func CreateCheckoutSession(p CheckoutParams) (string, error) {
	if p.ConnectedAccount == "" {
		return "", fmt.Errorf("page owner has no connected payment account")
	}
	if p.AmountCents <= 0 {
		return "", fmt.Errorf("invalid amount")
	}
	if p.Currency == "" {
		p.Currency = "usd"
	}

	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(p.SuccessURL),
		CancelURL:  stripe.String(p.CancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Quantity: stripe.Int64(1),
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(p.Currency),
					UnitAmount: stripe.Int64(p.AmountCents),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(p.ProductName),
					},
				},
			},
		},
	}
	params.SetStripeAccount(p.ConnectedAccount)

	sess, err := checkoutsession.New(params)
	if err != nil {
		return "", fmt.Errorf("create checkout session: %w", err)
	}
	return sess.URL, nil
}

package payment

import (
	"math"
	"strings"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
)

// IntentAPI is the slice of the Stripe PaymentIntents API the service uses.
type IntentAPI interface {
	New(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
	Get(id string, params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
}

// StripeIntents calls Stripe with the global key set at startup.
type StripeIntents struct{}

func (StripeIntents) New(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
	return paymentintent.New(params)
}

func (StripeIntents) Get(id string, params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
	return paymentintent.Get(id, params)
}

var zeroDecimal = map[string]bool{
	"bif": true, "clp": true, "djf": true, "gnf": true, "jpy": true, "kmf": true,
	"krw": true, "mga": true, "pyg": true, "rwf": true, "ugx": true, "vnd": true,
	"vuv": true, "xaf": true, "xof": true, "xpf": true,
}

// MinorUnits converts an amount to the smallest unit Stripe expects for currency.
func MinorUnits(amount float64, currency string) int64 {
	if zeroDecimal[strings.ToLower(currency)] {
		return int64(math.Round(amount))
	}
	return int64(math.Round(amount * 100))
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeSucceeded = "succeeded"
	OutcomeDeclined  = "declined"
	OutcomeInFlight  = "in_flight"
	OutcomeEmptyCart = "empty_cart"
	OutcomeError     = "error"
)

var CheckoutAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "krishimart",
	Subsystem: "cart",
	Name:      "checkout_attempts_total",
	Help:      "Checkout submissions partitioned by outcome.",
}, []string{"outcome"})

var CartItemsAdded = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "krishimart",
	Subsystem: "cart",
	Name:      "items_added_total",
	Help:      "Listings added to carts.",
})

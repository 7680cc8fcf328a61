package errors

import (
	"errors"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	ErrEmptyAuth        = errors.New("missing authorization")
	ErrEmptySubject     = errors.New("missing subject")
	ErrTokenInvalid     = errors.New("invalid token")
	ErrEmptyCart        = errors.New("cart is empty")
	ErrCheckoutInFlight = errors.New("a payment attempt is already in flight")
	ErrPaymentDeclined  = errors.New("payment was declined")
	ErrListingNotFound  = errors.New("listing not found")
	ErrReceiptNotFound  = errors.New("no order details found")
)

func HandleError(err error, span trace.Span) {
	if err == nil {
		return
	}
	span.AddEvent(err.Error())
	span.SetStatus(codes.Error, err.Error())
	span.RecordError(err)
}

package request

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func validCardCheckout() Checkout {
	return Checkout{
		Email:      "farmer@example.com",
		Phone:      "+911234567890",
		Method:     PaymentMethodCard,
		CardNumber: "4242424242424242",
		CardExpiry: "12/27",
		CardCvv:    "123",
	}
}

func TestCheckoutValidation(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(c *Checkout)
		expectErr bool
	}{
		{
			name:      "given valid card details should pass",
			mutate:    func(c *Checkout) {},
			expectErr: false,
		},
		{
			name: "given valid upi details should pass",
			mutate: func(c *Checkout) {
				c.Method = PaymentMethodUpi
				c.CardNumber, c.CardExpiry, c.CardCvv = "", "", ""
				c.UpiId = "farmer@upi"
			},
			expectErr: false,
		},
		{
			name:      "given missing email should fail",
			mutate:    func(c *Checkout) { c.Email = "" },
			expectErr: true,
		},
		{
			name:      "given malformed email should fail",
			mutate:    func(c *Checkout) { c.Email = "not-an-email" },
			expectErr: true,
		},
		{
			name:      "given phone without country code should fail",
			mutate:    func(c *Checkout) { c.Phone = "1234567890" },
			expectErr: true,
		},
		{
			name:      "given unknown payment method should fail",
			mutate:    func(c *Checkout) { c.Method = "cash" },
			expectErr: true,
		},
		{
			name:      "given card method without card number should fail",
			mutate:    func(c *Checkout) { c.CardNumber = "" },
			expectErr: true,
		},
		{
			name:      "given card number failing luhn check should fail",
			mutate:    func(c *Checkout) { c.CardNumber = "4242424242424241" },
			expectErr: true,
		},
		{
			name:      "given malformed expiry should fail",
			mutate:    func(c *Checkout) { c.CardExpiry = "13-2027" },
			expectErr: true,
		},
		{
			name: "given upi method without upi id should fail",
			mutate: func(c *Checkout) {
				c.Method = PaymentMethodUpi
				c.CardNumber, c.CardExpiry, c.CardCvv = "", "", ""
				c.UpiId = ""
			},
			expectErr: true,
		},
		{
			name: "given upi id without handle should fail",
			mutate: func(c *Checkout) {
				c.Method = PaymentMethodUpi
				c.CardNumber, c.CardExpiry, c.CardCvv = "", "", ""
				c.UpiId = "farmer"
			},
			expectErr: true,
		},
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reqBody := validCardCheckout()
			tt.mutate(&reqBody)
			err := validate.Struct(reqBody)
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

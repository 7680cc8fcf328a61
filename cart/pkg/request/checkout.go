package request

const (
	PaymentMethodCard = "card"
	PaymentMethodUpi  = "upi"
)

// Checkout carries the payment details collected before submission. The
// schema is enforced before the flow leaves the collecting state: method
// picks which of the card and UPI field groups is required.
type Checkout struct {
	Email      string `validate:"required,email"                                        json:"email"`
	Phone      string `validate:"required,e164"                                         json:"phone"`
	Method     string `validate:"required,oneof=card upi"                               json:"method"`
	CardNumber string `validate:"required_if=Method card,omitempty,credit_card"         json:"card_number,omitempty"`
	CardExpiry string `validate:"required_if=Method card,omitempty,datetime=01/06"      json:"card_expiry,omitempty"`
	CardCvv    string `validate:"required_if=Method card,omitempty,numeric,min=3,max=4" json:"card_cvv,omitempty"`
	UpiId      string `validate:"required_if=Method upi,omitempty,contains=@"           json:"upi_id,omitempty"`
}

package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ReceiptItem struct {
	ID          uuid.UUID        `json:"id"`
	OrderID     uuid.UUID        `json:"order_id"`
	ItemType    string           `json:"item_type"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Location    string           `json:"location"`
	Image       string           `json:"image"`
	LeaseAmount *decimal.Decimal `json:"leaseAmount,omitempty"`
	DailyRental *decimal.Decimal `json:"daily_rental,omitempty"`
	Duration    string           `json:"duration,omitempty"`
	Timestamp   time.Time        `json:"timestamp"`
}

type PaymentDetails struct {
	Method        string          `json:"method"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Tax           decimal.Decimal `json:"tax"`
	Total         decimal.Decimal `json:"total"`
	TransactionId string          `json:"transaction_id"`
	Timestamp     time.Time       `json:"timestamp"`
}

type Receipt struct {
	ID             uuid.UUID      `json:"id"`
	UserId         uuid.UUID      `json:"user_id"`
	OrderDetails   []ReceiptItem  `json:"order_details"`
	PaymentDetails PaymentDetails `json:"payment_details"`
	CreatedAt      time.Time      `json:"created_at"`
}

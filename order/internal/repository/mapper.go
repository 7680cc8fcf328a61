package repository

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/krishimart/krishimart/order/pkg/response"
)

func (r Receipt) Response() (response.Receipt, error) {
	orderDetails := []response.ReceiptItem{}
	if err := json.Unmarshal(r.OrderDetails, &orderDetails); err != nil {
		return response.Receipt{}, fmt.Errorf("failed unmarshaling order details with error=%w", err)
	}
	return response.Receipt{
		ID:           r.ID,
		UserId:       r.UserID,
		OrderDetails: orderDetails,
		PaymentDetails: response.PaymentDetails{
			Method:        r.Method,
			Subtotal:      decimal.NewFromBigInt(r.Subtotal.Int, r.Subtotal.Exp),
			Tax:           decimal.NewFromBigInt(r.Tax.Int, r.Tax.Exp),
			Total:         decimal.NewFromBigInt(r.Total.Int, r.Total.Exp),
			TransactionId: r.TransactionID,
			Timestamp:     r.PaidAt.Time,
		},
		CreatedAt: r.CreatedAt.Time,
	}, nil
}

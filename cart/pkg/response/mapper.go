package response

import (
	orderRequest "github.com/krishimart/krishimart/order/pkg/request"
)

// CreateReceipt maps the checkout receipt to the order service payload.
func (r Receipt) CreateReceipt() orderRequest.CreateReceipt {
	orderDetails := make([]orderRequest.ReceiptItem, len(r.OrderDetails))
	for i, item := range r.OrderDetails {
		orderDetails[i] = orderRequest.ReceiptItem{
			ID:          item.ID,
			OrderID:     item.OrderID,
			ItemType:    string(item.ItemType),
			Title:       item.Title,
			Description: item.Description,
			Location:    item.Location,
			Image:       item.Image,
			LeaseAmount: item.LeaseAmount,
			DailyRental: item.DailyRental,
			Duration:    item.Duration,
			Timestamp:   item.Timestamp,
		}
	}
	return orderRequest.CreateReceipt{
		ID:           r.ID,
		UserId:       r.UserId,
		OrderDetails: orderDetails,
		PaymentDetails: orderRequest.PaymentDetails{
			Method:        r.PaymentDetails.Method,
			Subtotal:      r.PaymentDetails.Subtotal,
			Tax:           r.PaymentDetails.Tax,
			Total:         r.PaymentDetails.Total,
			TransactionId: r.PaymentDetails.TransactionId,
			Timestamp:     r.PaymentDetails.Timestamp,
		},
	}
}

package payment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/krishimart/krishimart/internal/config"
)

const (
	ProviderSimulated = "simulated"
	ProviderHTTP      = "http"
)

// ChargeRequest is a single payment attempt. IdempotencyKey is minted fresh
// per attempt, so a retry after a failure is a new charge rather than a
// replay of the declined one.
type ChargeRequest struct {
	IdempotencyKey uuid.UUID       `json:"idempotency_key"`
	Method         string          `json:"method"`
	Amount         decimal.Decimal `json:"amount"`
	Email          string          `json:"email"`
	Phone          string          `json:"phone"`
	CardNumber     string          `json:"card_number,omitempty"`
	CardExpiry     string          `json:"card_expiry,omitempty"`
	CardCvv        string          `json:"card_cvv,omitempty"`
	UpiId          string          `json:"upi_id,omitempty"`
}

type ChargeResult struct {
	Success       bool   `json:"success"`
	TransactionId string `json:"transaction_id"`
	Reason        string `json:"reason,omitempty"`
}

// Gateway charges a payment. A declined charge is a (ChargeResult, nil)
// with Success false; errors are reserved for attempts that never settled.
type Gateway interface {
	Charge(c context.Context, param ChargeRequest) (ChargeResult, error)
}

func NewGateway(cfg config.Payment) Gateway {
	if cfg.Provider == ProviderHTTP {
		return NewHTTPGateway(cfg.BaseURL)
	}
	return NewSimulatedGateway(time.Duration(cfg.DelayMs) * time.Millisecond)
}

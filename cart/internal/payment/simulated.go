package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/krishimart/krishimart/cart/internal/otel"
	commonErrors "github.com/krishimart/krishimart/internal/common/errors"
	"github.com/krishimart/krishimart/internal/log"
)

// SimulatedGateway settles every positive charge after a configurable delay.
// It honors context cancellation, which is how payment timeouts surface in
// local and test runs.
type SimulatedGateway struct {
	delay time.Duration
}

func NewSimulatedGateway(delay time.Duration) *SimulatedGateway {
	return &SimulatedGateway{delay: delay}
}

func (g *SimulatedGateway) Charge(c context.Context, param ChargeRequest) (ChargeResult, error) {
	c, span := otel.Tracer.Start(c, "SimulatedGateway Charge")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "SimulatedGateway Charge").
		Str(log.KeyPaymentMethod, param.Method).
		Str(log.KeyIdempotencyKey, param.IdempotencyKey.String()).
		Logger()

	logger.Info().Msg("charging payment")
	if param.Amount.LessThanOrEqual(decimal.Zero) {
		logger.Info().Msg("declined payment, amount is not positive")
		return ChargeResult{Success: false, Reason: "amount must be positive"}, nil
	}

	select {
	case <-c.Done():
		err := fmt.Errorf("failed charging payment with error=%w", c.Err())
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return ChargeResult{}, err
	case <-time.After(g.delay):
	}

	result := ChargeResult{Success: true, TransactionId: "sim-" + uuid.NewString()}
	logger.Info().Msg("charged payment")
	return result, nil
}

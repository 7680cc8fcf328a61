package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/krishimart/krishimart/cart/internal/otel"
	"github.com/krishimart/krishimart/cart/internal/payment"
	"github.com/krishimart/krishimart/cart/internal/pricing"
	"github.com/krishimart/krishimart/cart/internal/store"
	"github.com/krishimart/krishimart/cart/pkg/request"
	"github.com/krishimart/krishimart/cart/pkg/response"
	commonErrors "github.com/krishimart/krishimart/internal/common/errors"
	"github.com/krishimart/krishimart/internal/log"
)

type State string

const (
	StateCollecting State = "collecting"
	StateSubmitting State = "submitting"
	StateSucceeded  State = "succeeded"
	StateFailed     State = "failed"
)

const DefaultPaymentTimeout = 30 * time.Second

// Recorder persists a finished receipt so the order summary can serve it.
type Recorder interface {
	Record(c context.Context, receipt response.Receipt) error
}

// Flow drives one user's checkout. At most one submission is in flight at a
// time; a concurrent Submit loses the race and returns ErrCheckoutInFlight
// without touching the cart or the payment gateway. A failed attempt leaves
// the cart untouched and the flow open for another Submit, so the user can
// correct the details and retry.
type Flow struct {
	userId   uuid.UUID
	store    store.CartStore
	gateway  payment.Gateway
	recorder Recorder
	timeout  time.Duration

	inFlight atomic.Bool
	mu       sync.Mutex
	state    State
}

func NewFlow(
	userId uuid.UUID,
	cartStore store.CartStore,
	gateway payment.Gateway,
	recorder Recorder,
	timeout time.Duration,
) *Flow {
	if timeout <= 0 {
		timeout = DefaultPaymentTimeout
	}
	return &Flow{
		userId:   userId,
		store:    cartStore,
		gateway:  gateway,
		recorder: recorder,
		timeout:  timeout,
		state:    StateCollecting,
	}
}

func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *Flow) setState(state State) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = state
}

// Submit snapshots the cart, prices it, charges the payment and records the
// receipt. The receipt is built from the snapshot taken before the charge,
// so items added or removed while payment settles never leak into it.
func (f *Flow) Submit(c context.Context, param request.Checkout) (response.Receipt, error) {
	c, span := otel.Tracer.Start(c, "Flow Submit")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "Flow Submit").
		Str(log.KeyUserID, f.userId.String()).
		Str(log.KeyPaymentMethod, param.Method).
		Logger()

	if !f.inFlight.CompareAndSwap(false, true) {
		logger.Info().Msg("rejecting submit, another attempt is in flight")
		return response.Receipt{}, commonErrors.ErrCheckoutInFlight
	}
	defer f.inFlight.Store(false)
	f.setState(StateSubmitting)

	logger.Info().Msg("getting cart items")
	items, err := f.store.Items(c, f.userId)
	if err != nil {
		f.setState(StateFailed)
		err = fmt.Errorf("failed getting cart items with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Receipt{}, err
	}
	if len(items) == 0 {
		f.setState(StateCollecting)
		logger.Info().Msg("rejecting submit, cart is empty")
		return response.Receipt{}, commonErrors.ErrEmptyCart
	}

	snapshot := response.CloneItems(items)
	quote := pricing.Calculate(snapshot)
	logger = logger.With().
		Int(log.KeyCartItems, len(snapshot)).
		Any(log.KeyQuote, quote).
		Logger()

	idempotencyKey := uuid.New()
	logger.Info().Str(log.KeyIdempotencyKey, idempotencyKey.String()).Msg("charging payment")
	chargeCtx, cancel := context.WithTimeout(c, f.timeout)
	defer cancel()
	result, err := f.gateway.Charge(chargeCtx, payment.ChargeRequest{
		IdempotencyKey: idempotencyKey,
		Method:         param.Method,
		Amount:         quote.Total,
		Email:          param.Email,
		Phone:          param.Phone,
		CardNumber:     param.CardNumber,
		CardExpiry:     param.CardExpiry,
		CardCvv:        param.CardCvv,
		UpiId:          param.UpiId,
	})
	if err != nil {
		f.setState(StateFailed)
		if errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("payment attempt exceeded timeout=%s with error=%w", f.timeout, commonErrors.ErrPaymentDeclined)
		}
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Receipt{}, err
	}
	if !result.Success {
		f.setState(StateFailed)
		err = fmt.Errorf("payment declined reason=%s with error=%w", result.Reason, commonErrors.ErrPaymentDeclined)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Receipt{}, err
	}

	receipt := response.Receipt{
		ID:           uuid.New(),
		UserId:       f.userId,
		OrderDetails: snapshot,
		PaymentDetails: response.PaymentDetails{
			Method:        param.Method,
			Subtotal:      quote.Subtotal,
			Tax:           quote.Tax,
			Total:         quote.Total,
			TransactionId: result.TransactionId,
			Timestamp:     time.Now().UTC(),
		},
	}

	logger.Info().Str(log.KeyReceiptID, receipt.ID.String()).Msg("recording receipt")
	if err := f.recorder.Record(c, receipt); err != nil {
		f.setState(StateFailed)
		err = fmt.Errorf("failed recording receipt with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Receipt{}, err
	}

	logger.Info().Msg("clearing cart after checkout")
	if err := f.store.Clear(c, f.userId); err != nil {
		// Receipt is already recorded; the stale cart expires on its own.
		err = fmt.Errorf("failed clearing cart after checkout with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
	}

	f.setState(StateSucceeded)
	logger.Info().Str(log.KeyReceiptID, receipt.ID.String()).Msg("checkout succeeded")
	return receipt, nil
}

package checkout

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krishimart/krishimart/cart/internal/payment"
	"github.com/krishimart/krishimart/cart/internal/store"
	"github.com/krishimart/krishimart/cart/pkg/request"
	"github.com/krishimart/krishimart/cart/pkg/response"
	commonErrors "github.com/krishimart/krishimart/internal/common/errors"
	"github.com/krishimart/krishimart/listing"
)

type fakeGateway struct {
	mu      sync.Mutex
	result  payment.ChargeResult
	err     error
	charges []payment.ChargeRequest
	// onCharge runs inside Charge before returning, letting tests mutate
	// the cart or block mid-payment.
	onCharge func(c context.Context)
}

func (g *fakeGateway) Charge(c context.Context, param payment.ChargeRequest) (payment.ChargeResult, error) {
	g.mu.Lock()
	g.charges = append(g.charges, param)
	g.mu.Unlock()
	if g.onCharge != nil {
		g.onCharge(c)
	}
	if err := c.Err(); err != nil {
		return payment.ChargeResult{}, err
	}
	return g.result, g.err
}

func (g *fakeGateway) chargeCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.charges)
}

type fakeRecorder struct {
	mu       sync.Mutex
	err      error
	receipts []response.Receipt
}

func (r *fakeRecorder) Record(c context.Context, receipt response.Receipt) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.receipts = append(r.receipts, receipt)
	return nil
}

func approvedGateway() *fakeGateway {
	return &fakeGateway{result: payment.ChargeResult{Success: true, TransactionId: "txn-1"}}
}

func upiCheckout() request.Checkout {
	return request.Checkout{
		Email:  "farmer@example.com",
		Phone:  "+911234567890",
		Method: request.PaymentMethodUpi,
		UpiId:  "farmer@upi",
	}
}

func seedCart(t *testing.T, s store.CartStore, userId uuid.UUID, prices ...int64) []response.CartItem {
	t.Helper()
	items := make([]response.CartItem, 0, len(prices))
	for _, price := range prices {
		item := response.NewCartItem(listing.Listing{
			ID:          uuid.New(),
			Type:        listing.ItemTypeEquipment,
			Title:       "Rotavator",
			DailyRental: decimal.NewFromInt(price),
		})
		require.NoError(t, s.Add(context.Background(), userId, item))
		items = append(items, item)
	}
	return items
}

func TestSubmitSucceeds(t *testing.T) {
	c := context.Background()
	userId := uuid.New()
	cartStore := store.NewMemoryStore()
	gateway := approvedGateway()
	recorder := &fakeRecorder{}
	seedCart(t, cartStore, userId, 6000, 1500)

	flow := NewFlow(userId, cartStore, gateway, recorder, time.Second)
	receipt, err := flow.Submit(c, upiCheckout())
	require.NoError(t, err)

	assert.Equal(t, StateSucceeded, flow.State())
	assert.Equal(t, userId, receipt.UserId)
	assert.Len(t, receipt.OrderDetails, 2)
	assert.Equal(t, "7500", receipt.PaymentDetails.Subtotal.String())
	assert.Equal(t, "1350", receipt.PaymentDetails.Tax.String())
	assert.Equal(t, "8850", receipt.PaymentDetails.Total.String())
	assert.Equal(t, "txn-1", receipt.PaymentDetails.TransactionId)

	require.Len(t, recorder.receipts, 1)
	assert.Equal(t, receipt.ID, recorder.receipts[0].ID)

	items, err := cartStore.Items(c, userId)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestSubmitEmptyCart(t *testing.T) {
	c := context.Background()
	userId := uuid.New()
	flow := NewFlow(userId, store.NewMemoryStore(), approvedGateway(), &fakeRecorder{}, time.Second)

	_, err := flow.Submit(c, upiCheckout())
	assert.ErrorIs(t, err, commonErrors.ErrEmptyCart)
	assert.Equal(t, StateCollecting, flow.State())
}

func TestSubmitDeclinedLeavesCartUntouched(t *testing.T) {
	c := context.Background()
	userId := uuid.New()
	cartStore := store.NewMemoryStore()
	gateway := &fakeGateway{result: payment.ChargeResult{Success: false, Reason: "insufficient funds"}}
	seedCart(t, cartStore, userId, 6000)

	flow := NewFlow(userId, cartStore, gateway, &fakeRecorder{}, time.Second)
	_, err := flow.Submit(c, upiCheckout())
	assert.ErrorIs(t, err, commonErrors.ErrPaymentDeclined)
	assert.Equal(t, StateFailed, flow.State())

	items, err := cartStore.Items(c, userId)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestSubmitRetryUsesFreshIdempotencyKey(t *testing.T) {
	c := context.Background()
	userId := uuid.New()
	cartStore := store.NewMemoryStore()
	gateway := &fakeGateway{result: payment.ChargeResult{Success: false, Reason: "declined"}}
	seedCart(t, cartStore, userId, 6000)

	flow := NewFlow(userId, cartStore, gateway, &fakeRecorder{}, time.Second)
	_, err := flow.Submit(c, upiCheckout())
	require.ErrorIs(t, err, commonErrors.ErrPaymentDeclined)
	_, err = flow.Submit(c, upiCheckout())
	require.ErrorIs(t, err, commonErrors.ErrPaymentDeclined)

	require.Len(t, gateway.charges, 2)
	assert.NotEqual(t, gateway.charges[0].IdempotencyKey, gateway.charges[1].IdempotencyKey)
}

func TestSubmitRejectsConcurrentAttempt(t *testing.T) {
	c := context.Background()
	userId := uuid.New()
	cartStore := store.NewMemoryStore()
	seedCart(t, cartStore, userId, 6000)

	charging := make(chan struct{})
	release := make(chan struct{})
	gateway := approvedGateway()
	gateway.onCharge = func(context.Context) {
		close(charging)
		<-release
	}

	flow := NewFlow(userId, cartStore, gateway, &fakeRecorder{}, time.Minute)

	firstErr := make(chan error, 1)
	go func() {
		_, err := flow.Submit(c, upiCheckout())
		firstErr <- err
	}()

	<-charging
	_, err := flow.Submit(c, upiCheckout())
	assert.ErrorIs(t, err, commonErrors.ErrCheckoutInFlight)

	close(release)
	require.NoError(t, <-firstErr)
	assert.Equal(t, 1, gateway.chargeCount())
}

func TestSubmitReceiptIsSnapshotOfCartAtSubmission(t *testing.T) {
	c := context.Background()
	userId := uuid.New()
	cartStore := store.NewMemoryStore()
	seeded := seedCart(t, cartStore, userId, 6000)

	gateway := approvedGateway()
	gateway.onCharge = func(chargeCtx context.Context) {
		item := response.NewCartItem(listing.Listing{
			ID:          uuid.New(),
			Type:        listing.ItemTypeLand,
			Title:       "Late Addition",
			LeaseAmount: decimal.NewFromInt(99999),
		})
		require.NoError(t, cartStore.Add(context.Background(), userId, item))
	}

	flow := NewFlow(userId, cartStore, gateway, &fakeRecorder{}, time.Second)
	receipt, err := flow.Submit(c, upiCheckout())
	require.NoError(t, err)

	require.Len(t, receipt.OrderDetails, 1)
	assert.Equal(t, seeded[0].OrderID, receipt.OrderDetails[0].OrderID)
	assert.Equal(t, "6000", receipt.PaymentDetails.Subtotal.String())
}

func TestSubmitPaymentTimeout(t *testing.T) {
	c := context.Background()
	userId := uuid.New()
	cartStore := store.NewMemoryStore()
	seedCart(t, cartStore, userId, 6000)

	gateway := &fakeGateway{}
	gateway.onCharge = func(chargeCtx context.Context) {
		<-chargeCtx.Done()
	}

	flow := NewFlow(userId, cartStore, gateway, &fakeRecorder{}, 10*time.Millisecond)
	_, err := flow.Submit(c, upiCheckout())
	assert.ErrorIs(t, err, commonErrors.ErrPaymentDeclined)
	assert.Equal(t, StateFailed, flow.State())

	items, err := cartStore.Items(c, userId)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestSubmitRecorderFailureLeavesCartUntouched(t *testing.T) {
	c := context.Background()
	userId := uuid.New()
	cartStore := store.NewMemoryStore()
	recorder := &fakeRecorder{err: assert.AnError}
	seedCart(t, cartStore, userId, 6000)

	flow := NewFlow(userId, cartStore, approvedGateway(), recorder, time.Second)
	_, err := flow.Submit(c, upiCheckout())
	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, StateFailed, flow.State())

	items, err := cartStore.Items(c, userId)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

package service

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krishimart/krishimart/cart/internal/payment"
	"github.com/krishimart/krishimart/cart/internal/store"
	"github.com/krishimart/krishimart/cart/pkg/request"
	"github.com/krishimart/krishimart/cart/pkg/response"
	commonErrors "github.com/krishimart/krishimart/internal/common/errors"
	"github.com/krishimart/krishimart/internal/config"
	"github.com/krishimart/krishimart/listing"
)

type stubGateway struct {
	result payment.ChargeResult
}

func (g stubGateway) Charge(c context.Context, param payment.ChargeRequest) (payment.ChargeResult, error) {
	return g.result, nil
}

type stubRecorder struct {
	receipts []response.Receipt
}

func (r *stubRecorder) Record(c context.Context, receipt response.Receipt) error {
	r.receipts = append(r.receipts, receipt)
	return nil
}

func listingBackend(t *testing.T, payloadById map[uuid.UUID]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for id, payload := range payloadById {
			if r.URL.Path == "/listings/"+id.String() {
				fmt.Fprint(w, payload)
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
	}))
}

func newTestCartService(server *httptest.Server, recorder *stubRecorder) *CartService {
	listings := listing.NewClient(config.Backend{BaseURL: server.URL})
	gateway := stubGateway{result: payment.ChargeResult{Success: true, TransactionId: "txn-1"}}
	return NewCartService(store.NewMemoryStore(), listings, gateway, recorder, time.Second)
}

func TestAddItemThenFindCart(t *testing.T) {
	c := context.Background()
	tractorId := uuid.New()
	landId := uuid.New()
	server := listingBackend(t, map[uuid.UUID]string{
		tractorId: fmt.Sprintf(`{"id":"%s","title":"Mini Tractor","daily_rental":"1500"}`, tractorId),
		landId:    fmt.Sprintf(`{"id":"%s","title":"2 Acre Farmland","leaseAmount":"6000"}`, landId),
	})
	defer server.Close()

	svc := newTestCartService(server, &stubRecorder{})
	userId := uuid.New()

	cart, err := svc.AddItem(c, userId, request.AddCartItem{ListingId: tractorId})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)

	cart, err = svc.AddItem(c, userId, request.AddCartItem{ListingId: landId})
	require.NoError(t, err)
	require.Len(t, cart.Items, 2)
	assert.Equal(t, "7500", cart.Subtotal.String())
	assert.Equal(t, "1350", cart.Tax.String())
	assert.Equal(t, "8850", cart.Total.String())
}

func TestAddItemUnknownListing(t *testing.T) {
	c := context.Background()
	server := listingBackend(t, nil)
	defer server.Close()

	svc := newTestCartService(server, &stubRecorder{})
	_, err := svc.AddItem(c, uuid.New(), request.AddCartItem{ListingId: uuid.New()})
	assert.ErrorIs(t, err, commonErrors.ErrListingNotFound)
}

func TestRemoveItemThenClearCart(t *testing.T) {
	c := context.Background()
	tractorId := uuid.New()
	server := listingBackend(t, map[uuid.UUID]string{
		tractorId: fmt.Sprintf(`{"id":"%s","title":"Mini Tractor","daily_rental":"1500"}`, tractorId),
	})
	defer server.Close()

	svc := newTestCartService(server, &stubRecorder{})
	userId := uuid.New()

	cart, err := svc.AddItem(c, userId, request.AddCartItem{ListingId: tractorId})
	require.NoError(t, err)
	cart, err = svc.AddItem(c, userId, request.AddCartItem{ListingId: tractorId})
	require.NoError(t, err)
	require.Len(t, cart.Items, 2)

	cart, err = svc.RemoveItem(c, request.RemoveCartItem{OrderId: cart.Items[0].OrderID, UserId: userId})
	require.NoError(t, err)
	assert.Len(t, cart.Items, 1)

	require.NoError(t, svc.ClearCart(c, userId))
	cart, err = svc.FindCart(c, userId)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Equal(t, "0", cart.Total.String())
}

func TestCheckoutClearsCartAndRecordsReceipt(t *testing.T) {
	c := context.Background()
	tractorId := uuid.New()
	server := listingBackend(t, map[uuid.UUID]string{
		tractorId: fmt.Sprintf(`{"id":"%s","title":"Mini Tractor","daily_rental":"1500"}`, tractorId),
	})
	defer server.Close()

	recorder := &stubRecorder{}
	svc := newTestCartService(server, recorder)
	userId := uuid.New()

	_, err := svc.AddItem(c, userId, request.AddCartItem{ListingId: tractorId})
	require.NoError(t, err)

	receipt, err := svc.Checkout(c, userId, request.Checkout{
		Email:  "farmer@example.com",
		Phone:  "+911234567890",
		Method: request.PaymentMethodUpi,
		UpiId:  "farmer@upi",
	})
	require.NoError(t, err)
	assert.Equal(t, "1770", receipt.PaymentDetails.Total.String())

	require.Len(t, recorder.receipts, 1)
	assert.Equal(t, receipt.ID, recorder.receipts[0].ID)

	cart, err := svc.FindCart(c, userId)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestCheckoutEmptyCart(t *testing.T) {
	c := context.Background()
	server := listingBackend(t, nil)
	defer server.Close()

	svc := newTestCartService(server, &stubRecorder{})
	_, err := svc.Checkout(c, uuid.New(), request.Checkout{
		Email:  "farmer@example.com",
		Phone:  "+911234567890",
		Method: request.PaymentMethodUpi,
		UpiId:  "farmer@upi",
	})
	assert.ErrorIs(t, err, commonErrors.ErrEmptyCart)
}

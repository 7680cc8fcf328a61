package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krishimart/krishimart/internal/common/constants"
	commonErrors "github.com/krishimart/krishimart/internal/common/errors"
	"github.com/krishimart/krishimart/order/pkg/request"
	"github.com/krishimart/krishimart/order/pkg/response"
)

func createReceiptFixture(userId uuid.UUID) request.CreateReceipt {
	rental := decimal.NewFromInt(1500)
	lease := decimal.NewFromInt(6000)
	return request.CreateReceipt{
		ID:     uuid.New(),
		UserId: userId,
		OrderDetails: []request.ReceiptItem{
			{
				ID:          uuid.New(),
				OrderID:     uuid.New(),
				ItemType:    "equipment",
				Title:       "Mini Tractor",
				Location:    "Nashik",
				DailyRental: &rental,
				Duration:    "per day",
				Timestamp:   time.Now().UTC().Truncate(time.Second),
			},
			{
				ID:          uuid.New(),
				OrderID:     uuid.New(),
				ItemType:    "land",
				Title:       "2 Acre Farmland",
				Location:    "Pune",
				LeaseAmount: &lease,
				Duration:    "6 months",
				Timestamp:   time.Now().UTC().Truncate(time.Second),
			},
		},
		PaymentDetails: request.PaymentDetails{
			Method:        "upi",
			Subtotal:      decimal.NewFromInt(7500),
			Tax:           decimal.NewFromInt(1350),
			Total:         decimal.NewFromInt(8850),
			TransactionId: "txn-test-1",
			Timestamp:     time.Now().UTC().Truncate(time.Second),
		},
	}
}

func TestCreateReceiptThenFindById(t *testing.T) {
	c := context.Background()
	redisClient, pool, pgContainer, redisContainer, _, svc := setup(t)(c)
	defer teardown(t)(redisClient, pool, pgContainer, redisContainer)

	userId := uuid.New()
	param := createReceiptFixture(userId)

	created, err := svc.CreateReceipt(c, param)
	require.NoError(t, err)
	assert.Equal(t, param.ID, created.ID)
	assert.Equal(t, userId, created.UserId)
	assert.Len(t, created.OrderDetails, 2)
	assert.True(t, created.PaymentDetails.Total.Equal(param.PaymentDetails.Total))

	found, err := svc.FindReceiptById(c, request.FindReceiptById{ReceiptId: param.ID, UserId: userId})
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.True(t, found.PaymentDetails.Subtotal.Equal(param.PaymentDetails.Subtotal))
	assert.True(t, found.PaymentDetails.Tax.Equal(param.PaymentDetails.Tax))
	assert.True(t, found.PaymentDetails.Total.Equal(param.PaymentDetails.Total))
	assert.Equal(t, "txn-test-1", found.PaymentDetails.TransactionId)

	require.Len(t, found.OrderDetails, 2)
	assert.Equal(t, param.OrderDetails[0].OrderID, found.OrderDetails[0].OrderID)
	require.NotNil(t, found.OrderDetails[0].DailyRental)
	assert.True(t, found.OrderDetails[0].DailyRental.Equal(decimal.NewFromInt(1500)))
	require.NotNil(t, found.OrderDetails[1].LeaseAmount)
	assert.True(t, found.OrderDetails[1].LeaseAmount.Equal(decimal.NewFromInt(6000)))
}

func TestFindReceiptByIdNotFound(t *testing.T) {
	c := context.Background()
	redisClient, pool, pgContainer, redisContainer, _, svc := setup(t)(c)
	defer teardown(t)(redisClient, pool, pgContainer, redisContainer)

	_, err := svc.FindReceiptById(c, request.FindReceiptById{ReceiptId: uuid.New(), UserId: uuid.New()})
	assert.ErrorIs(t, err, commonErrors.ErrReceiptNotFound)
}

func TestFindReceiptByIdBelongingToAnotherUser(t *testing.T) {
	c := context.Background()
	redisClient, pool, pgContainer, redisContainer, _, svc := setup(t)(c)
	defer teardown(t)(redisClient, pool, pgContainer, redisContainer)

	owner := uuid.New()
	param := createReceiptFixture(owner)
	_, err := svc.CreateReceipt(c, param)
	require.NoError(t, err)

	_, err = svc.FindReceiptById(c, request.FindReceiptById{ReceiptId: param.ID, UserId: uuid.New()})
	assert.ErrorIs(t, err, commonErrors.ErrReceiptNotFound)
}

func TestFindReceiptsByUserId(t *testing.T) {
	c := context.Background()
	redisClient, pool, pgContainer, redisContainer, _, svc := setup(t)(c)
	defer teardown(t)(redisClient, pool, pgContainer, redisContainer)

	userId := uuid.New()
	for range 3 {
		_, err := svc.CreateReceipt(c, createReceiptFixture(userId))
		require.NoError(t, err)
	}
	_, err := svc.CreateReceipt(c, createReceiptFixture(uuid.New()))
	require.NoError(t, err)

	receipts, err := svc.FindReceiptsByUserId(c, request.FindReceiptsByUserId{UserId: userId})
	require.NoError(t, err)
	assert.Len(t, receipts, 3)
	for _, receipt := range receipts {
		assert.Equal(t, userId, receipt.UserId)
	}
}

func TestCreateReceiptPublishesReceiptCreated(t *testing.T) {
	c := context.Background()
	redisClient, pool, pgContainer, redisContainer, _, svc := setup(t)(c)
	defer teardown(t)(redisClient, pool, pgContainer, redisContainer)

	sub := redisClient.Subscribe(c, constants.RECEIPT_CREATED)
	defer sub.Close()
	_, err := sub.Receive(c)
	require.NoError(t, err)

	param := createReceiptFixture(uuid.New())
	created, err := svc.CreateReceipt(c, param)
	require.NoError(t, err)

	receiveCtx, cancel := context.WithTimeout(c, 10*time.Second)
	defer cancel()
	message, err := sub.ReceiveMessage(receiveCtx)
	require.NoError(t, err)

	published := response.Receipt{}
	require.NoError(t, json.Unmarshal([]byte(message.Payload), &published))
	assert.Equal(t, created.ID, published.ID)
	assert.True(t, published.PaymentDetails.Total.Equal(created.PaymentDetails.Total))
}

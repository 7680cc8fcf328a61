package store

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krishimart/krishimart/cart/pkg/response"
	"github.com/krishimart/krishimart/listing"
)

func tractorListing() listing.Listing {
	return listing.Listing{
		ID:          uuid.New(),
		Type:        listing.ItemTypeEquipment,
		Title:       "Mini Tractor",
		DailyRental: decimal.NewFromInt(1500),
	}
}

func TestMemoryStoreAddAssignsDistinctOrderIds(t *testing.T) {
	c := context.Background()
	s := NewMemoryStore()
	userId := uuid.New()
	tractor := tractorListing()

	first := response.NewCartItem(tractor)
	second := response.NewCartItem(tractor)
	require.NoError(t, s.Add(c, userId, first))
	require.NoError(t, s.Add(c, userId, second))

	items, err := s.Items(c, userId)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, items[0].ID, items[1].ID)
	assert.NotEqual(t, items[0].OrderID, items[1].OrderID)
}

func TestMemoryStoreRemoveByOrderId(t *testing.T) {
	c := context.Background()
	s := NewMemoryStore()
	userId := uuid.New()
	tractor := tractorListing()

	first := response.NewCartItem(tractor)
	second := response.NewCartItem(tractor)
	require.NoError(t, s.Add(c, userId, first))
	require.NoError(t, s.Add(c, userId, second))

	require.NoError(t, s.Remove(c, userId, first.OrderID))

	items, err := s.Items(c, userId)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, second.OrderID, items[0].OrderID)
}

func TestMemoryStoreRemoveUnknownOrderIdIsNoop(t *testing.T) {
	c := context.Background()
	s := NewMemoryStore()
	userId := uuid.New()

	item := response.NewCartItem(tractorListing())
	require.NoError(t, s.Add(c, userId, item))
	require.NoError(t, s.Remove(c, userId, uuid.New()))

	items, err := s.Items(c, userId)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestMemoryStoreClear(t *testing.T) {
	c := context.Background()
	s := NewMemoryStore()
	userId := uuid.New()

	require.NoError(t, s.Add(c, userId, response.NewCartItem(tractorListing())))
	require.NoError(t, s.Clear(c, userId))

	items, err := s.Items(c, userId)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestMemoryStoreItemsReturnsCopies(t *testing.T) {
	c := context.Background()
	s := NewMemoryStore()
	userId := uuid.New()

	require.NoError(t, s.Add(c, userId, response.NewCartItem(tractorListing())))

	items, err := s.Items(c, userId)
	require.NoError(t, err)
	require.Len(t, items, 1)

	mutated := decimal.NewFromInt(1)
	items[0].DailyRental = &mutated
	items[0].Title = "mutated"

	stored, err := s.Items(c, userId)
	require.NoError(t, err)
	assert.Equal(t, "Mini Tractor", stored[0].Title)
	assert.Equal(t, "1500", stored[0].Price().String())
}

func TestMemoryStoreCartsAreIsolatedPerUser(t *testing.T) {
	c := context.Background()
	s := NewMemoryStore()
	alice, bob := uuid.New(), uuid.New()

	require.NoError(t, s.Add(c, alice, response.NewCartItem(tractorListing())))

	items, err := s.Items(c, bob)
	require.NoError(t, err)
	assert.Empty(t, items)
}

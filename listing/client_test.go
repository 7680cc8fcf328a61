package listing

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	commonErrors "github.com/krishimart/krishimart/internal/common/errors"
)

func testClient(server *httptest.Server) *Client {
	return &Client{
		baseURL:    server.URL,
		token:      "test-token",
		client:     server.Client(),
		maxRetries: 2,
	}
}

func TestFindListingById(t *testing.T) {
	listingId := uuid.New()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/listings/"+listingId.String(), r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		fmt.Fprintf(w, `{"id":"%s","title":"Mini Tractor","daily_rental":"1500"}`, listingId)
	}))
	defer server.Close()

	found, err := testClient(server).FindListingById(context.Background(), listingId)
	require.NoError(t, err)
	assert.Equal(t, listingId, found.ID)
	assert.Equal(t, ItemTypeEquipment, found.Type)
	assert.Equal(t, "1500", found.Price().String())
}

func TestFindListingByIdNotFound(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := testClient(server).FindListingById(context.Background(), uuid.New())
	assert.ErrorIs(t, err, commonErrors.ErrListingNotFound)
	assert.Equal(t, int32(1), requests.Load(), "404 must not be retried")
}

func TestFindListingByIdRetriesServerErrors(t *testing.T) {
	listingId := uuid.New()
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requests.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprintf(w, `{"id":"%s","title":"Farmland","leaseAmount":"75000"}`, listingId)
	}))
	defer server.Close()

	found, err := testClient(server).FindListingById(context.Background(), listingId)
	require.NoError(t, err)
	assert.Equal(t, ItemTypeLand, found.Type)
	assert.Equal(t, int32(2), requests.Load())
}

func TestFindListingByIdExhaustsRetries(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := testClient(server).FindListingById(context.Background(), uuid.New())
	assert.Error(t, err)
	assert.Equal(t, int32(3), requests.Load(), "initial attempt plus two retries")
}

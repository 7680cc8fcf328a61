package listing

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	commonErrors "github.com/krishimart/krishimart/internal/common/errors"
	"github.com/krishimart/krishimart/internal/config"
	"github.com/krishimart/krishimart/internal/log"
	"github.com/krishimart/krishimart/internal/otel"
)

const defaultMaxRetries = 4

// Client talks to the remote KrishiMart listing backend. Transient failures
// are retried with exponential backoff; 4xx responses are not.
type Client struct {
	baseURL    string
	token      string
	client     *http.Client
	maxRetries uint64
}

func NewClient(cfg config.Backend) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		token:      cfg.Token,
		client:     otelhttp.DefaultClient,
		maxRetries: defaultMaxRetries,
	}
}

func (cl *Client) FindListingById(c context.Context, id uuid.UUID) (Listing, error) {
	c, span := otel.Tracer.Start(c, "ListingClient FindListingById")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ListingClient FindListingById").
		Str(log.KeyListingID, id.String()).
		Logger()

	url := cl.baseURL + "/listings/" + id.String()
	logger = logger.With().Str(log.KeyProcess, "finding listing in backend").Logger()
	logger.Info().Msgf("finding listingId=%s in backend", id.String())

	found := Listing{}
	operation := func() error {
		req, err := http.NewRequestWithContext(c, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Add("Authorization", "Bearer "+cl.token)
		req.Header.Add(log.KeyRequestID, log.RequestIDFromContext(c))
		resp, err := cl.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode == http.StatusNotFound {
			return backoff.Permanent(commonErrors.ErrListingNotFound)
		}
		if resp.StatusCode == http.StatusTooManyRequests ||
			resp.StatusCode >= http.StatusInternalServerError {
			return fmt.Errorf("listing backend returned status code=%d", resp.StatusCode)
		}
		if resp.StatusCode != http.StatusOK {
			return backoff.Permanent(
				fmt.Errorf("listing backend returned status code=%d", resp.StatusCode),
			)
		}
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		found, err = Parse(body)
		if err != nil {
			return backoff.Permanent(err)
		}
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), cl.maxRetries),
		c,
	)
	err := backoff.Retry(operation, policy)
	if err != nil {
		err = fmt.Errorf("failed finding listingId=%s with error=%w", id.String(), err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return Listing{}, err
	}
	logger.Info().Msgf("found listingId=%s in backend", id.String())

	return found, nil
}

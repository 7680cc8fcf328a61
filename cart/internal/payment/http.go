package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/krishimart/krishimart/cart/internal/otel"
	commonErrors "github.com/krishimart/krishimart/internal/common/errors"
	commonHttp "github.com/krishimart/krishimart/internal/common/http"
	"github.com/krishimart/krishimart/internal/log"
)

// HTTPGateway charges through an external payment provider. The provider
// deduplicates on the idempotency key, so sending the same request twice
// settles at most one charge.
type HTTPGateway struct {
	baseUrl string
	client  *http.Client
}

func NewHTTPGateway(baseUrl string) *HTTPGateway {
	return &HTTPGateway{baseUrl: baseUrl, client: otelhttp.DefaultClient}
}

func (g *HTTPGateway) Charge(c context.Context, param ChargeRequest) (ChargeResult, error) {
	c, span := otel.Tracer.Start(c, "HTTPGateway Charge")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "HTTPGateway Charge").
		Str(log.KeyPaymentMethod, param.Method).
		Str(log.KeyIdempotencyKey, param.IdempotencyKey.String()).
		Logger()

	body, err := json.Marshal(param)
	if err != nil {
		err = fmt.Errorf("failed marshaling charge request with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return ChargeResult{}, err
	}

	req, err := http.NewRequestWithContext(c, http.MethodPost, g.baseUrl+"/charges", bytes.NewReader(body))
	if err != nil {
		err = fmt.Errorf("failed creating charge request with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return ChargeResult{}, err
	}
	req.Header.Add(commonHttp.KEY_HEADER_CONTENT_TYPE, commonHttp.VALUE_HEADER_APPLICATION_JSON)

	logger.Info().Msg("charging payment")
	resp, err := g.client.Do(req)
	if err != nil {
		err = fmt.Errorf("failed charging payment with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return ChargeResult{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		err = fmt.Errorf("payment provider responded with statusCode=%d", resp.StatusCode)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return ChargeResult{}, err
	}

	result := ChargeResult{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		err = fmt.Errorf("failed decoding charge result with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return ChargeResult{}, err
	}
	logger.Info().Bool("success", result.Success).Msg("charged payment")
	return result, nil
}

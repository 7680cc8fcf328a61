package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/krishimart/krishimart/cart/internal/otel"
	"github.com/krishimart/krishimart/cart/pkg/response"
	"github.com/krishimart/krishimart/internal/common"
	"github.com/krishimart/krishimart/internal/common/constants"
	commonErrors "github.com/krishimart/krishimart/internal/common/errors"
	commonHttp "github.com/krishimart/krishimart/internal/common/http"
	"github.com/krishimart/krishimart/internal/log"
)

// HttpReceiptRecorder posts finished receipts to the order service, passing
// the caller's bearer token and request id through.
type HttpReceiptRecorder struct {
	url    string
	client *http.Client
}

func NewHttpReceiptRecorder() *HttpReceiptRecorder {
	return &HttpReceiptRecorder{url: constants.URL_ORDER_SERVICE, client: otelhttp.DefaultClient}
}

func (r *HttpReceiptRecorder) Record(c context.Context, receipt response.Receipt) error {
	c, span := otel.Tracer.Start(c, "HttpReceiptRecorder Record")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "HttpReceiptRecorder Record").
		Str(log.KeyReceiptID, receipt.ID.String()).
		Str(log.KeyUserID, receipt.UserId.String()).
		Logger()

	body, err := json.Marshal(receipt.CreateReceipt())
	if err != nil {
		err = fmt.Errorf("failed marshaling receipt with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}

	req, err := http.NewRequestWithContext(c, http.MethodPost, r.url, bytes.NewReader(body))
	if err != nil {
		err = fmt.Errorf("failed creating receipt request with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	req.Header.Add(commonHttp.KEY_HEADER_CONTENT_TYPE, commonHttp.VALUE_HEADER_APPLICATION_JSON)
	req.Header.Add(log.KeyRequestID, log.RequestIDFromContext(c))
	if token := common.JwtTokenFromContext(c); token != nil {
		req.Header.Add("Authorization", "Bearer "+token.Raw)
	}

	logger.Info().Msg("recording receipt to order service")
	resp, err := r.client.Do(req)
	if err != nil {
		err = fmt.Errorf("failed recording receipt to order service with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		err = fmt.Errorf("order service responded with statusCode=%d", resp.StatusCode)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("recorded receipt to order service")
	return nil
}

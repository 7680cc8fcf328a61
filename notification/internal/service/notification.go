package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/krishimart/krishimart/internal/common/constants"
	commonErrors "github.com/krishimart/krishimart/internal/common/errors"
	"github.com/krishimart/krishimart/internal/log"
	"github.com/krishimart/krishimart/notification/internal/otel"
	"github.com/krishimart/krishimart/order/pkg/response"
)

type NotificationService struct {
	cache *redis.Client
}

func NewNotificationService(cache *redis.Client) *NotificationService {
	return &NotificationService{cache: cache}
}

// ListenReceiptCreated consumes the receipt_created channel and dispatches
// an order confirmation per receipt. It returns when the context is done.
func (s *NotificationService) ListenReceiptCreated(c context.Context) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "NotificationService ListenReceiptCreated").
		Logger()

	logger.Info().Msgf("subscribing to channel=%s", constants.RECEIPT_CREATED)
	sub := s.cache.Subscribe(c, constants.RECEIPT_CREATED)
	defer func() {
		if err := sub.Close(); err != nil {
			err = fmt.Errorf("failed closing subscription with error=%w", err)
			logger.Error().Err(err).Msg(err.Error())
		}
	}()

	messages := sub.Channel()
	for {
		select {
		case <-c.Done():
			logger.Info().Msg("stopping receipt created listener")
			return
		case message, ok := <-messages:
			if !ok {
				logger.Info().Msg("subscription channel closed")
				return
			}
			s.dispatchConfirmation(c, message.Payload)
		}
	}
}

func (s *NotificationService) dispatchConfirmation(c context.Context, payload string) {
	c, span := otel.Tracer.Start(c, "NotificationService dispatchConfirmation")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "NotificationService dispatchConfirmation").
		Logger()

	receipt := response.Receipt{}
	if err := json.Unmarshal([]byte(payload), &receipt); err != nil {
		err = fmt.Errorf("failed unmarshaling receipt with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return
	}

	logger.Info().
		Str(log.KeyReceiptID, receipt.ID.String()).
		Str(log.KeyUserID, receipt.UserId.String()).
		Str(log.KeyPaymentMethod, receipt.PaymentDetails.Method).
		Str("total", receipt.PaymentDetails.Total.String()).
		Msg("dispatching order confirmation")
}

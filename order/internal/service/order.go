package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/krishimart/krishimart/internal/common/constants"
	commonErrors "github.com/krishimart/krishimart/internal/common/errors"
	"github.com/krishimart/krishimart/internal/log"
	"github.com/krishimart/krishimart/order/internal/cache"
	"github.com/krishimart/krishimart/order/internal/otel"
	"github.com/krishimart/krishimart/order/internal/repository"
	"github.com/krishimart/krishimart/order/pkg/request"
	"github.com/krishimart/krishimart/order/pkg/response"
)

type OrderService struct {
	pool    *pgxpool.Pool
	queries *repository.Queries
	cache   *redis.Client
}

func NewOrderService(
	pool *pgxpool.Pool,
	queries *repository.Queries,
	cache *redis.Client,
) *OrderService {
	return &OrderService{pool: pool, queries: queries, cache: cache}
}

func numeric(d decimal.Decimal) pgtype.Numeric {
	return pgtype.Numeric{Int: d.Coefficient(), Exp: d.Exponent(), Valid: true}
}

// CreateReceipt persists a checkout receipt, caches it and announces it on
// the receipt_created channel. Receipts are immutable once written.
func (s *OrderService) CreateReceipt(c context.Context, param request.CreateReceipt) (response.Receipt, error) {
	c, span := otel.Tracer.Start(c, "OrderService CreateReceipt")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderService CreateReceipt").
		Str(log.KeyReceiptID, param.ID.String()).
		Str(log.KeyUserID, param.UserId.String()).
		Logger()

	orderDetails, err := json.Marshal(param.OrderDetails)
	if err != nil {
		err = fmt.Errorf("failed marshaling order details with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Receipt{}, err
	}

	logger.Info().Msg("starting transaction")
	tx, err := s.pool.BeginTx(c, pgx.TxOptions{})
	if err != nil {
		err = fmt.Errorf("failed starting transaction with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Receipt{}, err
	}
	defer func() {
		if err := tx.Rollback(c); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			err = fmt.Errorf("failed rolling back transaction with error=%w", err)
			commonErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
		}
	}()

	logger.Info().Msg("inserting receipt")
	inserted, err := s.queries.WithTx(tx).InsertReceipt(c, repository.InsertReceiptParams{
		ID:            param.ID,
		UserID:        param.UserId,
		Method:        param.PaymentDetails.Method,
		Subtotal:      numeric(param.PaymentDetails.Subtotal),
		Tax:           numeric(param.PaymentDetails.Tax),
		Total:         numeric(param.PaymentDetails.Total),
		TransactionID: param.PaymentDetails.TransactionId,
		PaidAt:        pgtype.Timestamptz{Time: param.PaymentDetails.Timestamp, Valid: true},
		OrderDetails:  orderDetails,
	})
	if err != nil {
		err = fmt.Errorf("failed inserting receipt with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Receipt{}, err
	}
	logger.Info().Msg("inserted receipt")

	receipt, err := inserted.Response()
	if err != nil {
		err = fmt.Errorf("failed mapping receipt with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Receipt{}, err
	}

	logger.Info().Msg("committing transaction")
	if err := tx.Commit(c); err != nil {
		err = fmt.Errorf("failed committing transaction with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Receipt{}, err
	}
	logger.Info().Msg("committed transaction")

	cacheKey := fmt.Sprintf(cache.KEY_RECEIPT, receipt.ID.String())
	logger = logger.With().Str(log.KeyCacheKey, cacheKey).Logger()
	logger.Info().Msg("caching receipt")
	if err := s.cache.JSONSet(c, cacheKey, "$", receipt).Err(); err != nil {
		// Cache and publish are best effort, the receipt is already durable.
		err = fmt.Errorf("failed caching receipt with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
	} else {
		logger.Info().Msg("cached receipt")
	}

	receiptJson, err := json.Marshal(receipt)
	if err != nil {
		err = fmt.Errorf("failed marshaling receipt with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return receipt, nil
	}
	logger.Info().Msg("publishing receipt created event")
	if err := s.cache.Publish(c, constants.RECEIPT_CREATED, receiptJson).Err(); err != nil {
		err = fmt.Errorf("failed publishing receipt created event with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return receipt, nil
	}
	logger.Info().Msg("published receipt created event")

	return receipt, nil
}

// FindReceiptById serves the order summary. A receipt that does not exist
// or belongs to another user yields ErrReceiptNotFound, which the
// controller renders as the no-order-details fallback.
func (s *OrderService) FindReceiptById(c context.Context, param request.FindReceiptById) (response.Receipt, error) {
	c, span := otel.Tracer.Start(c, "OrderService FindReceiptById")
	defer span.End()

	cacheKey := fmt.Sprintf(cache.KEY_RECEIPT, param.ReceiptId.String())
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderService FindReceiptById").
		Str(log.KeyReceiptID, param.ReceiptId.String()).
		Str(log.KeyUserID, param.UserId.String()).
		Str(log.KeyCacheKey, cacheKey).
		Logger()

	logger.Trace().Msg("getting receipt from cache")
	jsonCache, err := s.cache.JSONGet(c, cacheKey).Result()
	if err == nil && jsonCache != "" {
		cached := response.Receipt{}
		if err := json.Unmarshal([]byte(jsonCache), &cached); err == nil {
			if cached.UserId != param.UserId {
				logger.Info().Msg("receipt belongs to another user")
				return response.Receipt{}, commonErrors.ErrReceiptNotFound
			}
			logger.Info().Msg("found receipt in cache")
			return cached, nil
		}
	}

	logger.Info().Msg("finding receipt in database")
	found, err := s.queries.FindReceiptById(c, repository.FindReceiptByIdParams{
		ID:     param.ReceiptId,
		UserID: param.UserId,
	})
	if errors.Is(err, pgx.ErrNoRows) {
		logger.Info().Msg("receipt not found")
		return response.Receipt{}, commonErrors.ErrReceiptNotFound
	}
	if err != nil {
		err = fmt.Errorf("failed finding receipt with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Receipt{}, err
	}

	receipt, err := found.Response()
	if err != nil {
		err = fmt.Errorf("failed mapping receipt with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Receipt{}, err
	}
	logger.Info().Msg("found receipt in database")

	if err := s.cache.JSONSet(c, cacheKey, "$", receipt).Err(); err != nil {
		err = fmt.Errorf("failed caching receipt with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
	}
	return receipt, nil
}

func (s *OrderService) FindReceiptsByUserId(c context.Context, param request.FindReceiptsByUserId) ([]response.Receipt, error) {
	c, span := otel.Tracer.Start(c, "OrderService FindReceiptsByUserId")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderService FindReceiptsByUserId").
		Str(log.KeyUserID, param.UserId.String()).
		Logger()

	logger.Info().Msg("finding receipts")
	found, err := s.queries.FindReceiptsByUserId(c, param.UserId)
	if err != nil {
		err = fmt.Errorf("failed finding receipts with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}

	receipts := make([]response.Receipt, 0, len(found))
	for _, row := range found {
		receipt, err := row.Response()
		if err != nil {
			err = fmt.Errorf("failed mapping receipt with error=%w", err)
			commonErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return nil, err
		}
		receipts = append(receipts, receipt)
	}
	logger.Info().Int("receipts", len(receipts)).Msg("found receipts")
	return receipts, nil
}

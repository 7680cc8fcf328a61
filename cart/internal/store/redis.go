package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"

	"github.com/krishimart/krishimart/cart/internal/otel"
	"github.com/krishimart/krishimart/cart/pkg/response"
	commonErrors "github.com/krishimart/krishimart/internal/common/errors"
	"github.com/krishimart/krishimart/internal/log"
)

// RedisStore persists carts across restarts. Each cart lives under one key
// with a sliding TTL so abandoned carts expire on their own.
type RedisStore struct {
	cache *redis.Client
	ttl   time.Duration
}

func NewRedisStore(cache *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{cache: cache, ttl: ttl}
}

func cartKey(userId uuid.UUID) string {
	return fmt.Sprintf("carts:%s", userId)
}

func (s *RedisStore) Add(c context.Context, userId uuid.UUID, item response.CartItem) error {
	c, span := otel.Tracer.Start(c, "RedisStore Add")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "RedisStore Add").
		Str(log.KeyUserID, userId.String()).
		Str(log.KeyCacheKey, cartKey(userId)).
		Logger()

	items, err := s.Items(c, userId)
	if err != nil {
		err = fmt.Errorf("failed getting existing cart items with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	return s.write(c, span, logger, userId, append(items, item.Clone()))
}

func (s *RedisStore) Remove(c context.Context, userId uuid.UUID, orderId uuid.UUID) error {
	c, span := otel.Tracer.Start(c, "RedisStore Remove")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "RedisStore Remove").
		Str(log.KeyUserID, userId.String()).
		Str(log.KeyOrderID, orderId.String()).
		Logger()

	items, err := s.Items(c, userId)
	if err != nil {
		err = fmt.Errorf("failed getting existing cart items with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	remaining := make([]response.CartItem, 0, len(items))
	for _, item := range items {
		if item.OrderID == orderId {
			continue
		}
		remaining = append(remaining, item)
	}
	return s.write(c, span, logger, userId, remaining)
}

func (s *RedisStore) Clear(c context.Context, userId uuid.UUID) error {
	c, span := otel.Tracer.Start(c, "RedisStore Clear")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "RedisStore Clear").
		Str(log.KeyUserID, userId.String()).
		Str(log.KeyCacheKey, cartKey(userId)).
		Logger()

	logger.Info().Msg("clearing cart")
	if err := s.cache.Del(c, cartKey(userId)).Err(); err != nil {
		err = fmt.Errorf("failed clearing cart with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("cleared cart")
	return nil
}

func (s *RedisStore) Items(c context.Context, userId uuid.UUID) ([]response.CartItem, error) {
	c, span := otel.Tracer.Start(c, "RedisStore Items")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "RedisStore Items").
		Str(log.KeyUserID, userId.String()).
		Str(log.KeyCacheKey, cartKey(userId)).
		Logger()

	logger.Trace().Msg("getting cart items from cache")
	payload, err := s.cache.Get(c, cartKey(userId)).Bytes()
	if errors.Is(err, redis.Nil) {
		return []response.CartItem{}, nil
	}
	if err != nil {
		err = fmt.Errorf("failed getting cart items from cache with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}

	items := []response.CartItem{}
	if err := json.Unmarshal(payload, &items); err != nil {
		err = fmt.Errorf("failed unmarshaling cart items with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	return items, nil
}

func (s *RedisStore) write(
	c context.Context,
	span trace.Span,
	logger zerolog.Logger,
	userId uuid.UUID,
	items []response.CartItem,
) error {
	payload, err := json.Marshal(items)
	if err != nil {
		err = fmt.Errorf("failed marshaling cart items with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}

	logger.Info().Int(log.KeyCartItems, len(items)).Msg("writing cart to cache")
	if err := s.cache.Set(c, cartKey(userId), payload, s.ttl).Err(); err != nil {
		err = fmt.Errorf("failed writing cart to cache with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("wrote cart to cache")
	return nil
}

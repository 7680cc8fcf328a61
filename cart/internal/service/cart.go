package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/krishimart/krishimart/cart/internal/checkout"
	"github.com/krishimart/krishimart/cart/internal/metrics"
	"github.com/krishimart/krishimart/cart/internal/otel"
	"github.com/krishimart/krishimart/cart/internal/payment"
	"github.com/krishimart/krishimart/cart/internal/pricing"
	"github.com/krishimart/krishimart/cart/internal/store"
	"github.com/krishimart/krishimart/cart/pkg/request"
	"github.com/krishimart/krishimart/cart/pkg/response"
	commonErrors "github.com/krishimart/krishimart/internal/common/errors"
	"github.com/krishimart/krishimart/internal/log"
	"github.com/krishimart/krishimart/listing"
)

type CartService struct {
	store    store.CartStore
	listings *listing.Client
	gateway  payment.Gateway
	recorder checkout.Recorder
	timeout  time.Duration
	flows    sync.Map
}

func NewCartService(
	cartStore store.CartStore,
	listings *listing.Client,
	gateway payment.Gateway,
	recorder checkout.Recorder,
	paymentTimeout time.Duration,
) *CartService {
	return &CartService{
		store:    cartStore,
		listings: listings,
		gateway:  gateway,
		recorder: recorder,
		timeout:  paymentTimeout,
	}
}

func (s *CartService) flowFor(userId uuid.UUID) *checkout.Flow {
	flow, _ := s.flows.LoadOrStore(userId, checkout.NewFlow(userId, s.store, s.gateway, s.recorder, s.timeout))
	return flow.(*checkout.Flow)
}

func (s *CartService) AddItem(c context.Context, userId uuid.UUID, param request.AddCartItem) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService AddItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService AddItem").
		Str(log.KeyUserID, userId.String()).
		Str(log.KeyListingID, param.ListingId.String()).
		Logger()

	logger.Info().Msg("finding listing")
	found, err := s.listings.FindListingById(c, param.ListingId)
	if err != nil {
		err = fmt.Errorf("failed finding listing with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msg("found listing")

	item := response.NewCartItem(found)
	logger.Info().Str(log.KeyOrderID, item.OrderID.String()).Msg("adding item to cart")
	if err := s.store.Add(c, userId, item); err != nil {
		err = fmt.Errorf("failed adding item to cart with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	metrics.CartItemsAdded.Inc()
	logger.Info().Msg("added item to cart")

	return s.FindCart(c, userId)
}

func (s *CartService) FindCart(c context.Context, userId uuid.UUID) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService FindCart")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService FindCart").
		Str(log.KeyUserID, userId.String()).
		Logger()

	logger.Trace().Msg("getting cart items")
	items, err := s.store.Items(c, userId)
	if err != nil {
		err = fmt.Errorf("failed getting cart items with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}

	quote := pricing.Calculate(items)
	return response.Cart{
		UserId:   userId,
		Items:    items,
		Subtotal: quote.Subtotal,
		Tax:      quote.Tax,
		Total:    quote.Total,
	}, nil
}

func (s *CartService) RemoveItem(c context.Context, param request.RemoveCartItem) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService RemoveItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService RemoveItem").
		Str(log.KeyUserID, param.UserId.String()).
		Str(log.KeyOrderID, param.OrderId.String()).
		Logger()

	logger.Info().Msg("removing item from cart")
	if err := s.store.Remove(c, param.UserId, param.OrderId); err != nil {
		err = fmt.Errorf("failed removing item from cart with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msg("removed item from cart")

	return s.FindCart(c, param.UserId)
}

func (s *CartService) ClearCart(c context.Context, userId uuid.UUID) error {
	c, span := otel.Tracer.Start(c, "CartService ClearCart")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService ClearCart").
		Str(log.KeyUserID, userId.String()).
		Logger()

	logger.Info().Msg("clearing cart")
	if err := s.store.Clear(c, userId); err != nil {
		err = fmt.Errorf("failed clearing cart with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("cleared cart")
	return nil
}

func (s *CartService) Checkout(c context.Context, userId uuid.UUID, param request.Checkout) (response.Receipt, error) {
	c, span := otel.Tracer.Start(c, "CartService Checkout")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService Checkout").
		Str(log.KeyUserID, userId.String()).
		Str(log.KeyPaymentMethod, param.Method).
		Logger()

	flow := s.flowFor(userId)
	logger.Info().Str(log.KeyCheckoutState, string(flow.State())).Msg("submitting checkout")
	receipt, err := flow.Submit(c, param)
	if err != nil {
		metrics.CheckoutAttempts.WithLabelValues(checkoutOutcome(err)).Inc()
		err = fmt.Errorf("failed submitting checkout with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Receipt{}, err
	}

	metrics.CheckoutAttempts.WithLabelValues(metrics.OutcomeSucceeded).Inc()
	logger.Info().Str(log.KeyReceiptID, receipt.ID.String()).Msg("submitted checkout")
	return receipt, nil
}

func checkoutOutcome(err error) string {
	switch {
	case errors.Is(err, commonErrors.ErrCheckoutInFlight):
		return metrics.OutcomeInFlight
	case errors.Is(err, commonErrors.ErrEmptyCart):
		return metrics.OutcomeEmptyCart
	case errors.Is(err, commonErrors.ErrPaymentDeclined):
		return metrics.OutcomeDeclined
	default:
		return metrics.OutcomeError
	}
}

package controller

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/krishimart/krishimart/cart/internal/otel"
	"github.com/krishimart/krishimart/cart/internal/service"
	"github.com/krishimart/krishimart/cart/pkg/request"
	"github.com/krishimart/krishimart/internal/common"
	commonErrors "github.com/krishimart/krishimart/internal/common/errors"
	commonHttp "github.com/krishimart/krishimart/internal/common/http"
	"github.com/krishimart/krishimart/internal/config"
	"github.com/krishimart/krishimart/internal/log"
	"github.com/krishimart/krishimart/internal/middleware"
)

type CartController struct {
	validate *validator.Validate
	service  *service.CartService
}

func AttachCartController(router *mux.Router, svc *service.CartService, cfg config.Application) {
	controller := CartController{
		validate: validator.New(validator.WithRequiredStructEnabled()),
		service:  svc,
	}

	sub := router.PathPrefix("/carts").Subrouter()
	sub.Use(middleware.Auth(cfg))
	sub.HandleFunc("", controller.FindCart).Methods(http.MethodGet)
	sub.HandleFunc("", controller.ClearCart).Methods(http.MethodDelete)
	sub.HandleFunc("/items", controller.AddCartItem).Methods(http.MethodPost)
	sub.HandleFunc("/items/{orderId}", controller.RemoveCartItem).Methods(http.MethodDelete)
	sub.HandleFunc("/checkout", controller.Checkout).Methods(http.MethodPost)
}

func (ctrl CartController) AddCartItem(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController AddCartItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController AddCartItem").
		Logger()

	userId, err := common.UserIdFromJwtToken(c)
	if err != nil {
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusUnauthorized,
			"message":    err.Error(),
		})
		return
	}

	reqBody := request.AddCartItem{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    "failed decoding request body",
		})
		return
	}
	if err := ctrl.validate.StructCtx(c, reqBody); err != nil {
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}

	cart, err := ctrl.service.AddItem(c, userId, reqBody)
	if err != nil {
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		statusCode := http.StatusInternalServerError
		if errors.Is(err, commonErrors.ErrListingNotFound) {
			statusCode = http.StatusNotFound
		}
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": statusCode,
			"message":    err.Error(),
		})
		return
	}

	commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusCreated,
		"message":    "item added to cart",
		"data":       map[string]interface{}{"cart": cart},
	})
}

func (ctrl CartController) FindCart(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController FindCart")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController FindCart").
		Logger()

	userId, err := common.UserIdFromJwtToken(c)
	if err != nil {
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusUnauthorized,
			"message":    err.Error(),
		})
		return
	}

	cart, err := ctrl.service.FindCart(c, userId)
	if err != nil {
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusInternalServerError,
			"message":    err.Error(),
		})
		return
	}

	commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "cart found",
		"data":       map[string]interface{}{"cart": cart},
	})
}

func (ctrl CartController) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController RemoveCartItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController RemoveCartItem").
		Logger()

	userId, err := common.UserIdFromJwtToken(c)
	if err != nil {
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusUnauthorized,
			"message":    err.Error(),
		})
		return
	}

	pathValues := mux.Vars(r)
	logger = logger.With().Any(log.KeyPathValues, pathValues).Logger()
	orderId, err := uuid.Parse(pathValues["orderId"])
	if err != nil {
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    "orderId is not a valid uuid",
		})
		return
	}

	reqBody := request.RemoveCartItem{OrderId: orderId, UserId: userId}
	if err := ctrl.validate.StructCtx(c, reqBody); err != nil {
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}

	cart, err := ctrl.service.RemoveItem(c, reqBody)
	if err != nil {
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusInternalServerError,
			"message":    err.Error(),
		})
		return
	}

	commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "item removed from cart",
		"data":       map[string]interface{}{"cart": cart},
	})
}

func (ctrl CartController) ClearCart(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController ClearCart")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController ClearCart").
		Logger()

	userId, err := common.UserIdFromJwtToken(c)
	if err != nil {
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusUnauthorized,
			"message":    err.Error(),
		})
		return
	}

	if err := ctrl.service.ClearCart(c, userId); err != nil {
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusInternalServerError,
			"message":    err.Error(),
		})
		return
	}

	commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "cart cleared",
	})
}

func (ctrl CartController) Checkout(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController Checkout")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController Checkout").
		Logger()

	userId, err := common.UserIdFromJwtToken(c)
	if err != nil {
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusUnauthorized,
			"message":    err.Error(),
		})
		return
	}

	reqBody := request.Checkout{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    "failed decoding request body",
		})
		return
	}
	if err := ctrl.validate.StructCtx(c, reqBody); err != nil {
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}

	receipt, err := ctrl.service.Checkout(c, userId, reqBody)
	if err != nil {
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": checkoutStatusCode(err),
			"message":    err.Error(),
		})
		return
	}

	commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusCreated,
		"message":    "checkout succeeded",
		"data":       map[string]interface{}{"receipt": receipt},
	})
}

func checkoutStatusCode(err error) int {
	switch {
	case errors.Is(err, commonErrors.ErrCheckoutInFlight):
		return http.StatusConflict
	case errors.Is(err, commonErrors.ErrEmptyCart):
		return http.StatusBadRequest
	case errors.Is(err, commonErrors.ErrPaymentDeclined):
		return http.StatusPaymentRequired
	default:
		return http.StatusInternalServerError
	}
}

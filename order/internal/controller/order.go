package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/krishimart/krishimart/internal/common"
	"github.com/krishimart/krishimart/internal/common/constants"
	commonErrors "github.com/krishimart/krishimart/internal/common/errors"
	commonHttp "github.com/krishimart/krishimart/internal/common/http"
	"github.com/krishimart/krishimart/internal/config"
	"github.com/krishimart/krishimart/internal/log"
	"github.com/krishimart/krishimart/internal/middleware"
	"github.com/krishimart/krishimart/order/internal/otel"
	"github.com/krishimart/krishimart/order/internal/service"
	"github.com/krishimart/krishimart/order/pkg/request"
)

type OrderController struct {
	validate *validator.Validate
	service  *service.OrderService
}

func AttachOrderController(router *mux.Router, svc *service.OrderService, cfg config.Application) {
	controller := OrderController{
		validate: validator.New(validator.WithRequiredStructEnabled()),
		service:  svc,
	}

	sub := router.PathPrefix("/receipts").Subrouter()
	sub.Use(middleware.Auth(cfg))
	sub.HandleFunc("", controller.CreateReceipt).Methods(http.MethodPost)
	sub.HandleFunc("", controller.FindReceipts).Methods(http.MethodGet)
	sub.HandleFunc("/{receiptId}", controller.FindReceiptById).Methods(http.MethodGet)
}

func (ctrl OrderController) CreateReceipt(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "OrderController CreateReceipt")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderController CreateReceipt").
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

	reqBody := request.CreateReceipt{}
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
	reqBody.UserId = userId
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

	receipt, err := ctrl.service.CreateReceipt(c, reqBody)
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
		"statusCode": http.StatusCreated,
		"message":    "receipt created",
		"data":       map[string]interface{}{"receipt": receipt},
	})
}

func (ctrl OrderController) FindReceiptById(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "OrderController FindReceiptById")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderController FindReceiptById").
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
	receiptId, err := uuid.Parse(pathValues["receiptId"])
	if err != nil {
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusNotFound,
			"message":    noOrderDetailsMessage(),
		})
		return
	}

	receipt, err := ctrl.service.FindReceiptById(c, request.FindReceiptById{ReceiptId: receiptId, UserId: userId})
	if err != nil {
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		if errors.Is(err, commonErrors.ErrReceiptNotFound) {
			commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
				"status":     "failed",
				"statusCode": http.StatusNotFound,
				"message":    noOrderDetailsMessage(),
			})
			return
		}
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
		"message":    "receipt found",
		"data":       map[string]interface{}{"receipt": receipt},
	})
}

func (ctrl OrderController) FindReceipts(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "OrderController FindReceipts")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderController FindReceipts").
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

	receipts, err := ctrl.service.FindReceiptsByUserId(c, request.FindReceiptsByUserId{UserId: userId})
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
		"message":    "receipts found",
		"data":       map[string]interface{}{"receipts": receipts},
	})
}

// noOrderDetailsMessage keeps the fallback wording in one place: missing and
// foreign receipts are indistinguishable to the caller.
func noOrderDetailsMessage() string {
	return fmt.Sprintf("no order details found, browse listings at %s", constants.PATH_LISTINGS)
}

package controllers

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"clinicbook-service/internal/app/contracts"
	"clinicbook-service/internal/pkg/constvars"
	"clinicbook-service/internal/pkg/dto/requests"
	"clinicbook-service/internal/pkg/exceptions"
	"clinicbook-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type PaymentController struct {
	Log            *zap.Logger
	PaymentUsecase contracts.PaymentUsecase
}

var (
	paymentControllerInstance *PaymentController
	oncePaymentController     sync.Once
)

func NewPaymentController(logger *zap.Logger, paymentUsecase contracts.PaymentUsecase) *PaymentController {
	oncePaymentController.Do(func() {
		instance := &PaymentController{
			Log:            logger,
			PaymentUsecase: paymentUsecase,
		}
		paymentControllerInstance = instance
	})
	return paymentControllerInstance
}

func (ctrl *PaymentController) GenerateQR(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	draftID := chi.URLParam(r, constvars.URLParamDraftID)

	// The gateway round trip is the slow path; give it more room than the
	// regular handlers.
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	result, err := ctrl.PaymentUsecase.GenerateQR(ctx, draftID)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.QRGeneratedMessage, result)
}

func (ctrl *PaymentController) CheckPaymentStatus(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	draftID := chi.URLParam(r, constvars.URLParamDraftID)

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	result, err := ctrl.PaymentUsecase.CheckPaymentStatus(ctx, draftID)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PaymentStatusMessage, result)
}

// Callback is the gateway redirect landing. It arrives as a GET with the
// outcome in the query string and is the only route that mutates a draft
// without a draft token; the order id is what ties it back to a booking.
func (ctrl *PaymentController) Callback(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	query := r.URL.Query()
	request := &requests.PaymentCallback{
		OrderID:       query.Get(constvars.QueryParamOrderID),
		OrderStatus:   query.Get(constvars.QueryParamOrderStatus),
		TransactionID: query.Get(constvars.QueryParamTransactionID),
		Amount:        query.Get(constvars.QueryParamAmount),
	}

	ctrl.Log.Info("Payment callback received",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrderIDKey, request.OrderID),
		zap.String(constvars.LoggingPaymentStatusKey, request.OrderStatus),
		zap.String(constvars.LoggingRemoteAddrKey, r.RemoteAddr),
	)

	if request.OrderID == "" || request.OrderStatus == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInvalidPaymentResponse(fmt.Errorf("callback missing order_id or order_status")))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	result, err := ctrl.PaymentUsecase.HandleCallback(ctx, request)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.CallbackProcessedMessage, result)
}

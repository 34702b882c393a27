package controllers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"clinicbook-service/internal/app/contracts"
	"clinicbook-service/internal/pkg/constvars"
	"clinicbook-service/internal/pkg/exceptions"
	"clinicbook-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CatalogController struct {
	Log            *zap.Logger
	CatalogUsecase contracts.CatalogUsecase
}

var (
	catalogControllerInstance *CatalogController
	onceCatalogController     sync.Once
)

func NewCatalogController(logger *zap.Logger, catalogUsecase contracts.CatalogUsecase) *CatalogController {
	onceCatalogController.Do(func() {
		instance := &CatalogController{
			Log:            logger,
			CatalogUsecase: catalogUsecase,
		}
		catalogControllerInstance = instance
	})
	return catalogControllerInstance
}

func (ctrl *CatalogController) GetServices(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := ctrl.CatalogUsecase.FindAllServices(ctx)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.CatalogRetrievedMessage, result)
}

func (ctrl *CatalogController) GetProvidersByService(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	serviceID := chi.URLParam(r, constvars.URLParamServiceID)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := ctrl.CatalogUsecase.FindProvidersByServiceID(ctx, serviceID)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.CatalogRetrievedMessage, result)
}

func (ctrl *CatalogController) GetSlots(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	providerID := chi.URLParam(r, constvars.URLParamProviderID)
	date := r.URL.Query().Get(constvars.QueryParamDate)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := ctrl.CatalogUsecase.FindSlotsByProviderAndDate(ctx, providerID, date)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.CatalogRetrievedMessage, result)
}

package controllers

import (
	"net/http"
	"sync"

	"clinicbook-service/internal/app/config"
	"clinicbook-service/internal/pkg/constvars"
	"clinicbook-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type HealthController struct {
	Log            *zap.Logger
	InternalConfig *config.InternalConfig
}

var (
	healthControllerInstance *HealthController
	onceHealthController     sync.Once
)

func NewHealthController(logger *zap.Logger, internalConfig *config.InternalConfig) *HealthController {
	onceHealthController.Do(func() {
		instance := &HealthController{
			Log:            logger,
			InternalConfig: internalConfig,
		}
		healthControllerInstance = instance
	})
	return healthControllerInstance
}

func (ctrl *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ResponseSuccess, map[string]string{
		"status":  "ok",
		"version": ctrl.InternalConfig.App.Version,
	})
}

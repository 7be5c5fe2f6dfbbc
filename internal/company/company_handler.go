package company

import (
	"net/http"

	"go-payroll/internal/middleware"
	"go-payroll/internal/shared/apperror"
	"go-payroll/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("company.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("company.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) GetPayrollSettings(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		response.AbortWithError(c, apperror.ErrUnauthorized)
		return
	}

	comp, err := h.service.GetMe(c.Request.Context(), actor)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}

	response.Success(c, http.StatusOK, comp.PayrollSettings, nil)
}

func (h *Handler) UpdatePayrollSettings(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		response.AbortWithError(c, apperror.ErrUnauthorized)
		return
	}

	var req UpdatePayrollSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http update payroll settings validation failed", zap.Error(err))
		response.AbortWithError(c, apperror.MapValidationError(err))
		return
	}

	comp, err := h.service.UpdatePayrollSettings(c.Request.Context(), actor, req)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}

	response.Success(c, http.StatusOK, comp.PayrollSettings, nil)
}

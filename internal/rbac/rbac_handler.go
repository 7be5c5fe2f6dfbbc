package rbac

import (
	"net/http"

	"go-payroll/internal/domain"
	"go-payroll/internal/middleware"
	"go-payroll/internal/shared/apperror"
	"go-payroll/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Enforce answers whether the caller's role may perform an action, for UI gating.
func (h *Handler) Enforce(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		response.AbortWithError(c, apperror.ErrUnauthorized)
		return
	}

	var req EnforceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.AbortWithError(c, apperror.MapValidationError(err))
		return
	}

	allowed, err := h.service.Enforce(domain.EnforceRequest{
		Actor:    actor,
		Resource: req.Resource,
		Action:   req.Action,
	})
	if err != nil {
		response.AbortWithError(c, err)
		return
	}

	response.Success(c, http.StatusOK, EnforceResponse{Allowed: allowed}, nil)
}

func (h *Handler) MyPermissions(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		response.AbortWithError(c, apperror.ErrUnauthorized)
		return
	}

	perms, err := h.service.Permissions(actor.Role)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}

	response.Success(c, http.StatusOK, perms, nil)
}

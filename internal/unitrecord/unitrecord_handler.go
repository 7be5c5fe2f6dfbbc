package unitrecord

import (
	"net/http"
	"time"

	"go-payroll/internal/middleware"
	"go-payroll/internal/shared/apperror"
	"go-payroll/internal/shared/response"
	unitrecorderrors "go-payroll/internal/unitrecord/errors"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		response.AbortWithError(c, apperror.ErrUnauthorized)
		return
	}

	var req CreateUnitRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.AbortWithError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Create(c.Request.Context(), actor, req)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) List(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		response.AbortWithError(c, apperror.ErrUnauthorized)
		return
	}

	filter := ListFilter{
		WorkerID: c.Query("worker_id"),
		Status:   Status(c.Query("status")),
	}
	for key, dst := range map[string]**time.Time{"from": &filter.From, "to": &filter.To} {
		v := c.Query(key)
		if v == "" {
			continue
		}
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			response.AbortWithError(c, unitrecorderrors.ErrInvalidWorkDate)
			return
		}
		*dst = &t
	}

	resp, err := h.service.List(c.Request.Context(), actor, filter)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	page, meta := response.Paginate(c, resp)
	response.Success(c, http.StatusOK, page, &meta)
}

func (h *Handler) Approve(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		response.AbortWithError(c, apperror.ErrUnauthorized)
		return
	}

	resp, err := h.service.Approve(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Reject(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		response.AbortWithError(c, apperror.ErrUnauthorized)
		return
	}

	resp, err := h.service.Reject(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		response.AbortWithError(c, apperror.ErrUnauthorized)
		return
	}

	if err := h.service.Delete(c.Request.Context(), actor, c.Param("id")); err != nil {
		response.AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

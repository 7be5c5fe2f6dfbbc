package unitrecord

import (
	"go-payroll/internal/domain"
	"go-payroll/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService, mw ...gin.HandlerFunc) {
	records := r.Group("/unit-records")
	records.Use(mw...)
	{
		records.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, domain.ResourceUnitRecord, domain.ActionRead),
			handler.List,
		)
		records.POST("",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, domain.ResourceUnitRecord, domain.ActionCreate),
			handler.Create,
		)
		records.POST("/:id/approve",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, domain.ResourceUnitRecord, domain.ActionApprove),
			handler.Approve,
		)
		records.POST("/:id/reject",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, domain.ResourceUnitRecord, domain.ActionReject),
			handler.Reject,
		)
		records.DELETE("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, domain.ResourceUnitRecord, domain.ActionDelete),
			handler.Delete,
		)
	}
}

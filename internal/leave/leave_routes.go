package leave

import (
	"go-payroll/internal/domain"
	"go-payroll/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService, mw ...gin.HandlerFunc) {
	types := r.Group("/leave-types")
	types.Use(mw...)
	{
		types.GET("",
			middleware.RBACAuthorize(rbacService, domain.ResourceLeave, domain.ActionRead),
			handler.ListTypes,
		)
		types.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, domain.ResourceLeave, domain.ActionCreate),
			handler.CreateType,
		)
	}

	requests := r.Group("/leave-requests")
	requests.Use(mw...)
	{
		requests.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, domain.ResourceLeave, domain.ActionRead),
			handler.ListRequests,
		)
		requests.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, domain.ResourceLeave, domain.ActionRequest),
			handler.Request,
		)
		requests.POST("/:id/approve",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, domain.ResourceLeave, domain.ActionApprove),
			handler.Approve,
		)
		requests.POST("/:id/reject",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, domain.ResourceLeave, domain.ActionReject),
			handler.Reject,
		)
		requests.POST("/:id/cancel",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, domain.ResourceLeave, domain.ActionCancel),
			handler.Cancel,
		)
	}

	balances := r.Group("/leave-balances")
	balances.Use(mw...)
	{
		balances.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, domain.ResourceLeave, domain.ActionRead),
			handler.ListBalances,
		)
	}
}

package worker

import (
	"go-payroll/internal/domain"
	"go-payroll/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService, mw ...gin.HandlerFunc) {
	workers := r.Group("/workers")
	workers.Use(mw...)
	{
		workers.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, domain.ResourceWorker, domain.ActionRead),
			handler.List,
		)

		workers.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, domain.ResourceWorker, domain.ActionRead),
			handler.GetByID,
		)

		workers.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, domain.ResourceWorker, domain.ActionCreate),
			handler.Create,
		)

		workers.POST("/:id/deactivate",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, domain.ResourceWorker, domain.ActionDeactivate),
			handler.Deactivate,
		)
	}
}

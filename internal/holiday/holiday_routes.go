package holiday

import (
	"go-payroll/internal/domain"
	"go-payroll/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService, mw ...gin.HandlerFunc) {
	holidays := r.Group("/holidays")
	holidays.Use(mw...)
	{
		holidays.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, domain.ResourceHoliday, domain.ActionRead),
			handler.List,
		)
		holidays.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, domain.ResourceHoliday, domain.ActionCreate),
			handler.Create,
		)
	}
}

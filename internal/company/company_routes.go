package company

import (
	"go-payroll/internal/domain"
	"go-payroll/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService, mw ...gin.HandlerFunc) {
	company := r.Group("/companies")
	company.Use(mw...)
	{
		company.GET("/me/payroll-settings",
			middleware.RateLimitByUser(2, 10),
			middleware.RBACAuthorize(rbacService, domain.ResourceCompanySettings, domain.ActionRead),
			handler.GetPayrollSettings,
		)

		company.PUT("/me/payroll-settings",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, domain.ResourceCompanySettings, domain.ActionUpdate),
			handler.UpdatePayrollSettings,
		)
	}
}

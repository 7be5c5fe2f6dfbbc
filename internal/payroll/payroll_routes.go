package payroll

import (
	"go-payroll/internal/domain"
	"go-payroll/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts /payroll-records. idempotency wraps the two POSTs
// that create work and may be nil.
func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	idempotency gin.HandlerFunc,
	mw ...gin.HandlerFunc,
) {
	if idempotency == nil {
		idempotency = func(c *gin.Context) { c.Next() }
	}

	records := r.Group("/payroll-records")
	records.Use(mw...)
	{
		records.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, domain.ResourcePayroll, domain.ActionRead),
			handler.List,
		)
		records.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, domain.ResourcePayroll, domain.ActionRead),
			handler.GetByID,
		)
		records.GET("/:id/payslip",
			middleware.RateLimitByUser(1, 3),
			middleware.RBACAuthorize(rbacService, domain.ResourcePayroll, domain.ActionRead),
			handler.DownloadPayslip,
		)
		records.POST("/generate",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, domain.ResourcePayroll, domain.ActionGenerate),
			idempotency,
			handler.Generate,
		)
		records.POST("/batch",
			middleware.RateLimitByUser(0.2, 1),
			middleware.RBACAuthorize(rbacService, domain.ResourcePayroll, domain.ActionGenerate),
			idempotency,
			handler.EnqueueBatch,
		)
		records.POST("/:id/approve",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, domain.ResourcePayroll, domain.ActionApprove),
			handler.Approve,
		)
		records.POST("/:id/mark-paid",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, domain.ResourcePayroll, domain.ActionPay),
			handler.MarkPaid,
		)
		records.DELETE("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, domain.ResourcePayroll, domain.ActionDelete),
			handler.Delete,
		)
	}
}

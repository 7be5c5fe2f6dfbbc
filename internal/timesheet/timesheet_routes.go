package timesheet

import (
	"go-payroll/internal/domain"
	"go-payroll/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService, mw ...gin.HandlerFunc) {
	timesheets := r.Group("/timesheets")
	timesheets.Use(mw...)
	{
		timesheets.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, domain.ResourceTimesheet, domain.ActionRead),
			handler.List,
		)

		timesheets.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, domain.ResourceTimesheet, domain.ActionRead),
			handler.GetByID,
		)

		timesheets.POST("",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, domain.ResourceTimesheet, domain.ActionCreate),
			handler.Create,
		)

		timesheets.PATCH("/:id/entries/:date",
			middleware.RateLimitByUser(2, 10),
			middleware.RBACAuthorize(rbacService, domain.ResourceTimesheet, domain.ActionUpdate),
			handler.UpdateEntry,
		)

		timesheets.POST("/clock-in",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, domain.ResourceTimesheet, domain.ActionClock),
			handler.ClockIn,
		)

		timesheets.POST("/clock-out",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, domain.ResourceTimesheet, domain.ActionClock),
			handler.ClockOut,
		)

		timesheets.POST("/:id/submit",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, domain.ResourceTimesheet, domain.ActionSubmit),
			handler.Submit,
		)

		timesheets.POST("/:id/approve",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, domain.ResourceTimesheet, domain.ActionApprove),
			handler.Approve,
		)

		timesheets.POST("/:id/reject",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, domain.ResourceTimesheet, domain.ActionReject),
			handler.Reject,
		)

		timesheets.POST("/:id/cancel",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, domain.ResourceTimesheet, domain.ActionCancel),
			handler.Cancel,
		)

		timesheets.DELETE("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, domain.ResourceTimesheet, domain.ActionDelete),
			handler.Delete,
		)
	}
}

package middleware

import (
	"go-payroll/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ContextLogger attaches a request scoped logger carrying request_id and
// user_id. It must run after RequestID and AuthMiddleware.
func ContextLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		rid := contextutil.GetRequestID(ctx)

		fields := []zap.Field{zap.String("request_id", rid)}
		if actor, ok := CurrentActor(c); ok {
			fields = append(fields,
				zap.String("user_id", actor.UserID),
				zap.String("company_id", actor.CompanyID),
				zap.String("role", string(actor.Role)),
			)
		}

		c.Request = c.Request.WithContext(contextutil.WithLogger(ctx, logger.With(fields...)))
		c.Next()
	}
}

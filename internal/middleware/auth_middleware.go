package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go-payroll/internal/domain"
	"go-payroll/internal/shared/apperror"
	"go-payroll/internal/shared/contextutil"
	"go-payroll/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const actorKey = "actor"

var (
	errTokenMissing = apperror.New(apperror.CodeUnauthorized, "Token not found", http.StatusUnauthorized)
	errTokenInvalid = apperror.New(apperror.CodeUnauthorized, "Invalid token", http.StatusUnauthorized)
	errTokenExpired = apperror.New(apperror.CodeUnauthorized, "Token expired", http.StatusUnauthorized)
)

// AuthMiddleware verifies an HS256 bearer token and stores the resulting
// domain.Actor on both the gin context and the request context. Tokens are
// issued elsewhere.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found || tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}
		if tokenString == "" {
			response.AbortWithError(c, errTokenMissing)
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			if errors.Is(err, jwt.ErrTokenExpired) {
				response.AbortWithError(c, errTokenExpired)
				return
			}
			response.AbortWithError(c, errTokenInvalid)
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.AbortWithError(c, errTokenInvalid)
			return
		}

		actor, err := actorFromClaims(claims)
		if err != nil {
			response.AbortWithError(c, err)
			return
		}

		c.Set(actorKey, actor)
		c.Set("user_id", actor.UserID)
		c.Set("company_id", actor.CompanyID)
		c.Request = c.Request.WithContext(contextutil.WithActor(c.Request.Context(), actor))

		c.Next()
	}
}

func actorFromClaims(claims jwt.MapClaims) (domain.Actor, error) {
	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return domain.Actor{}, apperror.New(apperror.CodeUnauthorized, "User ID not found in token", http.StatusUnauthorized)
	}

	companyID, _ := claims["company_id"].(string)
	if companyID == "" {
		return domain.Actor{}, apperror.New(apperror.CodeUnauthorized, "Company ID not found in token", http.StatusUnauthorized)
	}

	roleClaim, _ := claims["role"].(string)
	role := domain.Role(roleClaim)
	if !role.Valid() {
		return domain.Actor{}, apperror.New(apperror.CodeUnauthorized, "Unknown role in token", http.StatusUnauthorized)
	}

	workerID, _ := claims["worker_id"].(string)
	if role == domain.RoleWorker && workerID == "" {
		return domain.Actor{}, apperror.New(apperror.CodeUnauthorized, "Worker ID not found in token", http.StatusUnauthorized)
	}

	return domain.Actor{
		UserID:    userID,
		Role:      role,
		CompanyID: companyID,
		WorkerID:  workerID,
	}, nil
}

// CurrentActor returns the actor set by AuthMiddleware.
func CurrentActor(c *gin.Context) (domain.Actor, bool) {
	v, ok := c.Get(actorKey)
	if !ok {
		return domain.Actor{}, false
	}
	actor, ok := v.(domain.Actor)
	return actor, ok
}

// SetActor is used by handler tests and internal callers that bypass token parsing.
func SetActor(c *gin.Context, actor domain.Actor) {
	c.Set(actorKey, actor)
	c.Set("user_id", actor.UserID)
	c.Set("company_id", actor.CompanyID)
}

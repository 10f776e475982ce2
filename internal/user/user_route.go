package user

import (
	"github.com/roma-frontend/hr-tracker-sub000/internal/middleware"
	"github.com/roma-frontend/hr-tracker-sub000/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
) {
	users := r.Group("/users")
	{
		users.GET("/me", handler.GetMe)
		users.GET("/me/balances", handler.GetBalances)

		users.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "user", "read"),
			handler.GetAll,
		)
		users.GET("/:id",
			middleware.RBACAuthorize(rbacService, "user", "read"),
			handler.GetByID,
		)
		users.GET("/:id/balances",
			middleware.RBACAuthorize(rbacService, "user", "read"),
			handler.GetBalances,
		)
		users.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "user", "create"),
			handler.Create,
		)
		users.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "user", "update"),
			handler.Update,
		)
	}
}

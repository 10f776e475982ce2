package leave

import (
	"github.com/roma-frontend/hr-tracker-sub000/internal/middleware"
	"github.com/roma-frontend/hr-tracker-sub000/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	rdb *redis.Client,
) {
	create := []gin.HandlerFunc{
		middleware.RateLimitByUser(0.5, 3),
		middleware.RBACAuthorize(rbacService, "leave", "create"),
	}
	if rdb != nil {
		create = append(create, middleware.Idempotency(rdb))
	}
	create = append(create, handler.Create)

	leaves := r.Group("/leaves")
	{
		leaves.GET("", middleware.RBACAuthorize(rbacService, "leave", "read_all"), handler.GetAll)
		leaves.GET("/pending", middleware.RBACAuthorize(rbacService, "leave", "read_all"), handler.GetPending)
		leaves.GET("/stats", middleware.RBACAuthorize(rbacService, "leave", "stats"), handler.GetStats)
		leaves.GET("/me", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.GetMine)
		leaves.GET("/users/:userId", middleware.RBACAuthorize(rbacService, "leave", "read_all"), handler.GetByUser)
		leaves.GET("/:id", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.GetByID)

		leaves.POST("", create...)
		leaves.PUT("/:id",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "leave", "update"),
			handler.Update,
		)
		leaves.POST("/:id/approve", middleware.RBACAuthorize(rbacService, "leave", "approve"), handler.Approve)
		leaves.POST("/:id/reject", middleware.RBACAuthorize(rbacService, "leave", "approve"), handler.Reject)
		leaves.DELETE("/:id", middleware.RBACAuthorize(rbacService, "leave", "delete"), handler.Delete)
	}
}

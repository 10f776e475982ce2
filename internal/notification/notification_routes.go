package notification

import (
	"github.com/roma-frontend/hr-tracker-sub000/internal/middleware"
	"github.com/roma-frontend/hr-tracker-sub000/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	notifications := r.Group("/notifications")
	{
		notifications.GET("",
			middleware.RBACAuthorize(rbacService, "notification", "read"),
			handler.List,
		)
	}
}

package rbac_http

import (
	"github.com/roma-frontend/hr-tracker-sub000/internal/rbac"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes expects r to already carry the auth middleware.
func RegisterRoutes(r *gin.RouterGroup, handler *rbac.Handler) {
	group := r.Group("/rbac")
	{
		group.POST("/enforce", handler.Enforce)
		group.GET("/permissions", handler.ListPermissions)
	}
}

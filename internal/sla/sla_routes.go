package sla

import (
	"github.com/roma-frontend/hr-tracker-sub000/internal/middleware"
	"github.com/roma-frontend/hr-tracker-sub000/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	r.GET("/leaves/:id/sla",
		middleware.RBACAuthorize(rbacService, "sla", "read"),
		handler.GetByLeaveID,
	)
}

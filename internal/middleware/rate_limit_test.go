package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/roma-frontend/hr-tracker-sub000/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRateLimitByUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/leaves",
		func(c *gin.Context) {
			if uid := c.GetHeader("X-Test-User"); uid != "" {
				c.Set("user_id", uid)
			}
			c.Next()
		},
		middleware.RateLimitByUser(0.001, 1),
		func(c *gin.Context) { c.Status(http.StatusCreated) },
	)

	do := func(user string) int {
		req := httptest.NewRequest(http.MethodPost, "/leaves", nil)
		if user != "" {
			req.Header.Set("X-Test-User", user)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusCreated, do("u-1"))
	assert.Equal(t, http.StatusTooManyRequests, do("u-1"))
	assert.Equal(t, http.StatusCreated, do("u-2"))
	assert.Equal(t, http.StatusCreated, do(""))
	assert.Equal(t, http.StatusCreated, do(""))
}

func TestRateLimitByIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ping", middleware.RateLimitByIP(0.001, 2), func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

package response_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/roma-frontend/hr-tracker-sub000/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func contextWithQuery(query string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/?"+query, nil)
	return c
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	tests := []struct {
		name      string
		query     string
		wantItems []int
		wantMeta  response.PaginationMeta
	}{
		{
			name:      "defaults",
			query:     "",
			wantItems: []int{1, 2, 3, 4, 5},
			wantMeta:  response.PaginationMeta{Total: 5, TotalPages: 1, Page: 1, PageSize: 20},
		},
		{
			name:      "second page",
			query:     "page=2&page_size=2",
			wantItems: []int{3, 4},
			wantMeta:  response.PaginationMeta{Total: 5, TotalPages: 3, Page: 2, PageSize: 2},
		},
		{
			name:      "past the end",
			query:     "page=9&page_size=2",
			wantItems: []int{},
			wantMeta:  response.PaginationMeta{Total: 5, TotalPages: 3, Page: 9, PageSize: 2},
		},
		{
			name:      "garbage falls back",
			query:     "page=-1&page_size=abc",
			wantItems: []int{1, 2, 3, 4, 5},
			wantMeta:  response.PaginationMeta{Total: 5, TotalPages: 1, Page: 1, PageSize: 20},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, meta := response.Paginate(contextWithQuery(tt.query), items)
			assert.Equal(t, tt.wantItems, got)
			assert.Equal(t, tt.wantMeta, meta)
		})
	}
}

func TestError_Envelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	response.Error(c, http.StatusConflict, "INVALID_STATE", "Leave is not pending", nil)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"ok":false,"error":{"code":"INVALID_STATE","message":"Leave is not pending","details":null}}`, w.Body.String())
}

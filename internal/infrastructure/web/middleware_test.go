package web

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-wedding/internal/logging"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRequestIDIsPropagated(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	var seen string
	r.GET("/x", func(c *gin.Context) {
		seen = logging.RequestIDFromContext(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", seen)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestRequestIDIsGenerated(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}

func TestRecoveryReturnsJSON(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), Recovery())
	r.GET("/boom", func(c *gin.Context) { panic("kaboom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal error"}`, w.Body.String())
}

func TestPhoneValidator(t *testing.T) {
	RegisterValidators()
	type dto struct {
		Phone string `json:"phone" binding:"phone"`
	}
	r := gin.New()
	r.POST("/p", func(c *gin.Context) {
		var d dto
		if err := c.ShouldBindJSON(&d); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}
		c.Status(http.StatusOK)
	})

	for body, want := range map[string]int{
		`{"phone":"+972 54 123 4567"}`: http.StatusOK,
		`{"phone":""}`:                 http.StatusOK,
		`{"phone":"12"}`:               http.StatusBadRequest,
	} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/p", stringsReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		assert.Equal(t, want, w.Code, body)
	}
}

func stringsReader(s string) *strings.Reader { return strings.NewReader(s) }

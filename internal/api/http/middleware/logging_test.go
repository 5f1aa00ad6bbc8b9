package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abriand/user-registry-server/internal/testutil"
)

func TestLogging_SetsRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var requestID any
	r := gin.New()
	r.Use(NewLogging(testutil.MakeNoopLogger()).Handle())
	r.GET("/", func(c *gin.Context) {
		requestID, _ = c.Get("request_id")
		c.Status(http.StatusOK)
	})

	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, requestID)
}

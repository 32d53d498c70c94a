package middleware

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/banking_app/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret = "test-secret"
	testIssuer = "banking-app"
)

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(StructuredLoggingMiddleware(slog.Default()))
	r.GET("/me", AuthMiddleware(testSecret, testIssuer), func(c *gin.Context) {
		userID, ok := GetUserIDFromContext(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, userID)
	})
	return r
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	token, _, err := utils.GenerateJWT("local-42", testSecret, time.Hour, testIssuer, time.Now())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	newAuthRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "local-42", w.Body.String())
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	expired, _, err := utils.GenerateJWT("local-42", testSecret, time.Minute, testIssuer, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	foreign, _, err := utils.GenerateJWT("local-42", "another-secret", time.Hour, testIssuer, time.Now())
	require.NoError(t, err)

	tests := []struct {
		name    string
		header  string
		wantMsg string
	}{
		{"missing header", "", "Authorization header required"},
		{"wrong scheme", "Basic abc", "Authorization header format must be Bearer {token}"},
		{"expired", "Bearer " + expired, "Token has expired"},
		{"bad signature", "Bearer " + foreign, "Invalid token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			newAuthRouter().ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.JSONEq(t, `{"error":"`+tt.wantMsg+`"}`, w.Body.String())
		})
	}
}

func TestStructuredLoggingMiddleware_KeepsIncomingRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(StructuredLoggingMiddleware(slog.Default()))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(requestIDHeader, "0f8fad5b-d9cb-469f-a165-70867728950e")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "0f8fad5b-d9cb-469f-a165-70867728950e", w.Header().Get(requestIDHeader))
}

func TestPosthogEventName(t *testing.T) {
	assert.Equal(t, "api_v1_transactions_send", posthogEventName("/api/v1/transactions/send"))
	assert.Equal(t, "api_v1_accounts_by_iban_balance", posthogEventName("/api/v1/accounts/:iban/balance"))
	assert.Equal(t, "", posthogEventName(""))
}

func TestRateLimit_BlocksAfterLimit(t *testing.T) {
	lim, err := NewMemoryRateLimiter("2-M")
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/signIn", RateLimit(lim), func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/signIn", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	_, err = NewMemoryRateLimiter("lots")
	assert.Error(t, err)
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hobbymatch/internal/domain"
	"hobbymatch/internal/store"
	"hobbymatch/internal/testdb"
	"hobbymatch/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func whoami(c *gin.Context) {
	id, _ := CurrentUserID(c)
	c.JSON(http.StatusOK, gin.H{"id": id})
}

func TestJWTAuthMiddleware(t *testing.T) {
	r := gin.New()
	r.GET("/me", JWTAuthMiddleware(secret), whoami)

	token, err := utils.GenerateJWT(5, secret, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"bad token", "Bearer nope", http.StatusUnauthorized},
		{"valid", "Bearer " + token, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
			if tt.want == http.StatusOK {
				assert.JSONEq(t, `{"id":5}`, w.Body.String())
			}
		})
	}
}

func TestAdminOnlyMiddleware(t *testing.T) {
	gdb := testdb.Open(t)
	st := store.New(gdb)
	user := testdb.User(t, gdb, "plain", nil)
	admin := testdb.User(t, gdb, "boss", nil)
	require.NoError(t, gdb.Model(&admin).Update("role", domain.RoleAdmin).Error)

	r := gin.New()
	r.GET("/admin", JWTAuthMiddleware(secret), AdminOnlyMiddleware(st), whoami)

	for _, tc := range []struct {
		id   uint
		want int
	}{{user.ID, http.StatusForbidden}, {admin.ID, http.StatusOK}, {999, http.StatusForbidden}} {
		token, err := utils.GenerateJWT(tc.id, secret, time.Hour)
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, tc.want, w.Code, "user %d", tc.id)
	}
}

func TestLogMiddleware(t *testing.T) {
	logger, hook := test.NewNullLogger()
	r := gin.New()
	r.Use(LogMiddleware(logger))
	r.GET("/ok", func(c *gin.Context) { c.String(http.StatusOK, RequestID(c)) })

	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set(RequestIDKey, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Body.String())
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDKey))
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, "/ok", entry.Data["path"])
	assert.Equal(t, http.StatusOK, entry.Data["status"])

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.NotEmpty(t, w.Header().Get(RequestIDKey))
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

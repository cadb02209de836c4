package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"carrental/models"
	"carrental/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers := append(mw, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userID": c.GetString("userID"), "role": c.GetString("role")})
	})
	r.GET("/x", handlers...)
	return r
}

func get(r *gin.Engine, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuthMiddleware(t *testing.T) {
	r := newRouter(JWTAuthMiddleware())

	t.Run("valid token", func(t *testing.T) {
		token, err := utils.GenerateToken("u-1", "a@example.com", "driver", time.Hour)
		require.NoError(t, err)
		w := get(r, map[string]string{"Authorization": "Bearer " + token})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"userID":"u-1","role":"driver"}`, w.Body.String())
	})

	t.Run("missing header", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, get(r, nil).Code)
	})

	t.Run("not bearer", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, get(r, map[string]string{"Authorization": "Basic abc"}).Code)
	})

	t.Run("expired", func(t *testing.T) {
		token, err := utils.GenerateToken("u-1", "a@example.com", "renter", -time.Minute)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, get(r, map[string]string{"Authorization": "Bearer " + token}).Code)
	})

	t.Run("unknown role", func(t *testing.T) {
		token, err := utils.GenerateToken("u-1", "a@example.com", "admin", time.Hour)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, get(r, map[string]string{"Authorization": "Bearer " + token}).Code)
	})
}

func TestRequireRoles(t *testing.T) {
	setRole := func(role string) gin.HandlerFunc {
		return func(c *gin.Context) {
			c.Set("userID", "u-1")
			c.Set("role", role)
		}
	}

	ok := get(newRouter(setRole("manager"), RequireRoles(models.RoleManager)), nil)
	assert.Equal(t, http.StatusOK, ok.Code)

	denied := get(newRouter(setRole("renter"), RequireRoles(models.RoleManager, models.RoleDriver)), nil)
	assert.Equal(t, http.StatusForbidden, denied.Code)
	assert.Contains(t, denied.Body.String(), utils.PermissionDenied)
	assert.Contains(t, denied.Body.String(), "only manager, driver")
}

func TestRateLimitMiddleware(t *testing.T) {
	r := newRouter(RateLimitMiddleware(2))
	hdr := map[string]string{"X-Forwarded-For": "203.0.113.7"}

	assert.Equal(t, http.StatusOK, get(r, hdr).Code)
	assert.Equal(t, http.StatusOK, get(r, hdr).Code)
	assert.Equal(t, http.StatusTooManyRequests, get(r, hdr).Code)

	// separate bucket per client
	assert.Equal(t, http.StatusOK, get(r, map[string]string{"X-Forwarded-For": "203.0.113.8"}).Code)
}

func TestGetClientIP(t *testing.T) {
	cases := []struct {
		name   string
		header map[string]string
		remote string
		want   string
	}{
		{"forwarded list", map[string]string{"X-Forwarded-For": "198.51.100.1, 10.0.0.1"}, "10.0.0.2:1234", "198.51.100.1"},
		{"real ip", map[string]string{"X-Real-IP": "198.51.100.2"}, "10.0.0.2:1234", "198.51.100.2"},
		{"garbage forwarded", map[string]string{"X-Forwarded-For": "not-an-ip"}, "10.0.0.2:1234", "10.0.0.2"},
		{"remote only", nil, "192.0.2.9:443", "192.0.2.9"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			c.Request.RemoteAddr = tc.remote
			for k, v := range tc.header {
				c.Request.Header.Set(k, v)
			}
			assert.Equal(t, tc.want, getClientIP(c))
		})
	}
}

func TestRequestLogger(t *testing.T) {
	r := newRouter(RequestLogger())
	w := get(r, map[string]string{requestIDHeader: "req-42"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "req-42", w.Header().Get(requestIDHeader))

	w = get(r, nil)
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))
}

package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/carehome-admin/internal/domain/access"
	"github.com/oksasatya/carehome-admin/internal/domain/entity"
	"github.com/oksasatya/carehome-admin/pkg/helpers"
)

func init() { gin.SetMode(gin.TestMode) }

func newEngine(t *testing.T, jwt *helpers.JWTManager) *gin.Engine {
	t.Helper()
	tables, err := access.Default()
	require.NoError(t, err)

	r := gin.New()
	r.Use(RequestIDMiddleware(), RealIP())
	api := r.Group("/api", Auth(jwt), RequireAccess(tables))
	whoami := func(c *gin.Context) { c.JSON(http.StatusOK, IdentityFrom(c)) }
	api.GET("/me", whoami)
	api.GET("/admins", whoami)
	api.GET("/events", whoami)
	api.GET("/unlisted", whoami)
	return r
}

func token(t *testing.T, jwt *helpers.JWTManager, uid, role string) string {
	t.Helper()
	tok, _, err := jwt.GenerateAccessToken(uid, role)
	require.NoError(t, err)
	return tok
}

func do(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuth_MissingToken(t *testing.T) {
	r := newEngine(t, helpers.NewJWTManager("s", time.Hour))
	w := do(r, httptest.NewRequest(http.MethodGet, "/api/me", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "missing access token", body["message"])
	assert.Equal(t, w.Header().Get(RequestIDHeader), body["request_id"])
}

func TestAuth_BearerSetsIdentity(t *testing.T) {
	jwt := helpers.NewJWTManager("s", time.Hour)
	r := newEngine(t, jwt)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, jwt, "staff7", "careProvider"))
	w := do(r, req)
	require.Equal(t, http.StatusOK, w.Code)

	var got entity.Identity
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, entity.Identity{ID: "staff7", Role: entity.RoleNurse}, got)
}

func TestAuth_CookieAccepted(t *testing.T) {
	jwt := helpers.NewJWTManager("s", time.Hour)
	r := newEngine(t, jwt)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: token(t, jwt, "family3", "family")})
	assert.Equal(t, http.StatusOK, do(r, req).Code)
}

func TestAuth_BadSignature(t *testing.T) {
	r := newEngine(t, helpers.NewJWTManager("s", time.Hour))
	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, helpers.NewJWTManager("other", time.Hour), "a", "admin"))
	assert.Equal(t, http.StatusUnauthorized, do(r, req).Code)
}

func TestRequireAccess(t *testing.T) {
	jwt := helpers.NewJWTManager("s", time.Hour)
	r := newEngine(t, jwt)

	cases := []struct {
		path string
		role string
		want int
	}{
		{"/api/admins", "admin", http.StatusOK},
		{"/api/admins", "nurse", http.StatusForbidden},
		{"/api/events", "family", http.StatusOK},
		{"/api/events", "resident", http.StatusForbidden},
		{"/api/me", "root", http.StatusForbidden},
		{"/api/unlisted", "root", http.StatusOK},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, tc.path, nil)
		req.Header.Set("Authorization", "Bearer "+token(t, jwt, "u1", tc.role))
		assert.Equalf(t, tc.want, do(r, req).Code, "%s as %s", tc.path, tc.role)
	}
}

func TestRequestID_ReusesHeader(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("request_id")) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := do(r, req)
	assert.Equal(t, "abc-123", w.Body.String())
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))

	w = do(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, w.Body.String(), 36)
}

func TestRealIP_PrefersForwardedHeaders(t *testing.T) {
	r := gin.New()
	r.Use(RealIP())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("real_ip")) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	assert.Equal(t, "203.0.113.9", do(r, req).Body.String())

	req.Header.Set("CF-Connecting-IP", "198.51.100.4")
	assert.Equal(t, "198.51.100.4", do(r, req).Body.String())
}

func TestPrivateOnly(t *testing.T) {
	r := gin.New()
	r.Use(RealIP())
	r.GET("/vars", PrivateOnly(), func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/vars", nil)
	req.RemoteAddr = "10.1.2.3:5000"
	assert.Equal(t, http.StatusOK, do(r, req).Code)

	req = httptest.NewRequest(http.MethodGet, "/vars", nil)
	req.RemoteAddr = "8.8.8.8:5000"
	assert.Equal(t, http.StatusForbidden, do(r, req).Code)
}

func TestRateLimit_DisabledWithoutRedis(t *testing.T) {
	r := gin.New()
	r.GET("/", RateLimit(nil, 1, time.Minute, KeyByIP(), nil), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusNoContent, do(r, httptest.NewRequest(http.MethodGet, "/", nil)).Code)
	}
}

func TestKeyByUserID(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Set("real_ip", "10.0.0.7")
	assert.Equal(t, "rl:user:anon:ip:10.0.0.7", KeyByUserID()(c))

	c.Set(CtxUserIDKey, "staff1")
	assert.Equal(t, "rl:user:staff1", KeyByUserID()(c))
	assert.Equal(t, "rl:ip:10.0.0.7", KeyByIP()(c))
}

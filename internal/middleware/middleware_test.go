package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"confetex-be/internal/auth"
	"confetex-be/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler(t *testing.T, called *bool) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "mw-secret")

	token, err := auth.GenerateJWT(3, "sales", "v@confetex.pe")
	require.NoError(t, err)

	var gotID int64
	var gotRole string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = utils.GetUserIDFromContext(r.Context())
		gotRole = utils.GetUserRoleFromContext(r.Context())
	})

	r := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	AuthMiddleware(next).ServeHTTP(httptest.NewRecorder(), r)

	assert.Equal(t, int64(3), gotID)
	assert.Equal(t, "sales", gotRole)
}

func TestAuthMiddleware_BadTokenPassesThroughAnonymous(t *testing.T) {
	t.Setenv("JWT_SECRET", "mw-secret")

	var anonymous bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok := utils.GetUserIDFromContext(r.Context())
		anonymous = !ok
	})

	r := httptest.NewRequest(http.MethodGet, "/api/catalog", nil)
	r.Header.Set("Authorization", "Bearer garbage")
	AuthMiddleware(next).ServeHTTP(httptest.NewRecorder(), r)

	assert.True(t, anonymous)
}

func TestRequireAuth(t *testing.T) {
	var called bool
	h := RequireAuth(okHandler(t, &called))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r = r.WithContext(utils.SetUserContext(r.Context(), 1, "a@b.pe", "warehouse"))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name     string
		role     string
		allowed  []string
		wantCode int
	}{
		{"matching role", "sales", []string{"sales"}, http.StatusOK},
		{"admin always passes", "admin", []string{"warehouse"}, http.StatusOK},
		{"wrong role", "production", []string{"sales"}, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var called bool
			h := RequireRole(tt.allowed...)(okHandler(t, &called))

			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r = r.WithContext(utils.SetUserContext(r.Context(), 9, "x@y.pe", tt.role))
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, r)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantCode == http.StatusOK, called)
		})
	}
}

func TestRequireRole_Anonymous(t *testing.T) {
	var called bool
	h := RequireRole("sales")(okHandler(t, &called))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestRateLimit_StrictTier(t *testing.T) {
	var hits int
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { hits++ })
	h := RateLimitMiddleware(next)

	var lastCode int
	for i := 0; i < burstStrict+3; i++ {
		r := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		r.RemoteAddr = "10.1.2.3:5000"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, r)
		lastCode = rec.Code
	}

	assert.Equal(t, http.StatusTooManyRequests, lastCode)
	assert.Equal(t, burstStrict, hits, "only the burst should get through")
}

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coldpitch/backend/internal/infrastructure/auth"
	"github.com/coldpitch/backend/internal/infrastructure/config"
)

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-for-middleware",
		AccessTokenExpiration:  time.Hour,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "coldpitch-test",
		MaxRefreshCount:        10,
	})
}

func issueAccessToken(t *testing.T, svc *auth.JWTService, role string) (string, *auth.Claims) {
	t.Helper()
	pair, err := svc.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:  uuid.New(),
		StaffID: uuid.New(),
		Email:   "sam@coldpitch.test",
		Role:    role,
	})
	require.NoError(t, err)
	claims, err := svc.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	return pair.AccessToken, claims
}

func newAuthedRouter(svc *auth.JWTService, cfg *JWTMiddlewareConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	if cfg != nil {
		router.Use(JWTAuthMiddlewareWithConfig(*cfg))
	} else {
		router.Use(JWTAuthMiddleware(svc))
	}
	router.GET("/api/v1/prospects", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id":  GetJWTUserID(c),
			"staff_id": GetJWTStaffID(c),
			"email":    GetJWTEmail(c),
			"role":     GetJWTRole(c),
		})
	})
	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return router
}

func TestJWTAuthMiddleware(t *testing.T) {
	svc := newTestJWTService()

	t.Run("valid token passes and populates context", func(t *testing.T) {
		token, claims := issueAccessToken(t, svc, "Member")
		router := newAuthedRouter(svc, nil)

		req := httptest.NewRequest("GET", "/api/v1/prospects", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), claims.UserID)
		assert.Contains(t, w.Body.String(), claims.StaffID)
		assert.Contains(t, w.Body.String(), "sam@coldpitch.test")
		assert.Contains(t, w.Body.String(), "Member")
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		router := newAuthedRouter(svc, nil)

		req := httptest.NewRequest("GET", "/api/v1/prospects", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "TOKEN_INVALID")
	})

	t.Run("malformed header is rejected", func(t *testing.T) {
		router := newAuthedRouter(svc, nil)

		req := httptest.NewRequest("GET", "/api/v1/prospects", nil)
		req.Header.Set("Authorization", "Basic abc123")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		router := newAuthedRouter(svc, nil)

		req := httptest.NewRequest("GET", "/api/v1/prospects", nil)
		req.Header.Set("Authorization", "Bearer not.a.token")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "TOKEN_INVALID")
	})

	t.Run("expired token is rejected with TOKEN_EXPIRED", func(t *testing.T) {
		expiredSvc := auth.NewJWTService(config.JWTConfig{
			Secret:                 "test-secret-key-for-middleware",
			AccessTokenExpiration:  -time.Minute,
			RefreshTokenExpiration: 24 * time.Hour,
			Issuer:                 "coldpitch-test",
			MaxRefreshCount:        10,
		})
		pair, err := expiredSvc.GenerateTokenPair(auth.GenerateTokenInput{
			UserID: uuid.New(),
			Email:  "sam@coldpitch.test",
			Role:   "Member",
		})
		require.NoError(t, err)

		router := newAuthedRouter(svc, nil)
		req := httptest.NewRequest("GET", "/api/v1/prospects", nil)
		req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "TOKEN_EXPIRED")
	})

	t.Run("skip paths bypass authentication", func(t *testing.T) {
		router := newAuthedRouter(svc, nil)

		req := httptest.NewRequest("GET", "/health", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("skip path prefixes bypass authentication", func(t *testing.T) {
		cfg := DefaultJWTConfig(svc)
		cfg.SkipPathPrefixes = []string{"/api/v1/prospects"}
		router := newAuthedRouter(svc, &cfg)

		req := httptest.NewRequest("GET", "/api/v1/prospects", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestJWTAuthMiddleware_Blacklist(t *testing.T) {
	svc := newTestJWTService()

	t.Run("blacklisted JTI is rejected", func(t *testing.T) {
		token, claims := issueAccessToken(t, svc, "Member")

		blacklist := auth.NewInMemoryTokenBlacklist()
		require.NoError(t, blacklist.AddToBlacklist(context.Background(), claims.ID, time.Hour))

		cfg := DefaultJWTConfig(svc)
		cfg.TokenBlacklist = blacklist
		router := newAuthedRouter(svc, &cfg)

		req := httptest.NewRequest("GET", "/api/v1/prospects", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "TOKEN_REVOKED")
	})

	t.Run("user-wide invalidation rejects earlier tokens", func(t *testing.T) {
		token, claims := issueAccessToken(t, svc, "Member")

		blacklist := auth.NewInMemoryTokenBlacklist()
		require.NoError(t, blacklist.AddUserTokensToBlacklist(context.Background(), claims.UserID, 24*time.Hour))

		cfg := DefaultJWTConfig(svc)
		cfg.TokenBlacklist = blacklist
		router := newAuthedRouter(svc, &cfg)

		req := httptest.NewRequest("GET", "/api/v1/prospects", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "TOKEN_REVOKED")
	})

	t.Run("clean token passes blacklist checks", func(t *testing.T) {
		token, _ := issueAccessToken(t, svc, "Member")

		cfg := DefaultJWTConfig(svc)
		cfg.TokenBlacklist = auth.NewInMemoryTokenBlacklist()
		router := newAuthedRouter(svc, &cfg)

		req := httptest.NewRequest("GET", "/api/v1/prospects", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := newTestJWTService()

	newAdminRouter := func() *gin.Engine {
		router := gin.New()
		router.Use(JWTAuthMiddleware(svc))
		admin := router.Group("/api/v1/admin", RequireAdmin())
		admin.DELETE("/users/:id", func(c *gin.Context) {
			c.Status(http.StatusNoContent)
		})
		return router
	}

	t.Run("admin role is allowed", func(t *testing.T) {
		token, _ := issueAccessToken(t, svc, AdminRole)
		router := newAdminRouter()

		req := httptest.NewRequest("DELETE", "/api/v1/admin/users/123", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("member role is forbidden", func(t *testing.T) {
		token, _ := issueAccessToken(t, svc, "Member")
		router := newAdminRouter()

		req := httptest.NewRequest("DELETE", "/api/v1/admin/users/123", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "FORBIDDEN")
	})

	t.Run("unauthenticated request never reaches the guard", func(t *testing.T) {
		router := newAdminRouter()

		req := httptest.NewRequest("DELETE", "/api/v1/admin/users/123", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestGetJWTHelpers_EmptyContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	assert.Nil(t, GetJWTClaims(c))
	assert.Empty(t, GetJWTUserID(c))
	assert.Empty(t, GetJWTStaffID(c))
	assert.Empty(t, GetJWTEmail(c))
	assert.Empty(t, GetJWTRole(c))
}

package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	authapp "github.com/coldpitch/backend/internal/application/auth"
	"github.com/coldpitch/backend/internal/infrastructure/config"
	"github.com/coldpitch/backend/internal/interfaces/http/middleware"
)

// refreshTokenCookie is the name of the httpOnly refresh token cookie
const refreshTokenCookie = "refresh_token"

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	BaseHandler
	authService *authapp.AuthService
	cookieCfg   config.CookieConfig
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *authapp.AuthService, cookieCfg config.CookieConfig) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cookieCfg:   cookieCfg,
	}
}

// TokenResponse carries the access token. The refresh token travels in
// an httpOnly cookie and is never echoed in the body.
type TokenResponse struct {
	AccessToken          string    `json:"access_token"`
	AccessTokenExpiresAt time.Time `json:"access_token_expires_at"`
	TokenType            string    `json:"token_type"`
}

// LoginResponse is the response body for a successful login
type LoginResponse struct {
	Token TokenResponse    `json:"token"`
	User  authapp.UserInfo `json:"user"`
}

// Login authenticates with email and password
func (h *AuthHandler) Login(c *gin.Context) {
	var req authapp.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.setRefreshCookie(c, result.RefreshToken, result.RefreshTokenExpiresAt)

	h.Success(c, LoginResponse{
		Token: TokenResponse{
			AccessToken:          result.AccessToken,
			AccessTokenExpiresAt: result.AccessTokenExpiresAt,
			TokenType:            result.TokenType,
		},
		User: result.User,
	})
}

// RefreshToken exchanges a refresh token for a new token pair. The
// token is read from the httpOnly cookie; a JSON body is accepted as a
// fallback for non-browser clients.
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	token, err := c.Cookie(refreshTokenCookie)
	if err != nil || token == "" {
		var req authapp.RefreshRequest
		if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
			h.Unauthorized(c, "Refresh token required")
			return
		}
		token = req.RefreshToken
	}

	result, err := h.authService.RefreshToken(c.Request.Context(), authapp.RefreshRequest{
		RefreshToken: token,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.setRefreshCookie(c, result.RefreshToken, result.RefreshTokenExpiresAt)

	h.Success(c, TokenResponse{
		AccessToken:          result.AccessToken,
		AccessTokenExpiresAt: result.AccessTokenExpiresAt,
		TokenType:            result.TokenType,
	})
}

// Logout revokes the current session and clears the refresh cookie
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetJWTClaims(c)
	if claims == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	if err := h.authService.Logout(c.Request.Context(), claims); err != nil {
		h.HandleError(c, err)
		return
	}

	h.clearRefreshCookie(c)

	h.Success(c, gin.H{"message": "Logged out successfully"})
}

// GetCurrentUser returns the authenticated staff member's profile
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	info, err := h.authService.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, info)
}

// ChangePassword changes the current user's password. All existing
// sessions for the user are invalidated.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req authapp.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), userID, req); err != nil {
		h.HandleError(c, err)
		return
	}

	h.clearRefreshCookie(c)

	h.Success(c, gin.H{"message": "Password changed successfully"})
}

func (h *AuthHandler) setRefreshCookie(c *gin.Context, token string, expiresAt time.Time) {
	c.SetSameSite(parseSameSite(h.cookieCfg.SameSite))
	maxAge := int(time.Until(expiresAt).Seconds())
	if maxAge < 0 {
		maxAge = 0
	}
	c.SetCookie(
		refreshTokenCookie,
		token,
		maxAge,
		h.cookieCfg.Path,
		h.cookieCfg.Domain,
		h.cookieCfg.Secure,
		true, // httpOnly, keep the token out of reach of scripts
	)
}

func (h *AuthHandler) clearRefreshCookie(c *gin.Context) {
	c.SetSameSite(parseSameSite(h.cookieCfg.SameSite))
	c.SetCookie(
		refreshTokenCookie,
		"",
		-1,
		h.cookieCfg.Path,
		h.cookieCfg.Domain,
		h.cookieCfg.Secure,
		true,
	)
}

func parseSameSite(mode string) http.SameSite {
	switch mode {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}

package auth

import (
	"context"
	"time"

	"github.com/coldpitch/backend/internal/domain/shared"
	"github.com/coldpitch/backend/internal/domain/staff"
	"github.com/coldpitch/backend/internal/infrastructure/auth"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PasswordVerifier checks a plaintext password against a stored hash
// and produces hashes for new passwords.
type PasswordVerifier interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// AuthService handles authentication use cases
type AuthService struct {
	authUserRepo staff.AuthUserRepository
	staffRepo    staff.Repository
	jwtService   *auth.JWTService
	passwords    PasswordVerifier
	blacklist    auth.TokenBlacklist
	logger       *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	authUserRepo staff.AuthUserRepository,
	staffRepo staff.Repository,
	jwtService *auth.JWTService,
	passwords PasswordVerifier,
	blacklist auth.TokenBlacklist,
	logger *zap.Logger,
) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		authUserRepo: authUserRepo,
		staffRepo:    staffRepo,
		jwtService:   jwtService,
		passwords:    passwords,
		blacklist:    blacklist,
		logger:       logger,
	}
}

// Login authenticates a staff member and returns tokens
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	s.logger.Info("Login attempt", zap.String("email", req.Email))

	authUser, err := s.authUserRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		s.logger.Warn("Unknown email during login", zap.String("email", req.Email))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	if err := s.passwords.Compare(authUser.PasswordHash, req.Password); err != nil {
		s.logger.Warn("Invalid password attempt", zap.String("email", req.Email))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	member, err := s.staffRepo.FindByAuthUserID(ctx, authUser.ID)
	if err != nil {
		s.logger.Warn("Credentials without a staff profile", zap.String("email", req.Email))
		return nil, shared.NewDomainError("ACCOUNT_INACTIVE", "Account is not active")
	}

	if !member.CanLogin() {
		s.logger.Warn("Login attempt for suspended account", zap.String("email", req.Email))
		return nil, shared.NewDomainError("ACCOUNT_SUSPENDED", "Account has been suspended")
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:  authUser.ID,
		StaffID: member.ID,
		Email:   member.Email,
		Role:    string(member.Role),
	})
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication tokens")
	}

	// Login stamps are best-effort; a failed save never blocks login
	now := time.Now()
	authUser.RecordLogin(now)
	if err := s.authUserRepo.Save(ctx, authUser); err != nil {
		s.logger.Error("Failed to stamp auth user login", zap.Error(err))
	}
	member.RecordLogin(now)
	if err := s.staffRepo.Save(ctx, member); err != nil {
		s.logger.Error("Failed to stamp staff login", zap.Error(err))
	}

	s.logger.Info("Staff logged in",
		zap.String("email", member.Email),
		zap.String("staff_id", member.ID.String()))

	return &LoginResult{
		AccessToken:           tokenPair.AccessToken,
		RefreshToken:          tokenPair.RefreshToken,
		AccessTokenExpiresAt:  tokenPair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: tokenPair.RefreshTokenExpiresAt,
		TokenType:             tokenPair.TokenType,
		User: UserInfo{
			ID:      authUser.ID,
			StaffID: member.ID,
			Name:    member.Name,
			Email:   member.Email,
			Role:    string(member.Role),
			IsAdmin: member.IsAdmin(),
		},
	}, nil
}

// RefreshToken exchanges a valid refresh token for a new token pair.
// The staff profile is re-read so role changes and suspensions take
// effect on the next refresh.
func (s *AuthService) RefreshToken(ctx context.Context, req RefreshRequest) (*RefreshResult, error) {
	claims, err := s.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, mapTokenError(err)
	}

	userID, err := claims.GetUserUUID()
	if err != nil {
		return nil, shared.NewDomainError("TOKEN_INVALID", "Invalid user ID in token")
	}

	if s.blacklist != nil {
		if revoked, err := s.blacklist.IsBlacklisted(ctx, claims.ID); err == nil && revoked {
			return nil, shared.NewDomainError("TOKEN_REVOKED", "Refresh token has been revoked")
		}
	}

	authUser, err := s.authUserRepo.FindByID(ctx, userID)
	if err != nil {
		s.logger.Warn("Auth user not found during refresh", zap.String("user_id", userID.String()))
		return nil, shared.NewDomainError("USER_NOT_FOUND", "Account no longer exists")
	}

	member, err := s.staffRepo.FindByAuthUserID(ctx, authUser.ID)
	if err != nil || !member.CanLogin() {
		s.logger.Warn("Token refresh for inactive account", zap.String("user_id", userID.String()))
		return nil, shared.NewDomainError("ACCOUNT_INACTIVE", "Account is no longer active")
	}

	tokenPair, err := s.jwtService.RefreshTokenPair(req.RefreshToken, member.ID, member.Email, string(member.Role))
	if err != nil {
		return nil, mapTokenError(err)
	}

	s.logger.Info("Token refreshed", zap.String("staff_id", member.ID.String()))

	return &RefreshResult{
		AccessToken:           tokenPair.AccessToken,
		RefreshToken:          tokenPair.RefreshToken,
		AccessTokenExpiresAt:  tokenPair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: tokenPair.RefreshTokenExpiresAt,
		TokenType:             tokenPair.TokenType,
	}, nil
}

// Logout revokes the presented access token for its remaining lifetime
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	if s.blacklist == nil || claims == nil {
		return nil
	}

	ttl := claims.GetRemainingTTL()
	if ttl <= 0 {
		return nil
	}

	if err := s.blacklist.AddToBlacklist(ctx, claims.ID, ttl); err != nil {
		s.logger.Error("Failed to blacklist token on logout",
			zap.String("user_id", claims.UserID), zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to revoke token")
	}

	s.logger.Info("Staff logged out", zap.String("user_id", claims.UserID))
	return nil
}

// GetCurrentUser returns the profile behind an authenticated token
func (s *AuthService) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*UserInfo, error) {
	authUser, err := s.authUserRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, shared.NewDomainError("USER_NOT_FOUND", "Account not found")
	}

	member, err := s.staffRepo.FindByAuthUserID(ctx, authUser.ID)
	if err != nil {
		return nil, shared.NewDomainError("USER_NOT_FOUND", "Staff profile not found")
	}

	return &UserInfo{
		ID:      authUser.ID,
		StaffID: member.ID,
		Name:    member.Name,
		Email:   member.Email,
		Role:    string(member.Role),
		IsAdmin: member.IsAdmin(),
	}, nil
}

// ChangePassword verifies the old password and stores a new hash
func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, req ChangePasswordRequest) error {
	authUser, err := s.authUserRepo.FindByID(ctx, userID)
	if err != nil {
		return shared.NewDomainError("USER_NOT_FOUND", "Account not found")
	}

	if err := s.passwords.Compare(authUser.PasswordHash, req.OldPassword); err != nil {
		return shared.NewDomainError("INVALID_CREDENTIALS", "Current password is incorrect")
	}

	hash, err := s.passwords.Hash(req.NewPassword)
	if err != nil {
		s.logger.Error("Failed to hash new password", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to update password")
	}

	if err := authUser.ChangePassword(hash); err != nil {
		return err
	}

	if err := s.authUserRepo.Save(ctx, authUser); err != nil {
		s.logger.Error("Failed to save password change", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to update password")
	}

	s.logger.Info("Password changed", zap.String("user_id", userID.String()))
	return nil
}

func mapTokenError(err error) error {
	switch err {
	case auth.ErrExpiredToken:
		return shared.NewDomainError("TOKEN_EXPIRED", "Refresh token has expired")
	case auth.ErrInvalidToken, auth.ErrInvalidClaims, auth.ErrInvalidTokenType:
		return shared.NewDomainError("TOKEN_INVALID", "Invalid refresh token")
	case auth.ErrMaxRefreshExceeded:
		return shared.NewDomainError("TOKEN_MAX_REFRESH", "Maximum token refresh count exceeded. Please log in again")
	default:
		return shared.NewDomainError("TOKEN_ERROR", "Failed to validate refresh token")
	}
}

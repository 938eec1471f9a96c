package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dimitrije/sweetshop-api/internal/middleware"
	"github.com/dimitrije/sweetshop-api/internal/models"
	"github.com/dimitrije/sweetshop-api/internal/services"
	"github.com/dimitrije/sweetshop-api/pkg/dto"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"go.uber.org/zap"
)

type AuthHandler struct {
	userService    UserServiceInterface
	profileService ProfileServiceInterface
	tokenService   TokenServiceInterface
	jwtService     JWTServiceInterface
	logger         *zap.Logger
}

func NewAuthHandler(
	userService UserServiceInterface,
	profileService ProfileServiceInterface,
	tokenService TokenServiceInterface,
	jwtService JWTServiceInterface,
	logger *zap.Logger,
) *AuthHandler {
	return &AuthHandler{
		userService:    userService,
		profileService: profileService,
		tokenService:   tokenService,
		jwtService:     jwtService,
		logger:         logger,
	}
}

func (h *AuthHandler) SignUp(c *drift.Context) {
	var req dto.CredentialsRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	ctx := c.Request.Context()

	user, err := h.userService.SignUp(ctx, req.Email, req.Password)
	if err != nil {
		respondError(c, h.logger, err, "failed to sign up")
		return
	}

	tokens, err := h.issueTokens(ctx, user)
	if err != nil {
		h.logger.Error("failed to issue tokens", zap.String("user_id", user.ID.String()), zap.Error(err))
		c.InternalServerError("failed to create session")
		return
	}

	h.logger.Info("user signed up", zap.String("user_id", user.ID.String()))
	_ = c.JSON(http.StatusCreated, dto.AuthResponse{User: userResponse(user), TokenResponse: *tokens})
}

func (h *AuthHandler) SignIn(c *drift.Context) {
	var req dto.CredentialsRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		c.BadRequest("email and password are required")
		return
	}

	ctx := c.Request.Context()

	user, err := h.userService.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		respondError(c, h.logger, err, "failed to sign in")
		return
	}

	tokens, err := h.issueTokens(ctx, user)
	if err != nil {
		h.logger.Error("failed to issue tokens", zap.String("user_id", user.ID.String()), zap.Error(err))
		c.InternalServerError("failed to create session")
		return
	}

	_ = c.JSON(http.StatusOK, dto.AuthResponse{User: userResponse(user), TokenResponse: *tokens})
}

// RefreshToken rotates the refresh token. A token can be used once.
func (h *AuthHandler) RefreshToken(c *drift.Context) {
	var req dto.RefreshTokenRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}
	if req.RefreshToken == "" {
		c.BadRequest("refresh_token is required")
		return
	}

	userID, err := h.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		c.Unauthorized("invalid refresh token")
		return
	}

	ctx := c.Request.Context()

	user, err := h.userService.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.Unauthorized("invalid refresh token")
			return
		}
		respondError(c, h.logger, err, "failed to refresh session")
		return
	}

	tokenPair, err := h.jwtService.GenerateTokenPair(user.ID, user.Email)
	if err != nil {
		c.InternalServerError("failed to generate tokens")
		return
	}

	err = h.tokenService.RotateRefreshToken(ctx, user.ID,
		services.HashToken(req.RefreshToken),
		services.HashToken(tokenPair.RefreshToken),
		time.Now().Add(h.jwtService.RefreshExpiry()),
	)
	if err != nil {
		if errors.Is(err, services.ErrSessionNotFound) {
			c.Unauthorized("invalid refresh token")
			return
		}
		respondError(c, h.logger, err, "failed to refresh session")
		return
	}

	_ = c.JSON(http.StatusOK, dto.TokenResponse{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresIn:    tokenPair.ExpiresIn,
	})
}

func (h *AuthHandler) SignOut(c *drift.Context) {
	var req dto.RefreshTokenRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.RefreshToken != "" {
		if err := h.tokenService.RevokeRefreshToken(c.Request.Context(), services.HashToken(req.RefreshToken)); err != nil {
			h.logger.Warn("failed to revoke refresh token", zap.Error(err))
		}
	}

	_ = c.JSON(http.StatusOK, map[string]string{"message": "signed out"})
}

func (h *AuthHandler) SignOutAll(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	if err := h.tokenService.RevokeAllUserTokens(c.Request.Context(), userID); err != nil {
		h.logger.Error("failed to revoke tokens", zap.String("user_id", userID.String()), zap.Error(err))
		c.InternalServerError("failed to revoke tokens")
		return
	}

	_ = c.JSON(http.StatusOK, map[string]string{"message": "all sessions signed out"})
}

// Session reports the caller, their role and the capability resolved for
// this request.
func (h *AuthHandler) Session(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	ctx := c.Request.Context()

	user, err := h.userService.GetByID(ctx, userID)
	if err != nil {
		respondError(c, h.logger, err, "failed to get session")
		return
	}

	role := ""
	if profile, err := h.profileService.GetByID(ctx, userID); err == nil {
		role = profile.Role
	}

	_ = c.JSON(http.StatusOK, dto.SessionResponse{
		User:    userResponse(user),
		Role:    role,
		IsAdmin: middleware.GetCapability(c).IsAdmin,
	})
}

func (h *AuthHandler) issueTokens(ctx context.Context, user *models.User) (*dto.TokenResponse, error) {
	tokenPair, err := h.jwtService.GenerateTokenPair(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	expiresAt := time.Now().Add(h.jwtService.RefreshExpiry())
	if err := h.tokenService.StoreRefreshToken(ctx, user.ID, services.HashToken(tokenPair.RefreshToken), expiresAt); err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresIn:    tokenPair.ExpiresIn,
	}, nil
}

func userResponse(u *models.User) dto.UserResponse {
	return dto.UserResponse{ID: u.ID, Email: u.Email}
}

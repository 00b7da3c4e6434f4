package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-reservation/internal/config"
	"github.com/iliyamo/restaurant-reservation/internal/middleware"
	"github.com/iliyamo/restaurant-reservation/internal/repository"
	"github.com/iliyamo/restaurant-reservation/internal/utils"
)

// AdminAuthHandler implements login, token refresh and profile
// management for dashboard staff.
type AdminAuthHandler struct {
	Admins *repository.AdminRepository
	Cfg    config.Config
}

// NewAdminAuthHandler creates a new AdminAuthHandler instance.
func NewAdminAuthHandler(admins *repository.AdminRepository, cfg config.Config) *AdminAuthHandler {
	return &AdminAuthHandler{Admins: admins, Cfg: cfg}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    string `json:"expires_at"`
	Role         string `json:"role"`
	FullName     string `json:"full_name"`
}

// Login verifies credentials and issues an access/refresh token pair.
// Unknown usernames and wrong passwords get the same response so the
// endpoint does not leak which accounts exist.
func (h *AdminAuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	admin, err := h.Admins.GetByUsername(c.Request().Context(), strings.TrimSpace(req.Username))
	if errors.Is(err, repository.ErrNotFound) || (err == nil && !utils.VerifyPassword(admin.PasswordHash, req.Password)) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid username or password"})
	}
	if err != nil {
		return writeBookingError(c, err)
	}
	return h.issueTokens(c, admin.ID, admin.Role, admin.FullName)
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Refresh rotates a refresh token: the presented token is revoked and
// a fresh pair is issued.
func (h *AdminAuthHandler) Refresh(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil || req.RefreshToken == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "refresh_token is required"})
	}
	ctx := c.Request().Context()
	stored, err := h.Admins.FindValidRefreshToken(ctx, utils.HashRefreshRaw(req.RefreshToken))
	if errors.Is(err, repository.ErrNotFound) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired refresh token"})
	}
	if err != nil {
		return writeBookingError(c, err)
	}
	admin, err := h.Admins.GetByID(ctx, stored.AdminID)
	if err != nil {
		return writeBookingError(c, err)
	}
	if err := h.Admins.RevokeRefreshToken(ctx, stored.ID); err != nil {
		return writeBookingError(c, err)
	}
	return h.issueTokens(c, admin.ID, admin.Role, admin.FullName)
}

func (h *AdminAuthHandler) issueTokens(c echo.Context, adminID uint64, role, fullName string) error {
	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, adminID, role, h.Cfg.AccessTTLMin)
	if err != nil {
		return writeBookingError(c, err)
	}
	refresh, err := utils.NewRefreshToken(h.Cfg.RefreshTTLDays)
	if err != nil {
		return writeBookingError(c, err)
	}
	if err := h.Admins.StoreRefreshToken(c.Request().Context(), adminID,
		utils.HashRefreshRaw(refresh.Raw), refresh.Exp); err != nil {
		return writeBookingError(c, err)
	}
	return c.JSON(http.StatusOK, tokenResponse{
		AccessToken:  access.Token,
		RefreshToken: refresh.Raw,
		ExpiresAt:    access.Exp.Format("2006-01-02T15:04:05Z07:00"),
		Role:         role,
		FullName:     fullName,
	})
}

type profileResponse struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

// Me returns the authenticated admin's profile.
func (h *AdminAuthHandler) Me(c echo.Context) error {
	admin, err := h.Admins.GetByID(c.Request().Context(), middleware.AdminID(c))
	if err != nil {
		return writeBookingError(c, err)
	}
	return c.JSON(http.StatusOK, profileResponse{
		ID: admin.ID, Username: admin.Username, FullName: admin.FullName, Role: admin.Role,
	})
}

type updateProfileRequest struct {
	FullName string `json:"full_name"`
}

// UpdateProfile changes the admin's display name.
func (h *AdminAuthHandler) UpdateProfile(c echo.Context) error {
	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	name := strings.TrimSpace(req.FullName)
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "full_name is required"})
	}
	if err := h.Admins.UpdateFullName(c.Request().Context(), middleware.AdminID(c), name); err != nil {
		return writeBookingError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "profile updated"})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ChangePassword verifies the current password, stores the new hash
// and revokes every outstanding refresh token for the account.
func (h *AdminAuthHandler) ChangePassword(c echo.Context) error {
	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if len(req.NewPassword) < 8 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "new password must be at least 8 characters"})
	}
	ctx := c.Request().Context()
	adminID := middleware.AdminID(c)
	admin, err := h.Admins.GetByID(ctx, adminID)
	if err != nil {
		return writeBookingError(c, err)
	}
	if !utils.VerifyPassword(admin.PasswordHash, req.CurrentPassword) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "current password is incorrect"})
	}
	hash, err := utils.HashPassword(req.NewPassword, h.Cfg.BcryptCost)
	if err != nil {
		return writeBookingError(c, err)
	}
	if err := h.Admins.UpdatePassword(ctx, adminID, hash); err != nil {
		return writeBookingError(c, err)
	}
	if err := h.Admins.RevokeAllRefreshTokens(ctx, adminID); err != nil {
		return writeBookingError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "password changed"})
}

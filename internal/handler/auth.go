package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/job-portal/internal/middleware"
	"github.com/iliyamo/job-portal/internal/model"
	"github.com/iliyamo/job-portal/internal/service"
	"github.com/iliyamo/job-portal/internal/utils"
)

// AuthHandler serves /auth.
type AuthHandler struct {
	Auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{Auth: auth}
}

// ----- DTOs -----

type registerReq struct {
	Name     string `json:"name" validate:"max=100"`
	Email    string `json:"email" validate:"omitempty,email,max=100"`
	Password string `json:"password"`
	Role     string `json:"role"` // seeker | employer
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type changePasswordReq struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// Register creates an account and returns it without a token.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := bind(c, &req); err != nil {
		return utils.Fail(c, err)
	}
	u, err := h.Auth.Register(c.Request().Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     model.Role(req.Role),
	})
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.OK(c, http.StatusCreated, "User registered successfully", u)
}

// Login verifies credentials and issues an access token.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := bind(c, &req); err != nil {
		return utils.Fail(c, err)
	}
	res, err := h.Auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return utils.Fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success":    true,
		"message":    "Login successful",
		"user":       res.User,
		"token":      res.Token,
		"expires_at": res.ExpiresAt,
	})
}

// Logout revokes the bearer token of the request.
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.Auth.Logout(c.Request().Context(), middleware.TokenFrom(c)); err != nil {
		return utils.Fail(c, err)
	}
	return utils.OK(c, http.StatusOK, "Logged out successfully", nil)
}

// ChangePassword replaces the caller's password after checking the
// old one.
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	var req changePasswordReq
	if err := bind(c, &req); err != nil {
		return utils.Fail(c, err)
	}
	if err := h.Auth.ChangePassword(c.Request().Context(), caller(c), req.OldPassword, req.NewPassword); err != nil {
		return utils.Fail(c, err)
	}
	return utils.OK(c, http.StatusOK, "Password updated successfully", nil)
}

// Me returns the authenticated user.
func (h *AuthHandler) Me(c echo.Context) error {
	u, err := h.Auth.Me(c.Request().Context(), caller(c))
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.OK(c, http.StatusOK, "", u)
}

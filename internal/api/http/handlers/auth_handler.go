package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/stormkid2009/restooo/internal/api/dto"
	"github.com/stormkid2009/restooo/internal/auth"
	"github.com/stormkid2009/restooo/internal/domain"
	"github.com/stormkid2009/restooo/internal/service"
	apperrors "github.com/stormkid2009/restooo/pkg/util"
)

// AuthHandler exposes registration, login and session endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(&req); err != nil {
		return err
	}

	user, token, err := h.auth.Register(c.UserContext(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     domain.Role(req.Role),
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"status": "success",
		"data": fiber.Map{
			"user":  dto.NewUserResponse(user),
			"token": token,
		},
	})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(&req); err != nil {
		return err
	}

	user, token, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data": fiber.Map{
			"user":  dto.NewUserResponse(user),
			"token": token,
		},
	})
}

// Me handles GET /auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized(auth.MsgAuthFailed)
	}

	user, err := h.auth.CurrentUser(c.UserContext(), claims.SubjectID())
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data": fiber.Map{
			"user": dto.NewUserResponse(user),
		},
	})
}

// Logout handles POST /auth/logout. Stateless: the token stays valid until
// it expires.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.auth.Logout(c.UserContext()); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Logged out successfully",
	})
}

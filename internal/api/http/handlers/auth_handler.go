package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/mentorship-service/internal/api/dto"
	"github.com/spec-kit/mentorship-service/internal/service"
	util "github.com/spec-kit/mentorship-service/pkg/util"
)

// AuthHandler exposes the login endpoint.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return util.NewValidationError("email and password are required", nil)
	}

	subject, token, exp, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"subject": dto.NewSubjectResponse(subject),
			"auth":    dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

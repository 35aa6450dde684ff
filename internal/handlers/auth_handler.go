package handlers

import (
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/moodmitra/internal/dto"
	"github.com/ahmetcoskunkizilkaya/moodmitra/internal/identity"
	"github.com/ahmetcoskunkizilkaya/moodmitra/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid request body"))
	}

	resp, err := h.authService.Signup(c.UserContext(), &req)
	if err != nil {
		return h.fail(c, err, "Failed to register user")
	}

	return c.Status(fiber.StatusCreated).JSON(dto.OKMessage("User registered successfully", resp))
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid request body"))
	}

	resp, err := h.authService.Login(c.UserContext(), &req)
	if err != nil {
		return h.fail(c, err, "Failed to log in")
	}

	return c.JSON(dto.OKMessage("Login successful", resp))
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid request body"))
	}

	resp, err := h.authService.Refresh(c.UserContext(), &req)
	if err != nil {
		return h.fail(c, err, "Failed to refresh token")
	}

	return c.JSON(dto.OK(resp))
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Not authorized"))
	}

	var req dto.LogoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid request body"))
	}

	if err := h.authService.Logout(c.UserContext(), userID, &req); err != nil {
		return h.fail(c, err, "Failed to logout")
	}

	return c.JSON(dto.OKMessage("Logged out successfully", nil))
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Not authorized"))
	}

	user, err := h.authService.Me(c.UserContext(), userID)
	if err != nil {
		return h.fail(c, err, "Failed to load user")
	}

	return c.JSON(dto.OK(user))
}

func (h *AuthHandler) Update(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Not authorized"))
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid request body"))
	}

	user, err := h.authService.UpdateProfile(c.UserContext(), userID, &req)
	if err != nil {
		return h.fail(c, err, "Failed to update user")
	}

	return c.JSON(dto.OK(user))
}

func (h *AuthHandler) fail(c *fiber.Ctx, err error, fallback string) error {
	if ok, werr := dto.AsValidation(c, err); ok {
		return werr
	}
	switch {
	case errors.Is(err, services.ErrEmailTaken):
		return c.Status(fiber.StatusConflict).JSON(dto.Fail(err.Error()))
	case errors.Is(err, services.ErrInvalidCredentials), errors.Is(err, services.ErrInvalidToken):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail(err.Error()))
	case errors.Is(err, services.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.Fail(err.Error()))
	}
	slog.Error(fallback, "error", err, "path", c.Path())
	return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail(fallback))
}

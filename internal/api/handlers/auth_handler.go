package handlers

import (
	"errors"
	"fmt"
	"time"

	config "github.com/benask/autoposter/configs"
	"github.com/benask/autoposter/internal/service"
	"github.com/benask/autoposter/internal/transfer"
	"github.com/benask/autoposter/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

const sessionDuration = 24 * time.Hour

type AuthHandler struct {
	s   service.AuthService
	cfg config.Config
}

func NewAuthHandler(cfg config.Config, s service.AuthService) *AuthHandler {
	return &AuthHandler{s: s, cfg: cfg}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req transfer.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid JSON in request body.",
		})
	}

	userID, err := h.s.Register(c.Context(), req.Email, req.Password)
	if err != nil {
		status := fiber.StatusBadRequest
		if errors.Is(err, service.ErrEmailTaken) {
			status = fiber.StatusConflict
		}
		return c.Status(status).JSON(fiber.Map{"message": err.Error()})
	}

	h.setSessionCookie(c, userID)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"user_id": userID,
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req transfer.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid JSON in request body.",
		})
	}

	userID, err := h.s.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Invalid email or password",
		})
	}

	h.setSessionCookie(c, userID)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Login successful",
		"user_id": userID,
	})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:   h.cfg.CookieName,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Logged out successfully",
	})
}

func (h *AuthHandler) setSessionCookie(c *fiber.Ctx, userID int64) {
	token, err := utils.GenerateToken(h.cfg.SecretKey, fmt.Sprintf("%d", userID), sessionDuration)
	if err != nil {
		return
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.cfg.CookieName,
		Value:    token,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
		Expires:  time.Now().Add(sessionDuration),
	})
}

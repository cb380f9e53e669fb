package handlers

import (
	"errors"
	"fmt"
	"net/url"

	config "github.com/benask/autoposter/configs"
	"github.com/benask/autoposter/internal/service"
	"github.com/gofiber/fiber/v2"
)

type AccountHandler struct {
	s   service.AccountService
	cfg config.Config
}

func NewAccountHandler(cfg config.Config, s service.AccountService) *AccountHandler {
	return &AccountHandler{s: s, cfg: cfg}
}

// BeginConnect starts the OAuth handshake and hands the authorization URL
// back to the frontend.
func (h *AccountHandler) BeginConnect(c *fiber.Ctx) error {
	userID := GetUserID(c)

	authURL, err := h.s.BeginConnect(c.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrCredentialsNotConfigured) {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Reddit API credentials are not configured. Please contact an administrator.",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Unable to start Reddit authorization",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"auth_url": authURL})
}

// ListConnected serves the GET side of the connect route: the caller's
// linked accounts.
func (h *AccountHandler) ListConnected(c *fiber.Ctx) error {
	return h.ListAccounts(c)
}

// Callback is the OAuth redirect target. It carries no session; the user is
// recovered from the signed state parameter. The outcome travels back to
// the frontend as a query-string message.
func (h *AccountHandler) Callback(c *fiber.Ctx) error {
	code := c.Query("code")
	state := c.Query("state")

	message, err := h.s.Callback(c.Context(), code, state)
	if err != nil {
		redirectURL := fmt.Sprintf("%s/accounts?error_message=%s", h.cfg.FrontendURL,
			url.QueryEscape(fmt.Sprintf("Failed to connect Reddit account: %v", err)))
		return c.Redirect(redirectURL, fiber.StatusTemporaryRedirect)
	}

	redirectURL := fmt.Sprintf("%s/accounts?message=%s", h.cfg.FrontendURL, url.QueryEscape(message))
	return c.Redirect(redirectURL, fiber.StatusTemporaryRedirect)
}

func (h *AccountHandler) ListAccounts(c *fiber.Ctx) error {
	userID := GetUserID(c)

	accounts, err := h.s.List(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to fetch Reddit accounts",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"accounts": accounts})
}

func (h *AccountHandler) DeleteAccount(c *fiber.Ctx) error {
	userID := GetUserID(c)
	accountID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid account id",
		})
	}

	if err := h.s.Delete(c.Context(), userID, int64(accountID)); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Reddit account not found or unauthorized",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error deleting account",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Reddit account deleted successfully",
	})
}

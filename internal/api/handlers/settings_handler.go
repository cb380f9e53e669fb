package handlers

import (
	"strings"

	"github.com/benask/autoposter/internal/service"
	"github.com/benask/autoposter/internal/transfer"
	"github.com/gofiber/fiber/v2"
)

type SettingsHandler struct {
	cs service.CredentialService
	ss service.SubredditService
	us service.UserService
}

func NewSettingsHandler(cs service.CredentialService, ss service.SubredditService, us service.UserService) *SettingsHandler {
	return &SettingsHandler{cs: cs, ss: ss, us: us}
}

func (h *SettingsHandler) requireAdmin(c *fiber.Ctx) bool {
	isAdmin, err := h.us.IsAdmin(c.Context(), GetUserID(c))
	return err == nil && isAdmin
}

// GetCredentials returns the application credential singleton. Restricted
// to administrators.
func (h *SettingsHandler) GetCredentials(c *fiber.Ctx) error {
	if !h.requireAdmin(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "Administrator access required",
		})
	}

	cred, err := h.cs.Get(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Unable to load Reddit API settings",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"client_id":     cred.ClientID,
		"client_secret": maskSecret(cred.ClientSecret),
		"redirect_uri":  cred.RedirectURI,
	})
}

// maskSecret keeps the last four characters so an administrator can tell
// which secret is stored without the API echoing it back in full.
func maskSecret(s string) string {
	if len(s) <= 4 {
		return strings.Repeat("*", len(s))
	}
	return strings.Repeat("*", len(s)-4) + s[len(s)-4:]
}

func (h *SettingsHandler) UpdateCredentials(c *fiber.Ctx) error {
	if !h.requireAdmin(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "Administrator access required",
		})
	}

	var update transfer.CredentialUpdate
	if err := c.BodyParser(&update); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid JSON in request body.",
		})
	}

	if err := h.cs.Update(c.Context(), &update); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Reddit API settings updated successfully!",
	})
}

func (h *SettingsHandler) GetSubreddits(c *fiber.Ctx) error {
	userID := GetUserID(c)

	subreddits, err := h.ss.Get(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Unable to load subreddit settings",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"desired_subreddits": subreddits,
	})
}

func (h *SettingsHandler) UpdateSubreddits(c *fiber.Ctx) error {
	userID := GetUserID(c)

	var update transfer.SubredditUpdate
	if err := c.BodyParser(&update); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "desired_subreddits must be a list",
		})
	}
	if update.DesiredSubreddits == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "desired_subreddits must be a list",
		})
	}

	if err := h.ss.Replace(c.Context(), userID, update.DesiredSubreddits); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Error processing request",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Subreddit settings updated successfully",
	})
}

package handlers

import (
	"errors"
	"fmt"

	"github.com/benask/autoposter/internal/service"
	"github.com/benask/autoposter/internal/transfer"
	"github.com/gofiber/fiber/v2"
)

type PostHandler struct {
	ps service.PostService
	is service.ImportService
}

func NewPostHandler(ps service.PostService, is service.ImportService) *PostHandler {
	return &PostHandler{ps: ps, is: is}
}

// FetchSaved runs the import job for one linked account.
func (h *PostHandler) FetchSaved(c *fiber.Ctx) error {
	userID := GetUserID(c)

	var req transfer.FetchSavedRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid JSON",
		})
	}
	if req.RedditAccountID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Reddit account ID is required",
		})
	}

	result, err := h.is.FetchSaved(c.Context(), userID, req.RedditAccountID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCredentialsNotConfigured):
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Reddit API credentials are not configured.",
			})
		case errors.Is(err, service.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Reddit account not found or unauthorized",
			})
		case errors.Is(err, service.ErrFetchDenied):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Access denied. The refresh token may lack 'read' scope or is invalid.",
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Failed to fetch or store saved posts",
			})
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": fmt.Sprintf("Successfully fetched and stored %d new saved posts and updated %d existing.",
			result.NewPostsCount, result.UpdatedPostsCount),
		"new_posts_count":     result.NewPostsCount,
		"updated_posts_count": result.UpdatedPostsCount,
	})
}

// ListSaved returns the caller's posts, newest first, optionally filtered
// by status.
func (h *PostHandler) ListSaved(c *fiber.Ctx) error {
	userID := GetUserID(c)
	status := c.Query("status")

	posts, err := h.ps.List(c.Context(), userID, status)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Unable to list saved posts",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"posts": posts})
}

func (h *PostHandler) DeletePost(c *fiber.Ctx) error {
	userID := GetUserID(c)
	postID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid post id",
		})
	}

	if err := h.ps.Remove(c.Context(), userID, int64(postID)); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Saved post not found or unauthorized",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error deleting saved post",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Saved post deleted successfully",
	})
}

// PerformPostNow posts one item to an explicit set of subreddits right
// away. Partial success still counts as success; the message names both
// sides.
func (h *PostHandler) PerformPostNow(c *fiber.Ctx) error {
	userID := GetUserID(c)

	var req transfer.PostNowRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid JSON in request body.",
		})
	}
	if req.PostID == 0 || len(req.SelectedSubreddits) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Post ID and selected subreddits are required.",
		})
	}

	result, err := h.ps.PostNow(c.Context(), userID, req.PostID, req.SelectedSubreddits)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Saved post not found or unauthorized",
			})
		case errors.Is(err, service.ErrAccountNotAuthorized):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Associated Reddit account not found or not authorized.",
			})
		case errors.Is(err, service.ErrCredentialsNotConfigured):
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Reddit API credentials are not configured.",
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Failed to perform post",
			})
		}
	}

	status := fiber.StatusOK
	if len(result.Posted) == 0 {
		status = fiber.StatusInternalServerError
	}
	return c.Status(status).JSON(fiber.Map{"message": result.Message})
}

// SchedulePost queues a post for the dispatch job. A post that already
// went out is rejected.
func (h *PostHandler) SchedulePost(c *fiber.Ctx) error {
	userID := GetUserID(c)

	var req transfer.SchedulePostRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid JSON in request body.",
		})
	}
	if req.PostID == 0 || req.ScheduledDate == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Post ID and scheduled date are required",
		})
	}

	scheduledAt, err := h.ps.Schedule(c.Context(), userID, req.PostID, req.ScheduledDate)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDateFormat):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid scheduled_date format. Use ISO format (YYYY-MM-DDTHH:MM:SS) or (YYYY-MM-DDTHH:MM:SS.sssZ).",
			})
		case errors.Is(err, service.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Post not found or unauthorized",
			})
		case errors.Is(err, service.ErrAlreadyPosted):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "This post has already been published.",
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Failed to schedule post",
			})
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": fmt.Sprintf("Post scheduled successfully for %s", scheduledAt.Format("2006-01-02T15:04:05Z07:00")),
	})
}

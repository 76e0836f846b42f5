package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/teckbook/teckbook-backend/internal/dto"
	"github.com/teckbook/teckbook-backend/internal/models"
	"github.com/teckbook/teckbook-backend/internal/services"
)

type ModerationHandler struct {
	moderationService *services.ModerationService
}

func NewModerationHandler(moderationService *services.ModerationService) *ModerationHandler {
	return &ModerationHandler{moderationService: moderationService}
}

// ListPosts serves the moderation panel listing.
// Query: state=hidden|visible, search, page, page_size.
func (h *ModerationHandler) ListPosts(c *fiber.Ctx) error {
	page := pageFromQuery(c)
	posts, total, err := h.moderationService.ListPosts(services.PostFilter{
		State:  c.Query("state"),
		Search: c.Query("search"),
	}, page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(pageResponse(page, total, posts))
}

func (h *ModerationHandler) Pending(c *fiber.Ctx) error {
	page := pageFromQuery(c)
	posts, total, err := h.moderationService.PendingPosts(services.PendingFilter{
		Type:        models.PostType(c.Query("type")),
		ClassroomID: uint(c.QueryInt("classroom_id", 0)),
	}, page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(pageResponse(page, total, posts))
}

func (h *ModerationHandler) GetPost(c *fiber.Ctx) error {
	postID, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid post ID")
	}

	post, err := h.moderationService.GetPost(postID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(post)
}

func (h *ModerationHandler) PostHistory(c *fiber.Ctx) error {
	postID, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid post ID")
	}

	history, err := h.moderationService.PostHistory(postID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.HistoryResponse{History: history})
}

func (h *ModerationHandler) CensorPost(c *fiber.Ctx) error {
	adminID, ok := actorID(c)
	if !ok {
		return unauthorized(c)
	}
	postID, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid post ID")
	}

	var req dto.CensorPostRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	result, err := h.moderationService.CensorPost(postID, adminID, req.Reason, req.ApplyStrike)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(result)
}

func (h *ModerationHandler) UncensorPost(c *fiber.Ctx) error {
	adminID, ok := actorID(c)
	if !ok {
		return unauthorized(c)
	}
	postID, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid post ID")
	}

	if err := h.moderationService.UncensorPost(postID, adminID); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Post reactivated successfully"})
}

func (h *ModerationHandler) SuspendAccount(c *fiber.Ctx) error {
	adminID, accountID, req, ok := h.accountAction(c)
	if !ok {
		return nil
	}

	if err := h.moderationService.SuspendAccount(accountID, adminID, req.Reason); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Account suspended"})
}

func (h *ModerationHandler) ReactivateAccount(c *fiber.Ctx) error {
	adminID, ok := actorID(c)
	if !ok {
		return unauthorized(c)
	}
	accountID, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid account ID")
	}

	if err := h.moderationService.ReactivateAccount(accountID, adminID); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Account reactivated"})
}

func (h *ModerationHandler) ApplyStrike(c *fiber.Ctx) error {
	adminID, accountID, req, ok := h.accountAction(c)
	if !ok {
		return nil
	}

	result, err := h.moderationService.ApplyStrike(accountID, adminID, req.Reason)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(result)
}

func (h *ModerationHandler) ResetStrikes(c *fiber.Ctx) error {
	adminID, accountID, req, ok := h.accountAction(c)
	if !ok {
		return nil
	}

	if err := h.moderationService.ResetStrikes(accountID, adminID, req.Reason); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Strikes reset"})
}

// accountAction parses the actor, the :id account and a reason body. On
// failure the response has already been written and ok is false.
func (h *ModerationHandler) accountAction(c *fiber.Ctx) (adminID, accountID uint, req dto.ReasonRequest, ok bool) {
	if adminID, ok = actorID(c); !ok {
		_ = unauthorized(c)
		return
	}
	if accountID, ok = paramID(c, "id"); !ok {
		_ = badRequest(c, "Invalid account ID")
		return
	}
	if err := c.BodyParser(&req); err != nil {
		_ = badRequest(c, "Invalid request body")
		return 0, 0, req, false
	}
	return adminID, accountID, req, true
}

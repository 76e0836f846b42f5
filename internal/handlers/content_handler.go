package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/teckbook/teckbook-backend/internal/authctx"
	"github.com/teckbook/teckbook-backend/internal/dto"
	"github.com/teckbook/teckbook-backend/internal/services"
)

type ContentHandler struct {
	contentService *services.ContentService
}

func NewContentHandler(contentService *services.ContentService) *ContentHandler {
	return &ContentHandler{contentService: contentService}
}

func (h *ContentHandler) Feed(c *fiber.Ctx) error {
	page := pageFromQuery(c)
	posts, total, err := h.contentService.Feed(uint(c.QueryInt("classroom_id", 0)), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(pageResponse(page, total, posts))
}

func (h *ContentHandler) CreatePost(c *fiber.Ctx) error {
	accountID, err := authctx.GetAccountID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.CreatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	post, err := h.contentService.CreatePost(accountID, &req)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

func (h *ContentHandler) UpdatePost(c *fiber.Ctx) error {
	accountID, err := authctx.GetAccountID(c)
	if err != nil {
		return unauthorized(c)
	}
	postID, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid post ID")
	}

	var req dto.UpdatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	post, err := h.contentService.UpdatePost(postID, accountID, &req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(post)
}

func (h *ContentHandler) DeletePost(c *fiber.Ctx) error {
	accountID, err := authctx.GetAccountID(c)
	if err != nil {
		return unauthorized(c)
	}
	postID, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid post ID")
	}

	if err := h.contentService.DeletePost(postID, accountID); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Post deleted"})
}

func (h *ContentHandler) AddComment(c *fiber.Ctx) error {
	accountID, err := authctx.GetAccountID(c)
	if err != nil {
		return unauthorized(c)
	}
	postID, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid post ID")
	}

	var req dto.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	comment, err := h.contentService.AddComment(postID, accountID, &req)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

func (h *ContentHandler) RemoveComment(c *fiber.Ctx) error {
	accountID, err := authctx.GetAccountID(c)
	if err != nil {
		return unauthorized(c)
	}
	commentID, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid comment ID")
	}

	if err := h.contentService.RemoveComment(commentID, accountID); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Comment removed"})
}

func (h *ContentHandler) Like(c *fiber.Ctx) error {
	accountID, err := authctx.GetAccountID(c)
	if err != nil {
		return unauthorized(c)
	}
	postID, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid post ID")
	}

	count, err := h.contentService.Like(postID, accountID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"like_count": count})
}

func (h *ContentHandler) Unlike(c *fiber.Ctx) error {
	accountID, err := authctx.GetAccountID(c)
	if err != nil {
		return unauthorized(c)
	}
	postID, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid post ID")
	}

	count, err := h.contentService.Unlike(postID, accountID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"like_count": count})
}

func (h *ContentHandler) MarkRead(c *fiber.Ctx) error {
	accountID, err := authctx.GetAccountID(c)
	if err != nil {
		return unauthorized(c)
	}
	postID, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid post ID")
	}

	if err := h.contentService.MarkRead(postID, accountID); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

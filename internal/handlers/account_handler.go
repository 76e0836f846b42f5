package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/teckbook/teckbook-backend/internal/dto"
	"github.com/teckbook/teckbook-backend/internal/models"
	"github.com/teckbook/teckbook-backend/internal/services"
)

type AccountHandler struct {
	accountService *services.AccountService
}

func NewAccountHandler(accountService *services.AccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// List query: role, active=true|false, strikes=with|without|<count>, search, page, page_size.
func (h *AccountHandler) List(c *fiber.Ctx) error {
	filter := services.AccountFilter{
		Role:    models.Role(c.Query("role")),
		Strikes: c.Query("strikes"),
		Search:  c.Query("search"),
	}
	if raw := c.Query("active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			return badRequest(c, "active must be true or false")
		}
		filter.Active = &active
	}

	page := pageFromQuery(c)
	accounts, total, err := h.accountService.List(filter, page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(pageResponse(page, total, accounts))
}

func (h *AccountHandler) Get(c *fiber.Ctx) error {
	accountID, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid account ID")
	}

	account, err := h.accountService.Get(accountID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(account)
}

func (h *AccountHandler) History(c *fiber.Ctx) error {
	accountID, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid account ID")
	}

	history, err := h.accountService.History(accountID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.HistoryResponse{History: history})
}

func (h *AccountHandler) CreateProfessor(c *fiber.Ctx) error {
	adminID, ok := actorID(c)
	if !ok {
		return unauthorized(c)
	}

	var req dto.CreateAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	account, err := h.accountService.CreateProfessor(adminID, &req)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(account)
}

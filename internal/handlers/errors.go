package handlers

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/teckbook/teckbook-backend/internal/apperrors"
	"github.com/teckbook/teckbook-backend/internal/authctx"
	"github.com/teckbook/teckbook-backend/internal/dto"
	"github.com/teckbook/teckbook-backend/internal/services"
)

// statusFor maps an error kind to its HTTP status.
func statusFor(err error) int {
	switch apperrors.KindOf(err) {
	case apperrors.ErrNotFound:
		return fiber.StatusNotFound
	case apperrors.ErrInvalidArgument:
		return fiber.StatusBadRequest
	case apperrors.ErrIllegalTransition:
		return fiber.StatusConflict
	case apperrors.ErrPermissionDenied:
		return fiber.StatusForbidden
	case apperrors.ErrUnauthenticated:
		return fiber.StatusUnauthorized
	}
	return fiber.StatusInternalServerError
}

func writeError(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	if status == fiber.StatusInternalServerError {
		slog.Error("request failed", "path", c.Path(), "method", c.Method(), "error", err,
			"request_id", c.GetRespHeader(fiber.HeaderXRequestID))
		return c.Status(status).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error", Code: apperrors.Code(err),
		})
	}

	msg := err.Error()
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		msg = appErr.Message
	}
	return c.Status(status).JSON(dto.ErrorResponse{
		Error: true, Message: msg, Code: apperrors.Code(err),
	})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: true, Message: msg, Code: "INVALID_INPUT",
	})
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error: true, Message: "Unauthorized",
	})
}

// paramID parses a positive numeric path parameter.
func paramID(c *fiber.Ctx, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func pageFromQuery(c *fiber.Ctx) services.Page {
	return services.Page{
		Number: c.QueryInt("page", 1),
		Size:   c.QueryInt("page_size", services.DefaultPageSize),
	}.Normalize()
}

func pageResponse[T any](page services.Page, total int64, results []T) dto.PageResponse[T] {
	if results == nil {
		results = []T{}
	}
	return dto.PageResponse[T]{
		Count:    total,
		Page:     page.Number,
		PageSize: page.Size,
		Results:  results,
	}
}

// actorID returns the administrator loaded by AdminRequired.
func actorID(c *fiber.Ctx) (uint, bool) {
	account, ok := authctx.GetAccount(c)
	if !ok {
		return 0, false
	}
	return account.ID, true
}

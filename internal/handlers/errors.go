package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jjenkins/boardsite/internal/content"
	"github.com/jjenkins/boardsite/internal/model"
	"github.com/jjenkins/boardsite/internal/store"
)

type errorResponse struct {
	Error string `json:"error"`
}

// statusFor maps a mutation failure onto an HTTP status
func statusFor(err error) int {
	switch {
	case errors.Is(err, model.ErrInvalid):
		return fiber.StatusBadRequest
	case errors.Is(err, store.ErrNotFound), errors.Is(err, content.ErrUnknownSetting):
		return fiber.StatusNotFound
	case errors.Is(err, store.ErrConflict):
		return fiber.StatusConflict
	default:
		return fiber.StatusBadGateway
	}
}

func sendError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(errorResponse{Error: msg})
}

func sendMutationError(c *fiber.Ctx, err error) error {
	return sendError(c, statusFor(err), err.Error())
}

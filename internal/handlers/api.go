package handlers

import (
	"context"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"
	"github.com/jjenkins/boardsite/internal/content"
	"github.com/jjenkins/boardsite/internal/service"
)

const maxChatMessage = 2000

// Responder answers chat messages
type Responder interface {
	GetResponse(ctx context.Context, message string) string
}

// StatsSource summarizes visitors
type StatsSource interface {
	Summary(ctx context.Context) (*service.VisitorSummary, error)
}

// ContentHandler returns the whole content state as JSON
func ContentHandler(container *content.Container) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(container.Snapshot())
	}
}

type statsResponse struct {
	Visitors *service.VisitorSummary `json:"visitors"`
	Notices  int                     `json:"notices"`
	News     int                     `json:"news"`
	Pages    int                     `json:"pages"`
}

func StatsHandler(container *content.Container, stats StatsSource) fiber.Handler {
	return func(c *fiber.Ctx) error {
		summary, err := stats.Summary(c.UserContext())
		if err != nil {
			log.Printf("Error loading visitor statistics: %v", err)
			return sendError(c, fiber.StatusInternalServerError, "Error loading statistics")
		}

		state := container.Snapshot()
		return c.JSON(statsResponse{
			Visitors: summary,
			Notices:  len(state.Notices),
			News:     len(state.News),
			Pages:    len(state.Pages),
		})
	}
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

func ChatHandler(assistant Responder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req chatRequest
		if err := c.BodyParser(&req); err != nil {
			return sendError(c, fiber.StatusBadRequest, "invalid request body")
		}
		if utf8.RuneCountInString(req.Message) > maxChatMessage {
			return sendError(c, fiber.StatusBadRequest, "message is too long")
		}

		reply := assistant.GetResponse(c.UserContext(), strings.TrimSpace(req.Message))
		return c.JSON(chatResponse{Reply: reply})
	}
}

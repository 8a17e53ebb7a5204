package handlers

import (
	"log"
	"net/url"

	"github.com/a-h/templ"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/jjenkins/boardsite/internal/content"
	"github.com/jjenkins/boardsite/internal/service"
	"github.com/jjenkins/boardsite/internal/templates"
)

func renderPage(c *fiber.Ctx, page templ.Component, opts ...func(*templ.ComponentHandler)) error {
	handler := adaptor.HTTPHandler(templ.Handler(page, opts...))
	return handler(c)
}

func HomeHandler(container *content.Container) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return renderPage(c, templates.Home(container.Snapshot()))
	}
}

func NoticesHandler(container *content.Container) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return renderPage(c, templates.Notices(container.Snapshot()))
	}
}

func NewsHandler(container *content.Container) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return renderPage(c, templates.News(container.Snapshot()))
	}
}

func PageHandler(container *content.Container, renderer *service.Renderer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		state := container.Snapshot()

		// Slugs outside ASCII arrive percent-encoded
		slug, err := url.PathUnescape(c.Params("slug"))
		page, ok := state.PageBySlug(slug)
		if err != nil || !ok {
			return renderPage(c, templates.NotFound(state), templ.WithStatus(fiber.StatusNotFound))
		}

		result, err := renderer.Render(page.Content)
		if err != nil {
			log.Printf("Error rendering page %s: %v", page.Slug, err)
			return c.Status(fiber.StatusInternalServerError).SendString("Error rendering page")
		}

		return renderPage(c, templates.Page(state, templates.PageBody{
			Page:           page,
			HTML:           result.HTML,
			ReadingMinutes: result.ReadingMinutes,
		}))
	}
}

func NotFoundHandler(container *content.Container) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return renderPage(c, templates.NotFound(container.Snapshot()), templ.WithStatus(fiber.StatusNotFound))
	}
}

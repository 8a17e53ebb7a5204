package handlers

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jjenkins/boardsite/internal/content"
	"github.com/jjenkins/boardsite/internal/model"
)

// Refresher reloads content state from the backend
type Refresher interface {
	Refresh(ctx context.Context) content.Report
}

type categoryResult struct {
	Category   content.Category `json:"category"`
	Outcome    content.Outcome  `json:"outcome"`
	Count      int              `json:"count"`
	Error      string           `json:"error,omitempty"`
	DurationMS int64            `json:"duration_ms"`
}

type refreshResponse struct {
	DurationMS int64            `json:"duration_ms"`
	Failed     int              `json:"failed"`
	Results    []categoryResult `json:"results"`
}

// RefreshHandler runs a refresh and reports each category's outcome.
// Category failures do not fail the request.
func RefreshHandler(r Refresher) fiber.Handler {
	return func(c *fiber.Ctx) error {
		report := r.Refresh(c.UserContext())

		resp := refreshResponse{
			DurationMS: report.Duration.Milliseconds(),
			Failed:     len(report.Failed()),
			Results:    make([]categoryResult, 0, len(report.Results)),
		}
		for _, res := range report.Results {
			cr := categoryResult{
				Category:   res.Category,
				Outcome:    res.Outcome,
				Count:      res.Count,
				DurationMS: res.Duration.Milliseconds(),
			}
			if res.Err != nil {
				cr.Error = res.Err.Error()
			}
			resp.Results = append(resp.Results, cr)
		}
		return c.JSON(resp)
	}
}

func parseID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	return id, err == nil && id > 0
}

func createHandler[T any](create func(context.Context, T) (T, error)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var item T
		if err := c.BodyParser(&item); err != nil {
			return sendError(c, fiber.StatusBadRequest, "invalid request body")
		}
		saved, err := create(c.UserContext(), item)
		if err != nil {
			return sendMutationError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(saved)
	}
}

// updateHandler takes the id from the path; an id in the body is ignored
func updateHandler[T any](setID func(*T, int64), update func(context.Context, T) (T, error)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return sendError(c, fiber.StatusBadRequest, "invalid id")
		}
		var item T
		if err := c.BodyParser(&item); err != nil {
			return sendError(c, fiber.StatusBadRequest, "invalid request body")
		}
		setID(&item, id)
		saved, err := update(c.UserContext(), item)
		if err != nil {
			return sendMutationError(c, err)
		}
		return c.JSON(saved)
	}
}

func deleteHandler(remove func(context.Context, int64) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return sendError(c, fiber.StatusBadRequest, "invalid id")
		}
		if err := remove(c.UserContext(), id); err != nil {
			return sendMutationError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

func replaceHandler[T any](replace func(context.Context, []T) ([]T, error)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var items []T
		if err := c.BodyParser(&items); err != nil {
			return sendError(c, fiber.StatusBadRequest, "invalid request body")
		}
		saved, err := replace(c.UserContext(), items)
		if err != nil {
			return sendMutationError(c, err)
		}
		return c.JSON(saved)
	}
}

func SettingHandler(m *content.Mutator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		body := c.Body()
		if !json.Valid(body) {
			return sendError(c, fiber.StatusBadRequest, "invalid request body")
		}
		stored, err := m.UpdateSetting(c.UserContext(), c.Params("key"), json.RawMessage(body))
		if err != nil {
			return sendMutationError(c, err)
		}
		return c.JSON(stored)
	}
}

// RegisterAdmin mounts the content management API on router
func RegisterAdmin(router fiber.Router, m *content.Mutator, r Refresher) {
	router.Post("/refresh", RefreshHandler(r))

	router.Post("/notices", createHandler(m.CreateNotice))
	router.Put("/notices/:id", updateHandler(func(n *model.Notice, id int64) { n.ID = id }, m.UpdateNotice))
	router.Delete("/notices/:id", deleteHandler(m.DeleteNotice))

	router.Post("/news", createHandler(m.CreateNews))
	router.Put("/news/:id", updateHandler(func(n *model.NewsItem, id int64) { n.ID = id }, m.UpdateNews))
	router.Delete("/news/:id", deleteHandler(m.DeleteNews))

	router.Post("/pages", createHandler(m.CreatePage))
	router.Put("/pages/:id", updateHandler(func(p *model.Page, id int64) { p.ID = id }, m.UpdatePage))
	router.Delete("/pages/:id", deleteHandler(m.DeletePage))

	router.Post("/carousel", createHandler(m.CreateCarouselItem))
	router.Put("/carousel/:id", updateHandler(func(ci *model.CarouselItem, id int64) { ci.ID = id }, m.UpdateCarouselItem))
	router.Delete("/carousel/:id", deleteHandler(m.DeleteCarouselItem))

	router.Put("/sidebar", replaceHandler(m.ReplaceSidebar))
	router.Put("/widgets", replaceHandler(m.ReplaceWidgets))
	router.Put("/settings/:key", SettingHandler(m))
}

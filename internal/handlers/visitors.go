package handlers

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const visitorCookie = "board_visitor"

// VisitRecorder stores one visit per visitor per day
type VisitRecorder interface {
	Record(ctx context.Context, visitorID uuid.UUID) error
}

// PageViewRecorder counts rendered pages
type PageViewRecorder interface {
	ObservePageView(route string)
}

// VisitorMiddleware identifies visitors with a long-lived cookie and records
// their visit. A failed write is logged; the page is still served.
func VisitorMiddleware(visits VisitRecorder, views PageViewRecorder) fiber.Handler {
	errLogger := log.New(os.Stderr, "ERROR: ", log.LstdFlags)

	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Cookies(visitorCookie))
		if err != nil {
			id = uuid.New()
			c.Cookie(&fiber.Cookie{
				Name:     visitorCookie,
				Value:    id.String(),
				Path:     "/",
				Expires:  time.Now().AddDate(1, 0, 0),
				HTTPOnly: true,
				SameSite: fiber.CookieSameSiteLaxMode,
			})
		}

		if err := visits.Record(c.UserContext(), id); err != nil {
			errLogger.Printf("Failed to record visit: %v", err)
		}

		err = c.Next()
		if views != nil && c.Response().StatusCode() < fiber.StatusBadRequest {
			views.ObservePageView(c.Route().Path)
		}
		return err
	}
}

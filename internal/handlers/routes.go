package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/jjenkins/boardsite/internal/config"
	"github.com/jjenkins/boardsite/internal/content"
	"github.com/jjenkins/boardsite/internal/service"
)

// Site bundles what the routes need
type Site struct {
	Container *content.Container
	Refresher Refresher
	Mutator   *content.Mutator
	Renderer  *service.Renderer
	Visits    VisitRecorder
	Stats     StatsSource
	Views     PageViewRecorder
	Assistant Responder
	Admin     config.AdminConfig
}

// Register mounts every route on app
func Register(app *fiber.App, s Site) {
	visitor := VisitorMiddleware(s.Visits, s.Views)
	app.Get("/", visitor, HomeHandler(s.Container))
	app.Get("/notices", visitor, NoticesHandler(s.Container))
	app.Get("/news", visitor, NewsHandler(s.Container))
	app.Get("/pages/:slug", visitor, PageHandler(s.Container, s.Renderer))

	api := app.Group("/api")
	api.Get("/content", ContentHandler(s.Container))
	api.Get("/stats", StatsHandler(s.Container, s.Stats))
	api.Post("/chat", ChatHandler(s.Assistant))

	admin := app.Group("/admin/api")
	if s.Admin.Enabled() {
		admin.Use(basicauth.New(basicauth.Config{
			Users: map[string]string{s.Admin.User: s.Admin.Password},
			Realm: "Board Admin",
		}))
	}
	RegisterAdmin(admin, s.Mutator, s.Refresher)
}

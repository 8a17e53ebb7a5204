package cmd

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/jjenkins/boardsite/internal/content"
	"github.com/jjenkins/boardsite/internal/handlers"
	"github.com/jjenkins/boardsite/internal/metrics"
	"github.com/jjenkins/boardsite/internal/service"
	"github.com/jjenkins/boardsite/internal/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the board website",
	Long: `Start the web server for the board website.

Content starts from the built-in defaults and is replaced category by
category as the database answers. A background refresh keeps it current.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signalContext()
		defer cancel()

		db := connect()
		defer db.Close()

		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		m := metrics.New(reg)

		backend := store.NewBackend(db)
		container := content.NewContainer(content.Defaults())
		aggregator := content.NewAggregator(backend, container,
			content.WithFetchTimeout(cfg.FetchTimeout),
			content.WithRecorder(m),
		)
		visitors := service.NewVisitorService(db)

		app := fiber.New(fiber.Config{
			AppName: "Board Website",
		})

		app.Use(logger.New())
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

		handlers.Register(app, handlers.Site{
			Container: container,
			Refresher: aggregator,
			Mutator:   content.NewMutator(backend, container, m),
			Renderer:  service.NewRenderer(),
			Visits:    visitors,
			Stats:     visitors,
			Views:     m,
			Assistant: newAssistant(ctx, m),
			Admin:     cfg.Admin,
		})
		app.Use(handlers.NotFoundHandler(container))

		if !cfg.Admin.Enabled() {
			log.Println("Warning: admin credentials not set, admin API is unauthenticated")
		}

		go aggregator.Run(ctx, cfg.RefreshInterval)

		go func() {
			<-ctx.Done()
			shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
			defer stop()
			if err := app.ShutdownWithContext(shutdownCtx); err != nil {
				log.Printf("Error shutting down server: %v", err)
			}
		}()

		log.Printf("Starting server on :%s", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to run the server on")
	v.BindPFlag("port", serveCmd.Flags().Lookup("port"))
}

package cmd

import (
	"context"
	"database/sql"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/jjenkins/boardsite/internal/assistant"
	"github.com/jjenkins/boardsite/internal/config"
	"github.com/jjenkins/boardsite/internal/store"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	cfg     *config.Config
	v       = config.New()
)

var rootCmd = &cobra.Command{
	Use:   "boardsite",
	Short: "Education board website and content service",
	Long: `Boardsite serves the public website of an education board: notices,
news, pages, sidebar sections and home widgets kept in PostgreSQL, with an
admin API for editors and an AI help desk assistant.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(v, cfgFile)
		if err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().String("database-url", "", "PostgreSQL connection string")
	v.BindPFlag("database_url", rootCmd.PersistentFlags().Lookup("database-url"))
}

// signalContext is cancelled on SIGINT or SIGTERM
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigChan:
			log.Println("\nReceived interrupt signal, shutting down...")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigChan)
	}()

	return ctx, cancel
}

func connect() *sql.DB {
	log.Println("Connecting to database...")
	db, err := store.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return db
}

// newAssistant builds the chat assistant; without an API key it only
// answers that it is not configured
func newAssistant(ctx context.Context, rec assistant.Recorder) *assistant.Assistant {
	acfg := assistant.Config{
		Model:          cfg.Gemini.Model,
		FallbackModels: cfg.Gemini.FallbackModels,
		MaxRetries:     cfg.Gemini.MaxRetries,
		InitialBackoff: cfg.Gemini.InitialBackoff,
	}

	if cfg.Gemini.APIKey == "" {
		log.Println("GEMINI_API_KEY not set, chat assistant disabled")
		return assistant.New(nil, acfg, rec)
	}

	gen, err := assistant.NewGeminiGenerator(ctx, cfg.Gemini.APIKey, assistant.SystemInstruction)
	if err != nil {
		log.Printf("Warning: chat assistant disabled: %v", err)
		return assistant.New(nil, acfg, rec)
	}
	return assistant.New(gen, acfg, rec)
}

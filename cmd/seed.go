package cmd

import (
	"log"
	"os"

	"github.com/jjenkins/boardsite/internal/content"
	"github.com/jjenkins/boardsite/internal/service"
	"github.com/jjenkins/boardsite/internal/store"
	"github.com/spf13/cobra"
)

var seedMigrate bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Write the built-in default content into an empty database",
	Long: `Seed copies the built-in default content into the database.

Only empty tables and missing settings are written; categories that already
hold content are skipped, so seeding is safe to repeat.

Examples:
  # Seed an existing schema
  ./boardsite seed

  # Create the schema first, then seed
  ./boardsite seed --migrate`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signalContext()
		defer cancel()

		db := connect()
		defer db.Close()

		if seedMigrate {
			if err := store.Migrate(ctx, db); err != nil {
				log.Fatalf("Migration failed: %v", err)
			}
		}

		seeder := service.NewSeeder(store.NewBackend(db), content.Defaults())

		log.Println("Starting seed")
		stats, err := seeder.Seed(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Println("Seed cancelled")
				os.Exit(1)
			}
			log.Fatalf("Seed failed: %v", err)
		}
		seeder.PrintSummary(stats)

		if stats.Failed > 0 {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.Flags().BoolVar(&seedMigrate, "migrate", false, "Create the schema before seeding")
}
